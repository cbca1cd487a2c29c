package main

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/maze-collapse/maze"
	"github.com/gdamore/tcell/v2"
)

const (
	cellWidth  = 4
	cellHeight = 2
)

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	goalStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	textStyle   = tcell.StyleDefault
)

// viewer renders a maze in the terminal and walks a player through it.
type viewer struct {
	screen tcell.Screen
	maze   *maze.Maze
	player maze.CellPosition
	goal   maze.CellPosition
	moves  int
	won    bool
}

func newViewer(screen tcell.Screen, m *maze.Maze) *viewer {
	return &viewer{
		screen: screen,
		maze:   m,
		goal:   maze.CellPosition{Row: m.Rows - 1, Col: m.Cols - 1},
		won:    m.Rows == 1 && m.Cols == 1,
	}
}

// step moves the player one cell when the wall in direction d is open.
func (v *viewer) step(d maze.Direction) bool {
	if v.won {
		return false
	}

	move := maze.Move{From: v.player, To: v.player.Step(d), Direction: d}
	if !v.maze.IsValidMove(move) {
		return false
	}

	v.player = move.To
	v.moves++
	v.won = v.player == v.goal
	return true
}

// cellOrigin returns the screen coordinates of the centre of a cell.
func cellOrigin(pos maze.CellPosition) (int, int) {
	return pos.Col*cellWidth + cellWidth/2, pos.Row*cellHeight + 1
}

func (v *viewer) draw() {
	v.screen.Clear()

	lines := strings.Split(strings.TrimRight(v.maze.String(), "\n"), "\n")
	for y, line := range lines {
		for x, r := range line {
			if r != ' ' {
				v.screen.SetContent(x, y, r, nil, wallStyle)
			}
		}
	}

	gx, gy := cellOrigin(v.goal)
	v.screen.SetContent(gx, gy, 'G', nil, goalStyle)
	px, py := cellOrigin(v.player)
	v.screen.SetContent(px, py, '@', nil, playerStyle)

	status := fmt.Sprintf("moves: %d  arrows/WASD move, q quits", v.moves)
	if v.won {
		status = fmt.Sprintf("You win in %d moves! q quits", v.moves)
	}
	v.drawText(0, len(lines)+1, status)

	v.screen.Show()
}

func (v *viewer) drawText(x, y int, text string) {
	for i, r := range text {
		v.screen.SetContent(x+i, y, r, nil, textStyle)
	}
}

// directionFor maps a key press to a direction.
func directionFor(ev *tcell.EventKey) (maze.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return maze.North, true
	case tcell.KeyRight:
		return maze.East, true
	case tcell.KeyDown:
		return maze.South, true
	case tcell.KeyLeft:
		return maze.West, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return maze.North, true
		case 'd', 'D':
			return maze.East, true
		case 's', 'S':
			return maze.South, true
		case 'a', 'A':
			return maze.West, true
		}
	}
	return "", false
}

// handle processes one event and reports whether the viewer keeps running.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if d, ok := directionFor(ev); ok {
			v.step(d)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}

	v.draw()
	return true
}

func (v *viewer) run() {
	v.draw()
	for {
		if !v.handle(v.screen.PollEvent()) {
			return
		}
	}
}
