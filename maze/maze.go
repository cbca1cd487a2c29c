/*
Package maze generates perfect rectangular mazes and answers questions about them.

A maze is produced by randomized depth-first backtracking from a start cell. The
result is kept as three boolean grids: the visited cells and two opening grids.
Verticals[r][c] is true when the wall between (r, c) and (r, c+1) is removed and
Horizontals[r][c] is true when the wall between (r, c) and (r+1, c) is removed.
The openings always form a spanning tree over the grid.

Besides generation the package derives per-cell walls, validates moves, renders
the maze as ASCII and computes the wall geometry used by the browser client.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/stack"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
)

// Shuffler is the random source that orders neighbors during generation.
// *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Maze is a generated perfect maze. The grids are read-only once Generate returns.
type Maze struct {
	Rows        int          // Number of rows in the grid
	Cols        int          // Number of columns in the grid
	Start       CellPosition // Cell the traversal started from
	Visited     [][]bool     // Rows x Cols
	Verticals   [][]bool     // Rows x (Cols-1), east/west passages
	Horizontals [][]bool     // (Rows-1) x Cols, north/south passages
}

// frame is one level of the depth-first traversal.
type frame struct {
	pos       CellPosition
	neighbors [4]Direction
	next      int
}

// Generate builds a maze of the given dimensions starting the traversal at start.
// Identical dimensions, start cell and random draws yield identical mazes.
func Generate(rows, cols int, start CellPosition, rng Shuffler) (*Maze, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if start.Row < 0 || start.Row >= rows || start.Col < 0 || start.Col >= cols {
		return nil, fmt.Errorf("%w: start (%d,%d) outside %dx%d", ErrInvalidDimensions, start.Row, start.Col, rows, cols)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidDimensions)
	}

	m := &Maze{
		Rows:        rows,
		Cols:        cols,
		Start:       start,
		Visited:     newGrid(rows, cols),
		Verticals:   newGrid(rows, cols-1),
		Horizontals: newGrid(rows-1, cols),
	}
	m.build(rng)
	return m, nil
}

func newGrid(rows, cols int) [][]bool {
	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
	}
	return grid
}

// build walks the grid depth first. Each frame keeps its shuffled neighbor list
// and a cursor, so the order of visits and random draws matches the recursive
// formulation of the algorithm.
func (m *Maze) build(rng Shuffler) {
	frames := stack.New[*frame]()
	frames.Push(m.enter(m.Start, rng))

	for frames.Size() > 0 {
		f := frames.Peek()
		if f.next == len(f.neighbors) {
			frames.Pop()
			continue
		}

		dir := f.neighbors[f.next]
		f.next++

		next := f.pos.Step(dir)
		if !m.InBounds(next) || m.Visited[next.Row][next.Col] {
			continue
		}

		m.open(f.pos, dir)
		frames.Push(m.enter(next, rng))
	}
}

// enter marks pos visited and returns its frame with a freshly shuffled neighbor order.
func (m *Maze) enter(pos CellPosition, rng Shuffler) *frame {
	m.Visited[pos.Row][pos.Col] = true

	f := &frame{pos: pos, neighbors: Directions}
	rng.Shuffle(len(f.neighbors), func(i, j int) {
		f.neighbors[i], f.neighbors[j] = f.neighbors[j], f.neighbors[i]
	})
	return f
}

// open removes the wall between pos and its neighbor in direction d.
func (m *Maze) open(pos CellPosition, d Direction) {
	switch d {
	case West:
		m.Verticals[pos.Row][pos.Col-1] = true
	case East:
		m.Verticals[pos.Row][pos.Col] = true
	case North:
		m.Horizontals[pos.Row-1][pos.Col] = true
	case South:
		m.Horizontals[pos.Row][pos.Col] = true
	}
}

// InBounds reports whether pos lies inside the grid.
func (m *Maze) InBounds(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < m.Rows && pos.Col >= 0 && pos.Col < m.Cols
}

// IsOpen reports whether there is a passage from pos in direction d.
// Steps that leave the grid are never open.
func (m *Maze) IsOpen(pos CellPosition, d Direction) bool {
	if !m.InBounds(pos) || !m.InBounds(pos.Step(d)) {
		return false
	}

	switch d {
	case West:
		return m.Verticals[pos.Row][pos.Col-1]
	case East:
		return m.Verticals[pos.Row][pos.Col]
	case North:
		return m.Horizontals[pos.Row-1][pos.Col]
	case South:
		return m.Horizontals[pos.Row][pos.Col]
	default:
		return false
	}
}

// IsValidMove checks if a move is valid (i.e., the connecting wall is down).
func (m *Maze) IsValidMove(move Move) bool {
	if move.From.Step(move.Direction) != move.To {
		return false
	}
	return m.IsOpen(move.From, move.Direction)
}

// Moves lists the moves available from pos through open walls.
func (m *Maze) Moves(pos CellPosition) []Move {
	var result []Move
	for _, d := range Directions {
		if m.IsOpen(pos, d) {
			result = append(result, Move{From: pos, To: pos.Step(d), Direction: d})
		}
	}
	return result
}

// Openings counts removed walls across both opening grids.
func (m *Maze) Openings() int {
	count := 0
	for _, grid := range [][][]bool{m.Verticals, m.Horizontals} {
		for _, row := range grid {
			for _, open := range row {
				if open {
					count++
				}
			}
		}
	}
	return count
}

// Cells derives the walls of every cell from the opening grids.
func (m *Maze) Cells() [][]Cell {
	cells := make([][]Cell, m.Rows)
	for r := range cells {
		cells[r] = make([]Cell, m.Cols)
		for c := range cells[r] {
			pos := CellPosition{Row: r, Col: c}
			cells[r][c] = Cell{
				NorthWall: !m.IsOpen(pos, North),
				SouthWall: !m.IsOpen(pos, South),
				EastWall:  !m.IsOpen(pos, East),
				WestWall:  !m.IsOpen(pos, West),
			}
		}
	}
	return cells
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", m.Cols) + "\n")

	for row := 0; row < m.Rows; row++ {
		// Cell rows
		b.WriteString("|")
		for col := 0; col < m.Cols; col++ {
			if m.IsOpen(CellPosition{Row: row, Col: col}, East) {
				b.WriteString("    ")
			} else {
				b.WriteString("   |")
			}
		}
		b.WriteString("\n")

		// Wall rows
		b.WriteString("+")
		for col := 0; col < m.Cols; col++ {
			if m.IsOpen(CellPosition{Row: row, Col: col}, South) {
				b.WriteString("   +")
			} else {
				b.WriteString("---+")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
