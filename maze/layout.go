package maze

import (
	"errors"
	"fmt"
	"math"
)

const (
	wallThickness = 5
	goalScale     = 0.7
)

var (
	ErrInvalidViewport = errors.New("invalid viewport size")
)

// Rect is an axis-aligned rectangle given by its centre, matching how the
// physics client positions bodies.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Circle is a round body given by its centre.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Layout is the physical geometry of a maze in a width x height viewport.
type Layout struct {
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	UnitX      float64      `json:"unit_x"`
	UnitY      float64      `json:"unit_y"`
	Boundaries []Rect       `json:"boundaries"`
	Walls      []Rect       `json:"walls"`
	Goal       Rect         `json:"goal"`
	Player     Circle       `json:"player"`
	PlayerCell CellPosition `json:"player_cell"`
	GoalCell   CellPosition `json:"goal_cell"`
}

// NewLayout places a blocking wall for every closed slot of the opening grids,
// the four viewport boundaries, the goal in the bottom-right cell and the
// player in the top-left cell.
func NewLayout(m *Maze, width, height float64) (*Layout, error) {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidViewport, width, height)
	}

	unitX := width / float64(m.Cols)
	unitY := height / float64(m.Rows)

	l := &Layout{
		Width:  width,
		Height: height,
		UnitX:  unitX,
		UnitY:  unitY,
		Boundaries: []Rect{
			{X: width / 2, Y: 0, Width: width, Height: wallThickness},
			{X: width / 2, Y: height, Width: width, Height: wallThickness},
			{X: 0, Y: height / 2, Width: wallThickness, Height: height},
			{X: width, Y: height / 2, Width: wallThickness, Height: height},
		},
		Goal: Rect{
			X:      width - unitX/2,
			Y:      height - unitY/2,
			Width:  unitX * goalScale,
			Height: unitY * goalScale,
		},
		Player: Circle{
			X:      unitX / 2,
			Y:      unitY / 2,
			Radius: math.Min(unitX, unitY) / 4,
		},
		PlayerCell: CellPosition{Row: 0, Col: 0},
		GoalCell:   CellPosition{Row: m.Rows - 1, Col: m.Cols - 1},
	}

	for row, slots := range m.Horizontals {
		for col, open := range slots {
			if open {
				continue
			}
			l.Walls = append(l.Walls, Rect{
				X:      float64(col)*unitX + unitX/2,
				Y:      float64(row)*unitY + unitY,
				Width:  unitX,
				Height: wallThickness,
			})
		}
	}

	for row, slots := range m.Verticals {
		for col, open := range slots {
			if open {
				continue
			}
			l.Walls = append(l.Walls, Rect{
				X:      float64(col)*unitX + unitX,
				Y:      float64(row)*unitY + unitY/2,
				Width:  wallThickness,
				Height: unitY,
			})
		}
	}

	return l, nil
}
