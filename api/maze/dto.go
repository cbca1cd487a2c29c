// Package mazeapi serves generated mazes and their wall layout.
package mazeapi

import (
	"github.com/beka-birhanu/maze-collapse/maze"
)

// MazeQuery holds the query parameters of a maze request.
type MazeQuery struct {
	Rows   int     `form:"rows" binding:"omitempty,min=1"`
	Cols   int     `form:"cols" binding:"omitempty,min=1"`
	Seed   int64   `form:"seed"`
	Width  float64 `form:"width" binding:"omitempty,gt=0"`
	Height float64 `form:"height" binding:"omitempty,gt=0"`
}

// MazeResponse describes a generated maze. The seed is a string so it survives
// JavaScript number precision.
type MazeResponse struct {
	Seed        string            `json:"seed"`
	Rows        int               `json:"rows"`
	Cols        int               `json:"cols"`
	Start       maze.CellPosition `json:"start"`
	Verticals   [][]bool          `json:"verticals"`
	Horizontals [][]bool          `json:"horizontals"`
	Openings    int               `json:"openings"`
	ASCII       string            `json:"ascii"`
	Layout      *maze.Layout      `json:"layout,omitempty"`
	Ticket      string            `json:"ticket,omitempty"`
}
