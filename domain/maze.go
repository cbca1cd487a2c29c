// Package domain holds the entities shared by services, repositories and controllers.
package domain

import (
	"github.com/beka-birhanu/maze-collapse/maze"
	"github.com/google/uuid"
)

// MazeRequest asks for a maze. Zero Rows or Cols select the defaults and a zero
// Seed selects a random one.
type MazeRequest struct {
	Rows int
	Cols int
	Seed int64
}

// GeneratedMaze is a maze together with the seed that reproduces it.
type GeneratedMaze struct {
	Seed int64
	Maze *maze.Maze
}

// Identity is the authenticated player behind a request.
type Identity struct {
	PlayerID uuid.UUID
	Username string
}
