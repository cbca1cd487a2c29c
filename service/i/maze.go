package i

import (
	"context"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/google/uuid"
)

// MazeGenerator produces mazes for clients.
type MazeGenerator interface {
	Generate(ctx context.Context, req domain.MazeRequest) (*domain.GeneratedMaze, error)
}

// RunTracker issues run tickets and records finished runs.
type RunTracker interface {
	// IssueTicket returns a signed ticket that starts the clock on a maze.
	IssueTicket(g *domain.GeneratedMaze) (string, error)

	// Finish redeems a ticket for the given player.
	Finish(ctx context.Context, player domain.Identity, ticket string) (*domain.Run, int64, error)

	Leaderboard(ctx context.Context, rows, cols int, limit int64) ([]domain.LeaderboardEntry, error)
	History(ctx context.Context, playerID uuid.UUID, limit int64) ([]*domain.Run, error)
}
