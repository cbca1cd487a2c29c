package i

import (
	"context"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/google/uuid"
)

// PlayerRepo defines the interface for player persistence operations.
type PlayerRepo interface {
	// Save inserts or updates a player in the repository.
	// If the player already exists, it updates the record. Otherwise, it creates a new one.
	Save(ctx context.Context, player *domain.Player) error

	// ByUsername retrieves a player by their username.
	// Returns domain.ErrPlayerNotFound if there is no such player.
	ByUsername(ctx context.Context, username string) (*domain.Player, error)
}

// RunRepo stores finished runs.
type RunRepo interface {
	Save(ctx context.Context, run *domain.Run) error

	// ByPlayer returns the most recent runs of a player, newest first.
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*domain.Run, error)
}
