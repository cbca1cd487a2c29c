package i

import (
	"context"

	"github.com/beka-birhanu/maze-collapse/domain"
)

// Leaderboard keeps the best time per player on named boards.
type Leaderboard interface {
	// Record stores durationMs for username when it beats their previous best and
	// returns the player's 1-based rank, or 0 when they fall outside the board.
	Record(ctx context.Context, board, username string, durationMs int64) (int64, error)

	// Top returns up to limit entries, fastest first.
	Top(ctx context.Context, board string, limit int64) ([]domain.LeaderboardEntry, error)
}
