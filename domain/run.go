package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTicketRedeemed = errors.New("run ticket already redeemed")
)

// Run is a finished attempt at a maze.
type Run struct {
	ID         uuid.UUID `bson:"_id" json:"id"`
	TicketID   string    `bson:"ticketId" json:"-"` // Unique per issued ticket
	PlayerID   uuid.UUID `bson:"playerId" json:"player_id"`
	Username   string    `bson:"username" json:"username"`
	Seed       int64     `bson:"seed" json:"seed,string"`
	Rows       int       `bson:"rows" json:"rows"`
	Cols       int       `bson:"cols" json:"cols"`
	StartedAt  time.Time `bson:"startedAt" json:"started_at"`
	FinishedAt time.Time `bson:"finishedAt" json:"finished_at"`
	DurationMs int64     `bson:"durationMs" json:"duration_ms"`
}

// LeaderboardEntry is a player's best time on mazes of one size.
type LeaderboardEntry struct {
	Rank       int64  `json:"rank"`
	Username   string `json:"username"`
	DurationMs int64  `json:"duration_ms"`
}
