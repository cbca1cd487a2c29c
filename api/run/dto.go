// Package runapi records finished runs and serves leaderboards.
package runapi

import "github.com/beka-birhanu/maze-collapse/domain"

// FinishRequest redeems the ticket handed out with a maze.
type FinishRequest struct {
	Ticket string `json:"ticket" binding:"required"`
}

// FinishResponse reports the recorded run.
type FinishResponse struct {
	Run  *domain.Run `json:"run"`
	Rank int64       `json:"rank"`
}

// LeaderboardQuery selects a board by maze size.
type LeaderboardQuery struct {
	Rows  int   `form:"rows" binding:"required,min=1"`
	Cols  int   `form:"cols" binding:"required,min=1"`
	Limit int64 `form:"limit" binding:"omitempty,min=1"`
}

// HistoryQuery pages a player's runs.
type HistoryQuery struct {
	Limit int64 `form:"limit" binding:"omitempty,min=1,max=100"`
}
