package runapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/maze-collapse/api/identity"
	"github.com/beka-birhanu/maze-collapse/service"
	"github.com/beka-birhanu/maze-collapse/service/i"
	"github.com/gin-gonic/gin"
)

// RunController manages finished runs and leaderboards.
type RunController struct {
	runs i.RunTracker
}

// NewRunController initializes a RunController.
func NewRunController(runs i.RunTracker) (*RunController, error) {
	if runs == nil {
		return nil, errors.New("run controller requires a run tracker")
	}
	return &RunController{runs: runs}, nil
}

// RegisterPublic registers public routes.
func (rc *RunController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard", rc.leaderboard)
}

// RegisterProtected registers protected routes.
func (rc *RunController) RegisterProtected(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.POST("/finish", rc.finish)
		runs.GET("/mine", rc.history)
	}
}

// finish redeems a run ticket for the signed-in player.
func (rc *RunController) finish(ctx *gin.Context) {
	player, ok := identity.FromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var request FinishRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, rank, err := rc.runs.Finish(ctx.Request.Context(), player, request.Ticket)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTicket) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while recording run"})
		return
	}

	ctx.JSON(http.StatusCreated, &FinishResponse{Run: run, Rank: rank})
}

// leaderboard lists the fastest players for a maze size.
func (rc *RunController) leaderboard(ctx *gin.Context) {
	var query LeaderboardQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := rc.runs.Leaderboard(ctx.Request.Context(), query.Rows, query.Cols, query.Limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"entries": entries})
}

// history lists the signed-in player's recent runs.
func (rc *RunController) history(ctx *gin.Context) {
	player, ok := identity.FromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var query HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runs, err := rc.runs.History(ctx.Request.Context(), player.PlayerID, query.Limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading runs"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"runs": runs})
}
