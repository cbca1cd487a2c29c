package mazeapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/beka-birhanu/maze-collapse/maze"
	"github.com/beka-birhanu/maze-collapse/service/i"
	"github.com/gin-gonic/gin"
)

// MazeController hands out mazes.
type MazeController struct {
	generator i.MazeGenerator
	runs      i.RunTracker
}

// NewMazeController initializes a MazeController. runs may be nil, in which
// case responses carry no run ticket.
func NewMazeController(generator i.MazeGenerator, runs i.RunTracker) (*MazeController, error) {
	if generator == nil {
		return nil, errors.New("maze controller requires a generator")
	}
	return &MazeController{
		generator: generator,
		runs:      runs,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/mazes", mc.maze)
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {}

// maze generates a maze and, when a viewport is given, its wall layout.
func (mc *MazeController) maze(ctx *gin.Context) {
	var query MazeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (query.Width == 0) != (query.Height == 0) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be given together"})
		return
	}

	generated, err := mc.generator.Generate(ctx.Request.Context(), domain.MazeRequest{
		Rows: query.Rows,
		Cols: query.Cols,
		Seed: query.Seed,
	})
	if err != nil {
		if errors.Is(err, maze.ErrInvalidDimensions) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while generating maze"})
		return
	}

	m := generated.Maze
	response := &MazeResponse{
		Seed:        strconv.FormatInt(generated.Seed, 10),
		Rows:        m.Rows,
		Cols:        m.Cols,
		Start:       m.Start,
		Verticals:   m.Verticals,
		Horizontals: m.Horizontals,
		Openings:    m.Openings(),
		ASCII:       m.String(),
	}

	if query.Width > 0 {
		layout, err := maze.NewLayout(m, query.Width, query.Height)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		response.Layout = layout
	}

	if mc.runs != nil {
		ticket, err := mc.runs.IssueTicket(generated)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while issuing run ticket"})
			return
		}
		response.Ticket = ticket
	}

	ctx.JSON(http.StatusOK, response)
}
