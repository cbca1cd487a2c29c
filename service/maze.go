package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/beka-birhanu/maze-collapse/maze"
	"github.com/beka-birhanu/maze-collapse/service/i"
	"github.com/beka-birhanu/maze-collapse/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultMazeRows     = 15
	defaultMazeCols     = 25
	defaultMaxDimension = 100
)

// MazeOptions configures a MazeService.
type MazeOptions struct {
	DefaultRows  int
	DefaultCols  int
	MaxDimension int
}

// MazeService turns maze requests into seeded, reproducible mazes.
type MazeService struct {
	opts   MazeOptions
	logger i.Logger
}

// NewMazeService creates a MazeService, filling unset options with defaults.
func NewMazeService(opts MazeOptions, logger i.Logger) (*MazeService, error) {
	if logger == nil {
		return nil, errors.New("maze service requires a logger")
	}
	if opts.DefaultRows <= 0 {
		opts.DefaultRows = defaultMazeRows
	}
	if opts.DefaultCols <= 0 {
		opts.DefaultCols = defaultMazeCols
	}
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}

	return &MazeService{opts: opts, logger: logger}, nil
}

// Generate builds the maze for req. The seed drives both the start cell and
// the traversal, so the same seed and dimensions always give the same maze.
func (s *MazeService) Generate(ctx context.Context, req domain.MazeRequest) (*domain.GeneratedMaze, error) {
	_, span := telemetry.Tracer("maze").Start(ctx, "maze.generate")
	defer span.End()

	rows, cols := req.Rows, req.Cols
	if rows == 0 {
		rows = s.opts.DefaultRows
	}
	if cols == 0 {
		cols = s.opts.DefaultCols
	}
	if rows > s.opts.MaxDimension || cols > s.opts.MaxDimension {
		err := fmt.Errorf("%w: %dx%d exceeds %d", maze.ErrInvalidDimensions, rows, cols, s.opts.MaxDimension)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	seed := req.Seed
	for seed == 0 {
		seed = rand.Int63()
	}

	startTime := time.Now()
	rng := rand.New(rand.NewSource(seed))
	start := maze.CellPosition{}
	if rows > 0 && cols > 0 {
		start = maze.CellPosition{Row: rng.Intn(rows), Col: rng.Intn(cols)}
	}

	m, err := maze.Generate(rows, cols, start, rng)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("maze.rows", rows),
		attribute.Int("maze.cols", cols),
		attribute.Int64("maze.seed", seed),
		attribute.Int("maze.openings", m.Openings()),
		attribute.Int64("maze.generation_us", time.Since(startTime).Microseconds()),
	)
	s.logger.Info(fmt.Sprintf("Generated %dx%d maze seed=%d start=(%d,%d)", rows, cols, seed, start.Row, start.Col))

	return &domain.GeneratedMaze{Seed: seed, Maze: m}, nil
}
