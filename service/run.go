package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/beka-birhanu/maze-collapse/service/i"
	"github.com/google/uuid"
)

const (
	runTicketKind          = "run"
	defaultRunTicketTTL    = time.Hour
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
	defaultHistorySize     = 20
	boardKeyFmt            = "%dx%d"
)

var (
	ErrInvalidTicket = errors.New("invalid run ticket")
)

// RunOptions configures a RunService.
type RunOptions struct {
	TicketTTL time.Duration
	Now       func() time.Time
}

// RunService starts the clock on mazes and records finished runs.
type RunService struct {
	tokenizer   i.Tokenizer
	runRepo     i.RunRepo
	leaderboard i.Leaderboard
	logger      i.Logger
	opts        RunOptions
}

// NewRunService creates a RunService, filling unset options with defaults.
func NewRunService(tokenizer i.Tokenizer, runRepo i.RunRepo, leaderboard i.Leaderboard, logger i.Logger, opts *RunOptions) (*RunService, error) {
	if tokenizer == nil || runRepo == nil || leaderboard == nil || logger == nil {
		return nil, errors.New("run service requires a tokenizer, run repo, leaderboard and logger")
	}

	if opts == nil {
		opts = &RunOptions{}
	}
	if opts.TicketTTL <= 0 {
		opts.TicketTTL = defaultRunTicketTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &RunService{
		tokenizer:   tokenizer,
		runRepo:     runRepo,
		leaderboard: leaderboard,
		logger:      logger,
		opts:        *opts,
	}, nil
}

// IssueTicket signs the maze parameters and the current time.
func (rs *RunService) IssueTicket(g *domain.GeneratedMaze) (string, error) {
	return rs.tokenizer.Generate(map[string]interface{}{
		"kind":       runTicketKind,
		"jti":        uuid.NewString(),
		"seed":       strconv.FormatInt(g.Seed, 10),
		"rows":       g.Maze.Rows,
		"cols":       g.Maze.Cols,
		"started_at": rs.opts.Now().UnixMilli(),
	}, rs.opts.TicketTTL)
}

// Finish redeems ticket for player, stores the run and updates the leaderboard.
// It returns the run and the player's rank on the board for the maze size.
// A ticket is redeemed at most once; later attempts fail with ErrInvalidTicket
// wrapping domain.ErrTicketRedeemed.
func (rs *RunService) Finish(ctx context.Context, player domain.Identity, ticket string) (*domain.Run, int64, error) {
	claims, err := rs.tokenizer.Decode(ticket)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}

	t, err := parseTicket(claims)
	if err != nil {
		return nil, 0, err
	}

	finishedAt := rs.opts.Now()
	elapsed := finishedAt.Sub(t.startedAt)
	if elapsed < 0 {
		return nil, 0, fmt.Errorf("%w: finished before it started", ErrInvalidTicket)
	}

	run := &domain.Run{
		ID:         uuid.New(),
		TicketID:   t.id,
		PlayerID:   player.PlayerID,
		Username:   player.Username,
		Seed:       t.seed,
		Rows:       t.rows,
		Cols:       t.cols,
		StartedAt:  t.startedAt,
		FinishedAt: finishedAt,
		DurationMs: elapsed.Milliseconds(),
	}

	if err := rs.runRepo.Save(ctx, run); err != nil {
		if errors.Is(err, domain.ErrTicketRedeemed) {
			rs.logger.Warning(fmt.Sprintf("Ticket replayed: Player=%s Ticket=%s", run.Username, run.TicketID))
			return nil, 0, fmt.Errorf("%w: %w", ErrInvalidTicket, err)
		}
		rs.logger.Error(fmt.Sprintf("Failed to save run: %s", err))
		return nil, 0, err
	}

	rank, err := rs.leaderboard.Record(ctx, boardKey(run.Rows, run.Cols), run.Username, run.DurationMs)
	if err != nil {
		rs.logger.Error(fmt.Sprintf("Failed to record leaderboard entry: %s", err))
		return nil, 0, err
	}

	rs.logger.Info(fmt.Sprintf("Run finished: Player=%s Maze=%dx%d Duration=%dms Rank=%d", run.Username, run.Rows, run.Cols, run.DurationMs, rank))
	return run, rank, nil
}

// Leaderboard returns the fastest players on mazes of the given size.
func (rs *RunService) Leaderboard(ctx context.Context, rows, cols int, limit int64) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	limit = min(limit, maxLeaderboardSize)
	return rs.leaderboard.Top(ctx, boardKey(rows, cols), limit)
}

// History returns the player's most recent runs.
func (rs *RunService) History(ctx context.Context, playerID uuid.UUID, limit int64) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = defaultHistorySize
	}
	return rs.runRepo.ByPlayer(ctx, playerID, limit)
}

type runTicket struct {
	id        string
	seed      int64
	rows      int
	cols      int
	startedAt time.Time
}

func parseTicket(claims map[string]interface{}) (*runTicket, error) {
	if kind, _ := claims["kind"].(string); kind != runTicketKind {
		return nil, fmt.Errorf("%w: wrong token kind", ErrInvalidTicket)
	}

	id, _ := claims["jti"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: missing ticket id", ErrInvalidTicket)
	}

	rawSeed, _ := claims["seed"].(string)
	seed, err := strconv.ParseInt(rawSeed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad seed", ErrInvalidTicket)
	}

	rows, rowsOK := claimInt(claims, "rows")
	cols, colsOK := claimInt(claims, "cols")
	startedAt, startedOK := claimInt(claims, "started_at")
	if !rowsOK || !colsOK || !startedOK || rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: missing maze parameters", ErrInvalidTicket)
	}

	return &runTicket{
		id:        id,
		seed:      seed,
		rows:      int(rows),
		cols:      int(cols),
		startedAt: time.UnixMilli(startedAt),
	}, nil
}

// claimInt reads a numeric claim. Decoded JSON numbers arrive as float64.
func claimInt(claims map[string]interface{}, key string) (int64, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

func boardKey(rows, cols int) string {
	return fmt.Sprintf(boardKeyFmt, rows, cols)
}
