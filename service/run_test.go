package service

import (
	"context"
	"testing"
	"time"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/beka-birhanu/maze-collapse/infrastruture/token"
	"github.com/beka-birhanu/maze-collapse/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newRunFixture(t *testing.T) (*RunService, *memRunRepo, *memLeaderboard, *fakeClock, *token.JwtService) {
	t.Helper()

	tokenizer := token.NewJwtService("test-secret", "maze-test")
	runs := &memRunRepo{}
	board := newMemLeaderboard()
	clock := &fakeClock{now: time.Now().Truncate(time.Millisecond)}

	svc, err := NewRunService(tokenizer, runs, board, nopLogger{}, &RunOptions{Now: clock.Now})
	require.NoError(t, err)
	return svc, runs, board, clock, tokenizer
}

func generated(t *testing.T, rows, cols int, seed int64) *domain.GeneratedMaze {
	t.Helper()

	m, err := maze.Generate(rows, cols, maze.CellPosition{}, &noShuffle{})
	require.NoError(t, err)
	return &domain.GeneratedMaze{Seed: seed, Maze: m}
}

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

func TestRunServiceFinish(t *testing.T) {
	svc, runs, board, clock, _ := newRunFixture(t)
	ctx := context.Background()
	player := domain.Identity{PlayerID: uuid.New(), Username: "runner"}

	// Seeds above 2^53 must survive the JSON round trip.
	const seed int64 = 1760000000123456789
	ticket, err := svc.IssueTicket(generated(t, 15, 25, seed))
	require.NoError(t, err)

	clock.now = clock.now.Add(42 * time.Second)
	run, rank, err := svc.Finish(ctx, player, ticket)
	require.NoError(t, err)

	assert.Equal(t, int64(42000), run.DurationMs)
	assert.Equal(t, seed, run.Seed)
	assert.Equal(t, 15, run.Rows)
	assert.Equal(t, 25, run.Cols)
	assert.Equal(t, player.PlayerID, run.PlayerID)
	assert.Equal(t, int64(1), rank)
	assert.Len(t, runs.runs, 1)
	assert.Equal(t, int64(42000), board.boards["15x25"]["runner"])
}

func TestRunServiceKeepsBestTime(t *testing.T) {
	svc, _, _, clock, _ := newRunFixture(t)
	ctx := context.Background()
	g := generated(t, 5, 5, 7)

	finish := func(username string, after time.Duration) int64 {
		ticket, err := svc.IssueTicket(g)
		require.NoError(t, err)
		clock.now = clock.now.Add(after)
		_, rank, err := svc.Finish(ctx, domain.Identity{PlayerID: uuid.New(), Username: username}, ticket)
		require.NoError(t, err)
		return rank
	}

	assert.Equal(t, int64(1), finish("alice", 30*time.Second))
	assert.Equal(t, int64(1), finish("bob", 10*time.Second))
	assert.Equal(t, int64(2), finish("alice", 50*time.Second), "slower run keeps previous best")

	entries, err := svc.Leaderboard(ctx, 5, 5, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].Username)
	assert.Equal(t, int64(30000), entries[1].DurationMs)
}

func TestRunServiceTicketIsSingleUse(t *testing.T) {
	svc, runs, board, clock, _ := newRunFixture(t)
	ctx := context.Background()
	player := domain.Identity{PlayerID: uuid.New(), Username: "runner"}

	ticket, err := svc.IssueTicket(generated(t, 4, 4, 11))
	require.NoError(t, err)

	clock.now = clock.now.Add(20 * time.Second)
	_, _, err = svc.Finish(ctx, player, ticket)
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Second)
	run, rank, err := svc.Finish(ctx, player, ticket)
	assert.ErrorIs(t, err, ErrInvalidTicket)
	assert.ErrorIs(t, err, domain.ErrTicketRedeemed)
	assert.Nil(t, run)
	assert.Zero(t, rank)

	assert.Len(t, runs.runs, 1)
	assert.Equal(t, int64(20000), board.boards["4x4"]["runner"], "replay must not improve the board")

	other, err := svc.IssueTicket(generated(t, 4, 4, 11))
	require.NoError(t, err)
	assert.NotEqual(t, ticket, other)
}

func TestRunServiceRejectsBadTickets(t *testing.T) {
	svc, runs, _, clock, tokenizer := newRunFixture(t)
	ctx := context.Background()
	player := domain.Identity{PlayerID: uuid.New(), Username: "runner"}

	t.Run("garbage", func(t *testing.T) {
		_, _, err := svc.Finish(ctx, player, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidTicket)
	})

	t.Run("access token", func(t *testing.T) {
		access, err := tokenizer.Generate(map[string]interface{}{"kind": accessTokenKind, "player_id": player.PlayerID.String()}, time.Minute)
		require.NoError(t, err)
		_, _, err = svc.Finish(ctx, player, access)
		assert.ErrorIs(t, err, ErrInvalidTicket)
	})

	t.Run("missing ticket id", func(t *testing.T) {
		ticket, err := tokenizer.Generate(map[string]interface{}{"kind": runTicketKind, "seed": "1", "rows": 3, "cols": 3, "started_at": clock.now.UnixMilli()}, time.Minute)
		require.NoError(t, err)
		_, _, err = svc.Finish(ctx, player, ticket)
		assert.ErrorIs(t, err, ErrInvalidTicket)
	})

	t.Run("missing maze parameters", func(t *testing.T) {
		ticket, err := tokenizer.Generate(map[string]interface{}{"kind": runTicketKind, "jti": uuid.NewString(), "seed": "1"}, time.Minute)
		require.NoError(t, err)
		_, _, err = svc.Finish(ctx, player, ticket)
		assert.ErrorIs(t, err, ErrInvalidTicket)
	})

	t.Run("finished before start", func(t *testing.T) {
		ticket, err := svc.IssueTicket(generated(t, 3, 3, 1))
		require.NoError(t, err)
		clock.now = clock.now.Add(-time.Minute)
		_, _, err = svc.Finish(ctx, player, ticket)
		assert.ErrorIs(t, err, ErrInvalidTicket)
	})

	assert.Empty(t, runs.runs)
}

func TestRunServiceLimits(t *testing.T) {
	svc, runs, board, _, _ := newRunFixture(t)
	ctx := context.Background()

	_, err := svc.Leaderboard(ctx, 3, 3, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(maxLeaderboardSize), board.lastLimit)

	playerID := uuid.New()
	for n := 0; n < 30; n++ {
		require.NoError(t, runs.Save(ctx, &domain.Run{ID: uuid.New(), PlayerID: playerID}))
	}
	history, err := svc.History(ctx, playerID, 0)
	require.NoError(t, err)
	assert.Len(t, history, defaultHistorySize)
}

func TestNewRunServiceRequiresDependencies(t *testing.T) {
	_, err := NewRunService(nil, &memRunRepo{}, newMemLeaderboard(), nopLogger{}, nil)
	assert.Error(t, err)
}
