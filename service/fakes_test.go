package service

import (
	"context"
	"sort"
	"sync"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type memPlayerRepo struct {
	mu      sync.Mutex
	players map[uuid.UUID]*domain.Player
}

func newMemPlayerRepo() *memPlayerRepo {
	return &memPlayerRepo{players: map[uuid.UUID]*domain.Player{}}
}

func (r *memPlayerRepo) Save(_ context.Context, p *domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[p.ID] = p
	return nil
}

func (r *memPlayerRepo) ByUsername(_ context.Context, username string) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

type memRunRepo struct {
	runs []*domain.Run
}

func (r *memRunRepo) Save(_ context.Context, run *domain.Run) error {
	for _, existing := range r.runs {
		if run.TicketID != "" && existing.TicketID == run.TicketID {
			return domain.ErrTicketRedeemed
		}
	}
	r.runs = append(r.runs, run)
	return nil
}

func (r *memRunRepo) ByPlayer(_ context.Context, playerID uuid.UUID, limit int64) ([]*domain.Run, error) {
	var result []*domain.Run
	for i := len(r.runs) - 1; i >= 0 && int64(len(result)) < limit; i-- {
		if r.runs[i].PlayerID == playerID {
			result = append(result, r.runs[i])
		}
	}
	return result, nil
}

type memLeaderboard struct {
	boards    map[string]map[string]int64
	lastLimit int64
}

func newMemLeaderboard() *memLeaderboard {
	return &memLeaderboard{boards: map[string]map[string]int64{}}
}

func (l *memLeaderboard) Record(_ context.Context, board, username string, durationMs int64) (int64, error) {
	b, ok := l.boards[board]
	if !ok {
		b = map[string]int64{}
		l.boards[board] = b
	}
	if best, ok := b[username]; !ok || durationMs < best {
		b[username] = durationMs
	}

	entries, _ := l.Top(context.Background(), board, int64(len(b)))
	for _, e := range entries {
		if e.Username == username {
			return e.Rank, nil
		}
	}
	return 0, nil
}

func (l *memLeaderboard) Top(_ context.Context, board string, limit int64) ([]domain.LeaderboardEntry, error) {
	l.lastLimit = limit
	var entries []domain.LeaderboardEntry
	for name, d := range l.boards[board] {
		entries = append(entries, domain.LeaderboardEntry{Username: name, DurationMs: d})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].DurationMs < entries[j].DurationMs })
	if int64(len(entries)) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = int64(i) + 1
	}
	return entries, nil
}
