package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/beka-birhanu/maze-collapse/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "leaderboard"
	defaultSize   = 100
	boardKeyFmt   = "%s:%s"
	lockKeyFmt    = "%s:lock"
	unlockTimeout = time.Second
)

// RedisLeaderboard keeps each board as a sorted set of usernames scored by their
// best duration in milliseconds.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	size   int64
}

var _ i.Leaderboard = &RedisLeaderboard{}

// NewRedisLeaderboard creates a leaderboard keeping at most size entries per board.
func NewRedisLeaderboard(client *redis.Client, prefix string, size int64) (*RedisLeaderboard, error) {
	if client == nil {
		return nil, errors.New("leaderboard requires a redis client")
	}
	if prefix == "" {
		prefix = defaultPrefix
	}
	if size <= 0 {
		size = defaultSize
	}

	pool := goredis.NewPool(client)
	return &RedisLeaderboard{
		client: client,
		locker: redsync.New(pool),
		prefix: prefix,
		size:   size,
	}, nil
}

// Record keeps durationMs when it improves on the player's best, trims the board
// and returns the player's 1-based rank, or 0 when they did not make the board.
func (rl *RedisLeaderboard) Record(ctx context.Context, board, username string, durationMs int64) (int64, error) {
	key := rl.key(board)

	mutex := rl.locker.NewMutex(fmt.Sprintf(lockKeyFmt, key))
	if err := mutex.LockContext(ctx); err != nil {
		return 0, err
	}
	defer rl.unlock(ctx, mutex)

	if err := rl.client.ZAddLT(ctx, key, redis.Z{Score: float64(durationMs), Member: username}).Err(); err != nil {
		return 0, err
	}

	if err := rl.client.ZRemRangeByRank(ctx, key, rl.size, -1).Err(); err != nil {
		return 0, err
	}

	rank, err := rl.client.ZRank(ctx, key, username).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rank + 1, nil
}

// Top returns up to limit entries, fastest first.
func (rl *RedisLeaderboard) Top(ctx context.Context, board string, limit int64) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	members, err := rl.client.ZRangeWithScores(ctx, rl.key(board), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(members))
	for idx, m := range members {
		username, ok := m.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			Rank:       int64(idx) + 1,
			Username:   username,
			DurationMs: int64(m.Score),
		})
	}
	return entries, nil
}

// unlock releases mutex even when ctx is already done, so a dropped request
// does not hold the board until the lock expires.
func (rl *RedisLeaderboard) unlock(ctx context.Context, mutex *redsync.Mutex) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
	defer cancel()
	_, _ = mutex.UnlockContext(ctx)
}

func (rl *RedisLeaderboard) key(board string) string {
	return fmt.Sprintf(boardKeyFmt, rl.prefix, board)
}
