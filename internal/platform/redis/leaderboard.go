// Package redis implements the XP leaderboard on Redis sorted sets.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dvdgamer2003/learntrack-api/internal/store"
)

// Key patterns for the leaderboard.
//
//   - Sorted set "leaderboard:xp" stores userID -> XP.
//   - Hash "leaderboard:info" stores userID -> entry JSON for display data.
//
// Rank lookups are O(log N), range queries O(log N + M).
const (
	keyLeaderboardXP   = "leaderboard:xp"
	keyLeaderboardInfo = "leaderboard:info"
)

// entryInfo is the display payload stored alongside the score.
type entryInfo struct {
	DisplayName string `json:"display_name"`
	XP          int    `json:"xp"`
}

// Leaderboard implements the store.Leaderboard interface on a Redis
// sorted set. XP is authoritative in postgres; this cache only serves
// ranking reads, so callers treat update failures as non-fatal.
type Leaderboard struct {
	client     *redis.Client
	xpPerLevel int
	logger     *slog.Logger
}

// NewLeaderboard creates a new Redis-backed leaderboard.
// xpPerLevel is used to rederive the level for display without a
// round-trip to the primary store. If logger is nil, the default logger
// is used.
func NewLeaderboard(client *redis.Client, xpPerLevel int, logger *slog.Logger) *Leaderboard {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if xpPerLevel <= 0 {
		xpPerLevel = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Leaderboard{
		client:     client,
		xpPerLevel: xpPerLevel,
		logger:     logger.With(slog.String("component", "leaderboard")),
	}
}

// Ensure Leaderboard implements store.Leaderboard interface
var _ store.Leaderboard = (*Leaderboard)(nil)

// UpdateScore implements store.Leaderboard.UpdateScore.
func (l *Leaderboard) UpdateScore(
	ctx context.Context,
	userID uuid.UUID,
	displayName string,
	xp int,
) error {
	info, err := json.Marshal(entryInfo{DisplayName: displayName, XP: xp})
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard entry: %w", err)
	}

	// Pipeline keeps the score and the display payload in step.
	pipe := l.client.Pipeline()
	pipe.ZAdd(ctx, keyLeaderboardXP, redis.Z{
		Score:  float64(xp),
		Member: userID.String(),
	})
	pipe.HSet(ctx, keyLeaderboardInfo, userID.String(), info)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update leaderboard: %w", err)
	}
	return nil
}

// Top implements store.Leaderboard.Top.
func (l *Leaderboard) Top(ctx context.Context, limit int) ([]store.LeaderboardEntry, error) {
	if limit <= 0 {
		return []store.LeaderboardEntry{}, nil
	}

	members, err := l.client.ZRevRangeWithScores(ctx, keyLeaderboardXP, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard range: %w", err)
	}

	entries := make([]store.LeaderboardEntry, 0, len(members))
	for i, member := range members {
		id, ok := member.Member.(string)
		if !ok {
			continue
		}
		userID, err := uuid.Parse(id)
		if err != nil {
			l.logger.Warn("skipping malformed leaderboard member", slog.String("member", id))
			continue
		}

		entry := store.LeaderboardEntry{
			Rank:   int64(i + 1),
			UserID: userID,
			XP:     int(member.Score),
			Level:  int(member.Score)/l.xpPerLevel + 1,
		}

		raw, err := l.client.HGet(ctx, keyLeaderboardInfo, id).Result()
		if err == nil {
			var info entryInfo
			if err := json.Unmarshal([]byte(raw), &info); err == nil {
				entry.DisplayName = info.DisplayName
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// Rank implements store.Leaderboard.Rank.
func (l *Leaderboard) Rank(ctx context.Context, userID uuid.UUID) (int64, error) {
	// ZRevRank returns 0-based rank (0 = highest score).
	rank, err := l.client.ZRevRank(ctx, keyLeaderboardXP, userID.String()).Result()
	if err == redis.Nil {
		return 0, store.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read leaderboard rank: %w", err)
	}
	return rank + 1, nil
}
