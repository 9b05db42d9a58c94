package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	"github.com/kopichat-core-poc/server/internal/agent/model"
	errx "github.com/kopichat-core-poc/server/internal/core/error"
	logx "github.com/kopichat-core-poc/server/pkg/logger"
)

// RedisSessionRepository stores per-session slots as a JSON string and the
// fallback transcript as a list, both under a shared TTL extended on touch.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) slotsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:slots", sessionID)
}

func (r *RedisSessionRepository) transcriptKey(sessionID string) string {
	return fmt.Sprintf("session:%s:transcript", sessionID)
}

func (r *RedisSessionRepository) touch(ctx context.Context, key string) {
	if r.ttl <= 0 {
		return
	}
	if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
	} else if !ok {
		logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on session key")
	}
}

func (r *RedisSessionRepository) LoadSlots(ctx context.Context, sessionID string) (model.Slots, error) {
	key := r.slotsKey(sessionID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return model.Slots{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session slots from redis")
		return model.Slots{}, errx.WrapRedis(err)
	}

	var slots model.Slots
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to unmarshal session slots")
		return model.Slots{}, fmt.Errorf("unmarshal slots: %w", err)
	}
	return slots, nil
}

func (r *RedisSessionRepository) SaveSlots(ctx context.Context, sessionID string, slots model.Slots) error {
	b, err := json.Marshal(slots)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal session slots")
		return fmt.Errorf("marshal slots: %w", err)
	}
	key := r.slotsKey(sessionID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save session slots to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionRepository) AppendMessage(ctx context.Context, sessionID string, message *schema.Message) error {
	b, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal transcript message")
		return fmt.Errorf("marshal message: %w", err)
	}
	key := r.transcriptKey(sessionID)

	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push message to redis")
		return errx.WrapRedis(err)
	}
	r.touch(ctx, key)
	return nil
}

func (r *RedisSessionRepository) LoadTranscript(ctx context.Context, sessionID string) ([]*schema.Message, error) {
	key := r.transcriptKey(sessionID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []*schema.Message{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load transcript from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]*schema.Message, 0, len(rows))
	for i, s := range rows {
		var m schema.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Int("index", i).Msg("failed to unmarshal transcript message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}
	return msgs, nil
}

func (r *RedisSessionRepository) MessageCount(ctx context.Context, sessionID string) (int, error) {
	key := r.transcriptKey(sessionID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to get transcript length from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

func (r *RedisSessionRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, r.slotsKey(sessionID), r.transcriptKey(sessionID)).Err(); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to delete session state from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
