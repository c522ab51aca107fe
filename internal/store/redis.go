// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Adam-Agbaria/numbers-game-server/internal/models"
)

// RedisStore is the production Store. Each session is one Redis hash; every
// top-level document field is its own hash field holding a JSON value, so
// SetField is a single HSET and concurrent writers interleave at field
// granularity, never inside one.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects a client against addr and verifies it with a ping.
// ttl > 0 expires each session that long after creation (retention); 0
// keeps sessions until deleted externally.
func NewRedisStore(addr string, db int, ttl time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *RedisStore) Create(ctx context.Context, id string, totalRounds int) error {
	sess := NewSession(id, totalRounds)
	sess.CreatedAt = time.Now().UTC()

	key := sessionKey(id)
	n, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("exists check for %s: %w", id, err)
	}
	if n > 0 {
		return fmt.Errorf("session %s already exists", id)
	}

	fields := map[string]interface{}{
		"game_id":         mustJSON(sess.ID),
		FieldStatus:       mustJSON(sess.Status),
		"total_rounds":    mustJSON(sess.TotalRounds),
		FieldCurrentRound: mustJSON(sess.CurrentRound),
		FieldPlayers:      mustJSON(sess.Players),
		FieldRoundResults: mustJSON(sess.RoundResults),
		"created_at":      mustJSON(sess.CreatedAt),
	}
	if err := r.rdb.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("create session %s: %w", id, err)
	}
	if r.ttl > 0 {
		if err := r.rdb.Expire(ctx, key, r.ttl).Err(); err != nil {
			return fmt.Errorf("set ttl for session %s: %w", id, err)
		}
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}

	sess := &models.Session{}
	dec := func(field string, dst interface{}) error {
		val, ok := raw[field]
		if !ok {
			return &CorruptStateError{SessionID: id, Reason: fmt.Sprintf("missing field %q", field)}
		}
		if err := json.Unmarshal([]byte(val), dst); err != nil {
			return &CorruptStateError{SessionID: id, Reason: fmt.Sprintf("undecodable field %q: %v", field, err)}
		}
		return nil
	}
	if err := dec("game_id", &sess.ID); err != nil {
		return nil, err
	}
	if err := dec(FieldStatus, &sess.Status); err != nil {
		return nil, err
	}
	if err := dec("total_rounds", &sess.TotalRounds); err != nil {
		return nil, err
	}
	if err := dec(FieldCurrentRound, &sess.CurrentRound); err != nil {
		return nil, err
	}
	if err := dec(FieldPlayers, &sess.Players); err != nil {
		return nil, err
	}
	if err := dec(FieldRoundResults, &sess.RoundResults); err != nil {
		return nil, err
	}
	if err := dec("created_at", &sess.CreatedAt); err != nil {
		return nil, err
	}
	return sess, nil
}

func (r *RedisStore) SetField(ctx context.Context, id, field string, value interface{}) error {
	key := sessionKey(id)
	n, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("exists check for %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal field %s for session %s: %w", field, id, err)
	}
	if err := r.rdb.HSet(ctx, key, field, data).Err(); err != nil {
		return fmt.Errorf("set field %s for session %s: %w", field, id, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func mustJSON(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// all session field types are marshalable; this indicates a
		// programming error, not runtime input
		panic(err)
	}
	return data
}
