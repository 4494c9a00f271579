package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisManager struct {
	client *redis.Client
	prefix string
}

// NewRedisManager constructs a Manager backed by Redis, so several bot
// instances can share sessions. Namespace separates bot personas sharing one
// Redis database.
func NewRedisManager(client *redis.Client, namespace string) Manager {
	if namespace == "" {
		namespace = "bot"
	}
	return &redisManager{client: client, prefix: "session:" + namespace + ":"}
}

func (m *redisManager) key(userID int64) string {
	return fmt.Sprintf("%s%d", m.prefix, userID)
}

func (m *redisManager) Get(ctx context.Context, userID int64) (Session, error) {
	raw, err := m.client.Get(ctx, m.key(userID)).Bytes()
	if err == redis.Nil {
		return NewSession(), nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("session get: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("session decode: %w", err)
	}
	if sess.Data == nil {
		sess.Data = make(map[string]string)
	}
	if sess.State == "" {
		sess.State = StateNone
	}
	return sess, nil
}

func (m *redisManager) Set(ctx context.Context, userID int64, st State, patch map[string]string) error {
	sess, err := m.Get(ctx, userID)
	if err != nil {
		return err
	}
	sess.State = st
	for k, v := range patch {
		sess.Data[k] = v
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := m.client.Set(ctx, m.key(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (m *redisManager) Clear(ctx context.Context, userID int64) error {
	if err := m.client.Del(ctx, m.key(userID)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
