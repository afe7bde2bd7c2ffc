// Package redis implements the session store on top of a Redis-compatible
// key-value server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/golden-burguer/appcore/internal/app/storage"
)

const (
	keyAuthenticatedEmail = "session:authenticated_email"
	keyDarkMode           = "session:dark_mode"
)

// SessionStore persists the device session in Redis so it survives process
// restarts.
type SessionStore struct {
	client *redis.Client
}

var _ storage.SessionStore = (*SessionStore)(nil)

// New creates a session store over an established client.
func New(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Connect dials a Redis server and verifies the connection with a ping.
func Connect(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

func (s *SessionStore) AuthenticatedEmail(ctx context.Context) (string, bool, error) {
	email, err := s.client.Get(ctx, keyAuthenticatedEmail).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return email, true, nil
}

func (s *SessionStore) SetAuthenticatedEmail(ctx context.Context, email string) error {
	return s.client.Set(ctx, keyAuthenticatedEmail, email, 0).Err()
}

func (s *SessionStore) ClearAuthenticatedEmail(ctx context.Context) error {
	return s.client.Del(ctx, keyAuthenticatedEmail).Err()
}

func (s *SessionStore) DarkMode(ctx context.Context) (bool, error) {
	raw, err := s.client.Get(ctx, keyDarkMode).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return raw == "1", nil
}

func (s *SessionStore) SetDarkMode(ctx context.Context, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return s.client.Set(ctx, keyDarkMode, value, 0).Err()
}
