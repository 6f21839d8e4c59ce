package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/registration"
)

const keyPrefix = "tournament"

func pendingKey(token string) string {
	return fmt.Sprintf("%s:registration:pending:%s", keyPrefix, token)
}

// Store keeps pending registrations in Redis with a TTL.
type Store struct {
	client *redis.Client
	cfg    Config
}

var _ registration.Store = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient wraps an existing client (used by tests).
func NewWithClient(client *redis.Client, cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = registration.DefaultTTL
	}
	return &Store{client: client, cfg: cfg}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) SetPending(ctx context.Context, token string, data *models.PendingRegistration) error {
	if data == nil {
		return errors.New("pending registration must not be nil")
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode pending registration: %w", err)
	}
	return s.client.Set(ctx, pendingKey(token), payload, s.cfg.TTL).Err()
}

func (s *Store) GetPending(ctx context.Context, token string) (*models.PendingRegistration, error) {
	payload, err := s.client.Get(ctx, pendingKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, registration.ErrNotFound
		}
		return nil, err
	}

	var pending models.PendingRegistration
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending registration: %w", err)
	}
	return &pending, nil
}

func (s *Store) HasPending(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, pendingKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) ClearPending(ctx context.Context, token string) error {
	return s.client.Del(ctx, pendingKey(token)).Err()
}

func (s *Store) ResetFlow(ctx context.Context, token string) error {
	return s.ClearPending(ctx, token)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
