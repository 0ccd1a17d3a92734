package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AlexG0311/sportzone/pkg/sportzone"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned by Store.Load when nothing is persisted.
var ErrNoSession = errors.New("no persisted session")

// Store persists the session user.
type Store interface {
	Load(ctx context.Context) (*sportzone.User, error)
	Save(ctx context.Context, user *sportzone.User) error
	Delete(ctx context.Context) error
}

// MemoryStore keeps the session for the life of the process.
type MemoryStore struct {
	mu   sync.Mutex
	user *sportzone.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*sportzone.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, ErrNoSession
	}
	u := *m.user
	return &u, nil
}

func (m *MemoryStore) Save(ctx context.Context, user *sportzone.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.user = &u
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}

// RedisStore persists the session as JSON under sportzone:session:{profile}.
type RedisStore struct {
	rdb     *redis.Client
	profile string
	ttl     time.Duration
}

// NewRedisStore creates a store for profile. A zero ttl never expires.
func NewRedisStore(redisOpts *redis.Options, profile string, ttl time.Duration) (*RedisStore, error) {
	if profile == "" {
		return nil, fmt.Errorf("session profile cannot be empty")
	}
	return &RedisStore{
		rdb:     redis.NewClient(redisOpts),
		profile: profile,
		ttl:     ttl,
	}, nil
}

// Key returns the Redis key for a profile's session.
func Key(profile string) string {
	return fmt.Sprintf("sportzone:session:%s", profile)
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Load(ctx context.Context) (*sportzone.User, error) {
	data, err := s.rdb.Get(ctx, Key(s.profile)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session from Redis: %w", err)
	}

	var user sportzone.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &user, nil
}

func (s *RedisStore) Save(ctx context.Context, user *sportzone.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, Key(s.profile), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session to Redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.rdb.Del(ctx, Key(s.profile)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}
