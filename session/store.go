package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces session records in shared stores.
const KeyPrefix = "scraper_user"

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Store persists the {username} session record so a login survives a
// restart of the server. Products are never stored.
type Store interface {
	Save(ctx context.Context, user models.User, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (models.User, error)
	Delete(ctx context.Context, sessionID string) error
}

func key(sessionID string) string {
	return KeyPrefix + ":" + sessionID
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	user    models.User
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, user models.User, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key(user.SessionID)] = memoryEntry{user: user, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key(sessionID)]
	if !ok {
		return models.User{}, ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, key(sessionID))
		return models.User{}, ErrNotFound
	}
	return e.user, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key(sessionID))
	return nil
}

// RedisStore keeps sessions in Redis with a TTL per record.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient parses url and pings the server before returning.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Save(ctx context.Context, user models.User, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key(user.SessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (models.User, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to load session: %w", err)
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return models.User{}, fmt.Errorf("corrupt session record: %w", err)
	}
	return user, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
