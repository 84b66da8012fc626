package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"churchhub/internal/access"
	"churchhub/internal/microservices/http-api/models"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps the server-side record of every issued token.
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, rawURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *redisSessionStore) Save(ctx context.Context, session *models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}
	key := sessionKey(session.ID)

	fields := map[string]any{
		"user_id":    session.UserID,
		"role":       string(session.Role),
		"created_at": session.CreatedAt.Format(time.RFC3339Nano),
		"expires_at": session.ExpiresAt.Format(time.RFC3339Nano),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	fields, err := r.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}

	session := &models.Session{
		ID:     id,
		UserID: fields["user_id"],
		Role:   access.Role(fields["role"]),
	}
	if session.CreatedAt, err = time.Parse(time.RFC3339Nano, fields["created_at"]); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	if session.ExpiresAt, err = time.Parse(time.RFC3339Nano, fields["expires_at"]); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return session, nil
}

func (r *redisSessionStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}

func (r *redisSessionStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// memorySessionStore serves single-process deployments and tests.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	now      func() time.Time
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

func (m *memorySessionStore) Save(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// drop expired entries on write so the map cannot grow without bound
	now := m.now()
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
		}
	}
	m.sessions[session.ID] = *session
	return nil
}

func (m *memorySessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || session.Expired(m.now()) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (m *memorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func (m *memorySessionStore) Ping(context.Context) error {
	return nil
}
