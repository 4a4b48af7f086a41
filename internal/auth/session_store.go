package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogapp/internal/cache"
	apperrors "blogapp/internal/errors"
)

const sessionKeyPrefix = "session:"

// Identity is what an authenticated request knows about its user.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Session is a server-side login session.
type Session struct {
	ID string `json:"-"`
	Identity
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore defines the interface for session storage operations.
type SessionStore interface {
	Create(ctx context.Context, identity Identity) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Destroy(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions in Redis with a fixed TTL.
type RedisSessionStore struct {
	cache *cache.Client
	ttl   time.Duration
}

// Ensure RedisSessionStore implements SessionStore
var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a new session store.
func NewRedisSessionStore(cache *cache.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{cache: cache, ttl: ttl}
}

// Create stores a new session for identity under a random id.
func (s *RedisSessionStore) Create(ctx context.Context, identity Identity) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, &apperrors.SessionError{Op: "create", Err: fmt.Errorf("marshal session: %w", err)}
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+sess.ID, payload, s.ttl); err != nil {
		return nil, &apperrors.SessionError{Op: "create", Err: err}
	}
	return sess, nil
}

// Get loads a session. A missing or expired session yields ErrNoSession.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, apperrors.ErrNoSession
	}
	data, err := s.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		return nil, &apperrors.SessionError{Op: "get", Err: err}
	}
	if data == nil {
		return nil, apperrors.ErrNoSession
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, &apperrors.SessionError{Op: "get", Err: fmt.Errorf("unmarshal session: %w", err)}
	}
	sess.ID = id
	return &sess, nil
}

// Destroy removes a session. Destroying an unknown session is not an error.
func (s *RedisSessionStore) Destroy(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, sessionKeyPrefix+id); err != nil {
		return &apperrors.SessionError{Op: "destroy", Err: err}
	}
	return nil
}
