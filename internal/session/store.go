package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"gorent/internal/models"
	"gorent/internal/utils"
	"gorent/pkg/cache"
)

var ErrNotFound = errors.New("session not found")

// Session is the authenticated identity plus the bearer token used for every
// backend call made on this user's behalf. The backend owns the token's
// validity; we only store and forward it.
type Session struct {
	ID        string      `json:"id"`
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store persists sessions across requests. Pages never reach into shared
// storage directly; they go through this interface so the session is
// injectable and testable in isolation.
type Store interface {
	Create(ctx context.Context, user models.User, token string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	// Refresh updates the stored user snapshot (e.g. after a profile edit)
	// without rotating the session id or token.
	Refresh(ctx context.Context, sess *Session) error
	Destroy(ctx context.Context, id string) error
}

// RedisStore keeps sessions in Redis under session:<id> with the configured TTL.
type RedisStore struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

func NewRedisStore(c *cache.RedisCache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, user models.User, token string) (*Session, error) {
	sess := newSession(user, token, s.ttl)
	if err := s.cache.Set(ctx, utils.CacheSessionPrefix+sess.ID, sess, s.ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.cache.Get(ctx, utils.CacheSessionPrefix+id, &sess)
	if err != nil {
		if cache.IsMiss(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sess.Expired() {
		_ = s.cache.Delete(ctx, utils.CacheSessionPrefix+id)
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Refresh(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrNotFound
	}
	return s.cache.Set(ctx, utils.CacheSessionPrefix+sess.ID, sess, ttl)
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, utils.CacheSessionPrefix+id)
}

// MemoryStore is the redis-less implementation used by tests and local dev.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Create(ctx context.Context, user models.User, token string) (*Session, error) {
	sess := newSession(user, token, s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	dup := *sess
	return &dup, nil
}

func (s *MemoryStore) Refresh(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; !ok {
		return ErrNotFound
	}
	dup := *sess
	s.sessions[sess.ID] = &dup
	return nil
}

func (s *MemoryStore) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func newSession(user models.User, token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		User:      user,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
