package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"welcomehome/infrastructure/cache"
	"welcomehome/infrastructure/seal"
	"welcomehome/models"
)

// ErrNotFound is returned by a Backend when no session is stored under a key.
var ErrNotFound = errors.New("session not found")

// Backend persists sealed sessions by lookup key.
type Backend interface {
	Load(ctx context.Context, lookupKey string) (models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Delete(ctx context.Context, lookupKey string) error
}

// Store holds one bearer token per browser session.
type Store struct {
	backend Backend
	sealer  *seal.Sealer
	cache   *cache.UserSessionCache
	now     func() time.Time
}

// NewStore returns a Store over backend. A nil cache reads the backend on
// every Get, which replicas sharing one backend need so a logout on one is
// seen by the others.
func NewStore(backend Backend, sealer *seal.Sealer, c *cache.UserSessionCache) *Store {
	return &Store{backend: backend, sealer: sealer, cache: c, now: time.Now}
}

// Get resolves sessionID. A session that is not stored, or cannot be
// opened, is reported absent with a nil error. A non-nil error means the
// backend could not be read and the session may still exist.
func (s *Store) Get(ctx context.Context, sessionID string) (models.Session, bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return models.Session{}, false, nil
	}
	key := s.sealer.LookupKey(sessionID)
	if s.cache != nil {
		if cached, ok := s.cache.FindSession(key); ok {
			return cached, true, nil
		}
	}

	stored, err := s.backend.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, fmt.Errorf("load session: %w", err)
	}
	token, err := s.sealer.Open(stored.SealedToken)
	if err != nil {
		slog.Warn("stored session cannot be opened; dropping it", slog.Any("err", err))
		_ = s.backend.Delete(ctx, key)
		return models.Session{}, false, nil
	}

	stored.ID = sessionID
	stored.AccessToken = string(token)
	if s.cache != nil {
		s.cache.AddSession(stored)
	}
	return stored, true, nil
}

// Set stores token under sessionID, replacing any previous token.
func (s *Store) Set(ctx context.Context, sessionID, token string) (models.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return models.Session{}, errors.New("session id is required")
	}
	sealed, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return models.Session{}, fmt.Errorf("seal token: %w", err)
	}
	sess := models.Session{
		LookupKey:   s.sealer.LookupKey(sessionID),
		SealedToken: sealed,
		CreatedAt:   s.now().UTC(),
		ID:          sessionID,
		AccessToken: token,
	}
	if err := s.backend.Save(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}
	if s.cache != nil {
		s.cache.AddSession(sess)
	}
	return sess, nil
}

// Clear forgets sessionID. Clearing an unknown session is not an error.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	key := s.sealer.LookupKey(sessionID)
	if s.cache != nil {
		s.cache.DeleteSession(key)
	}
	if err := s.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
