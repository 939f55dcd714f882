package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bio-kids-puzzles/internal/cache"
	"bio-kids-puzzles/internal/domain"
)

// SessionStore keeps live quiz sessions between requests
type SessionStore interface {
	// Load returns ErrSessionNotFound for unknown or expired ids
	Load(ctx context.Context, sessionID string) (*domain.SessionRecord, error)
	Save(ctx context.Context, record *domain.SessionRecord) error
	Delete(ctx context.Context, sessionID string) error
}

// cacheSessionStore stores JSON session records in a domain.Cache. Every
// load and save pushes the expiry ttl into the future.
type cacheSessionStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewSessionStore creates a SessionStore backed by c
func NewSessionStore(c domain.Cache, ttl time.Duration) SessionStore {
	return &cacheSessionStore{cache: c, ttl: ttl}
}

func (s *cacheSessionStore) Load(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	key := cache.SessionKey(sessionID)
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, domain.NewSessionStoreError("failed to load session", err)
	}

	var record domain.SessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, domain.NewSessionStoreError("failed to decode session", err)
	}

	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		return nil, domain.NewSessionStoreError("failed to refresh session expiry", err)
	}
	return &record, nil
}

func (s *cacheSessionStore) Save(ctx context.Context, record *domain.SessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return domain.NewSessionStoreError("failed to encode session", err)
	}
	if err := s.cache.Set(ctx, cache.SessionKey(record.ID), string(data), s.ttl); err != nil {
		return domain.NewSessionStoreError("failed to save session", err)
	}
	return nil
}

func (s *cacheSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, cache.SessionKey(sessionID)); err != nil {
		return domain.NewSessionStoreError("failed to delete session", err)
	}
	return nil
}
