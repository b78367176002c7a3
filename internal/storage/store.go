// Package storage keeps the funnel state that outlives a single update:
// greeted users, language preferences and pending follow-ups.
package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("storage: not found")

// FollowUp is a delayed DM waiting to be sent.
type FollowUp struct {
	UserID int64
	ChatID int64
	Lang   string
	DueAt  time.Time
}

// Store defines the interface for funnel storage backends.
type Store interface {
	// MarkGreeted records a user as greeted and reports whether it was new.
	MarkGreeted(ctx context.Context, userID int64) (bool, error)
	IsGreeted(ctx context.Context, userID int64) (bool, error)
	SetLang(ctx context.Context, userID int64, lang string) error
	// GetLang returns ErrNotFound when the user never picked a language.
	GetLang(ctx context.Context, userID int64) (string, error)
	// SaveFollowUp replaces any pending follow-up of the same user.
	SaveFollowUp(ctx context.Context, f FollowUp) error
	DeleteFollowUp(ctx context.Context, userID int64) error
	// PendingFollowUps returns stored follow-ups ordered by due time.
	PendingFollowUps(ctx context.Context) ([]FollowUp, error)
	Close() error
}

// MemoryStore provides thread-safe in-memory storage.
type MemoryStore struct {
	mu        sync.RWMutex
	greeted   map[int64]time.Time
	langs     map[int64]string
	followUps map[int64]FollowUp
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		greeted:   make(map[int64]time.Time),
		langs:     make(map[int64]string),
		followUps: make(map[int64]FollowUp),
	}
}

// MarkGreeted records a user as greeted.
func (s *MemoryStore) MarkGreeted(_ context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.greeted[userID]; ok {
		return false, nil
	}
	s.greeted[userID] = time.Now()
	return true, nil
}

// IsGreeted reports whether the user was already greeted.
func (s *MemoryStore) IsGreeted(_ context.Context, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.greeted[userID]
	return ok, nil
}

// SetLang stores a language preference.
func (s *MemoryStore) SetLang(_ context.Context, userID int64, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.langs[userID] = lang
	return nil
}

// GetLang returns the stored language preference.
func (s *MemoryStore) GetLang(_ context.Context, userID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lang, ok := s.langs[userID]
	if !ok {
		return "", ErrNotFound
	}
	return lang, nil
}

// SaveFollowUp stores a pending follow-up.
func (s *MemoryStore) SaveFollowUp(_ context.Context, f FollowUp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followUps[f.UserID] = f
	return nil
}

// DeleteFollowUp removes a pending follow-up.
func (s *MemoryStore) DeleteFollowUp(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.followUps, userID)
	return nil
}

// PendingFollowUps lists pending follow-ups by due time.
func (s *MemoryStore) PendingFollowUps(_ context.Context) ([]FollowUp, error) {
	s.mu.RLock()
	out := make([]FollowUp, 0, len(s.followUps))
	for _, f := range s.followUps {
		out = append(out, f)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
