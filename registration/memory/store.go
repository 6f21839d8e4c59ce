package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/registration"
)

type entry struct {
	data      models.PendingRegistration
	expiresAt time.Time
}

// Store is an in-memory registration store for development and tests.
// Nothing survives a restart.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ registration.Store = (*Store)(nil)

func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = registration.DefaultTTL
	}
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the time source (for tests).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) SetPending(_ context.Context, token string, data *models.PendingRegistration) error {
	if data == nil {
		return errors.New("pending registration must not be nil")
	}
	cp := *data
	if data.AccountID != nil {
		id := *data.AccountID
		cp.AccountID = &id
	}

	s.mu.Lock()
	s.entries[token] = entry{data: cp, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *Store) GetPending(_ context.Context, token string) (*models.PendingRegistration, error) {
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return nil, registration.ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		// запись могла быть обновлена между блокировками
		if cur, ok := s.entries[token]; ok && !s.now().Before(cur.expiresAt) {
			delete(s.entries, token)
		}
		s.mu.Unlock()
		return nil, registration.ErrNotFound
	}

	cp := e.data
	if e.data.AccountID != nil {
		id := *e.data.AccountID
		cp.AccountID = &id
	}
	return &cp, nil
}

func (s *Store) HasPending(ctx context.Context, token string) (bool, error) {
	_, err := s.GetPending(ctx, token)
	if errors.Is(err, registration.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ClearPending(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}

func (s *Store) ResetFlow(ctx context.Context, token string) error {
	return s.ClearPending(ctx, token)
}

func (s *Store) Ping(context.Context) error {
	return nil
}
