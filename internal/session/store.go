package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cwrk-planet/aichat/pkg/logger"
)

var ErrNotFound = errors.New("session not found")

// DefaultLimit — сколько сессий держим в памяти, если лимит не задан.
const DefaultLimit = 10000

type entry struct {
	state    State
	lastSeen time.Time
}

// Store держит сессии в памяти процесса.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	limit    int
	now      func() time.Time
}

// NewStore — хранилище с временем жизни ttl и не больше limit сессий.
// При переполнении вытесняется сессия, которую дольше всех не открывали.
func NewStore(ttl time.Duration, limit int) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		limit:    limit,
		now:      time.Now,
	}
}

func (s *Store) TTL() time.Duration { return s.ttl }

func (s *Store) Create() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.sessions) >= s.limit {
		s.sweepLocked(now)
	}
	for len(s.sessions) >= s.limit {
		s.evictOldestLocked()
	}
	s.sessions[id] = &entry{state: newState(), lastSeen: now}
	return id
}

// Get возвращает копию состояния и продлевает жизнь сессии.
func (s *Store) Get(id string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return State{}, false
	}
	e.lastSeen = s.now()
	return e.state.clone(), true
}

// Update применяет fn к состоянию под блокировкой. Внутри fn нельзя ходить в сеть.
func (s *Store) Update(id string, fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	fn(&e.state)
	e.lastSeen = s.now()
	return nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep удаляет сессии, простаивающие дольше ttl. Возвращает число удалённых.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

func (s *Store) sweepLocked(now time.Time) int {
	n := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Store) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(s.sessions, oldestID)
}

// Run периодически чистит просроченные сессии, пока жив ctx.
func (s *Store) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Hour
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				logger.FromContext(ctx).Debug("expired sessions removed", "count", n, "left", s.Len())
			}
		}
	}
}

// TakeView — копия состояния для отрисовки. Уведомления при этом считаются показанными,
// а незнакомая страница исправляется на home.
func (s *Store) TakeView(id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return State{}, ErrNotFound
	}
	e.lastSeen = s.now()
	e.state.Navigate(e.state.Page)

	view := e.state.clone()
	e.state.Notices = nil
	return view, nil
}
