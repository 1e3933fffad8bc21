package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/multisite-product-viewer/history"
	"github.com/raushankrgupta/multisite-product-viewer/logx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
)

// Manager maps session ids to their coordinators.
type Manager struct {
	store    Store
	scraper  Scraper
	recorder history.Recorder
	ttl      time.Duration

	now          func() time.Time
	mu           sync.Mutex
	coordinators map[string]*entry
}

type entry struct {
	coordinator *Coordinator
	expires     time.Time
}

func NewManager(store Store, scraper Scraper, recorder history.Recorder, ttl time.Duration) *Manager {
	return &Manager{
		store:        store,
		scraper:      scraper,
		recorder:     recorder,
		ttl:          ttl,
		now:          time.Now,
		coordinators: map[string]*entry{},
	}
}

// Start opens a new session for username.
func (m *Manager) Start(ctx context.Context, username string) (models.User, error) {
	user := models.User{
		SessionID: uuid.NewString(),
		Username:  username,
		CreatedAt: m.now().UTC(),
	}
	if err := m.store.Save(ctx, user, m.ttl); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	m.sweepLocked()
	m.coordinators[user.SessionID] = m.newEntry(user)
	m.mu.Unlock()
	return user, nil
}

// Get returns the user and coordinator for a live session. A session that
// is still in the store but unknown to this process, for example after a
// restart, gets a fresh coordinator.
func (m *Manager) Get(ctx context.Context, sessionID string) (models.User, *Coordinator, error) {
	user, err := m.store.Load(ctx, sessionID)
	if err != nil {
		m.mu.Lock()
		delete(m.coordinators, sessionID)
		m.mu.Unlock()
		return models.User{}, nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.coordinators[sessionID]
	if !ok {
		e = m.newEntry(user)
		m.coordinators[sessionID] = e
	}
	return user, e.coordinator, nil
}

// End logs a session out: its state is reset and the record deleted.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	if e, ok := m.coordinators[sessionID]; ok {
		e.coordinator.Reset()
		delete(m.coordinators, sessionID)
	}
	m.mu.Unlock()
	return m.store.Delete(ctx, sessionID)
}

// Sweep drops the coordinators of sessions whose TTL has run out and
// returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked()
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logx.Debug().Int("sessions", n).Msg("evicted expired sessions")
			}
		}
	}
}

func (m *Manager) sweepLocked() int {
	now := m.now()
	removed := 0
	for id, e := range m.coordinators {
		if !now.Before(e.expires) {
			e.coordinator.Reset()
			delete(m.coordinators, id)
			removed++
		}
	}
	return removed
}

// newEntry dates expiry from the session's creation, matching the TTL the
// store was given on Save.
func (m *Manager) newEntry(user models.User) *entry {
	created := user.CreatedAt
	if created.IsZero() {
		created = m.now()
	}
	return &entry{
		coordinator: NewCoordinator(m.scraper, m.recorder, user),
		expires:     created.Add(m.ttl),
	}
}
