package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/models"
)

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	user := models.User{SessionID: "abc", Username: "admin"}
	if err := s.Save(context.Background(), user, time.Minute); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(context.Background(), "abc")
	if err != nil || got.Username != "admin" {
		t.Fatalf("Load = %+v, %v", got, err)
	}

	now = now.Add(time.Minute)
	if _, err := s.Load(context.Background(), "abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired Load err = %v, want ErrNotFound", err)
	}
}

func TestManagerLifecycle(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, &fakeScraper{fn: ok("p")}, &memRecorder{}, time.Hour)
	ctx := context.Background()

	user, err := m.Start(ctx, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if user.SessionID == "" || user.Username != "admin" {
		t.Fatalf("user = %+v", user)
	}

	_, c, err := m.Get(ctx, user.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Scrape(ctx, "https://www.flipkart.com/x"); err != nil {
		t.Fatal(err)
	}

	_, again, _ := m.Get(ctx, user.SessionID)
	if again != c {
		t.Error("Get should return the same coordinator for a live session")
	}

	if err := m.End(ctx, user.SessionID); err != nil {
		t.Fatal(err)
	}
	if c.Product() != nil {
		t.Error("End should reset the coordinator")
	}
	if _, _, err := m.Get(ctx, user.SessionID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after End err = %v, want ErrNotFound", err)
	}
}

func TestManagerRecoversSessionFromStore(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Save(context.Background(), models.User{SessionID: "persisted", Username: "admin"}, time.Hour)

	m := NewManager(store, &fakeScraper{fn: ok("p")}, nil, time.Hour)
	user, c, err := m.Get(context.Background(), "persisted")
	if err != nil {
		t.Fatal(err)
	}
	if user.Username != "admin" || c == nil || c.Product() != nil {
		t.Errorf("recovered user=%+v coordinator=%v", user, c)
	}
}

func TestManagerEvictsExpiredCoordinators(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := NewMemoryStore()
	store.now = clock
	m := NewManager(store, &fakeScraper{fn: ok("p")}, nil, time.Hour)
	m.now = clock
	ctx := context.Background()

	old, err := m.Start(ctx, "admin")
	if err != nil {
		t.Fatal(err)
	}
	_, c, err := m.Get(ctx, old.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Scrape(ctx, "https://www.flipkart.com/x"); err != nil {
		t.Fatal(err)
	}

	now = now.Add(30 * time.Minute)
	if n := m.Sweep(); n != 0 {
		t.Fatalf("Sweep before expiry removed %d", n)
	}

	now = now.Add(31 * time.Minute)
	fresh, err := m.Start(ctx, "admin")
	if err != nil {
		t.Fatal(err)
	}
	m.mu.Lock()
	_, oldKept := m.coordinators[old.SessionID]
	_, freshKept := m.coordinators[fresh.SessionID]
	m.mu.Unlock()
	if oldKept {
		t.Error("Start should evict the expired session's coordinator")
	}
	if !freshKept {
		t.Error("Start should register the new session")
	}
	if c.Product() != nil {
		t.Error("evicted coordinator should be reset")
	}
	if _, _, err := m.Get(ctx, old.SessionID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get of expired session err = %v, want ErrNotFound", err)
	}

	now = now.Add(2 * time.Hour)
	if n := m.Sweep(); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
}

func TestManagerRunStopsWithContext(t *testing.T) {
	m := NewManager(NewMemoryStore(), &fakeScraper{fn: ok("p")}, nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
