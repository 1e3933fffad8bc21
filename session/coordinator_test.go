package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/errx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
)

type fakeScraper struct {
	mu    sync.Mutex
	calls []models.ScrapeRequest
	fn    func(req models.ScrapeRequest) (*models.ScrapeResponse, error)
}

func (f *fakeScraper) ScrapeProduct(_ context.Context, req models.ScrapeRequest) (*models.ScrapeResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	return f.fn(req)
}

func (f *fakeScraper) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type memRecorder struct {
	mu       sync.Mutex
	attempts []models.ScrapeAttempt
}

func (r *memRecorder) Record(_ context.Context, a models.ScrapeAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, a)
	return nil
}

func (r *memRecorder) outcomes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, a := range r.attempts {
		out = append(out, a.Outcome)
	}
	return out
}

func ok(title string) func(models.ScrapeRequest) (*models.ScrapeResponse, error) {
	return func(models.ScrapeRequest) (*models.ScrapeResponse, error) {
		return &models.ScrapeResponse{Success: true, Data: &models.Product{Title: title}, Timestamp: "2024-05-01T10:00:00Z"}, nil
	}
}

func TestScrapeSuccessReplacesProduct(t *testing.T) {
	fs := &fakeScraper{fn: ok("first")}
	rec := &memRecorder{}
	c := NewCoordinator(fs, rec, models.User{SessionID: "s1", Username: "admin"})

	p, err := c.Scrape(context.Background(), "  https://www.flipkart.com/x  ")
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if p.Title != "first" {
		t.Errorf("Title = %q", p.Title)
	}
	if fs.calls[0].URL != "https://www.flipkart.com/x" || fs.calls[0].Site != sites.Flipkart {
		t.Errorf("request = %+v", fs.calls[0])
	}

	fs.fn = ok("second")
	if _, err := c.Scrape(context.Background(), "https://www.flipkart.com/y"); err != nil {
		t.Fatal(err)
	}
	st := c.Snapshot()
	if st.Product.Title != "second" || st.LastScrapeTime != "2024-05-01T10:00:00Z" || st.Error != "" || st.Loading {
		t.Errorf("state = %+v", st)
	}
	if got := rec.outcomes(); len(got) != 2 || got[0] != models.OutcomeSuccess {
		t.Errorf("outcomes = %v", got)
	}
	if rec.attempts[0].SessionID != "s1" || rec.attempts[0].Username != "admin" {
		t.Errorf("attempt = %+v", rec.attempts[0])
	}
}

func TestValidationErrorKeepsProductAndSendsNothing(t *testing.T) {
	fs := &fakeScraper{fn: ok("kept")}
	c := NewCoordinator(fs, &memRecorder{}, models.User{})
	if _, err := c.Scrape(context.Background(), "https://www.flipkart.com/x"); err != nil {
		t.Fatal(err)
	}

	_, err := c.Scrape(context.Background(), "https://www.myntra.com/shirt")
	if errx.KindOf(err) != errx.KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
	if err.Error() != "Please enter a valid Flipkart URL" {
		t.Errorf("message = %q", err.Error())
	}
	if fs.callCount() != 1 {
		t.Errorf("scraper called %d times, want 1", fs.callCount())
	}
	st := c.Snapshot()
	if st.Product == nil || st.Product.Title != "kept" {
		t.Error("validation error must not clear the product")
	}
	if st.Error != "Please enter a valid Flipkart URL" {
		t.Errorf("Error = %q", st.Error)
	}

	if _, err := c.Scrape(context.Background(), "   "); errx.KindOf(err) != errx.KindValidation {
		t.Errorf("blank url err = %v", err)
	}
}

func TestErrorClearsProduct(t *testing.T) {
	fs := &fakeScraper{fn: ok("old")}
	c := NewCoordinator(fs, &memRecorder{}, models.User{})
	if _, err := c.Scrape(context.Background(), "https://www.flipkart.com/x"); err != nil {
		t.Fatal(err)
	}

	fs.fn = func(models.ScrapeRequest) (*models.ScrapeResponse, error) {
		return nil, errx.Logical("Product not found")
	}
	_, err := c.Scrape(context.Background(), "https://www.flipkart.com/y")
	if errx.KindOf(err) != errx.KindLogicalFailure {
		t.Fatalf("err = %v", err)
	}
	st := c.Snapshot()
	if st.Product != nil {
		t.Error("error must clear the product")
	}
	if st.Error != "Product not found" {
		t.Errorf("Error = %q", st.Error)
	}
}

func TestSelectSiteClearsState(t *testing.T) {
	c := NewCoordinator(&fakeScraper{fn: ok("p")}, &memRecorder{}, models.User{})
	if _, err := c.Scrape(context.Background(), "https://www.flipkart.com/x"); err != nil {
		t.Fatal(err)
	}
	before := c.Snapshot().Generation

	if err := c.SelectSite(sites.Myntra); err != nil {
		t.Fatal(err)
	}
	st := c.Snapshot()
	if st.Product != nil || st.Site.ID != sites.Myntra || st.Generation <= before {
		t.Errorf("state = %+v", st)
	}
	if err := c.SelectSite("amazon"); !errors.Is(err, ErrUnknownSite) {
		t.Errorf("err = %v, want ErrUnknownSite", err)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fs := &fakeScraper{}
	fs.fn = func(req models.ScrapeRequest) (*models.ScrapeResponse, error) {
		if req.URL == "https://www.flipkart.com/slow" {
			close(started)
			<-release
			return &models.ScrapeResponse{Success: true, Data: &models.Product{Title: "slow"}}, nil
		}
		return &models.ScrapeResponse{Success: true, Data: &models.Product{Title: "fast"}}, nil
	}
	rec := &memRecorder{}
	c := NewCoordinator(fs, rec, models.User{})

	errc := make(chan error, 1)
	go func() {
		_, err := c.Scrape(context.Background(), "https://www.flipkart.com/slow")
		errc <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("slow scrape never started")
	}
	if !c.Snapshot().Loading {
		t.Error("Loading should be true while a scrape is in flight")
	}

	if _, err := c.Scrape(context.Background(), "https://www.flipkart.com/fast"); err != nil {
		t.Fatal(err)
	}
	close(release)

	if err := <-errc; !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("slow err = %v, want ErrStaleResponse", err)
	}
	st := c.Snapshot()
	if st.Product == nil || st.Product.Title != "fast" {
		t.Errorf("product = %+v, want the newer response", st.Product)
	}
	if st.Loading {
		t.Error("Loading should be false once both scrapes returned")
	}

	found := false
	for _, o := range rec.outcomes() {
		if o == models.OutcomeStale {
			found = true
		}
	}
	if !found {
		t.Errorf("outcomes = %v, want a stale entry", rec.outcomes())
	}
}

func TestResetDropsState(t *testing.T) {
	c := NewCoordinator(&fakeScraper{fn: ok("p")}, nil, models.User{})
	_ = c.SelectSite(sites.VijaySales)
	if _, err := c.Scrape(context.Background(), "https://www.vijaysales.com/p/1"); err != nil {
		t.Fatal(err)
	}
	c.Reset()
	st := c.Snapshot()
	if st.Product != nil || st.Site.ID != sites.Flipkart || st.LastScrapeTime != "" {
		t.Errorf("state after reset = %+v", st)
	}
}
