// Package session owns the per-user viewer state: the selected site, the
// single current-product slot and the last error.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/errx"
	"github.com/raushankrgupta/multisite-product-viewer/history"
	"github.com/raushankrgupta/multisite-product-viewer/logx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
)

var (
	// ErrStaleResponse is returned when a response arrives after a newer
	// scrape or a site switch superseded it. The result is discarded.
	ErrStaleResponse = errors.New("scrape response superseded by a newer request")
	// ErrUnknownSite is returned by SelectSite for ids not in the registry.
	ErrUnknownSite = errors.New("unknown site")
)

// Scraper fetches and normalizes one product.
type Scraper interface {
	ScrapeProduct(ctx context.Context, req models.ScrapeRequest) (*models.ScrapeResponse, error)
}

// State is a point-in-time copy of a coordinator.
type State struct {
	Site           models.Site     `json:"site"`
	Product        *models.Product `json:"product,omitempty"`
	Error          string          `json:"error,omitempty"`
	LastScrapeTime string          `json:"lastScrapeTime,omitempty"`
	Loading        bool            `json:"loading"`
	Generation     uint64          `json:"generation"`
}

// Coordinator serializes state changes for one session. Every scrape and
// every site switch bumps the generation; a response is adopted only if the
// generation it was issued under is still current.
type Coordinator struct {
	scraper  Scraper
	recorder history.Recorder
	user     models.User

	mu         sync.Mutex
	site       models.Site
	product    *models.Product
	errMsg     string
	lastScrape string
	inFlight   int
	generation uint64
}

func NewCoordinator(scraper Scraper, recorder history.Recorder, user models.User) *Coordinator {
	if recorder == nil {
		recorder = history.LogRecorder{}
	}
	return &Coordinator{
		scraper:  scraper,
		recorder: recorder,
		user:     user,
		site:     sites.Default(),
	}
}

// SelectSite switches the active site and clears the product and error.
// Any scrape still in flight becomes stale.
func (c *Coordinator) SelectSite(id string) error {
	site, ok := sites.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSite, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.site = site
	c.product = nil
	c.errMsg = ""
	c.generation++
	return nil
}

// Scrape validates rawURL against the active site, fetches the product and
// replaces the current product with it.
//
// A validation error is recorded but leaves the current product untouched
// and sends no request. Any other error clears the product. A response that
// arrives after a newer scrape or site switch is dropped with
// ErrStaleResponse.
func (c *Coordinator) Scrape(ctx context.Context, rawURL string) (*models.Product, error) {
	rawURL = strings.TrimSpace(rawURL)

	c.mu.Lock()
	site := c.site
	if rawURL == "" {
		c.mu.Unlock()
		return nil, errx.Validation("Please enter a URL")
	}
	if !sites.ValidateURL(rawURL, site.ID) {
		err := errx.Validation(fmt.Sprintf("Please enter a valid %s URL", site.Name))
		c.errMsg = err.Message
		gen := c.generation
		c.mu.Unlock()
		c.record(ctx, site.ID, rawURL, gen, 0, models.OutcomeValidation, err.Message)
		return nil, err
	}
	c.generation++
	gen := c.generation
	c.inFlight++
	c.errMsg = ""
	c.mu.Unlock()

	start := time.Now()
	resp, err := c.scraper.ScrapeProduct(ctx, models.ScrapeRequest{URL: rawURL, Site: site.ID})
	elapsed := time.Since(start)

	c.mu.Lock()
	c.inFlight--
	if gen != c.generation {
		c.mu.Unlock()
		logx.Debug().Uint64("generation", gen).Str("site", site.ID).Msg("discarding stale scrape response")
		c.record(ctx, site.ID, rawURL, gen, elapsed, models.OutcomeStale, "")
		return nil, ErrStaleResponse
	}
	if err != nil {
		c.product = nil
		c.errMsg = errx.Message(err)
		c.mu.Unlock()
		c.record(ctx, site.ID, rawURL, gen, elapsed, outcomeOf(err), errx.Message(err))
		return nil, err
	}
	c.product = resp.Data
	c.lastScrape = resp.Timestamp
	c.errMsg = ""
	product := c.product
	c.mu.Unlock()

	c.record(ctx, site.ID, rawURL, gen, elapsed, models.OutcomeSuccess, "")
	return product, nil
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Site:           c.site,
		Product:        c.product,
		Error:          c.errMsg,
		LastScrapeTime: c.lastScrape,
		Loading:        c.inFlight > 0,
		Generation:     c.generation,
	}
}

// Product returns the current product, or nil.
func (c *Coordinator) Product() *models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.product
}

// Reset drops all state, as on logout. In-flight scrapes become stale.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.site = sites.Default()
	c.product = nil
	c.errMsg = ""
	c.lastScrape = ""
	c.generation++
}

func (c *Coordinator) record(ctx context.Context, site, rawURL string, gen uint64, elapsed time.Duration, outcome, message string) {
	attempt := models.ScrapeAttempt{
		SessionID:  c.user.SessionID,
		Username:   c.user.Username,
		Site:       site,
		URL:        rawURL,
		Outcome:    outcome,
		Message:    message,
		Generation: gen,
		Duration:   elapsed,
		CreatedAt:  time.Now(),
	}
	if err := c.recorder.Record(context.WithoutCancel(ctx), attempt); err != nil {
		logx.Warn().Err(err).Msg("failed to record scrape attempt")
	}
}

func outcomeOf(err error) string {
	switch errx.KindOf(err) {
	case errx.KindValidation:
		return models.OutcomeValidation
	case errx.KindLogicalFailure:
		return models.OutcomeLogical
	default:
		return models.OutcomeTransport
	}
}
