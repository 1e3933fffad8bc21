// Package history keeps an audit trail of scrape attempts. Only the request
// and its outcome are recorded; scraped product data is never stored.
package history

import (
	"context"

	"github.com/raushankrgupta/multisite-product-viewer/logx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
)

// Recorder stores scrape attempts.
type Recorder interface {
	Record(ctx context.Context, attempt models.ScrapeAttempt) error
}

// LogRecorder writes attempts to the structured log.
type LogRecorder struct{}

func (LogRecorder) Record(_ context.Context, a models.ScrapeAttempt) error {
	ev := logx.Info()
	if a.Outcome != models.OutcomeSuccess {
		ev = logx.Warn()
	}
	ev.Str("session", a.SessionID).
		Str("site", a.Site).
		Str("url", a.URL).
		Str("outcome", a.Outcome).
		Uint64("generation", a.Generation).
		Dur("duration", a.Duration).
		Str("message", a.Message).
		Msg("scrape attempt")
	return nil
}

// Multi fans an attempt out to several recorders and returns the first error.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, a models.ScrapeAttempt) error {
	var first error
	for _, r := range m {
		if err := r.Record(ctx, a); err != nil && first == nil {
			first = err
		}
	}
	return first
}
