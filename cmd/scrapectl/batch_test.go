package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/raushankrgupta/multisite-product-viewer/errx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBatchFile(t *testing.T) {
	path := writeFile(t, `
output: out.jsonl
retry:
  max_attempts: 2
  base_delay: 250ms
jobs:
  - url: "  https://www.flipkart.com/p/itm1  "
  - site: vijaysales
    url: https://www.vijaysales.com/p/123
`)
	bf, err := LoadBatchFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &BatchFile{
		Output: "out.jsonl",
		Retry:  &BatchRetry{MaxAttempts: 2, BaseDelay: 250 * time.Millisecond},
		Jobs: []BatchJob{
			{Site: "flipkart", URL: "https://www.flipkart.com/p/itm1"},
			{Site: "vijaysales", URL: "https://www.vijaysales.com/p/123"},
		},
	}
	if diff := cmp.Diff(want, bf); diff != "" {
		t.Errorf("LoadBatchFile mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadBatchFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"no jobs", "jobs: []", ErrNoJobs},
		{"missing url", "jobs:\n  - site: myntra", ErrJobMissingURL},
		{"unknown site", "jobs:\n  - site: amazon\n    url: https://www.amazon.in/x", ErrJobUnknownSite},
		{"wrong site", "jobs:\n  - site: myntra\n    url: https://www.flipkart.com/x", ErrJobInvalidURL},
		{"bad retry", "retry:\n  max_attempts: 0\njobs:\n  - url: https://www.flipkart.com/x", ErrInvalidMaxAttempt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBatchFile(writeFile(t, tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := LoadBatchFile(writeFile(t, "jobs: [")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

type flakyScraper struct {
	failures map[string]int
	calls    map[string]int
}

func (f *flakyScraper) ScrapeProduct(_ context.Context, req models.ScrapeRequest) (*models.ScrapeResponse, error) {
	f.calls[req.URL]++
	if f.calls[req.URL] <= f.failures[req.URL] {
		return nil, errx.Transport("HTTP error! status: 503", nil)
	}
	return &models.ScrapeResponse{Success: true, Data: &models.Product{Title: req.Site}, Timestamp: "t"}, nil
}

func TestRunBatch(t *testing.T) {
	bf := &BatchFile{Jobs: []BatchJob{
		{Site: "flipkart", URL: "https://www.flipkart.com/a"},
		{Site: "myntra", URL: "https://www.myntra.com/b"},
	}}
	scraper := &flakyScraper{
		failures: map[string]int{"https://www.flipkart.com/a": 1, "https://www.myntra.com/b": 5},
		calls:    map[string]int{},
	}

	var buf bytes.Buffer
	failed, err := RunBatch(context.Background(), scraper, bf, 3, time.Millisecond, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if scraper.calls["https://www.flipkart.com/a"] != 2 || scraper.calls["https://www.myntra.com/b"] != 3 {
		t.Errorf("calls = %v", scraper.calls)
	}

	var results []BatchResult
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var r BatchResult
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatal(err)
		}
		results = append(results, r)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d lines", len(results))
	}
	if !results[0].Success || results[0].Product.Title != "flipkart" {
		t.Errorf("first result = %+v", results[0])
	}
	if results[1].Success || results[1].Error != "HTTP error! status: 503" {
		t.Errorf("second result = %+v", results[1])
	}
}
