// Package scrapeapi talks to the scraping backend: one POST per product page
// and a status probe.
package scrapeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/errx"
	"github.com/raushankrgupta/multisite-product-viewer/logx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
)

// Fallback messages shown when the backend gives no reason.
const (
	ScrapeFailedMessage  = "Scraping failed"
	ScrapeErrorMessage   = "Failed to scrape products"
	StatusFailedMessage  = "Failed to check scraping status"
	maxErrorBodyBytes    = 1 << 20
	defaultClientTimeout = 60 * time.Second
)

// Client calls the scraping backend rooted at BaseURL.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a pooled transport and the given timeout.
// A zero timeout uses 60 seconds, since backend scrapes drive a browser.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// envelope is the backend's response before normalization.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
	Message   string          `json:"message"`
}

// ScrapeProduct asks the backend to scrape req.URL with the scraper for
// req.Site and returns the response with its data normalized for that site.
//
// Errors are *errx.Error values: transport for network failures, non-2xx
// statuses and undecodable bodies, logical_failure for success=false.
func (c *Client) ScrapeProduct(ctx context.Context, req models.ScrapeRequest) (*models.ScrapeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errx.Transport(ScrapeErrorMessage, err)
	}

	endpoint := fmt.Sprintf("%s/%s/product", c.BaseURL, req.Site)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errx.Transport(ScrapeErrorMessage, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		logx.Warn().Err(err).Str("site", req.Site).Msg("scrape request failed")
		return nil, errx.Transport(messageOr(err, ScrapeErrorMessage), err)
	}
	defer resp.Body.Close()

	logx.Debug().
		Str("site", req.Site).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("scrape response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, errx.Transport(messageOr(err, ScrapeErrorMessage), err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = ScrapeFailedMessage
		}
		return nil, errx.Logical(msg)
	}

	doc, err := base.Decode(env.Data)
	if err != nil {
		return nil, errx.Transport(ScrapeErrorMessage, err)
	}
	product := normalizers.Normalize(doc, req.Site)
	if product.ScrapedAt == "" && len(product.Raw) == 0 {
		product.ScrapedAt = env.Timestamp
	}

	return &models.ScrapeResponse{
		Success:   true,
		Data:      product,
		Timestamp: env.Timestamp,
		Message:   env.Message,
	}, nil
}

// Status probes the backend's health endpoint.
func (c *Client) Status(ctx context.Context) (*models.StatusResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/status", nil)
	if err != nil {
		return nil, errx.Transport(StatusFailedMessage, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, errx.Transport(StatusFailedMessage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errx.Transport(StatusFailedMessage, fmt.Errorf("status endpoint returned %d", resp.StatusCode))
	}

	var status models.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, errx.Transport(StatusFailedMessage, err)
	}
	return &status, nil
}

// httpError builds the error for a non-2xx response, preferring the message
// the backend put in the body.
func httpError(resp *http.Response) error {
	cause := fmt.Errorf("unexpected status %d", resp.StatusCode)
	fallback := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return errx.Transport(fallback, cause)
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		return errx.Transport(payload.Message, cause)
	}
	return errx.Transport(fallback, cause)
}

func messageOr(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
