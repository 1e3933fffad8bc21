package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/errx"
	"github.com/raushankrgupta/multisite-product-viewer/logx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/session"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
	"github.com/raushankrgupta/multisite-product-viewer/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Batch file validation errors.
var (
	ErrNoJobs            = errors.New("at least one job is required")
	ErrJobMissingURL     = errors.New("url is required")
	ErrJobUnknownSite    = errors.New("site is not supported")
	ErrJobInvalidURL     = errors.New("url does not belong to site")
	ErrInvalidMaxAttempt = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidBaseDelay  = errors.New("retry.base_delay must be non-negative")
)

// BatchFile is a list of products to scrape without the interactive session.
type BatchFile struct {
	Output string      `yaml:"output"`
	Retry  *BatchRetry `yaml:"retry"`
	Jobs   []BatchJob  `yaml:"jobs"`
}

// BatchRetry overrides RETRY_MAX_ATTEMPTS and RETRY_BASE_DELAY.
type BatchRetry struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
}

// BatchJob is one product URL. Site defaults to flipkart.
type BatchJob struct {
	Site string `yaml:"site"`
	URL  string `yaml:"url"`
}

// BatchResult is one JSONL output line.
type BatchResult struct {
	Site      string          `json:"site"`
	URL       string          `json:"url"`
	Success   bool            `json:"success"`
	Product   *models.Product `json:"product,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// LoadBatchFile reads and validates a batch file.
func LoadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var bf BatchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := bf.Validate(); err != nil {
		return nil, fmt.Errorf("batch file validation failed: %w", err)
	}
	return &bf, nil
}

// Validate fills defaults and checks every job against its site.
func (b *BatchFile) Validate() error {
	if len(b.Jobs) == 0 {
		return ErrNoJobs
	}
	for i := range b.Jobs {
		job := &b.Jobs[i]
		job.URL = strings.TrimSpace(job.URL)
		if job.Site == "" {
			job.Site = sites.Default().ID
		}
		if job.URL == "" {
			return fmt.Errorf("%w: jobs[%d]", ErrJobMissingURL, i)
		}
		if _, ok := sites.Get(job.Site); !ok {
			return fmt.Errorf("%w: jobs[%d] %q", ErrJobUnknownSite, i, job.Site)
		}
		if !sites.ValidateURL(job.URL, job.Site) {
			return fmt.Errorf("%w: jobs[%d] %s", ErrJobInvalidURL, i, job.Site)
		}
	}
	if b.Retry != nil {
		if b.Retry.MaxAttempts < 1 {
			return ErrInvalidMaxAttempt
		}
		if b.Retry.BaseDelay < 0 {
			return ErrInvalidBaseDelay
		}
	}
	return nil
}

// RunBatch scrapes every job in order, retrying each with exponential
// backoff, and writes one BatchResult per line to w. Failed jobs are
// reported in the output and counted; they do not stop the run.
func RunBatch(ctx context.Context, scraper session.Scraper, bf *BatchFile, maxAttempts int, baseDelay time.Duration, w io.Writer) (failed int, err error) {
	if bf.Retry != nil {
		maxAttempts, baseDelay = bf.Retry.MaxAttempts, bf.Retry.BaseDelay
	}

	enc := json.NewEncoder(w)
	for i, job := range bf.Jobs {
		if ctx.Err() != nil {
			return failed, ctx.Err()
		}

		req := models.ScrapeRequest{URL: job.URL, Site: job.Site}
		resp, scrapeErr := utils.RetryWithBackoff(ctx, func(ctx context.Context) (*models.ScrapeResponse, error) {
			return scraper.ScrapeProduct(ctx, req)
		}, maxAttempts, baseDelay)

		result := BatchResult{Site: job.Site, URL: job.URL}
		if scrapeErr != nil {
			failed++
			result.Error = errx.Message(scrapeErr)
			logx.Warn().Err(scrapeErr).Int("job", i).Str("site", job.Site).Msg("batch job failed")
		} else {
			result.Success = true
			result.Product = resp.Data
			result.Timestamp = resp.Timestamp
		}
		if err := enc.Encode(result); err != nil {
			return failed, fmt.Errorf("failed to write result: %w", err)
		}
	}
	return failed, nil
}

var batchFile, batchOutput string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Scrape every job in a YAML file and write JSONL results",
	RunE: func(cmd *cobra.Command, args []string) error {
		bf, err := LoadBatchFile(batchFile)
		if err != nil {
			return err
		}

		output := batchOutput
		if output == "" {
			output = bf.Output
		}
		w := cmd.OutOrStdout()
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		failed, err := RunBatch(cmd.Context(), client, bf, cfg.RetryMaxAttempts, cfg.RetryBaseDelay, w)
		if err != nil {
			return err
		}
		logx.Info().Int("jobs", len(bf.Jobs)).Int("failed", failed).Msg("batch finished")
		if failed > 0 {
			return fmt.Errorf("%d of %d jobs failed", failed, len(bf.Jobs))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "jobs.yaml", "Batch file")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "JSONL output path, - for stdout (default from file)")
}
