package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/raushankrgupta/multisite-product-viewer/config"
	"github.com/raushankrgupta/multisite-product-viewer/errx"
	"github.com/raushankrgupta/multisite-product-viewer/logx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/scrapeapi"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
	"github.com/raushankrgupta/multisite-product-viewer/view"
	"github.com/spf13/cobra"
)

var (
	baseURL    string
	verbose    bool
	jsonOutput bool

	scrapeSite string
	scrapeURL  string

	cfg    *config.Config
	client *scrapeapi.Client
)

var rootCmd = &cobra.Command{
	Use:           "scrapectl",
	Short:         "Query the product scraping backend from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logx.Init(logx.LoggerOpts{Production: cfg.Environment().IsProduction() && !verbose})

		if baseURL == "" {
			baseURL = cfg.ScrapeAPIBaseURL
		}
		client = scrapeapi.NewClient(baseURL, cfg.ScrapeAPITimeout)
		return nil
	},
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List supported sites",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSites(cmd.OutOrStdout(), sites.All())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <site> <url>",
	Short: "Check that a URL belongs to a site",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, ok := sites.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown site %q", args[0])
		}
		if !sites.ValidateURL(args[1], site.ID) {
			return errx.Validation(fmt.Sprintf("Please enter a valid %s URL", site.Name))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "valid %s URL\n", site.Name)
		return nil
	},
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape one product and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		site, ok := sites.Get(scrapeSite)
		if !ok {
			return fmt.Errorf("unknown site %q", scrapeSite)
		}
		url := strings.TrimSpace(scrapeURL)
		if url == "" {
			return errx.Validation("Please enter a URL")
		}
		if !sites.ValidateURL(url, site.ID) {
			return errx.Validation(fmt.Sprintf("Please enter a valid %s URL", site.Name))
		}

		resp, err := client.ScrapeProduct(cmd.Context(), models.ScrapeRequest{URL: url, Site: site.ID})
		if err != nil {
			return err
		}
		return writeProduct(cmd.OutOrStdout(), resp.Data)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the backend status",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := client.Status(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(status)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", status.Status, status.Message)
		return nil
	},
}

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Scrape every site's sample URL once",
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, site := range sites.All() {
			resp, err := client.ScrapeProduct(cmd.Context(), models.ScrapeRequest{URL: site.SampleURL, Site: site.ID})
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %-12s %s\n", site.ID, errx.Message(err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK    %-12s %s\n", site.ID, resp.Data.Title)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d sites failed", failed, len(sites.All()))
		}
		return nil
	},
}

func writeSites(w io.Writer, list []models.Site) error {
	width := 0
	for _, s := range list {
		if n := runewidth.StringWidth(s.ID); n > width {
			width = n
		}
	}
	for _, s := range list {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(s.ID))
		if _, err := fmt.Fprintf(w, "%s%s  %s (%s)\n", s.ID, pad, s.Name, s.Domain); err != nil {
			return err
		}
	}
	return nil
}

func writeProduct(w io.Writer, p *models.Product) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	return view.WriteText(w, view.Build(p))
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", errx.Message(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Scraping backend base URL (default SCRAPE_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")

	scrapeCmd.Flags().StringVar(&scrapeSite, "site", sites.Flipkart, "Site id")
	scrapeCmd.Flags().StringVar(&scrapeURL, "url", "", "Product URL")
	_ = scrapeCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(sitesCmd, validateCmd, scrapeCmd, statusCmd, smokeCmd, batchCmd)
}
