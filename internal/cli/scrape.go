package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JSmilg/veracity/internal/pipeline"
	"github.com/JSmilg/veracity/internal/worker"
)

var (
	scrapeDryRun bool
	scrapePages  int
	scrapeURLs   []string
	scrapeFile   string
	scrapeJSON   bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Collect transfer rumours and store them as claims",
	Long: `Scrape reads a rumour source, extracts transfer claims and attributes
them to journalists. Pages already processed are skipped.

Example:
  veracity scrape gossip
  veracity scrape gossip --urls https://www.bbc.com/sport/football/articles/c0000001
  veracity scrape reddit --pages 3 --dry-run
  veracity scrape web --file urls.txt`,
}

var scrapeGossipCmd = &cobra.Command{
	Use:   "gossip",
	Short: "Scrape the BBC gossip columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape("BBC Gossip", func(ctx context.Context, a *app, opts pipeline.ScrapeOptions) (pipeline.ScrapeSummary, error) {
			return a.pipeline.ScrapeGossip(ctx, opts)
		})
	},
}

var scrapeRedditCmd = &cobra.Command{
	Use:   "reddit",
	Short: "Scrape tagged transfer posts from r/soccer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape("Reddit r/soccer", func(ctx context.Context, a *app, opts pipeline.ScrapeOptions) (pipeline.ScrapeSummary, error) {
			return a.pipeline.ScrapeReddit(ctx, opts)
		})
	},
}

var scrapeWebCmd = &cobra.Command{
	Use:   "web [url...]",
	Short: "Scrape news articles by URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		scrapeURLs = append(scrapeURLs, args...)
		if scrapeFile != "" {
			urls, err := worker.ReadURLsFromFile(scrapeFile)
			if err != nil {
				return err
			}
			scrapeURLs = append(scrapeURLs, urls...)
		}
		return runScrape("Web articles", func(ctx context.Context, a *app, opts pipeline.ScrapeOptions) (pipeline.ScrapeSummary, error) {
			return a.pipeline.ScrapeWeb(ctx, opts)
		})
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.AddCommand(scrapeGossipCmd, scrapeRedditCmd, scrapeWebCmd)

	pf := scrapeCmd.PersistentFlags()
	pf.BoolVar(&scrapeDryRun, "dry-run", false, "extract and print claims without saving")
	pf.IntVar(&scrapePages, "pages", 0, "index or listing pages to walk (default from config)")
	pf.StringSliceVar(&scrapeURLs, "urls", nil, "explicit page URLs, skipping discovery")
	pf.BoolVar(&scrapeJSON, "json", false, "print the summary as JSON")
	scrapeWebCmd.Flags().StringVar(&scrapeFile, "file", "", "file of article URLs, one per line")
}

func runScrape(title string, scrape func(context.Context, *app, pipeline.ScrapeOptions) (pipeline.ScrapeSummary, error)) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sum, err := scrape(ctx, a, pipeline.ScrapeOptions{
		URLs:   scrapeURLs,
		Pages:  scrapePages,
		DryRun: scrapeDryRun,
	})
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if scrapeJSON {
		return printJSON(sum)
	}

	if scrapeDryRun {
		for _, c := range sum.Preview {
			fmt.Printf("[%s] %s (%s)\n", c.Certainty, c.Text, c.JournalistName)
			fmt.Printf("    player=%q from=%q to=%q fee=%q negative=%v\n", c.PlayerName, c.FromClub, c.ToClub, c.TransferFee, c.IsNegative)
		}
	}

	banner(title + " scrape complete")
	fmt.Fprintf(os.Stderr, "  Pages:       %d (skipped %d, failed %d)\n", sum.Pages, sum.Skipped, sum.Failed)
	fmt.Fprintf(os.Stderr, "  Rumours:     %d\n", sum.Rumours)
	fmt.Fprintf(os.Stderr, "  Created:     %d\n", sum.Created)
	fmt.Fprintf(os.Stderr, "  Duplicates:  %d\n", sum.Duplicates)
	fmt.Fprintf(os.Stderr, "  Incomplete:  %d\n", sum.Incomplete)
	fmt.Fprintf(os.Stderr, "  Errors:      %d\n", sum.Errors)
	if scrapeDryRun {
		fmt.Fprintf(os.Stderr, "  (dry run, nothing saved)\n")
	}
	fmt.Fprintf(os.Stderr, "\n")
	return nil
}
