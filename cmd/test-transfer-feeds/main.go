// Test program that polls the confirmed-transfer feeds and prints what each
// one parses, for checking the parsers against the live pages
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/feeds"
	"github.com/JSmilg/veracity/internal/fetch"
	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/reconcile"
	"github.com/JSmilg/veracity/internal/worker"
)

const sample = 5

func main() {
	fmt.Println("=== Transfer Feed Test ===")
	fmt.Println()

	cfg := model.DefaultConfig()
	logger := zap.NewNop()
	limiter := worker.NewLimiterFromConfig(cfg.RateLimiting)
	fetcher := fetch.NewFetcher(cfg.HTTP, fetch.WithLimiter(limiter), fetch.WithLogger(logger))

	rc := cfg.Reconcile
	list := []feeds.Feed{
		feeds.NewTransfermarkt(fetcher, rc.TransfermarktBase, 1, limiter, logger),
		feeds.NewGuardian(fetcher, rc.GuardianURL),
		feeds.NewWikipedia(fetcher, rc.WikipediaURLs, logger),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res := feeds.Collect(ctx, logger, list...)
	for i, f := range list {
		fmt.Printf("Feed: %s\n", f.Name())
		fmt.Println(strings.Repeat("-", 60))

		if err, ok := res.Failures[f.Name()]; ok {
			fmt.Printf("  ✗ %v\n\n", err)
			continue
		}

		transfers := res.Lists[i]
		fmt.Printf("  ✓ %d transfers\n", len(transfers))
		for j, t := range transfers {
			if j == sample {
				fmt.Printf("    ... %d more\n", len(transfers)-sample)
				break
			}
			date := "undated"
			if t.TransferDate != nil {
				date = t.TransferDate.Format("2006-01-02")
			}
			fmt.Printf("    - %s: %s -> %s (%s, %s)\n", t.PlayerName, t.FromClub, t.ToClub, orNone(t.Fee), date)
		}
		fmt.Println()
	}

	merged := reconcile.MergeTransfers(res.Lists...)
	fmt.Printf("=== %d transfers after merging ===\n", len(merged))
	if len(res.Failures) == len(list) {
		os.Exit(1)
	}
}

func orNone(s string) string {
	if s == "" {
		return "no fee"
	}
	return s
}
