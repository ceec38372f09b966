// Package feeds reads confirmed transfers from public transfer lists.
package feeds

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/fetch"
	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/worker"
)

// Feed names, also recorded as ConfirmedTransfer.Source
const (
	SourceTransfermarkt = "transfermarkt"
	SourceGuardian      = "guardian"
	SourceWikipedia     = "wikipedia"
)

// Fetcher retrieves HTML pages and JSON documents
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetch.Result, error)
	FetchJSON(ctx context.Context, rawURL string, dest any) error
}

// Feed yields confirmed transfers
type Feed interface {
	Name() string
	Transfers(ctx context.Context) ([]model.ConfirmedTransfer, error)
}

// Result is the outcome of polling several feeds
type Result struct {
	Lists    [][]model.ConfirmedTransfer // One list per feed, in the order given
	Counts   map[string]int
	Failures map[string]error
}

// Collect polls every feed concurrently. A failing feed is logged and
// recorded in Failures; the others still contribute.
func Collect(ctx context.Context, logger *zap.Logger, feeds ...Feed) Result {
	res := Result{
		Lists:    make([][]model.ConfirmedTransfer, len(feeds)),
		Counts:   make(map[string]int),
		Failures: make(map[string]error),
	}
	if len(feeds) == 0 {
		return res
	}

	tasks := make([]worker.Task, len(feeds))
	for i, f := range feeds {
		i, f := i, f
		tasks[i] = worker.Task{
			Key: f.Name(),
			Fn: func(ctx context.Context) error {
				transfers, err := f.Transfers(ctx)
				res.Lists[i] = transfers
				return err
			},
		}
	}

	for _, r := range worker.RunTasks(ctx, len(feeds), tasks) {
		if r.Error != nil {
			logger.Warn("transfer feed failed", zap.String("feed", r.Key), zap.Error(r.Error))
			res.Failures[r.Key] = r.Error
		}
	}
	for i, f := range feeds {
		res.Counts[f.Name()] = len(res.Lists[i])
		logger.Info("transfer feed polled", zap.String("feed", f.Name()), zap.Int("transfers", len(res.Lists[i])))
	}
	return res
}

var transferDateLayouts = []string{
	"2 January 2006",
	"January 2, 2006",
	"2006-01-02",
}

// ParseTransferDate parses the date formats used by transfer lists,
// returning nil when none fits
func ParseTransferDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range transferDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func today(now func() time.Time) *time.Time {
	y, m, d := now().UTC().Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
