package feeds

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/worker"
)

const transfermarktPath = "/statistik/neuestetransfers"

// Transfermarkt reads the "latest transfers" listing. Rows carry no date,
// so every transfer is dated on the day it was read.
type Transfermarkt struct {
	fetcher Fetcher
	baseURL string
	pages   int
	limiter *worker.Limiter
	logger  *zap.Logger
	now     func() time.Time
}

// NewTransfermarkt creates the feed. limiter may be nil.
func NewTransfermarkt(f Fetcher, baseURL string, pages int, limiter *worker.Limiter, logger *zap.Logger) *Transfermarkt {
	if pages <= 0 {
		pages = 1
	}
	return &Transfermarkt{
		fetcher: f,
		baseURL: strings.TrimRight(baseURL, "/"),
		pages:   pages,
		limiter: limiter,
		logger:  logger,
		now:     time.Now,
	}
}

func (t *Transfermarkt) Name() string { return SourceTransfermarkt }

// Transfers reads every configured page. A failing page is logged and
// skipped; the feed only fails when every page does.
func (t *Transfermarkt) Transfers(ctx context.Context) ([]model.ConfirmedTransfer, error) {
	date := today(t.now)

	var all []model.ConfirmedTransfer
	var lastErr error
	failed := 0
	for page := 1; page <= t.pages; page++ {
		pageURL := fmt.Sprintf("%s%s?page=%d", t.baseURL, transfermarktPath, page)
		if page > 1 && t.limiter != nil {
			if err := t.limiter.WaitPage(ctx, pageURL); err != nil {
				return all, err
			}
		}

		transfers, err := t.page(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			t.logger.Warn("transfermarkt page failed", zap.Int("page", page), zap.Error(err))
			lastErr = err
			failed++
			continue
		}

		for i := range transfers {
			transfers[i].TransferDate = date
		}
		t.logger.Debug("transfermarkt page", zap.Int("page", page), zap.Int("transfers", len(transfers)))
		all = append(all, transfers...)
	}

	if failed == t.pages {
		return nil, fmt.Errorf("all %d transfermarkt pages failed: %w", failed, lastErr)
	}
	return all, nil
}

func (t *Transfermarkt) page(ctx context.Context, pageURL string) ([]model.ConfirmedTransfer, error) {
	res, err := t.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ParseTransfermarkt(res.Body, t.baseURL)
}

// ParseTransfermarkt reads the rows of the "items" table. In each row the
// first hauptlink anchor is the player, and the second and third inline
// tables hold the selling and buying clubs. The fee is the last cell.
func ParseTransfermarkt(body []byte, baseURL string) ([]model.ConfirmedTransfer, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse transfermarkt page: %w", err)
	}

	var transfers []model.ConfirmedTransfer
	doc.Find("table.items > tbody > tr").Each(func(_ int, row *goquery.Selection) {
		if !row.HasClass("odd") && !row.HasClass("even") {
			return
		}

		player := row.Find("td.hauptlink > a").First()
		name := strings.TrimSpace(player.Text())
		if name == "" {
			return
		}

		href, _ := player.Attr("href")
		if href != "" && !strings.HasPrefix(href, "http") {
			href = baseURL + href
		}

		var from, to string
		inline := row.Find("table.inline-table")
		if inline.Length() >= 3 {
			from = strings.TrimSpace(inline.Eq(1).Find("td.hauptlink > a").First().Text())
			to = strings.TrimSpace(inline.Eq(2).Find("td.hauptlink > a").First().Text())
		}

		var fee string
		if cells := row.ChildrenFiltered("td"); cells.Length() > 0 {
			last := cells.Last()
			if a := last.Find("a").First(); a.Length() > 0 {
				fee = strings.TrimSpace(a.Text())
			} else {
				fee = strings.TrimSpace(last.Text())
			}
		}

		transfers = append(transfers, model.ConfirmedTransfer{
			PlayerName: name,
			FromClub:   from,
			ToClub:     to,
			Fee:        fee,
			SourceURL:  href,
			Source:     SourceTransfermarkt,
		})
	})

	return transfers, nil
}
