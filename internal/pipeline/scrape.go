package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/extract/adapters"
	"github.com/JSmilg/veracity/internal/llm"
	"github.com/JSmilg/veracity/internal/model"
)

// ScrapeOptions selects what a scrape reads
type ScrapeOptions struct {
	URLs   []string // Explicit pages; the source's discovery is skipped when set
	Pages  int      // Index or listing pages to walk
	DryRun bool
}

// ScrapeSummary counts what a scrape did
type ScrapeSummary struct {
	Pages      int           `json:"pages"`
	Skipped    int           `json:"skipped"` // Already-processed pages
	Failed     int           `json:"failed"`
	Rumours    int           `json:"rumours"`
	Created    int           `json:"created"`
	Duplicates int           `json:"duplicates"`
	Incomplete int           `json:"incomplete"`
	Errors     int           `json:"errors"`
	Preview    []model.Claim `json:"preview,omitempty"` // Claims a dry run would create
}

func (s *ScrapeSummary) add(o ScrapeSummary) {
	s.Pages += o.Pages
	s.Skipped += o.Skipped
	s.Failed += o.Failed
	s.Rumours += o.Rumours
	s.Created += o.Created
	s.Duplicates += o.Duplicates
	s.Incomplete += o.Incomplete
	s.Errors += o.Errors
	s.Preview = append(s.Preview, o.Preview...)
}

// ScrapeGossip reads gossip columns. Without explicit URLs the columns are
// discovered from the index pages, and from the RSS feed when the index
// yields nothing.
func (p *Pipeline) ScrapeGossip(ctx context.Context, opts ScrapeOptions) (ScrapeSummary, error) {
	urls := opts.URLs
	if len(urls) == 0 {
		var err error
		if urls, err = p.gossipColumns(ctx, opts.Pages); err != nil {
			return ScrapeSummary{}, err
		}
	}
	p.logger.Info("scraping gossip columns", zap.Int("columns", len(urls)), zap.Bool("dry_run", opts.DryRun))

	var sum ScrapeSummary
	for i, u := range urls {
		if i > 0 {
			if err := p.limiter.WaitPage(ctx, u); err != nil {
				return sum, err
			}
		}
		sum.add(p.processPage(ctx, u, true, opts.DryRun))
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
	}
	return sum, nil
}

func (p *Pipeline) gossipColumns(ctx context.Context, pages int) ([]string, error) {
	src := p.cfg.Sources
	if pages <= 0 {
		pages = src.GossipPages
	}
	if pages <= 0 {
		pages = 1
	}

	seen := make(map[string]bool)
	var columns []string
	for n := 1; n <= pages; n++ {
		pageURL := adapters.GossipIndexPage(src.GossipIndexURL, n)
		if n > 1 {
			if err := p.limiter.WaitPage(ctx, pageURL); err != nil {
				return columns, err
			}
		}
		res, err := p.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return columns, ctx.Err()
			}
			p.logger.Warn("gossip index page failed", zap.Int("page", n), zap.Error(err))
			continue
		}
		links, err := adapters.GossipIndexLinks(res.Body, pageURL)
		if err != nil {
			p.logger.Warn("gossip index page unreadable", zap.Int("page", n), zap.Error(err))
			continue
		}
		for _, l := range links {
			if !seen[l] {
				seen[l] = true
				columns = append(columns, l)
			}
		}
	}

	if len(columns) == 0 && src.GossipRSSURL != "" {
		link, err := p.gossipFromFeed(ctx)
		if err != nil {
			p.logger.Warn("gossip feed failed", zap.Error(err))
		} else if link != "" {
			columns = append(columns, link)
		}
	}

	if len(columns) == 0 {
		return nil, errors.New("no gossip columns found")
	}
	return columns, nil
}

func (p *Pipeline) gossipFromFeed(ctx context.Context) (string, error) {
	res, err := p.fetcher.Fetch(ctx, p.cfg.Sources.GossipRSSURL)
	if err != nil {
		return "", err
	}
	return adapters.GossipLinkFromFeed(res.Body)
}

// ScrapeWeb reads article pages. When a model provider is configured the
// article text goes through it; otherwise, or when it fails, the
// adapter's transfer sentences are used.
func (p *Pipeline) ScrapeWeb(ctx context.Context, opts ScrapeOptions) (ScrapeSummary, error) {
	if len(opts.URLs) == 0 {
		return ScrapeSummary{}, errors.New("no urls given")
	}
	var sum ScrapeSummary
	for _, u := range opts.URLs {
		sum.add(p.processPage(ctx, u, false, opts.DryRun))
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
	}
	return sum, nil
}

// processPage fetches, parses and records one page. Failures are counted,
// never returned, so one bad page does not stop a scrape.
func (p *Pipeline) processPage(ctx context.Context, pageURL string, aggregated, dryRun bool) ScrapeSummary {
	var sum ScrapeSummary
	logger := p.logger.With(zap.String("url", pageURL))

	if !dryRun {
		seen, err := p.store.ArticleSeen(ctx, pageURL)
		if err != nil {
			logger.Error("article lookup failed", zap.Error(err))
			sum.Failed++
			return sum
		}
		if seen {
			logger.Debug("already processed")
			sum.Skipped++
			return sum
		}
	}

	res, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		logger.Warn("fetch failed", zap.Error(err))
		sum.Failed++
		return sum
	}
	page, err := p.registry.Extract(res.Body, pageURL, res.ContentType)
	if err != nil {
		logger.Warn("extract failed", zap.Error(err))
		sum.Failed++
		return sum
	}
	sum.Pages++

	rumours := p.pageRumours(ctx, page, res.Body, aggregated)
	sum.Rumours = len(rumours)
	if len(rumours) == 0 {
		logger.Info("no rumours on page")
		return sum
	}

	if !dryRun {
		inserted, err := p.store.InsertArticle(ctx, &model.ScrapedArticle{
			URL:        pageURL,
			SourceType: page.SourceType,
			SourceName: page.SourceName,
			Title:      page.Title,
			RawContent: page.Content,
			ScrapedAt:  p.now().UTC(),
		})
		if err != nil {
			logger.Error("record article failed", zap.Error(err))
			sum.Failed++
			return sum
		}
		if !inserted {
			sum.Skipped++
			return sum
		}
	}

	p.createAll(ctx, rumours, aggregated, dryRun, &sum)

	if !dryRun {
		if err := p.store.MarkArticleProcessed(ctx, pageURL, sum.Created, nil); err != nil {
			logger.Error("mark article processed failed", zap.Error(err))
		}
	}
	logger.Info("page processed",
		zap.String("source", page.SourceName),
		zap.Int("rumours", sum.Rumours),
		zap.Int("created", sum.Created),
		zap.Int("duplicates", sum.Duplicates),
	)
	return sum
}

// pageRumours turns a page into rumours, through the model provider for
// free-form articles when one is configured
func (p *Pipeline) pageRumours(ctx context.Context, page *adapters.Page, body []byte, aggregated bool) []model.Rumour {
	if !aggregated && p.provider != nil && page.Content != "" {
		rumours, err := p.llmRumours(ctx, page, adapters.AuthorFromHTML(body))
		if err == nil {
			return rumours
		}
		p.logger.Warn("model extraction failed, using sentences",
			zap.String("provider", p.provider.Name()),
			zap.String("url", page.URL),
			zap.Error(err),
		)
	}

	rumours := make([]model.Rumour, 0, len(page.Items))
	for _, item := range page.Items {
		rumours = append(rumours, p.itemRumour(page, item))
	}
	return rumours
}

func (p *Pipeline) itemRumour(page *adapters.Page, item adapters.Item) model.Rumour {
	r := model.Rumour{
		JournalistName: item.Author,
		Publication:    first(item.Publication, page.SourceName),
		Text:           item.Text,
		ArticleURL:     first(item.SourceURL, page.URL),
	}
	r.ClaimDate = p.claimDate(item.Date, page.Date)
	return r
}

func (p *Pipeline) llmRumours(ctx context.Context, page *adapters.Page, author string) ([]model.Rumour, error) {
	resp, err := p.provider.Extract(ctx, llm.ExtractRequest{
		ArticleText:    page.Content,
		Publication:    page.SourceName,
		JournalistName: author,
	})
	if err != nil {
		return nil, err
	}
	p.logger.Debug("model extraction",
		zap.String("model", resp.Model),
		zap.Int("tokens", resp.TokensUsed),
		zap.Int("claims", len(resp.Claims)),
	)

	date := p.claimDate(nil, page.Date)
	rumours := make([]model.Rumour, 0, len(resp.Claims))
	for _, r := range resp.Claims {
		r.JournalistName = first(r.JournalistName, author)
		r.Publication = first(r.Publication, page.SourceName)
		r.ArticleURL = page.URL
		r.ClaimDate = date
		rumours = append(rumours, r)
	}
	return rumours, nil
}

func (p *Pipeline) claimDate(dates ...*time.Time) time.Time {
	for _, d := range dates {
		if d != nil && !d.IsZero() {
			return d.UTC()
		}
	}
	return p.now().UTC()
}

func (p *Pipeline) createAll(ctx context.Context, rumours []model.Rumour, aggregated, dryRun bool, sum *ScrapeSummary) {
	for _, r := range rumours {
		claim, err := p.creator.Create(ctx, r, CreateOptions{DryRun: dryRun, Aggregated: aggregated})
		switch {
		case errors.Is(err, ErrDuplicate):
			sum.Duplicates++
		case errors.Is(err, ErrIncomplete):
			sum.Incomplete++
		case err != nil:
			p.logger.Error("create claim failed", zap.String("text", truncate(r.Text, 80)), zap.Error(err))
			sum.Errors++
		case dryRun:
			sum.Preview = append(sum.Preview, *claim)
			sum.Created++
		default:
			sum.Created++
		}
	}
}

// ScrapeReddit walks the r/soccer listing. The scrape is recorded as one
// article under a synthetic URL so repeated runs are distinguishable.
func (p *Pipeline) ScrapeReddit(ctx context.Context, opts ScrapeOptions) (ScrapeSummary, error) {
	src := p.cfg.Sources
	pages := opts.Pages
	if pages <= 0 {
		pages = 1
	}
	limit := src.RedditLimit
	if limit <= 0 {
		limit = 100
	}

	var sum ScrapeSummary
	var rumours []model.Rumour
	after := ""
	for n := 1; n <= pages; n++ {
		pageURL := adapters.RedditPageURL(src.RedditURL, limit, after)
		if n > 1 {
			if err := p.limiter.WaitPage(ctx, pageURL); err != nil {
				return sum, err
			}
		}
		res, err := p.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			p.logger.Warn("reddit page failed", zap.Int("page", n), zap.Error(err))
			sum.Failed++
			break
		}
		listing, err := adapters.ParseRedditListing(res.Body)
		if err != nil {
			p.logger.Warn("reddit page unreadable", zap.Int("page", n), zap.Error(err))
			sum.Failed++
			break
		}
		sum.Pages++
		p.logger.Debug("reddit page", zap.Int("page", n), zap.Int("posts", listing.Posts), zap.Int("rumours", len(listing.Items)))

		page := &adapters.Page{URL: pageURL, SourceType: adapters.SourceTypeReddit, SourceName: adapters.RedditSourceName}
		for _, item := range listing.Items {
			r := p.itemRumour(page, item)
			if item.SourceURL == "" {
				r.ArticleURL = ""
			}
			rumours = append(rumours, r)
		}

		if listing.After == "" {
			break
		}
		after = listing.After
	}

	sum.Rumours = len(rumours)
	if len(rumours) == 0 {
		if sum.Pages == 0 && sum.Failed > 0 {
			return sum, errors.New("reddit listing unavailable")
		}
		return sum, nil
	}

	articleURL := fmt.Sprintf("reddit:r/soccer:%s", p.now().UTC().Format("20060102T150405Z"))
	if !opts.DryRun {
		if _, err := p.store.InsertArticle(ctx, &model.ScrapedArticle{
			URL:        articleURL,
			SourceType: adapters.SourceTypeReddit,
			SourceName: adapters.RedditSourceName,
			Title:      fmt.Sprintf("r/soccer, %d pages", sum.Pages),
			ScrapedAt:  p.now().UTC(),
		}); err != nil {
			return sum, fmt.Errorf("record reddit scrape: %w", err)
		}
	}

	p.createAll(ctx, rumours, true, opts.DryRun, &sum)

	if !opts.DryRun {
		if err := p.store.MarkArticleProcessed(ctx, articleURL, sum.Created, nil); err != nil {
			p.logger.Error("mark reddit scrape processed failed", zap.Error(err))
		}
	}
	p.logger.Info("reddit scraped", zap.Int("rumours", sum.Rumours), zap.Int("created", sum.Created))
	return sum, nil
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}
