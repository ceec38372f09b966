package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/feeds"
	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/reconcile"
)

// ValidateOptions selects the feeds a validation run polls. Pages and
// WikipediaURLs fall back to the reconcile config when unset.
type ValidateOptions struct {
	Transfermarkt bool
	Guardian      bool
	Wikipedia     bool
	WikipediaURLs []string
	Pages         int
	DryRun        bool
}

// ValidateOptionsFromConfig returns the options the config enables
func ValidateOptionsFromConfig(cfg model.ReconcileConfig) ValidateOptions {
	return ValidateOptions{
		Transfermarkt: cfg.Transfermarkt,
		Guardian:      cfg.Guardian,
		Wikipedia:     cfg.Wikipedia,
		WikipediaURLs: cfg.WikipediaURLs,
		Pages:         cfg.Pages,
	}
}

// ValidateSummary reports a validation run
type ValidateSummary struct {
	Transfers int               `json:"transfers"` // After merging
	Pending   int               `json:"pending"`
	Counts    map[string]int    `json:"counts"` // Transfers per feed
	Failures  map[string]string `json:"failures,omitempty"`
	Matches   []reconcile.Match `json:"-"`
	Breakdown map[string]int    `json:"breakdown"` // Matches per feed
	DryRun    bool              `json:"dry_run"`
}

// Feeds builds the enabled transfer feeds. Their order sets precedence when
// two feeds report the same move.
func (p *Pipeline) Feeds(opts ValidateOptions) []feeds.Feed {
	rc := p.cfg.Reconcile
	var out []feeds.Feed
	if opts.Transfermarkt {
		pages := opts.Pages
		if pages <= 0 {
			pages = rc.Pages
		}
		out = append(out, feeds.NewTransfermarkt(p.fetcher, rc.TransfermarktBase, pages, p.limiter, p.logger))
	}
	if opts.Guardian && rc.GuardianURL != "" {
		out = append(out, feeds.NewGuardian(p.fetcher, rc.GuardianURL))
	}
	if opts.Wikipedia {
		urls := opts.WikipediaURLs
		if len(urls) == 0 {
			urls = rc.WikipediaURLs
		}
		if len(urls) > 0 {
			out = append(out, feeds.NewWikipedia(p.fetcher, urls, p.logger))
		}
	}
	return out
}

// Validate polls the transfer feeds and confirms the pending claims of the
// reconcile window that match. Each confirmed claim is rescored.
func (p *Pipeline) Validate(ctx context.Context, opts ValidateOptions) (ValidateSummary, error) {
	return p.validateWith(ctx, p.Feeds(opts), opts.DryRun)
}

func (p *Pipeline) validateWith(ctx context.Context, fs []feeds.Feed, dryRun bool) (ValidateSummary, error) {
	sum := ValidateSummary{DryRun: dryRun, Failures: make(map[string]string)}
	if len(fs) == 0 {
		return sum, fmt.Errorf("no transfer feeds enabled")
	}

	res := feeds.Collect(ctx, p.logger, fs...)
	sum.Counts = res.Counts
	for name, err := range res.Failures {
		sum.Failures[name] = err.Error()
	}
	if ctx.Err() != nil {
		return sum, ctx.Err()
	}

	transfers := reconcile.MergeTransfers(res.Lists...)
	sum.Transfers = len(transfers)

	since := p.now().UTC().Add(-days(p.cfg.Reconcile.WindowDays))
	pending, err := p.store.ListPendingClaims(ctx, since)
	if err != nil {
		return sum, fmt.Errorf("list pending claims: %w", err)
	}
	sum.Pending = len(pending)

	matches, err := p.validator.Validate(ctx, pending, transfers, dryRun)
	sum.Matches = matches
	sum.Breakdown = reconcile.SourceBreakdown(matches)
	if err != nil {
		return sum, err
	}

	p.logger.Info("validation finished",
		zap.Int("transfers", sum.Transfers),
		zap.Int("pending", sum.Pending),
		zap.Int("matches", len(matches)),
		zap.Bool("dry_run", dryRun),
	)
	return sum, nil
}

// SetStatus sets a claim's validation status by hand and rescores its
// journalist
func (p *Pipeline) SetStatus(ctx context.Context, id int64, status model.ValidationStatus, notes, sourceURL string) (*model.Claim, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown validation status %q", status)
	}
	return p.updateClaim(ctx, id, func(c *model.Claim) {
		c.Status = status
		if status == model.StatusPending {
			c.ValidationDate = nil
		} else {
			now := p.now().UTC()
			c.ValidationDate = &now
		}
		if notes != "" {
			c.ValidationNotes = notes
		}
		if sourceURL != "" {
			c.ValidationSourceURL = sourceURL
		}
	})
}

// SetFirstClaim marks or unmarks a claim as the first report of its story
func (p *Pipeline) SetFirstClaim(ctx context.Context, id int64, first bool) (*model.Claim, error) {
	return p.updateClaim(ctx, id, func(c *model.Claim) { c.IsFirstClaim = first })
}

func (p *Pipeline) updateClaim(ctx context.Context, id int64, modify func(*model.Claim)) (*model.Claim, error) {
	before, err := p.store.GetClaim(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load claim %d: %w", id, err)
	}
	after := *before
	modify(&after)

	if err := p.store.UpdateClaimValidation(ctx, after); err != nil {
		return nil, fmt.Errorf("update claim %d: %w", id, err)
	}
	if err := p.scores.OnClaimChanged(ctx, *before, after); err != nil {
		return &after, fmt.Errorf("rescore after claim %d: %w", id, err)
	}
	return &after, nil
}
