// Package pipeline wires sources, extraction, persistence, reconciliation
// and scoring into the jobs the CLI runs.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/cache"
	"github.com/JSmilg/veracity/internal/dedup"
	"github.com/JSmilg/veracity/internal/events"
	"github.com/JSmilg/veracity/internal/extract"
	"github.com/JSmilg/veracity/internal/extract/adapters"
	"github.com/JSmilg/veracity/internal/feeds"
	"github.com/JSmilg/veracity/internal/fetch"
	"github.com/JSmilg/veracity/internal/llm"
	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/reconcile"
	"github.com/JSmilg/veracity/internal/score"
	"github.com/JSmilg/veracity/internal/worker"
)

// Store is the persistence the pipeline runs against
type Store interface {
	score.Store
	dedup.ClaimFinder
	extract.ReferenceLoader
	reconcile.ClaimUpdater

	ArticleSeen(ctx context.Context, url string) (bool, error)
	InsertArticle(ctx context.Context, a *model.ScrapedArticle) (bool, error)
	MarkArticleProcessed(ctx context.Context, url string, claimsCreated int, procErr error) error

	InsertClaim(ctx context.Context, c *model.Claim) error
	GetClaim(ctx context.Context, id int64) (*model.Claim, error)
	ListClaims(ctx context.Context, ids []int64) ([]model.Claim, error)
	ListPendingClaims(ctx context.Context, since time.Time) ([]model.Claim, error)
	UpdateClaimExtraction(ctx context.Context, c model.Claim) error

	GetOrCreateJournalist(ctx context.Context, j model.Journalist) (*model.Journalist, bool, error)
	AddJournalistPublication(ctx context.Context, id int64, pub string) error
	SetTwitterHandle(ctx context.Context, id int64, handle string) error

	UpsertReferenceClub(ctx context.Context, c model.ReferenceClub) error
	UpsertReferencePlayer(ctx context.Context, p model.ReferencePlayer) error

	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pipeline runs the scrape, backfill, reclassify, validate and import jobs
type Pipeline struct {
	cfg       model.Config
	store     Store
	fetcher   feeds.Fetcher
	limiter   *worker.Limiter
	registry  *adapters.Registry
	authors   *adapters.AuthorExtractor
	reference *extract.ReferenceIndex
	creator   *Creator
	validator *reconcile.Validator
	scores    *score.Service
	provider  llm.Provider
	publisher events.Publisher
	cache     cache.Cache
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithFetcher replaces the HTTP fetcher built from the config
func WithFetcher(f feeds.Fetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// WithLimiter replaces the rate limiter built from the config
func WithLimiter(l *worker.Limiter) Option {
	return func(p *Pipeline) { p.limiter = l }
}

// WithProvider enables model-backed extraction for free-form articles
func WithProvider(provider llm.Provider) Option {
	return func(p *Pipeline) { p.provider = provider }
}

// WithPublisher sets where claim and score events go
func WithPublisher(pub events.Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

// WithCache caches author lookups
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithClock overrides the clock
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New wires a pipeline over st. Collaborators not given as options are
// built from cfg.
func New(cfg model.Config, st Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		store:    st,
		registry: adapters.NewRegistry(),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.limiter == nil {
		p.limiter = worker.NewLimiterFromConfig(cfg.RateLimiting)
	}
	if p.fetcher == nil {
		p.fetcher = fetch.NewFetcher(cfg.HTTP, fetch.WithLimiter(p.limiter), fetch.WithLogger(p.logger))
	}
	if p.publisher == nil {
		p.publisher = events.NewLogPublisher(p.logger)
	}
	if p.cache == nil {
		p.cache = cache.Nop{}
	}

	p.scores = score.NewService(st, p.publisher, p.logger,
		score.WithWorkers(cfg.Concurrency.Workers),
		score.WithClock(p.now),
	)
	p.validator = reconcile.NewValidator(st, p.scores, p.logger)
	p.authors = adapters.NewAuthorExtractor(p.fetcher, p.cache, cfg.Cache.TTL, p.logger)
	p.reference = extract.NewReferenceIndex(st, p.logger)
	p.creator = NewCreator(st, extract.NewExtractor(p.reference), p.authors, p.publisher, p.logger,
		dedup.New(st, p.logger, p.dedupOptions(dedup.Scope(cfg.Dedup.Scope), days(cfg.Dedup.WindowDays))...),
		dedup.New(st, p.logger, p.dedupOptions(dedup.ScopePlayer, AggregatedDedupWindow)...),
	)
	p.creator.now = p.now
	return p
}

// Scores returns the scoring service the pipeline reports changes to
func (p *Pipeline) Scores() *score.Service {
	return p.scores
}

// Creator returns the claim creator
func (p *Pipeline) Creator() *Creator {
	return p.creator
}

func (p *Pipeline) dedupOptions(scope dedup.Scope, window time.Duration) []dedup.Option {
	opts := []dedup.Option{dedup.WithClock(p.now)}
	if p.cfg.Dedup.Threshold > 0 {
		opts = append(opts, dedup.WithThreshold(p.cfg.Dedup.Threshold))
	}
	if window > 0 {
		opts = append(opts, dedup.WithWindow(window))
	}
	if scope != "" {
		opts = append(opts, dedup.WithScope(scope))
	}
	return opts
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
