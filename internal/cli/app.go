package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/cache"
	"github.com/JSmilg/veracity/internal/events"
	"github.com/JSmilg/veracity/internal/fetch"
	"github.com/JSmilg/veracity/internal/llm"
	"github.com/JSmilg/veracity/internal/logging"
	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/pipeline"
	"github.com/JSmilg/veracity/internal/store"
	"github.com/JSmilg/veracity/internal/worker"
)

// app holds the collaborators a command needs
type app struct {
	cfg       model.Config
	logger    *zap.Logger
	store     *store.Store
	publisher events.Publisher
	pipeline  *pipeline.Pipeline
}

type appOption func(*model.Config)

// newApp loads configuration and wires the store, publisher and pipeline.
// The caller must Close the app.
func newApp(ctx context.Context, opts ...appOption) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.Database, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	pub, err := events.NewPublisher(events.RabbitMQConfig{
		URL:        cfg.Events.AMQPURL,
		Exchange:   cfg.Events.Exchange,
		RoutingKey: cfg.Events.RoutingKey,
		QueueName:  cfg.Events.Queue,
	}, logger)
	if err != nil {
		st.Close()
		return nil, err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		pub.Close()
		st.Close()
		return nil, err
	}

	c := cache.New(cfg.Cache)
	limiter := worker.NewLimiterFromConfig(cfg.RateLimiting)
	fetcher := fetch.NewFetcher(cfg.HTTP,
		fetch.WithLimiter(limiter),
		fetch.WithCache(c, cfg.Cache.TTL),
		fetch.WithLogger(logger),
	)

	popts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithLimiter(limiter),
		pipeline.WithFetcher(fetcher),
		pipeline.WithPublisher(pub),
		pipeline.WithCache(c),
	}
	if provider != nil {
		logger.Info("llm extraction enabled", zap.String("provider", provider.Name()))
		popts = append(popts, pipeline.WithProvider(provider))
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		publisher: pub,
		pipeline:  pipeline.New(cfg, st, popts...),
	}, nil
}

// Close releases the publisher and the store
func (a *app) Close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("close publisher", zap.Error(err))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func banner(title string) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  %s\n", title)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
}
