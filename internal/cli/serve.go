package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/pipeline"
	"github.com/JSmilg/veracity/internal/scheduler"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run scraping and validation on a schedule",
	Long: `Serve scrapes the gossip columns and Reddit on the scrape interval and
validates pending claims on the validate interval until interrupted.
Intervals come from the schedule section of the config; a zero interval
disables that job.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sched := scheduler.New(a.cfg.Schedule.RunTimeout, a.logger,
		scheduler.Job{
			Name:     "scrape",
			Interval: a.cfg.Schedule.ScrapeInterval,
			Run:      func(ctx context.Context) error { return scrapeAll(ctx, a) },
		},
		scheduler.Job{
			Name:     "validate",
			Interval: a.cfg.Schedule.ValidateInterval,
			Run: func(ctx context.Context) error {
				_, err := a.pipeline.Validate(ctx, pipeline.ValidateOptionsFromConfig(a.cfg.Reconcile))
				return err
			},
		},
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// scrapeAll runs every scheduled source. One source failing does not stop
// the others.
func scrapeAll(ctx context.Context, a *app) error {
	sources := []struct {
		name   string
		scrape func(context.Context, pipeline.ScrapeOptions) (pipeline.ScrapeSummary, error)
	}{
		{"gossip", a.pipeline.ScrapeGossip},
		{"reddit", a.pipeline.ScrapeReddit},
	}

	var errs []error
	for _, src := range sources {
		sum, err := src.scrape(ctx, pipeline.ScrapeOptions{})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.logger.Warn("scheduled scrape failed", zap.String("source", src.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", src.name, err))
			continue
		}
		a.logger.Info("scheduled scrape finished",
			zap.String("source", src.name),
			zap.Int("created", sum.Created),
			zap.Int("duplicates", sum.Duplicates),
		)
	}
	return errors.Join(errs...)
}
