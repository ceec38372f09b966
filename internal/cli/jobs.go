package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JSmilg/veracity/internal/pipeline"
)

var (
	jobDryRun     bool
	jobJSON       bool
	backfillField []string
	onlyEmpty     bool
	claimIDs      []int64
)

// backfillCmd represents the backfill command
var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Re-run entity extraction over stored claims",
	Long: `Backfill re-extracts player, fee, clubs, negation and certainty from the
text of stored claims. Extracted values replace stored ones only when they
are non-empty.

Fields: player_name, transfer_fee, from_club, to_club,
is_transfer_negative, certainty_level

Example:
  veracity backfill
  veracity backfill --fields player_name,to_club --only-empty
  veracity backfill --claim-ids 12,40 --dry-run`,
	Args: cobra.NoArgs,
	RunE: runBackfill,
}

// reclassifyCmd represents the reclassify command
var reclassifyCmd = &cobra.Command{
	Use:   "reclassify",
	Short: "Recompute certainty tiers or club direction for every claim",
}

var reclassifyConfidenceCmd = &cobra.Command{
	Use:   "confidence",
	Short: "Recompute the certainty tier of every claim",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReclassify("confidence", (*pipeline.Pipeline).ReclassifyConfidence)
	},
}

var reclassifyClubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "Recompute the selling and buying clubs of every claim",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReclassify("clubs", (*pipeline.Pipeline).ReclassifyClubs)
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd, reclassifyCmd)
	reclassifyCmd.AddCommand(reclassifyConfidenceCmd, reclassifyClubsCmd)

	backfillCmd.Flags().StringSliceVar(&backfillField, "fields", nil, "fields to backfill (default all)")
	backfillCmd.Flags().BoolVar(&onlyEmpty, "only-empty", false, "only fill fields that are currently empty")
	backfillCmd.Flags().Int64SliceVar(&claimIDs, "claim-ids", nil, "only these claims")

	for _, c := range []*cobra.Command{backfillCmd, reclassifyCmd} {
		c.PersistentFlags().BoolVar(&jobDryRun, "dry-run", false, "report changes without saving")
		c.PersistentFlags().BoolVar(&jobJSON, "json", false, "print the summary as JSON")
	}
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sum, err := a.pipeline.Backfill(ctx, pipeline.BackfillOptions{
		Fields:    backfillField,
		OnlyEmpty: onlyEmpty,
		ClaimIDs:  claimIDs,
		DryRun:    jobDryRun,
	})
	if err != nil {
		return fmt.Errorf("backfill failed: %w", err)
	}
	if jobJSON {
		return printJSON(sum)
	}

	if verbose || jobDryRun {
		printChanges(sum.Changes)
	}

	banner("Backfill complete")
	fmt.Fprintf(os.Stderr, "  Claims:   %d\n", sum.Total)
	fmt.Fprintf(os.Stderr, "  Updated:  %d\n", sum.Updated)
	for _, f := range pipeline.BackfillFields {
		if n, ok := sum.ByField[f]; ok {
			fmt.Fprintf(os.Stderr, "    %-22s %d\n", f, n)
		}
	}
	dryRunNote()
	return nil
}

func runReclassify(what string, run func(*pipeline.Pipeline, context.Context, bool) (pipeline.ReclassifySummary, error)) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sum, err := run(a.pipeline, ctx, jobDryRun)
	if err != nil {
		return fmt.Errorf("reclassify %s failed: %w", what, err)
	}
	if jobJSON {
		return printJSON(sum)
	}

	if verbose || jobDryRun {
		printChanges(sum.Changes)
	}

	banner("Reclassify " + what + " complete")
	fmt.Fprintf(os.Stderr, "  Claims:   %d\n", sum.Total)
	fmt.Fprintf(os.Stderr, "  Changed:  %d\n", sum.Changed)
	for _, t := range sum.Transitions {
		fmt.Fprintf(os.Stderr, "    %s -> %s: %d\n", t.From, t.To, t.Count)
	}
	dryRunNote()
	return nil
}

func printChanges(changes []pipeline.ClaimChange) {
	for _, c := range changes {
		fmt.Printf("#%d %v\n    %s\n", c.ID, c.Fields, c.Text)
	}
}

func dryRunNote() {
	if jobDryRun {
		fmt.Fprintf(os.Stderr, "  (dry run, nothing saved)\n")
	}
	fmt.Fprintf(os.Stderr, "\n")
}
