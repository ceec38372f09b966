package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/pipeline"
)

var (
	validateFeeds []string
	validateURLs  []string
	validatePages int
	validateDry   bool
	validateJSON  bool
	statusNotes   string
	statusSource  string
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Confirm pending claims against completed transfers",
	Long: `Validate polls the confirmed-transfer feeds (Transfermarkt, the Guardian
transfer window list and Wikipedia transfer lists), then marks pending
claims that match a completed move as confirmed and rescores their
journalists.

Example:
  veracity validate
  veracity validate --feeds guardian,wikipedia --dry-run
  veracity validate --feeds transfermarkt --pages 10`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

// claimCmd represents the claim command
var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Manually update a claim",
}

var claimSetStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Set a claim's validation status (pending, confirmed_true, proven_false, partially_true)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseClaimID(args[0])
		if err != nil {
			return err
		}
		return updateClaim(func(ctx context.Context, a *app) (*model.Claim, error) {
			return a.pipeline.SetStatus(ctx, id, model.ValidationStatus(args[1]), statusNotes, statusSource)
		})
	},
}

var claimSetFirstCmd = &cobra.Command{
	Use:   "set-first <id> <true|false>",
	Short: "Mark or unmark a claim as the first report of its story",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseClaimID(args[0])
		if err != nil {
			return err
		}
		first, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid flag value %q: %w", args[1], err)
		}
		return updateClaim(func(ctx context.Context, a *app) (*model.Claim, error) {
			return a.pipeline.SetFirstClaim(ctx, id, first)
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd, claimCmd)
	claimCmd.AddCommand(claimSetStatusCmd, claimSetFirstCmd)

	validateCmd.Flags().StringSliceVar(&validateFeeds, "feeds", nil, "feeds to poll: transfermarkt, guardian, wikipedia (default from config)")
	validateCmd.Flags().StringSliceVar(&validateURLs, "wikipedia-urls", nil, "Wikipedia transfer list pages (default from config)")
	validateCmd.Flags().IntVar(&validatePages, "pages", 0, "Transfermarkt pages to read (default from config)")
	validateCmd.Flags().BoolVar(&validateDry, "dry-run", false, "report matches without saving")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print the summary as JSON")

	claimSetStatusCmd.Flags().StringVar(&statusNotes, "notes", "", "validation notes")
	claimSetStatusCmd.Flags().StringVar(&statusSource, "source-url", "", "validation source URL")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := pipeline.ValidateOptionsFromConfig(a.cfg.Reconcile)
	if len(validateFeeds) > 0 {
		opts.Transfermarkt, opts.Guardian, opts.Wikipedia = false, false, false
		for _, f := range validateFeeds {
			switch f {
			case "transfermarkt":
				opts.Transfermarkt = true
			case "guardian":
				opts.Guardian = true
			case "wikipedia":
				opts.Wikipedia = true
			default:
				return fmt.Errorf("unknown feed %q (supported: transfermarkt, guardian, wikipedia)", f)
			}
		}
	}
	if len(validateURLs) > 0 {
		opts.WikipediaURLs = validateURLs
	}
	if validatePages > 0 {
		opts.Pages = validatePages
	}
	opts.DryRun = validateDry

	sum, err := a.pipeline.Validate(ctx, opts)
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}
	if validateJSON {
		return printJSON(sum)
	}

	for _, m := range sum.Matches {
		fmt.Printf("✓ #%d %s -> %s (%s, %s)\n", m.Claim.ID, m.Claim.PlayerName, m.Transfer.ToClub, m.Claim.JournalistName, m.Transfer.Source)
	}

	banner("Validation complete")
	for _, name := range sortedKeys(sum.Counts) {
		line := fmt.Sprintf("  %-14s %d transfers", name+":", sum.Counts[name])
		if msg, ok := sum.Failures[name]; ok {
			line += " (failed: " + msg + ")"
		}
		fmt.Fprintln(os.Stderr, line)
	}
	fmt.Fprintf(os.Stderr, "  Merged:        %d transfers\n", sum.Transfers)
	fmt.Fprintf(os.Stderr, "  Pending:       %d claims\n", sum.Pending)
	fmt.Fprintf(os.Stderr, "  Matched:       %d claims\n", len(sum.Matches))
	for _, name := range sortedKeys(sum.Breakdown) {
		fmt.Fprintf(os.Stderr, "    via %-10s %d\n", name, sum.Breakdown[name])
	}
	if validateDry {
		fmt.Fprintf(os.Stderr, "  (dry run, nothing saved)\n")
	}
	fmt.Fprintf(os.Stderr, "\n")
	return nil
}

func updateClaim(update func(context.Context, *app) (*model.Claim, error)) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := update(ctx, a)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Claim #%d: status=%s first=%v\n", c.ID, c.Status, c.IsFirstClaim)
	return nil
}

func parseClaimID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid claim id %q", s)
	}
	return id, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
