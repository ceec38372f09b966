package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/store"
)

var (
	scoresJSON    bool
	scoresHistory int
	scoresPubs    bool
)

// scoresCmd represents the scores command
var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Recompute and inspect journalist scores",
}

var scoresRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute truthfulness and speed for every journalist",
	Args:  cobra.NoArgs,
	RunE:  runScoresRefresh,
}

var scoresShowCmd = &cobra.Command{
	Use:   "show [journalist]",
	Short: "Show the journalist table, or one journalist's record",
	Long: `Show lists every journalist ranked by truthfulness. Given a journalist
name or slug it prints that journalist's claim statistics and score
history instead.

Example:
  veracity scores show
  veracity scores show "Fabrizio Romano" --history 10
  veracity scores show --publications`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScoresShow,
}

var scoresClubCmd = &cobra.Command{
	Use:   "club <club>",
	Short: "Rank journalists by their record on one club",
	Args:  cobra.ExactArgs(1),
	RunE:  runScoresClub,
}

func init() {
	rootCmd.AddCommand(scoresCmd)
	scoresCmd.AddCommand(scoresRefreshCmd, scoresShowCmd, scoresClubCmd)

	scoresCmd.PersistentFlags().BoolVar(&scoresJSON, "json", false, "print as JSON")
	scoresShowCmd.Flags().IntVar(&scoresHistory, "history", 5, "score history entries to show for one journalist")
	scoresShowCmd.Flags().BoolVar(&scoresPubs, "publications", false, "show speed scores per publication instead")
}

func runScoresRefresh(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sum, err := a.pipeline.Scores().RefreshAll(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	if scoresJSON {
		return printJSON(sum)
	}

	banner("Scores refreshed")
	fmt.Fprintf(os.Stderr, "  Journalists:  %d\n", sum.Journalists)
	fmt.Fprintf(os.Stderr, "  Updated:      %d\n", sum.Updated)
	fmt.Fprintf(os.Stderr, "  Failed:       %d\n", sum.Failed)
	fmt.Fprintf(os.Stderr, "\n")
	return nil
}

type journalistReport struct {
	Journalist model.Journalist      `json:"journalist"`
	Stats      model.JournalistStats `json:"stats"`
	History    []model.ScoreHistory  `json:"history"`
}

func runScoresShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if scoresPubs {
		speeds, err := a.pipeline.Scores().PublicationSpeeds(ctx)
		if err != nil {
			return err
		}
		if scoresJSON {
			return printJSON(speeds)
		}
		pubs := make([]string, 0, len(speeds))
		for p := range speeds {
			pubs = append(pubs, p)
		}
		sort.Slice(pubs, func(i, j int) bool { return speeds[pubs[i]].GreaterThan(speeds[pubs[j]]) })
		for _, p := range pubs {
			fmt.Printf("%-30s %s\n", p, speeds[p].StringFixed(2))
		}
		return nil
	}

	if len(args) == 0 {
		js, err := a.store.ListJournalists(ctx)
		if err != nil {
			return err
		}
		if scoresJSON {
			return printJSON(js)
		}
		fmt.Printf("%-30s %12s %8s\n", "JOURNALIST", "TRUTHFUL", "SPEED")
		for _, j := range js {
			fmt.Printf("%-30s %12s %8s\n", j.Name, j.TruthfulnessScore.String(), j.SpeedScore.StringFixed(2))
		}
		return nil
	}

	j, err := findJournalist(ctx, a.store, args[0])
	if err != nil {
		return err
	}
	stats, err := a.pipeline.Scores().JournalistStats(ctx, j.ID)
	if err != nil {
		return err
	}
	history, err := a.store.ListScoreHistory(ctx, j.ID, scoresHistory)
	if err != nil {
		return err
	}
	if scoresJSON {
		return printJSON(journalistReport{Journalist: *j, Stats: stats, History: history})
	}

	banner(j.Name)
	fmt.Printf("  Publications:     %v\n", []string(j.Publications))
	if j.TwitterHandle != "" {
		fmt.Printf("  Twitter:          @%s\n", j.TwitterHandle)
	}
	fmt.Printf("  Truthfulness:     %s\n", stats.TruthfulnessScore.String())
	fmt.Printf("  Speed:            %s\n", stats.SpeedScore.StringFixed(2))
	fmt.Printf("  Claims:           %d (%d validated, %d pending)\n", stats.TotalClaims, stats.ValidatedClaims, stats.PendingClaims)
	fmt.Printf("  True / false:     %d / %d (%d partially true)\n", stats.TrueClaims, stats.FalseClaims, stats.PartiallyTrueClaims)
	fmt.Printf("  Original scoops:  %d\n", stats.OriginalScoops)
	fmt.Printf("  First to report:  %d\n", stats.FirstToReport)
	if len(history) > 0 {
		fmt.Println()
		fmt.Println("  History:")
		for _, h := range history {
			fmt.Printf("    %s  truthful=%s speed=%s claims=%d\n",
				h.RecordedAt.Format("2006-01-02 15:04"), h.TruthfulnessScore.String(), h.SpeedScore.StringFixed(2), h.TotalClaims)
		}
	}
	fmt.Println()
	return nil
}

func runScoresClub(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.pipeline.Scores().ClubStats(ctx, args[0])
	if err != nil {
		return err
	}
	if scoresJSON {
		return printJSON(stats)
	}
	if len(stats) == 0 {
		fmt.Fprintf(os.Stderr, "No claims about %s\n", args[0])
		return nil
	}

	fmt.Printf("%-30s %6s %6s %6s %9s %7s\n", "JOURNALIST", "CLAIMS", "TRUE", "FALSE", "ACCURACY", "SPEED")
	for _, s := range stats {
		fmt.Printf("%-30s %6d %6d %6d %8s%% %7s\n",
			s.JournalistName, s.TotalClaims, s.TrueClaims, s.FalseClaims, s.Accuracy.StringFixed(1), orDash(s.Speed))
	}
	return nil
}

// findJournalist looks a journalist up by name, then by slug
func findJournalist(ctx context.Context, st *store.Store, key string) (*model.Journalist, error) {
	j, err := st.GetJournalistByName(ctx, key)
	if err == nil {
		return j, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	j, err = st.GetJournalistBySlug(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("no journalist named %q", key)
	}
	return j, err
}

func orDash(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.StringFixed(2)
}
