package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JSmilg/veracity/internal/pipeline"
)

var (
	importDryRun bool
	importJSON   bool
)

// importCmd represents the import-reference command
var importCmd = &cobra.Command{
	Use:   "import-reference",
	Short: "Load reference clubs, players and managers",
	Long: `Import reference data used to recognise player names and fill in a
player's current club when a rumour does not name it.

Example:
  veracity import-reference clubs clubs.csv
  veracity import-reference players players.csv
  veracity import-reference managers managers.json`,
}

var importClubsCmd = &cobra.Command{
	Use:   "clubs <file.csv>",
	Short: "Import clubs (club_id, club_name, country_name, competition_name)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport("Clubs", args[0], (*pipeline.Pipeline).ImportClubsCSV)
	},
}

var importPlayersCmd = &cobra.Command{
	Use:   "players <file.csv>",
	Short: "Import players (player_id, player_name, current_club_name, ...)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport("Players", args[0], (*pipeline.Pipeline).ImportPlayersCSV)
	},
}

var importManagersCmd = &cobra.Command{
	Use:   "managers <file.json>",
	Short: "Flag managers so they are never taken for players",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport("Managers", args[0], (*pipeline.Pipeline).FlagManagersJSON)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importClubsCmd, importPlayersCmd, importManagersCmd)

	importCmd.PersistentFlags().BoolVar(&importDryRun, "dry-run", false, "parse and count without saving")
	importCmd.PersistentFlags().BoolVar(&importJSON, "json", false, "print the summary as JSON")
}

type importFunc func(*pipeline.Pipeline, context.Context, io.Reader, bool) (pipeline.ImportSummary, error)

func runImport(what, path string, run importFunc) error {
	ctx, cancel := signalContext()
	defer cancel()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sum, err := run(a.pipeline, ctx, f, importDryRun)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	if importJSON {
		return printJSON(sum)
	}

	banner(what + " imported")
	fmt.Fprintf(os.Stderr, "  Rows:      %d\n", sum.Rows)
	fmt.Fprintf(os.Stderr, "  Imported:  %d\n", sum.Imported)
	fmt.Fprintf(os.Stderr, "  Skipped:   %d\n", sum.Skipped)
	if sum.Flagged > 0 || sum.Created > 0 {
		fmt.Fprintf(os.Stderr, "  Flagged:   %d\n", sum.Flagged)
		fmt.Fprintf(os.Stderr, "  Created:   %d\n", sum.Created)
	}
	if importDryRun {
		fmt.Fprintf(os.Stderr, "  (dry run, nothing saved)\n")
	}
	fmt.Fprintf(os.Stderr, "\n")
	return nil
}
