package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Analyse a piece of rumour text and print the result as JSON",
	Long: `Classify runs entity extraction, direction, negation and certainty
classification over the given text (or stdin) without storing anything.

Example:
  veracity classify "Arsenal are in advanced talks with West Ham over Declan Rice"
  echo "Chelsea have no interest in signing Victor Osimhen" | veracity classify`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("no text to classify")
	}

	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return printJSON(a.pipeline.Creator().Analyse(ctx, text))
}
