package cmd

import (
	"fmt"

	"github.com/Iron-Ham/levdist/levenshtein"
	"github.com/spf13/cobra"
)

var distanceCmd = &cobra.Command{
	Use:   "distance <a> <b>",
	Short: "Print the edit distance between two strings",
	Long: `Print the Levenshtein distance between two strings.

Strings are compared exactly as given; no Unicode normalization is applied.
Use --mode grapheme to count user-perceived characters instead of code points.`,
	Args: cobra.ExactArgs(2),
	RunE: runDistance,
}

func init() {
	rootCmd.AddCommand(distanceCmd)
	addModeFlag(distanceCmd)
}

func runDistance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := modeFor(cmd, cfg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), levenshtein.ComputeDistance(args[0], args[1], mode))
	return err
}
