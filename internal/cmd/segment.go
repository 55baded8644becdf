package cmd

import (
	"fmt"

	"github.com/Iron-Ham/levdist/internal/segment"
	"github.com/spf13/cobra"
)

var segmentCmd = &cobra.Command{
	Use:   "segment <text>",
	Short: "Show the units a string is compared by",
	Long: `Print the units that text splits into under the selected mode, one per
line, followed by the unit count. Useful for checking why two strings are
further apart than they look.`,
	Args: cobra.ExactArgs(1),
	RunE: runSegment,
}

func init() {
	rootCmd.AddCommand(segmentCmd)
	addModeFlag(segmentCmd)
	segmentCmd.Flags().BoolP("quote", "q", false, "print units as Go-quoted strings")
}

func runSegment(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := modeFor(cmd, cfg)
	if err != nil {
		return err
	}
	quote, _ := cmd.Flags().GetBool("quote")

	out := cmd.OutOrStdout()
	units := segment.Segment(args[0], mode)
	for _, u := range units {
		if quote {
			fmt.Fprintf(out, "%+q\n", u)
		} else {
			fmt.Fprintln(out, u)
		}
	}
	_, err = fmt.Fprintf(out, "%d %s units\n", segment.Len(args[0], mode), mode)
	return err
}
