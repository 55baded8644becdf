package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Iron-Ham/levdist/levenshtein"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [file|-]",
	Short: "Measure many string pairs in parallel",
	Long: `Measure a list of string pairs in parallel and print the distances in
input order.

Input is read from the named file, or from stdin when the argument is "-" or
omitted. It may be a YAML or JSON list of pairs:

  [["kitten", "sitting"], ["hello", "hello"]]

  - a: kitten
    b: sitting

or plain text with one tab-separated pair per line.

Without --workers the batch runs on the default pool (pool.default_workers,
or one worker per CPU). With --workers the batch runs on a shared pool of
exactly that size; --workers 0 is rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addModeFlag(batchCmd)
	batchCmd.Flags().IntP("workers", "w", 0, "number of workers (default: pool.default_workers)")
	batchCmd.Flags().StringP("format", "f", "text", "output format: text or json")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := modeFor(cmd, cfg)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid --format %q: must be text or json", format)
	}

	var opts []levenshtein.BatchOption
	if cmd.Flags().Changed("workers") {
		workers, _ := cmd.Flags().GetInt("workers")
		opts = append(opts, levenshtein.WithWorkers(workers))
	}

	data, err := readBatchInput(cmd, args)
	if err != nil {
		return err
	}
	pairs, err := parsePairs(data)
	if err != nil {
		return fmt.Errorf("failed to parse batch input: %w", err)
	}

	engine, cleanup, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	distances, err := engine.ComputeBatch(pairs, mode, opts...)
	if err != nil {
		return err
	}
	return writeDistances(cmd.OutOrStdout(), distances, format)
}

func readBatchInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return data, nil
}

func writeDistances(w io.Writer, distances []int, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		return enc.Encode(distances)
	}
	for _, d := range distances {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return err
		}
	}
	return nil
}
