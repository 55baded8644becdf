package cmd

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/levdist/internal/config"
	"github.com/Iron-Ham/levdist/internal/errors"
	"github.com/Iron-Ham/levdist/internal/logging"
	"github.com/Iron-Ham/levdist/levenshtein"
	"github.com/spf13/cobra"
)

// addModeFlag registers the --mode flag shared by the measuring commands.
func addModeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "", "unit of comparison: codepoint or grapheme (default from segmentation.mode)")
}

// modeFor returns the --mode flag value if set, otherwise the configured mode.
func modeFor(cmd *cobra.Command, cfg *config.Config) (levenshtein.Mode, error) {
	if f := cmd.Flags().Lookup("mode"); f != nil && f.Changed {
		mode, err := levenshtein.ParseMode(f.Value.String())
		if err != nil {
			return mode, errors.NewArgumentError("mode", f.Value.String(), 0).
				WithMessage("invalid --mode").
				WithCause(err)
		}
		return mode, nil
	}
	return cfg.Segmentation.ParsedMode(), nil
}

// loadConfig returns the effective configuration, reporting validation
// failures instead of silently falling back to defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger described by cfg.Logging.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.With("pid", os.Getpid()), nil
}

// newEngine builds an engine sized by cfg.Pool. The returned cleanup stops
// the engine's pools and closes the logger.
func newEngine(cfg *config.Config) (*levenshtein.Engine, func(), error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	engine := levenshtein.NewEngine(
		levenshtein.WithMaxWorkers(cfg.Pool.MaxWorkers),
		levenshtein.WithDefaultWorkers(cfg.Pool.DefaultWorkers),
		levenshtein.WithLogger(logger),
	)
	cleanup := func() {
		engine.Close()
		_ = logger.Close()
	}
	return engine, cleanup, nil
}
