// Package logging provides structured logging for levdist.
//
// It wraps Go's log/slog JSON handler. A [Logger] writes either to
// {dir}/levdist.log or, when no directory is configured, to stderr.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. Child loggers
// created via With* methods share the underlying writer.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	poolLog := logger.WithComponent("workerpool")
//	poolLog.Info("worker pool created", "workers", 8)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"worker pool created","component":"workerpool","workers":8}
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] with a
// bytes.Buffer to assert on emitted entries.
package logging
