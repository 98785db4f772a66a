// Package logging provides structured logging utilities for ras-compute
// components.
//
// It wraps the standard library slog package with project defaults: JSON
// output to stderr, environment-based log level configuration (LOG_LEVEL),
// module/version context injection, and source location tracking for debug
// logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("rasctl", version)
//
//	    slog.Info("processing plan", "plan", "01")
//	    slog.Error("run failed", "error", err)
//	}
//
// The LOG_LEVEL environment variable controls verbosity (DEBUG, INFO, WARN,
// ERROR; case-insensitive; default INFO):
//
//	LOG_LEVEL=debug rasctl run
package logging
