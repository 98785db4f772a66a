// Package cli implements the rasctl command-line interface.
//
// # Commands
//
// parse - Parse a compute-message file:
//
//	rasctl parse messages.computeMsgs.txt [--plan 01] [--format json|yaml|table|csv]
//
// Reads the solver's compute messages from a file (or stdin with "-") and
// reports completion, error and warning classification, runtime breakdown,
// and volume accounting error.
//
// run - Execute a batch of plans:
//
//	rasctl run --config project.yaml [--output results.csv --format csv]
//
// Loads the project configuration, runs every plan through the configured
// executor (local process, docker container, or Kubernetes Job) with bounded
// parallelism, and writes the per-plan results table. When a history
// database is configured, the batch is recorded.
//
// history - Inspect recorded runs:
//
//	rasctl history [run-id] [--limit 20]
//
// Without an argument lists recent batch runs; with a run ID shows the
// per-plan detail of that run.
//
// version - Show build information.
//
// # Global Flags
//
//	--log-level   Logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  General error, or one or more plans failed
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/hydrostack/ras-compute/pkg/cli.version=1.0.0'"
package cli
