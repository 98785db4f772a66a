/*
Copyright © 2025 Hydrostack Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/hydrostack/ras-compute/pkg/logging"
	"github.com/hydrostack/ras-compute/pkg/serializer"
)

const (
	name           = "rasctl"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (supported values: %s)", serializer.SupportedFormats()),
		Value:   string(serializer.FormatYAML),
	}

	configFlag = &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "Project configuration file",
		Sources:  cli.EnvVars("RAS_CONFIG"),
		Required: true,
	}
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               version,
		EnableShellCompletion: true,
		Usage:                 "HEC-RAS compute orchestration and message parsing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			parseCmd(),
			runCmd(),
			historyCmd(),
			versionCmd(),
		},
	}
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newWriter builds a serializer for the command's shared output flags.
func newWriter(cmd *cli.Command) (*serializer.Writer, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown output format: %q", format)
	}
	return serializer.NewFileWriterOrStdout(format, cmd.String("output")), nil
}
