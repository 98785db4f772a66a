/*
Copyright © 2025 Hydrostack Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hydrostack/ras-compute/pkg/messages"
	"github.com/hydrostack/ras-compute/pkg/result"
)

// ParseReport is the parse command output: classification plus the results
// row for the message file.
type ParseReport struct {
	Success bool       `json:"success" yaml:"success"`
	Row     result.Row `json:"row" yaml:"row"`
}

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:                  "parse",
		EnableShellCompletion: true,
		Usage:                 "Parse a HEC-RAS compute-message file",
		ArgsUsage:             "FILE (use - for stdin)",
		Description: `Parse the solver's compute messages and report:
  - whether the run reached completion
  - error and warning counts with the first error line
  - runtime breakdown per computation task
  - computation speeds and volume accounting error

The report can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "plan",
				Usage: "Plan number to attach to the report",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Plan title to attach to the report",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("message file argument is required (use - for stdin)")
			}

			var data []byte
			var err error
			if path == "-" {
				data, err = io.ReadAll(cmd.Reader)
			} else {
				data, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("failed to read messages: %w", err)
			}

			text := string(data)
			summary := messages.Parse(text)
			runtime := messages.ParseRuntime(text)

			row := result.NewRow(cmd.String("plan"), summary, &runtime)
			row.Title = cmd.String("title")

			report := ParseReport{
				Success: messages.IsSuccessfulCompletion(text) && !summary.HasErrors,
				Row:     row,
			}

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer w.Close() //nolint:errcheck

			return w.Serialize(ctx, report)
		},
	}
}
