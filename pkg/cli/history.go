/*
Copyright © 2025 Hydrostack Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hydrostack/ras-compute/pkg/store"
)

func historyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "history",
		EnableShellCompletion: true,
		Usage:                 "List or show recorded batch runs",
		ArgsUsage:             "[RUN_ID]",
		Description: `Without an argument, lists recent batch runs from the history
database. With a run ID, shows that run including per-plan results.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "History database path",
				Sources: cli.EnvVars("RAS_HISTORY_DB"),
				Value:   "ras-history.db",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of runs to list",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := store.New(cmd.String("db"))
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer st.Close() //nolint:errcheck

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer w.Close() //nolint:errcheck

			if id := cmd.Args().First(); id != "" {
				rec, err := st.Get(ctx, id)
				if err != nil {
					return err
				}
				return w.Serialize(ctx, rec)
			}

			records, err := st.List(ctx, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			return w.Serialize(ctx, records)
		},
	}
}
