/*
Copyright © 2025 Hydrostack Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	ver "github.com/hydrostack/ras-compute/pkg/version"
)

// VersionInfo is the version command output.
type VersionInfo struct {
	Name       string `json:"name" yaml:"name"`
	Version    string `json:"version" yaml:"version"`
	Normalized string `json:"normalized,omitempty" yaml:"normalized,omitempty"`
	Commit     string `json:"commit" yaml:"commit"`
	Date       string `json:"date" yaml:"date"`
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info := VersionInfo{
				Name:    name,
				Version: version,
				Commit:  commit,
				Date:    date,
			}
			// Release builds carry a semantic version; dev builds don't.
			if v, err := ver.Parse(version); err == nil {
				info.Normalized = v.String()
			}

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer w.Close() //nolint:errcheck

			return w.Serialize(ctx, info)
		},
	}
}
