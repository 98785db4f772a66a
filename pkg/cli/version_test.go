// Copyright 2025 Hydrostack Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "version.json")

	cmd := rootCmd()
	err := cmd.Run(context.Background(), []string{
		"rasctl", "version", "--format", "json", "--output", outFile,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal(data, &info))
	assert.Equal(t, name, info.Name)
	assert.Equal(t, version, info.Version)
	assert.NotEmpty(t, info.Commit)
}

func TestVersionCommandNormalizesRelease(t *testing.T) {
	prev := version
	version = "v1.2.3"
	t.Cleanup(func() { version = prev })

	outFile := filepath.Join(t.TempDir(), "version.json")

	cmd := rootCmd()
	err := cmd.Run(context.Background(), []string{
		"rasctl", "version", "--format", "json", "--output", outFile,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal(data, &info))
	assert.Equal(t, "1.2.3", info.Normalized)
}
