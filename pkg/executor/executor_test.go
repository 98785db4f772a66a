// Copyright 2025 Hydrostack Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrostack/ras-compute/pkg/config"
)

func TestNewFactory(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr bool
		kind    config.ExecutorKind
	}{
		{
			name: "local",
			cfg: &config.Config{
				Project:  t.TempDir(),
				Executor: config.Executor{Kind: config.ExecutorLocal, Binary: "ras"},
			},
			kind: config.ExecutorLocal,
		},
		{
			name: "docker",
			cfg: &config.Config{
				Project:  t.TempDir(),
				Executor: config.Executor{Kind: config.ExecutorDocker, Image: "ghcr.io/hydrostack/ras:6.5"},
			},
			kind: config.ExecutorDocker,
		},
		{
			name: "k8s is built elsewhere",
			cfg: &config.Config{
				Project:  t.TempDir(),
				Executor: config.Executor{Kind: config.ExecutorK8s, Image: "ras:6.5"},
			},
			wantErr: true,
		},
		{
			name: "unknown kind",
			cfg: &config.Config{
				Project:  t.TempDir(),
				Executor: config.Executor{Kind: "vm"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, ex.Kind())
		})
	}
}

func TestMessagesPath(t *testing.T) {
	assert.Equal(t, "", messagesPath("/proj", config.Plan{Number: "01"}))
	assert.Equal(t,
		filepath.Join("/proj", "plan01.p01.computeMsgs.txt"),
		messagesPath("/proj", config.Plan{Number: "01", File: "plan01.p01"}),
	)
}

func TestReadMessages(t *testing.T) {
	dir := t.TempDir()
	plan := config.Plan{Number: "01", File: "plan01.p01"}

	// Missing companion file falls back to captured output.
	assert.Equal(t, "captured", readMessages(dir, plan, "captured"))

	// Empty companion file also falls back.
	path := filepath.Join(dir, "plan01.p01.computeMsgs.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	assert.Equal(t, "captured", readMessages(dir, plan, "captured"))

	// A populated companion file wins over the captured output.
	require.NoError(t, os.WriteFile(path, []byte("Finished Unsteady Flow Simulation\n"), 0o600))
	assert.Equal(t, "Finished Unsteady Flow Simulation\n", readMessages(dir, plan, "captured"))
}
