// Copyright 2025 Hydrostack Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrostack/ras-compute/pkg/config"
)

func TestLocalExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	dir := t.TempDir()
	l := NewLocal("sh", dir, 30*time.Second)
	assert.Equal(t, config.ExecutorLocal, l.Kind())

	exe, err := l.Execute(context.Background(), config.Plan{
		Number: "01",
		Args:   []string{"-c", "echo solver output"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, exe.ExitCode)
	assert.Contains(t, exe.Output, "solver output")
	// No companion file, so messages fall back to the captured output.
	assert.Equal(t, exe.Output, exe.Messages)
	assert.Greater(t, exe.Duration, time.Duration(0))
}

func TestLocalExecuteNonzeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	l := NewLocal("sh", t.TempDir(), 30*time.Second)

	exe, err := l.Execute(context.Background(), config.Plan{
		Number: "02",
		Args:   []string{"-c", "exit 3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, exe.ExitCode)
}

func TestLocalExecuteMissingBinary(t *testing.T) {
	l := NewLocal("no-such-solver-binary", t.TempDir(), time.Second)

	exe, err := l.Execute(context.Background(), config.Plan{Number: "01"})
	require.Error(t, err)
	assert.Nil(t, exe)
}

func TestLocalExecuteReadsCompanionFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	dir := t.TempDir()
	msgs := "Starting Unsteady Flow Simulation\nFinished Complete Process\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "plan01.p01.computeMsgs.txt"), []byte(msgs), 0o600))
	// Stand-in solver plan: sh runs it as a script.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "plan01.p01"), []byte("exit 0\n"), 0o600))

	l := NewLocal("sh", dir, 30*time.Second)
	exe, err := l.Execute(context.Background(), config.Plan{
		Number: "01",
		File:   "plan01.p01",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, exe.ExitCode)
	assert.Equal(t, msgs, exe.Messages)
}
