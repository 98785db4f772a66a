// Copyright 2025 Hydrostack Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrostack/ras-compute/pkg/config"
)

func TestNewDocker(t *testing.T) {
	tests := []struct {
		name      string
		image     string
		wantErr   bool
		wantImage string
	}{
		{
			name:      "fully qualified",
			image:     "ghcr.io/hydrostack/ras:6.5",
			wantImage: "ghcr.io/hydrostack/ras:6.5",
		},
		{
			name:      "bare name gets latest tag",
			image:     "hydrostack/ras",
			wantImage: "hydrostack/ras:latest",
		},
		{
			name:    "invalid reference",
			image:   "Not A Valid Image!!",
			wantErr: true,
		},
		{
			name:    "empty reference",
			image:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDocker(tt.image, t.TempDir(), time.Minute)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantImage, d.image)
			assert.Equal(t, config.ExecutorDocker, d.Kind())
		})
	}
}
