package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-d", "/tmp/feed", "-f", "x.db", "-l", "info", "-s", "oldest"},
			expected: &Config{
				DataDir:      "/tmp/feed",
				DatabaseFile: "x.db",
				LogLevel:     "info",
				DefaultSort:  "oldest",
			},
		},
		{
			name:     "config and unknown flags are ignored",
			args:     []string{"cmd", "-c", "cfg.json", "-x", "1", "-f", ":memory:"},
			expected: &Config{DatabaseFile: ":memory:"},
		},
		{
			name:        "flag without value panics",
			args:        []string{"cmd", "-d"},
			expectPanic: true,
		},
	}

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
