package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	cfg := Default()
	fs := pflag.NewFlagSet("i3-scratchpad", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	if err := cfg.ApplyArgs(fs.Args()); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func TestDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, DefaultChooser, cfg.GetChooser())
	assert.Equal(t, "", cfg.GetMsgBinary())
	assert.Equal(t, zerolog.WarnLevel, cfg.GetLogLevel())
	assert.Equal(t, "", cfg.GetLogFile())
	assert.True(t, cfg.NotifyEnabled())
	assert.False(t, cfg.FuzzyEnabled())
}

func TestFlagsAndChooser(t *testing.T) {
	cfg, err := parse(t, "-d", "--msg", "swaymsg", "--log-file", "/tmp/scratch.log", "--notify=false", "--fuzzy", "rofi -dmenu -i")
	require.NoError(t, err)

	assert.Equal(t, "rofi -dmenu -i", cfg.GetChooser())
	assert.Equal(t, "swaymsg", cfg.GetMsgBinary())
	assert.Equal(t, zerolog.DebugLevel, cfg.GetLogLevel())
	assert.Equal(t, "/tmp/scratch.log", cfg.GetLogFile())
	assert.False(t, cfg.NotifyEnabled())
	assert.True(t, cfg.FuzzyEnabled())
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{
			name:      "too many positional arguments",
			args:      []string{"--", "rofi", "-dmenu"},
			errSubstr: "at most one chooser command",
		},
		{
			name:      "blank chooser",
			args:      []string{"  "},
			errSubstr: "must not be empty",
		},
		{
			name:      "msg with arguments",
			args:      []string{"--msg", "i3-msg -s /tmp/sock"},
			errSubstr: "program name or path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}
