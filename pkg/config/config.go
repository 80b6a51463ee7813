package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// Config holds the runtime configuration. It only ever comes from the
// command line; fields are private so that the parsed value stays fixed.
type Config struct {
	chooser string
	msg     string
	debug   bool
	logFile string
	notify  bool
	fuzzy   bool
}

// BindFlags registers the configuration flags on fs.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.debug, "debug", "d", c.debug, "enable debug logging")
	fs.StringVar(&c.logFile, "log-file", c.logFile, "also write logs to this file")
	fs.StringVar(&c.msg, "msg", c.msg, "window manager msg tool (default: swaymsg under sway, i3-msg otherwise)")
	fs.BoolVar(&c.notify, "notify", c.notify, "report fatal errors as desktop notifications when not run from a terminal")
	fs.BoolVar(&c.fuzzy, "fuzzy", c.fuzzy, "resolve free-text chooser output to the single closest window")
}

// ApplyArgs takes the chooser override from the positional arguments.
func (c *Config) ApplyArgs(args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 1:
		c.chooser = args[0]
		return nil
	default:
		return fmt.Errorf("expected at most one chooser command, got %d arguments (quote the command to pass options)", len(args))
	}
}

// Validate ensures the configuration can be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.chooser) == "" {
		return fmt.Errorf("chooser command must not be empty")
	}
	if strings.ContainsAny(c.msg, " \t") {
		return fmt.Errorf("msg must be a program name or path, got %q", c.msg)
	}
	return nil
}

// GetChooser returns the shell command run as chooser.
func (c *Config) GetChooser() string {
	return c.chooser
}

// GetMsgBinary returns the msg tool override, empty for auto-detection.
func (c *Config) GetMsgBinary() string {
	return c.msg
}

// GetLogLevel returns the level implied by the debug flag.
func (c *Config) GetLogLevel() zerolog.Level {
	if c.debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

// GetLogFile returns the extra log file path, if any.
func (c *Config) GetLogFile() string {
	return c.logFile
}

// NotifyEnabled reports whether fatal errors may be sent as notifications.
func (c *Config) NotifyEnabled() bool {
	return c.notify
}

// FuzzyEnabled reports whether free-text chooser output is resolved fuzzily.
func (c *Config) FuzzyEnabled() bool {
	return c.fuzzy
}
