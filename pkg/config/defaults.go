package config

// DefaultChooser is the chooser command used when none is given.
const DefaultChooser = "dmenu"

// Default returns the configuration used when no flags are given: dmenu as
// chooser, auto-detected msg tool, warn-level logging to stderr only, and
// desktop notifications for fatal errors.
func Default() *Config {
	return &Config{
		chooser: DefaultChooser,
		notify:  true,
	}
}
