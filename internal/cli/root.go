// Package cli provides the command-line interface for i3-scratchpad.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"i3-scratchpad/internal/app"
	"i3-scratchpad/internal/chooser"
	"i3-scratchpad/internal/proc"
	"i3-scratchpad/internal/scratchpad"
	"i3-scratchpad/internal/tree"
	"i3-scratchpad/internal/wm"
	"i3-scratchpad/pkg/config"
	"i3-scratchpad/pkg/logger"
	"i3-scratchpad/pkg/notify"
)

// Version is set at build time.
var Version = "0.1.0"

// Exit statuses, one per error class.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitDecode      = 3
	ExitStructural  = 4
	ExitSubprocess  = 5
	ExitUnmatched   = 6
	notifyTitleName = "i3-scratchpad"
)

type notifier interface {
	Interactive() bool
	Show(message string, nType notify.NotificationType) error
}

var newNotifier = func(log *logger.Logger) notifier {
	return notify.NewNotifyService(notifyTitleName, log)
}

// UsageError reports bad flags or arguments.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewRootCmd creates the root command. Logs and diagnostics go to the
// command's error writer.
func NewRootCmd() *cobra.Command {
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:   "i3-scratchpad [flags] [chooser-command]",
		Short: "Pick a scratchpad window with dmenu and show it tiled",
		Long: `i3-scratchpad lists the windows in the i3 (or sway) scratchpad through a
dmenu-compatible chooser and shows the selected one as a tiled window.

The optional argument is the chooser command, run through sh -c. It
defaults to dmenu; quote it to pass options, e.g. 'rofi -dmenu -i'.`,
		Version: Version,
		Args: func(_ *cobra.Command, args []string) error {
			if err := cfg.ApplyArgs(args); err != nil {
				return &UsageError{Err: err}
			}
			if err := cfg.Validate(); err != nil {
				return &UsageError{Err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cfg, cmd.ErrOrStderr())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	// Everything after the first positional belongs to the chooser.
	rootCmd.Flags().SetInterspersed(false)
	cfg.BindFlags(rootCmd.Flags())

	return rootCmd
}

func run(cfg *config.Config, stderr io.Writer) error {
	log, err := logger.NewLogger(
		logger.WithConsole(stderr),
		logger.WithFile(cfg.GetLogFile()),
		logger.WithLevel(cfg.GetLogLevel()),
	)
	if err != nil {
		err = fmt.Errorf("initialize logger: %w", err)
		// No logger to report through.
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	defer log.Close()

	log.Debug("Starting i3-scratchpad",
		"version", Version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH)

	err = pick(cfg, log)
	if err == nil {
		return nil
	}

	log.Error("i3-scratchpad failed", err, "exit_code", ExitCode(err))
	if cfg.NotifyEnabled() {
		notifyFailure(newNotifier(log), log, err)
	}
	return err
}

// notifyFailure surfaces err on the desktop. On a terminal the log line
// above is already visible, so nothing more is shown.
func notifyFailure(n notifier, log *logger.Logger, err error) {
	if n.Interactive() {
		return
	}
	if nerr := n.Show(err.Error(), notify.Error); nerr != nil {
		log.Debug("Failed to show notification", "error", nerr)
	}
}

func pick(cfg *config.Config, log *logger.Logger) error {
	picker, err := app.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}

	outcome, err := picker.Run()
	if err != nil {
		return err
	}
	if outcome.Cancelled {
		log.Debug("Nothing selected", "offered", outcome.Offered)
		return nil
	}
	log.Debug("Done", "window", outcome.Window, "label", outcome.Label)
	return nil
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	var (
		usageErr     *UsageError
		decodeErr    *tree.DecodeError
		procErr      *proc.Error
		commandErr   *wm.CommandError
		unmatchedErr *chooser.UnmatchedSelectionError
	)

	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.As(err, &decodeErr):
		return ExitDecode
	case errors.Is(err, scratchpad.ErrStructural):
		return ExitStructural
	case errors.As(err, &commandErr), errors.As(err, &procErr):
		return ExitSubprocess
	case errors.As(err, &unmatchedErr):
		return ExitUnmatched
	default:
		return ExitFailure
	}
}

// Execute runs the root command with args and returns the exit status.
func Execute(args []string) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n\n%s", err, rootCmd.UsageString())
	}
	return ExitCode(err)
}
