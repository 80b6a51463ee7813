// Package chooser runs a dmenu-compatible program over the scratchpad
// labels and maps its answer back to a window.
package chooser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"i3-scratchpad/internal/proc"
	"i3-scratchpad/internal/scratchpad"
	"i3-scratchpad/pkg/logger"
)

// DefaultCommand is run when no chooser is configured.
const DefaultCommand = "dmenu"

// Exit statuses sh uses for a command it could not find or execute.
const (
	exitNotExecutable = 126
	exitNotFound      = 127
)

// UnmatchedSelectionError reports chooser output that names none of the
// offered labels.
type UnmatchedSelectionError struct {
	Choice string
}

func (e *UnmatchedSelectionError) Error() string {
	return fmt.Sprintf("chooser returned %q, which is not one of the offered windows", e.Choice)
}

// Result is the outcome of one chooser run. Cancelled is set when the user
// dismissed the chooser without picking anything.
type Result struct {
	ID        uint64
	Label     string
	Cancelled bool
}

type Chooser struct {
	command string
	fuzzy   bool
	stderr  io.Writer
	log     *logger.Logger
}

type Option func(*Chooser)

// WithFuzzy enables resolving free-text answers to the single closest label.
func WithFuzzy(enabled bool) Option {
	return func(c *Chooser) {
		c.fuzzy = enabled
	}
}

// WithStderr sets where the chooser's stderr goes. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *Chooser) {
		c.stderr = w
	}
}

// New creates a chooser running command through sh -c.
func New(command string, log *logger.Logger, opts ...Option) *Chooser {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	c := &Chooser{
		command: command,
		stderr:  os.Stderr,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Command returns the shell command the chooser runs.
func (c *Chooser) Command() string {
	return c.command
}

// FormatInput renders labels as chooser input, one per line, each line
// newline-terminated.
func FormatInput(labels []string) string {
	var b strings.Builder
	for _, label := range labels {
		b.WriteString(label)
		b.WriteByte('\n')
	}
	return b.String()
}

// Choose offers entries to the user and returns the selected window.
func (c *Chooser) Choose(entries []scratchpad.Entry) (Result, error) {
	c.log.Debug("Starting chooser", "command", c.command, "entry_count", len(entries))

	output, err := c.run(FormatInput(scratchpad.Labels(entries)))
	if err != nil {
		return Result{}, err
	}
	return c.resolve(entries, output)
}

// run feeds input to the chooser and returns everything it printed. The
// input is copied by os/exec while Output waits, so a chooser that writes
// before draining stdin cannot deadlock us.
func (c *Chooser) run(input string) (string, error) {
	cmd := exec.Command("sh", "-c", c.command)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = c.stderr

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			c.log.Error("Failed to run chooser", err, "command", c.command)
			return "", proc.Wrap(cmd, err)
		}

		switch code := exitErr.ExitCode(); code {
		case exitNotExecutable, exitNotFound:
			c.log.Error("Chooser command could not be run", err, "command", c.command, "exit_code", code)
			return "", proc.Wrap(cmd, err)
		default:
			// dmenu and rofi exit 1 on Escape; the output decides.
			c.log.Debug("Chooser exited with code", "exit_code", code)
		}
	}

	if !utf8.Valid(output) {
		return "", proc.Wrap(cmd, fmt.Errorf("chooser output is not valid UTF-8"))
	}

	c.log.Debug("Chooser output", "output", string(output))
	return string(output), nil
}

func (c *Chooser) resolve(entries []scratchpad.Entry, output string) (Result, error) {
	choice := strings.TrimRightFunc(output, unicode.IsSpace)
	if choice == "" {
		c.log.Info("No selection made in chooser")
		return Result{Cancelled: true}, nil
	}

	if id, ok := scratchpad.Lookup(entries, choice); ok {
		c.log.Debug("Resolved selection", "label", choice, "window", id)
		return Result{ID: id, Label: choice}, nil
	}

	if c.fuzzy {
		if label, ok := closestLabel(choice, scratchpad.Labels(entries)); ok {
			id, _ := scratchpad.Lookup(entries, label)
			c.log.Info("Resolved free-text selection", "choice", choice, "label", label, "window", id)
			return Result{ID: id, Label: label}, nil
		}
	}

	c.log.Warn("Selection does not match any entry", "choice", choice)
	return Result{}, &UnmatchedSelectionError{Choice: choice}
}

// closestLabel returns the label that matches choice with a strictly lower
// distance than every other candidate.
func closestLabel(choice string, labels []string) (string, bool) {
	ranks := fuzzy.RankFindNormalizedFold(choice, labels)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		return "", false
	}
	return ranks[0].Target, true
}
