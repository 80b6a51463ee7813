// Package proc holds the error type shared by everything that shells out.
package proc

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Error reports a subprocess that could not be started, failed while
// exchanging data, or exited with a non-zero status.
type Error struct {
	Program  string
	Args     []string
	ExitCode int // -1 when the process never exited normally
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	cmdline := strings.TrimSpace(e.Program + " " + strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		msg := fmt.Sprintf("%s: exited with status %d", cmdline, e.ExitCode)
		if e.Stderr != "" {
			msg += ": " + e.Stderr
		}
		return msg
	}
	return fmt.Sprintf("%s: %v", cmdline, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap converts an error returned by cmd into an *Error. The program name
// is taken from cmd.Args so that LookPath expansion does not leak into
// messages.
func Wrap(cmd *exec.Cmd, err error) *Error {
	pe := &Error{ExitCode: -1, Err: err}
	if len(cmd.Args) > 0 {
		pe.Program = cmd.Args[0]
		pe.Args = cmd.Args[1:]
	} else {
		pe.Program = cmd.Path
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		pe.ExitCode = exitErr.ExitCode()
		pe.Stderr = strings.TrimSpace(string(exitErr.Stderr))
	}
	return pe
}
