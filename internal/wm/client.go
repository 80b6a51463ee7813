package wm

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"i3-scratchpad/internal/proc"
	"i3-scratchpad/internal/tree"
	"i3-scratchpad/pkg/logger"
)

// CommandError reports a command message the manager rejected in part or
// in full.
type CommandError struct {
	Command  string
	Failures []string
	// Err is the process error when the msg tool also exited non-zero.
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %s", e.Command, strings.Join(e.Failures, "; "))
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Client talks to i3 or sway through their msg tool.
type Client struct {
	binary string
	log    *logger.Logger
}

func (c *Client) Name() string {
	if filepath.Base(c.binary) == SwayMsg {
		return "sway"
	}
	return "i3"
}

// Tree runs the get_tree query and decodes its reply.
func (c *Client) Tree() (*tree.RawNode, error) {
	cmd := exec.Command(c.binary, "-t", "get_tree")
	output, err := cmd.Output()
	if err != nil {
		c.log.Error("Failed to query tree", err, "msg", c.binary)
		return nil, proc.Wrap(cmd, err)
	}
	c.log.Debug("Received tree", "size_bytes", len(output))

	raw, err := tree.DecodeBytes(output)
	if err != nil {
		c.log.Error("Failed to parse tree reply", err, "msg", c.binary)
		return nil, err
	}
	return raw, nil
}

// ShowCommand builds the command that takes window id out of the
// scratchpad and docks it as a tiled window.
func ShowCommand(id uint64) string {
	return fmt.Sprintf("[id=%d] scratchpad show; [id=%d] floating disable", id, id)
}

// Dispatch sends ShowCommand for id and checks every reply.
func (c *Client) Dispatch(id uint64) error {
	command := ShowCommand(id)
	c.log.Debug("Dispatching command", "command", command)

	cmd := exec.Command(c.binary, "-t", "command", command)
	output, runErr := cmd.Output()

	var replies []CommandReply
	if err := json.Unmarshal(output, &replies); err != nil {
		if runErr != nil {
			c.log.Error("Failed to run command", runErr, "command", command)
			return proc.Wrap(cmd, runErr)
		}
		// Some i3-msg builds print nothing on success.
		c.log.Warn("Unreadable command reply", "error", err, "output", string(output))
		return nil
	}

	var failures []string
	for i, reply := range replies {
		if reply.Success {
			continue
		}
		msg := reply.Error
		if msg == "" {
			msg = "unknown error"
		}
		failures = append(failures, fmt.Sprintf("#%d: %s", i+1, msg))
	}

	if len(failures) > 0 {
		cmdErr := &CommandError{Command: command, Failures: failures}
		if runErr != nil {
			cmdErr.Err = proc.Wrap(cmd, runErr)
		}
		c.log.Error("Manager rejected command", cmdErr)
		return cmdErr
	}
	if runErr != nil {
		c.log.Error("Failed to run command", runErr, "command", command)
		return proc.Wrap(cmd, runErr)
	}

	c.log.Info("Window shown", "window", id, "wm", c.Name())
	return nil
}

var _ WindowManager = (*Client)(nil)
