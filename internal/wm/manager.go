package wm

import (
	"fmt"
	"os"
	"os/exec"

	"i3-scratchpad/internal/proc"
	"i3-scratchpad/pkg/logger"
)

const (
	I3Msg   = "i3-msg"
	SwayMsg = "swaymsg"
)

// Detect picks the msg tool for the running session. sway exports
// SWAYSOCK to its clients; everything else is treated as i3.
func Detect() string {
	if os.Getenv("SWAYSOCK") != "" {
		return SwayMsg
	}
	return I3Msg
}

// New creates a client for binary, detecting it when empty.
func New(binary string, log *logger.Logger) (*Client, error) {
	if binary == "" {
		binary = Detect()
		log.Debug("Detected window manager", "msg", binary)
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		log.Error("Manager msg tool not found in PATH", err, "msg", binary)
		return nil, &proc.Error{
			Program:  binary,
			ExitCode: -1,
			Err:      fmt.Errorf("not found in PATH: %w", err),
		}
	}
	log.Debug("Found manager msg tool", "path", path)

	return &Client{binary: binary, log: log}, nil
}
