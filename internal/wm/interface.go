package wm

import "i3-scratchpad/internal/tree"

type WindowManager interface {
	// Tree returns the manager's full layout tree
	Tree() (*tree.RawNode, error)
	// Dispatch shows the window from the scratchpad and tiles it
	Dispatch(id uint64) error
	// Name returns the WM name for logging/display
	Name() string
}

// CommandReply is one element of the reply to a command message; a
// message with several ';'-separated commands yields one reply each.
type CommandReply struct {
	Success    bool   `json:"success"`
	ParseError bool   `json:"parse_error,omitempty"`
	Error      string `json:"error,omitempty"`
}
