package notify

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"i3-scratchpad/pkg/logger"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

func (t NotificationType) String() string {
	if t == Error {
		return "error"
	}
	return "info"
}

// NotifyService reports messages to the user, on the terminal when there is
// one and through the desktop notification daemon otherwise. The daemon is
// reached over D-Bus first and through dunstify or notify-send after that.
type NotifyService struct {
	log        *logger.Logger
	title      string
	out        io.Writer
	isTerminal func() bool
	sendBus    func(title string, message string, nType NotificationType) error
}

// NewNotifyService creates a notification service printing to stderr.
func NewNotifyService(title string, log *logger.Logger) *NotifyService {
	return &NotifyService{
		log:        log,
		title:      title,
		out:        os.Stderr,
		isTerminal: stderrIsTerminal,
		sendBus:    sendDBus,
	}
}

// Interactive reports whether stderr is a terminal someone is watching.
func (n *NotifyService) Interactive() bool {
	return n.isTerminal()
}

// Show displays a notification of the specified type
func (n *NotifyService) Show(message string, nType NotificationType) error {
	if n.isTerminal() {
		return n.printToTerminal(message, nType)
	}

	err := n.sendBus(n.title, message, nType)
	if err == nil {
		n.log.Debug("Notification sent over D-Bus", "type", nType)
		return nil
	}
	n.log.Debug("D-Bus notification failed", "error", err)

	err = n.trySystemNotification(message, nType)
	if err == nil {
		return nil
	}
	n.log.Debug("Desktop notification unavailable", "error", err)

	// Nobody may be watching stderr, but it is all that is left.
	return n.printToTerminal(message, nType)
}

func (n *NotifyService) printToTerminal(message string, nType NotificationType) error {
	prefix := n.title
	if nType == Error {
		prefix += " error"
	}
	_, err := fmt.Fprintf(n.out, "%s: %s\n", prefix, message)
	return err
}

func stderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
