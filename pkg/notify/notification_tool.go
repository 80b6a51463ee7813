package notify

import (
	"fmt"
	"os/exec"
)

type notificationTool struct {
	name         string
	buildCommand func(tool string, title string, message string, nType NotificationType) *exec.Cmd
}

var notificationTools = []notificationTool{
	{
		name: "dunstify",
		buildCommand: func(tool string, title string, message string, nType NotificationType) *exec.Cmd {
			urgency := "normal"
			if nType == Error {
				urgency = "critical"
				title += " error"
			}
			return exec.Command(tool, "-u", urgency, "-t", "5000", title, message)
		},
	},
	{
		name: "notify-send",
		buildCommand: func(tool string, title string, message string, nType NotificationType) *exec.Cmd {
			urgency := "normal"
			if nType == Error {
				urgency = "critical"
				title += " error"
			}
			return exec.Command(tool, "-u", urgency, title, message)
		},
	},
}

func (n *NotifyService) trySystemNotification(message string, nType NotificationType) error {
	for _, tool := range notificationTools {
		if _, err := exec.LookPath(tool.name); err != nil {
			continue
		}
		cmd := tool.buildCommand(tool.name, n.title, message, nType)
		if err := cmd.Run(); err != nil {
			n.log.Debug("Notification tool failed", "tool", tool.name, "error", err)
			continue
		}
		n.log.Debug("Notification sent successfully",
			"tool", tool.name,
			"type", nType)
		return nil
	}
	return fmt.Errorf("no notification tools available")
}
