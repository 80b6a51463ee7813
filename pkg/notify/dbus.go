package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notificationsMethod = notificationsDest + ".Notify"
	expireTimeoutMillis = int32(5000)
)

// Urgency levels from the desktop notifications specification.
const (
	urgencyNormal   = byte(1)
	urgencyCritical = byte(2)
)

// sendDBus talks to the notification daemon on the session bus directly,
// which works without dunstify or notify-send installed.
func sendDBus(title string, message string, nType NotificationType) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	urgency := urgencyNormal
	if nType == Error {
		urgency = urgencyCritical
		title += " error"
	}
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgency),
	}

	obj := conn.Object(notificationsDest, notificationsPath)
	call := obj.Call(notificationsMethod, 0,
		title,          // app_name
		uint32(0),      // replaces_id
		"",             // app_icon
		title,          // summary
		message,        // body
		[]string{},     // actions
		hints,          // hints
		expireTimeoutMillis)
	if call.Err != nil {
		return fmt.Errorf("%s: %w", notificationsMethod, call.Err)
	}
	return nil
}
