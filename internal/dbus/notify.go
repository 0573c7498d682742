package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsName      = "org.freedesktop.Notifications"
	notificationsPath      = "/org/freedesktop/Notifications"
	notificationsInterface = "org.freedesktop.Notifications"
)

// SendNotification sends n to the desktop notification server and returns
// the server-assigned ID.
func SendNotification(conn *dbus.Conn, n *Notification) (uint32, error) {
	if conn == nil {
		return 0, fmt.Errorf("not connected to D-Bus")
	}

	obj := conn.Object(notificationsName, notificationsPath)
	var id uint32
	if err := obj.Call(notificationsInterface+".Notify", 0, n.args()...).Store(&id); err != nil {
		return 0, fmt.Errorf("failed to send notification: %w", err)
	}
	return id, nil
}
