// Package dbus exposes the OSD daemon on the session bus and provides the
// client used by the CLI. It also sends desktop notifications through
// org.freedesktop.Notifications.
package dbus
