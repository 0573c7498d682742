package daemon

import (
	"log/slog"
	"sync"
	"time"

	godbus "github.com/godbus/dbus/v5"

	"github.com/jmylchreest/osdui/internal/dbus"
)

// NotificationLevel indicates the urgency/severity of an internal notification.
type NotificationLevel int

const (
	// NotificationLevelInfo is for informational messages (low urgency).
	NotificationLevelInfo NotificationLevel = iota
	// NotificationLevelWarning is for warning messages (normal urgency).
	NotificationLevelWarning
	// NotificationLevelError is for error messages (critical urgency).
	NotificationLevelError
)

// SendFunc delivers a desktop notification.
type SendFunc func(n *dbus.Notification) (uint32, error)

// BusSender sends through org.freedesktop.Notifications on conn.
func BusSender(conn *godbus.Conn) SendFunc {
	return func(n *dbus.Notification) (uint32, error) {
		return dbus.SendNotification(conn, n)
	}
}

// Notifier sends desktop notifications about osduid's own problems.
// Repeats of the same notification are rate limited.
type Notifier struct {
	mu     sync.Mutex
	logger *slog.Logger

	send SendFunc

	// Rate limiting
	lastNotifyTime map[string]time.Time // key -> last notification time
	minInterval    time.Duration        // minimum time between same notifications

	enabled bool
}

// NewNotifier creates a Notifier delivering through send.
func NewNotifier(send SendFunc, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger:         logger,
		send:           send,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		enabled:        true,
	}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between duplicate notifications.
func (n *Notifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify sends a notification unless one with the same key went out less
// than the minimum interval ago. It reports whether a notification was sent.
func (n *Notifier) Notify(key, summary, body string, level NotificationLevel) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.enabled {
		return false
	}
	if n.send == nil {
		n.logger.Debug("notification skipped: no sender", "summary", summary)
		return false
	}

	if lastTime, ok := n.lastNotifyTime[key]; ok {
		if time.Since(lastTime) < n.minInterval {
			n.logger.Debug("notification rate-limited", "key", key, "summary", summary)
			return false
		}
	}
	n.lastNotifyTime[key] = time.Now()

	urgency := dbus.UrgencyNormal
	icon := "dialog-warning"
	switch level {
	case NotificationLevelInfo:
		urgency = dbus.UrgencyLow
		icon = "dialog-information"
	case NotificationLevelError:
		urgency = dbus.UrgencyCritical
		icon = "dialog-error"
	}

	notification := &dbus.Notification{
		AppName: "osduid",
		AppIcon: icon,
		Summary: summary,
		Body:    body,
		Hints: map[string]godbus.Variant{
			"urgency":       godbus.MakeVariant(urgency),
			"transient":     godbus.MakeVariant(true),
			"desktop-entry": godbus.MakeVariant("osduid"),
		},
		ExpireTimeout: 5000,
	}

	n.logger.Debug("sending notification", "key", key, "summary", summary, "level", level)
	if _, err := n.send(notification); err != nil {
		n.logger.Warn("failed to send notification", "key", key, "error", err)
		return false
	}
	return true
}

// NotifyConfigReloaded reports a successful settings reload.
func (n *Notifier) NotifyConfigReloaded() {
	n.Notify(
		"config-reload",
		"OSD Settings Reloaded",
		"osduid settings have been reloaded.",
		NotificationLevelInfo,
	)
}

// NotifyConfigError reports settings that failed to load or validate.
// The previous settings stay in effect.
func (n *Notifier) NotifyConfigError(err error) {
	n.Notify(
		"config-error",
		"OSD Settings Error",
		"Keeping previous settings: "+err.Error(),
		NotificationLevelWarning,
	)
}

// NotifyThemeError reports a theme that failed to load.
func (n *Notifier) NotifyThemeError(err error) {
	n.Notify(
		"theme-error",
		"OSD Theme Error",
		"Failed to load theme: "+err.Error(),
		NotificationLevelWarning,
	)
}

// NotifyDisplayError reports that no OSD can be drawn.
func (n *Notifier) NotifyDisplayError(err error) {
	n.Notify(
		"display-error",
		"OSD Unavailable",
		err.Error(),
		NotificationLevelError,
	)
}
