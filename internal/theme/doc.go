// Package theme handles CSS theme loading and hot-reload for osduid.
// It supports loading themes from ~/.config/osdui/themes/ and provides
// embedded themes for use when no custom theme is configured. Themes style
// the OSD widget classes; the computed per-monitor styles take precedence.
package theme
