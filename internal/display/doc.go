// Package display hosts the OSD windows: one GTK4 layer-shell overlay per
// monitor, the monitor layout as reported by GDK, and glib-backed timers.
// Everything in this package must run on the GTK main loop.
package display
