// Package daemon ties the OSD controller to the outside world for osduid:
// D-Bus requests, settings and theme reloads, the shared state file and
// desktop notifications about configuration problems.
package daemon
