package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jmylchreest/osdui/internal/model"
)

// parseLevel parses a level percentage. A trailing % is accepted.
func parseLevel(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid level %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid level %q: must be finite", s)
	}
	return v, nil
}

// parseMonitors parses monitor specs of the form WIDTHxHEIGHT[:CONNECTOR].
// Indexes follow the argument order and the primary monitor is picked the
// way the daemon picks it.
func parseMonitors(args []string) ([]model.Monitor, error) {
	monitors := make([]model.Monitor, 0, len(args))
	for i, arg := range args {
		size, connector, _ := strings.Cut(arg, ":")
		ws, hs, ok := strings.Cut(strings.ToLower(size), "x")
		if !ok {
			return nil, fmt.Errorf("invalid monitor %q: want WIDTHxHEIGHT[:CONNECTOR]", arg)
		}
		w, err := strconv.Atoi(ws)
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("invalid monitor width in %q", arg)
		}
		h, err := strconv.Atoi(hs)
		if err != nil || h <= 0 {
			return nil, fmt.Errorf("invalid monitor height in %q", arg)
		}
		monitors = append(monitors, model.Monitor{
			Index:     i,
			Width:     w,
			Height:    h,
			Connector: connector,
		})
	}
	model.MarkPrimary(monitors)
	return monitors, nil
}
