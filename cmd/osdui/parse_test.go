package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"40", 40, false},
		{"40%", 40, false},
		{" 12.5 ", 12.5, false},
		{"150", 150, false},
		{"-1", -1, false},
		{"NaN", 0, true},
		{"inf", 0, true},
		{"loud", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMonitors(t *testing.T) {
	monitors, err := parseMonitors([]string{"2560x1440:DP-1", "1920X1200:eDP-1", "800x600"})
	require.NoError(t, err)
	require.Len(t, monitors, 3)

	assert.Equal(t, 0, monitors[0].Index)
	assert.Equal(t, 2560, monitors[0].Width)
	assert.Equal(t, 1440, monitors[0].Height)
	assert.Equal(t, "DP-1", monitors[0].Connector)
	assert.Equal(t, "", monitors[2].Connector)

	// The internal panel is primary
	assert.False(t, monitors[0].Primary)
	assert.True(t, monitors[1].Primary)
	assert.False(t, monitors[2].Primary)
}

func TestParseMonitors_Invalid(t *testing.T) {
	for _, arg := range []string{"1920", "0x1080", "1920x-1", "wide x tall"} {
		t.Run(arg, func(t *testing.T) {
			_, err := parseMonitors([]string{arg})
			assert.Error(t, err)
		})
	}
}
