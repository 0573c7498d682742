package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkPrimary(t *testing.T) {
	t.Run("internal panel wins", func(t *testing.T) {
		monitors := []Monitor{
			{Index: 0, Connector: "DP-1"},
			{Index: 1, Connector: "eDP-1"},
		}
		MarkPrimary(monitors)
		assert.False(t, monitors[0].Primary)
		assert.True(t, monitors[1].Primary)
	})

	t.Run("first monitor otherwise", func(t *testing.T) {
		monitors := []Monitor{
			{Index: 0, Connector: "HDMI-A-1"},
			{Index: 1, Connector: "DP-2", Primary: true},
		}
		MarkPrimary(monitors)
		assert.True(t, monitors[0].Primary)
		assert.False(t, monitors[1].Primary)
	})

	t.Run("empty", func(t *testing.T) {
		MarkPrimary(nil)
	})
}

func TestIsBuiltinConnector(t *testing.T) {
	assert.True(t, IsBuiltinConnector("eDP-1"))
	assert.True(t, IsBuiltinConnector("LVDS-1"))
	assert.True(t, IsBuiltinConnector("DSI-1"))
	assert.False(t, IsBuiltinConnector("HDMI-A-1"))
	assert.False(t, IsBuiltinConnector(""))
}
