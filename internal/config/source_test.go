package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	src := NewStaticSource(nil)
	assert.Equal(t, DefaultSettings(), src.Current())

	var got []*Settings
	cancel := src.Subscribe(func(s *Settings) { got = append(got, s) })
	assert.Equal(t, 1, src.Subscribers())

	next := DefaultSettings()
	next.Size = 500
	src.Update(next)

	require.Len(t, got, 1)
	assert.Equal(t, 100.0, got[0].Size, "updates are sanitized")
	assert.Equal(t, 500.0, next.Size, "caller's settings are not modified")
	assert.Same(t, got[0], src.Current())

	cancel()
	cancel()
	assert.Equal(t, 0, src.Subscribers())

	src.Update(DefaultSettings())
	assert.Len(t, got, 1)
}

func TestFileSource_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "osdui.toml")
	require.NoError(t, os.WriteFile(path, []byte("size = 10.0\n"), 0644))

	src, err := NewFileSource(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 10.0, src.Current().Size)

	var notified atomic.Int32
	src.Subscribe(func(s *Settings) { notified.Add(1) })

	var errs atomic.Int32
	src.SetErrorCallback(func(error) { errs.Add(1) })

	require.NoError(t, os.WriteFile(path, []byte("size = 70.0\n"), 0644))
	require.NoError(t, src.Reload())
	assert.Equal(t, 70.0, src.Current().Size)
	assert.Equal(t, int32(1), notified.Load())

	// Invalid file keeps the previous snapshot
	require.NoError(t, os.WriteFile(path, []byte(`monitors = "left"`), 0644))
	assert.Error(t, src.Reload())
	assert.Equal(t, 70.0, src.Current().Size)
	assert.Equal(t, int32(1), notified.Load())
	assert.Equal(t, int32(1), errs.Load())
}

func TestFileSource_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "osdui.toml")

	src, err := NewFileSource(path, nil)
	require.NoError(t, err)

	changed := make(chan *Settings, 16)
	src.Subscribe(func(s *Settings) {
		select {
		case changed <- s:
		default:
		}
	})

	require.NoError(t, src.Start())
	t.Cleanup(func() { _ = src.Stop() })

	require.NoError(t, os.WriteFile(path, []byte(`bg-effect = "glass"`), 0644))

	// Editors and os.WriteFile may produce several events; wait for the final content
	deadline := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case s := <-changed:
			done = s.BgEffect == EffectGlass
		case <-deadline:
			t.Fatal("timed out waiting for config change")
		}
	}

	require.NoError(t, src.Stop())
	require.NoError(t, src.Stop())
}

func TestFileSource_InvalidAtStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osdui.toml")
	require.NoError(t, os.WriteFile(path, []byte(`monitors = "left"`), 0644))

	src, err := NewFileSource(path, nil)
	assert.Error(t, err)
	require.NotNil(t, src)
	assert.Equal(t, DefaultSettings().Size, src.Current().Size)
	assert.Equal(t, path, src.Path())
}
