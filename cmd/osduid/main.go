// Package main is the entry point for the osduid on-screen display daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	godbus "github.com/godbus/dbus/v5"

	"github.com/jmylchreest/osdui/internal/config"
	"github.com/jmylchreest/osdui/internal/daemon"
	"github.com/jmylchreest/osdui/internal/dbus"
	"github.com/jmylchreest/osdui/internal/display"
	"github.com/jmylchreest/osdui/internal/osd"
	"github.com/jmylchreest/osdui/internal/ring"
	"github.com/jmylchreest/osdui/internal/store"
	"github.com/jmylchreest/osdui/internal/theme"
)

const (
	appID   = "io.github.jmylchreest.osduid"
	appName = "osduid"
)

var (
	// Build-time variables
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Settings file (default: ~/.config/osdui/osdui.toml)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	noPreview := flag.Bool("no-preview", false, "Do not show a sample OSD after settings change")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s version %s (commit %s, built %s)\n", appName, version, commit, buildTime)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	path := *configPath
	if path == "" {
		path = config.ConfigPath()
	}

	run(logger, path, !*noPreview)
}

// run starts the GTK application and blocks until it quits.
func run(logger *slog.Logger, configPath string, preview bool) {
	logger.Info("starting osduid", "version", version, "config", configPath)

	app := adw.NewApplication(appID, 0)

	// Shared state between GTK main loop and signal handlers
	var (
		settings       *config.FileSource
		themeLoader    *theme.Loader
		displayManager *display.Manager
		controller     *osd.Controller
		osdDaemon      *daemon.Daemon
		service        *dbus.Service
		stateWatcher   *daemon.StateWatcher
		stateFile      *store.StateFile
		running        atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())

	shutdown := func() {
		if stateWatcher != nil {
			stateWatcher.Stop()
		}
		if service != nil {
			_ = service.Stop()
		}
		if osdDaemon != nil {
			osdDaemon.Stop()
		}
		if controller != nil {
			// Disable releases the clip flag and hides every OSD
			controller.Disable()
		}
		if displayManager != nil {
			displayManager.Stop()
		}
		if themeLoader != nil {
			themeLoader.StopHotReload()
		}
		if settings != nil {
			_ = settings.Stop()
		}
		if stateFile != nil {
			if err := stateFile.Set(false); err != nil {
				logger.Debug("failed to release clip flag", "error", err)
			}
		}
	}

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		glib.IdleAdd(func() {
			if running.Load() {
				shutdown()
				running.Store(false)
			}
			app.Quit()
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		if err := config.EnsureDataDir(); err != nil {
			logger.Warn("failed to create data directory", "error", err)
		}

		// Internal notifications go out on the shared session bus
		var send daemon.SendFunc
		if conn, err := godbus.SessionBus(); err != nil {
			logger.Warn("no session bus for notifications", "error", err)
		} else {
			send = daemon.BusSender(conn)
		}
		notifier := daemon.NewNotifier(send, logger)

		var err error
		settings, err = config.NewFileSource(configPath, logger)
		if err != nil {
			logger.Warn("failed to load settings, using defaults", "error", err)
			notifier.NotifyConfigError(err)
		}

		displayManager = display.NewManager(&app.Application, logger)
		if err := displayManager.Start(); err != nil {
			logger.Error("failed to start display manager", "error", err)
			notifier.NotifyDisplayError(err)
			app.Quit()
			return
		}

		themeLoader = theme.NewLoader(logger)
		if err := themeLoader.LoadTheme(settings.Current().Theme); err != nil {
			logger.Warn("failed to load theme, using default", "error", err)
			notifier.NotifyThemeError(err)
		}
		themeLoader.Apply(displayManager.Display())
		themeLoader.StartHotReload(ctx)

		stateFile = store.NewStateFile("", store.DaemonOwner())

		dispatch := func(fn func()) { glib.IdleAdd(fn) }

		controller = osd.New(osd.Options{
			Source:          settings,
			Monitors:        displayManager.Monitors(),
			Presenters:      displayManager,
			Scheduler:       display.GlibScheduler{},
			ClipFlag:        stateFile,
			Ring:            ring.NewFileWriter(config.RingPath()),
			Boxes:           stateFile,
			Dispatch:        dispatch,
			PreviewOnChange: preview,
			Logger:          logger,
		})
		controller.Enable()

		osdDaemon = daemon.New(daemon.Options{
			Controller: controller,
			Config:     settings,
			Theme:      themeLoader,
			Notifier:   notifier,
			Shows:      stateFile,
			Dispatch:   dispatch,
			Version:    version,
			Logger:     logger,
		})
		settings.SetErrorCallback(osdDaemon.ConfigError)
		osdDaemon.Start()

		if err := settings.Start(); err != nil {
			logger.Warn("failed to watch settings file", "error", err)
		}

		service = dbus.NewService(osdDaemon, logger)
		if err := service.Start(); err != nil {
			logger.Error("failed to start D-Bus service", "error", err)
			shutdown()
			running.Store(false)
			app.Quit()
			return
		}
		osdDaemon.SetSignals(service)

		// Only the daemon holding the bus name may clear another's flag.
		if released, err := stateFile.ReleaseStale(); err != nil {
			logger.Warn("failed to check clip flag", "error", err)
		} else if released {
			logger.Info("released clip flag left by a previous daemon")
		}

		stateWatcher = daemon.NewStateWatcher(stateFile.Path(), logger)
		stateWatcher.SetChangeCallback(osdDaemon.ClipFlagChanged)
		if err := stateWatcher.Start(ctx); err != nil {
			logger.Warn("failed to start state watcher", "error", err)
		}

		logger.Info("osduid ready", "dbus_interface", dbus.ServiceInterface, "monitors", controller.Instances())

		// GTK apps quit when all windows are closed; OSD windows are
		// hidden most of the time.
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if running.Load() {
			shutdown()
			running.Store(false)
		}
	})

	status := app.Run(os.Args[:1])
	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("osduid stopped")
}
