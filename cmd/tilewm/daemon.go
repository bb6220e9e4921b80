package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/daemon"
	"github.com/1broseidon/tilewm/internal/hotkeys"
	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/platform"
)

// daemonState ties the reload paths (IPC, SIGHUP, file watcher) to the components
// a new config has to reach.
type daemonState struct {
	mu         sync.Mutex
	configPath string
	level      *slog.LevelVar
	manager    *daemon.Manager
	hotkeys    *hotkeys.Handler
	logger     *slog.Logger
}

func (d *daemonState) reload() error {
	res, err := config.LoadFromPath(d.configPath)
	if err != nil {
		return err
	}
	return d.apply(res.Config)
}

func (d *daemonState) apply(cfg *config.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.manager.UpdateConfig(cfg); err != nil {
		return err
	}
	d.level.Set(cfg.SlogLevel())
	d.registerHotkeys(cfg)
	d.logger.Info("config applied", "workspaces", len(cfg.Workspaces), "layouts", cfg.Layouts)
	return nil
}

func (d *daemonState) registerHotkeys(cfg *config.Config) {
	d.hotkeys.Reset()
	if err := d.hotkeys.RegisterBindings(cfg.Keybindings); err != nil {
		d.logger.Warn("some keybindings failed to register", "error", err)
	}
	if cfg.PaletteHotkey == "" {
		return
	}
	if err := d.hotkeys.RegisterFunc(cfg.PaletteHotkey, launchPalette); err != nil {
		d.logger.Warn("failed to register palette hotkey", "hotkey", cfg.PaletteHotkey, "error", err)
	}
}

// launchPalette runs "tilewm palette" as a child so the launcher does not block the
// event loop.
func launchPalette() {
	exe, err := os.Executable()
	if err != nil {
		log.Printf("Palette: failed to find executable: %v", err)
		return
	}
	cmd := exec.Command(exe, "palette")
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		log.Printf("Palette: failed to launch: %v", err)
		return
	}
	go cmd.Wait()
}

func runDaemon(configPath string) {
	res, err := config.LoadFromPath(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := res.Config

	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.XAuthority != "" {
		os.Setenv("XAUTHORITY", cfg.XAuthority)
	}
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display, logger)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer backend.Disconnect()

	manager, err := daemon.NewManager(cfg, backend, logger)
	if err != nil {
		log.Fatalf("Failed to create workspace manager: %v", err)
	}
	manager.SetWindowWatcher(backend)

	state := &daemonState{
		configPath: configPath,
		level:      level,
		manager:    manager,
		hotkeys:    hotkeys.NewHandler(backend, manager),
		logger:     logger,
	}
	state.registerHotkeys(cfg)

	err = backend.WatchRoot(
		func() {
			windows, err := backend.ListWindows()
			if err != nil {
				logger.Warn("failed to list windows", "error", err)
				return
			}
			manager.Sync(windows)
		},
		manager.WindowFocused,
	)
	if err != nil {
		log.Fatalf("Failed to watch root window: %v", err)
	}

	ipcServer, err := ipc.NewServer(manager, state.reload)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: time.Duration(cfg.ReconcileIntervalMs) * time.Millisecond,
		Logger:   logger,
	}, manager, backend)
	reconciler.ReconcileNow()
	go reconciler.Run(ctx)

	watcher, err := config.NewWatcher(configPath, logger,
		func(newCfg *config.Config) {
			if err := state.apply(newCfg); err != nil {
				logger.Warn("config change rejected", "error", err)
			}
		}, nil)
	if err != nil {
		logger.Warn("config hot reload disabled", "error", err)
	} else {
		go watcher.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading config...")
				if err := state.reload(); err != nil {
					log.Printf("Config reload failed: %v", err)
					continue
				}
				log.Println("Config reloaded successfully")
			default:
				log.Println("Shutting down tilewm daemon...")
				cancel()
				backend.Quit()
				return
			}
		}
	}()

	log.Printf("tilewm daemon started (%d workspaces, socket %s)", len(cfg.Workspaces), ipcServer.SocketPath())
	backend.EventLoop()

	// Leave every window visible and untiled for whatever runs next.
	manager.SetEnabled(false)
}
