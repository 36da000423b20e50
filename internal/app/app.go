package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/five82/tagview/internal/config"
	"github.com/five82/tagview/internal/metrics"
	"github.com/five82/tagview/internal/prefs"
	"github.com/five82/tagview/internal/state"
	"github.com/five82/tagview/internal/tags"
	"github.com/five82/tagview/internal/ui"
)

// Options configure the tagview application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/tagview/prefs.toml
	PollEvery  time.Duration // zero uses the configured interval
	APIBind    string        // overrides config api_bind when set
}

// Runtime bundles the dependencies shared by the TUI and the CLI commands.
type Runtime struct {
	Config  config.Config
	Prefs   prefs.Prefs
	Client  *tags.Client
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	logCloser io.Closer
}

// Setup loads configuration and preferences and builds the client and logger.
func Setup(opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.APIBind != "" {
		cfg.APIBind = opts.APIBind
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger, closer, err := openLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := tags.NewClient(cfg.APIBind, tags.WithDiscoveryPath(cfg.DiscoveryPath))
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init tag client: %w", err)
	}

	return &Runtime{
		Config:    cfg,
		Prefs:     userPrefs,
		Client:    client,
		Logger:    logger,
		Metrics:   metrics.New(),
		logCloser: closer,
	}, nil
}

// Close releases the log file.
func (r *Runtime) Close() error {
	if r == nil || r.logCloser == nil {
		return nil
	}
	return r.logCloser.Close()
}

// NewEngine builds an engine for this runtime. onUpdate may be nil.
func (r *Runtime) NewEngine(store *state.Store, onUpdate func(*state.Snapshot)) *Engine {
	return NewEngine(r.Client, EngineOptions{
		Interval: r.Config.PollInterval,
		Store:    store,
		Logger:   r.Logger,
		Metrics:  r.Metrics,
		OnUpdate: onUpdate,
	})
}

// Run boots the tagview TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	rt, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if addr := rt.Config.MetricsAddr; addr != "" {
		go func() {
			if err := rt.Metrics.Serve(ctx, addr, rt.Logger); err != nil {
				rt.Logger.Error("metrics server failed", "addr", addr, "error", err)
			}
		}()
	}

	store := &state.Store{}
	program := ui.NewProgram(ui.Options{
		Store:     store,
		APIBind:   rt.Client.BaseURL(),
		LogFile:   rt.Config.LogFile,
		PollTick:  time.Second,
		ThemeName: rt.Prefs.Theme,
		Category:  rt.Prefs.Category,
		PrefsPath: opts.PrefsPath,
	})

	// Send blocks until the program loop runs. The UI re-reads the store on
	// every message, so delivery order does not matter.
	engine := rt.NewEngine(store, func(snap *state.Snapshot) {
		go program.Send(ui.SnapshotMsg(snap))
	})
	rt.Logger.Info("starting tagview", "api", rt.Client.BaseURL(), "session", engine.Session())

	// The first fetch runs behind the connecting header so a slow or absent
	// server never delays the first frame.
	go engine.Start(ctx)
	defer engine.Stop()

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
