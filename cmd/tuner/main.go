package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/tuner/internal/config"
	"github.com/genricoloni/tuner/internal/domain"
	"github.com/genricoloni/tuner/internal/engine"
	"github.com/genricoloni/tuner/internal/executor"
	"github.com/genricoloni/tuner/internal/fetcher"
	"github.com/genricoloni/tuner/internal/mailbox"
	"github.com/genricoloni/tuner/internal/monitor"
	"github.com/genricoloni/tuner/internal/processor"
	"github.com/genricoloni/tuner/internal/render"
	"github.com/genricoloni/tuner/internal/window"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var (
	configFlag string
	debugFlag  bool
)

// AppOptions is the full dependency graph, shared with the tests
var AppOptions = fx.Options(
	// Provide dependencies
	fx.Provide(
		newLogger,
		func() config.Path { return config.Path(configFlag) },
		config.NewAppConfig,
		func(c *config.AppConfig) domain.Config { return c },
		config.NewWatcher,
		monitor.NewScreenResolution,
		fx.Annotate(executor.NewExecutor, fx.As(new(domain.Executor))),
		monitor.NewSource,
		newFetcher,
		mailbox.New[domain.PendingAsset],
		fx.Annotate(fetcher.NewAssetFetcher, fx.As(new(engine.Spawner))),
		fx.Annotate(processor.NewArtworkProcessor, fx.As(new(domain.Processor))),
		newBackend,
		func(b render.Backend) domain.Graphics { return b },
		engine.NewDriver,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	flag.StringVar(&configFlag, "config", "", "path to config.toml (default ~/.config/tuner/config.toml)")
	flag.BoolVar(&debugFlag, "debug", false, "enable development logging")
	flag.Parse()

	var (
		backend render.Backend
		driver  *engine.Driver
	)
	app := fx.New(
		AppOptions,
		// Logger configuration
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Populate(&backend, &driver),
	)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	// The render loop owns the main goroutine until the window closes
	runErr := backend.Run(ctx, driver)

	// Stop the application gracefully
	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	if debugFlag {
		return zap.NewDevelopment()
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// newFetcher builds the HTTP fetcher with the configured timeout
func newFetcher(logger *zap.Logger, cfg domain.Config) domain.Fetcher {
	return fetcher.NewHTTPFetcher(logger, cfg.FetchTimeout())
}

// newBackend selects the render backend from config
func newBackend(logger *zap.Logger, cfg domain.Config, screen *domain.ScreenResolution) render.Backend {
	if cfg.Backend() == config.BackendFramebuffer {
		return render.NewFramebufferBackend(logger, cfg)
	}
	return window.NewBackend(logger, cfg, screen)
}

// registerHooks sets up application lifecycle hooks
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	cfg *config.AppConfig,
	watcher *config.Watcher,
	source domain.Source,
	driver *engine.Driver,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Tuner Started",
				zap.String("config", cfg.FilePath()),
				zap.String("source", cfg.SourceKind()),
				zap.String("backend", cfg.Backend()))
			return watcher.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			if err := driver.Stop(ctx); err != nil {
				logger.Warn("Cleanup incomplete", zap.Error(err))
			}
			if closer, ok := source.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					logger.Warn("Failed to close now-playing source", zap.Error(err))
				}
			}
			return watcher.Stop()
		},
	})
}
