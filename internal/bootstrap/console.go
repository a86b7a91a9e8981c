package bootstrap

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"websmith/internal/config"
	"websmith/internal/console"
	"websmith/internal/ports"
)

func runConsole(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	consoleInterface *console.Interface,
	browser ports.BrowserManager,
	recorder ports.MetricsRecorder,
	cfg *config.Config,
	logger *zap.Logger,
	_ *sdktrace.TracerProvider,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Launching browser...", zap.String("driver", cfg.BrowserConfig.Driver))

			if err := browser.Launch(ctx); err != nil {
				logger.Error("Failed to launch browser", zap.Error(err))

				return err
			}

			logger.Info("Browser launched successfully")

			go func() {
				if err := consoleInterface.Start(); err != nil {
					logger.Error("Console interface error", zap.Error(err))
				}

				if err := shutdowner.Shutdown(); err != nil {
					logger.Error("Failed to request shutdown", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down...")

			if err := consoleInterface.Stop(); err != nil {
				logger.Error("Failed to stop console", zap.Error(err))
			}

			shutdownBrowser(ctx, browser, recorder, cfg, logger)

			return nil
		},
	})
}

// shutdownBrowser closes the browser and flushes the metrics textfile when
// one is configured.
func shutdownBrowser(ctx context.Context, browser ports.BrowserManager, recorder ports.MetricsRecorder, cfg *config.Config, logger *zap.Logger) {
	if err := browser.Close(ctx); err != nil {
		logger.Error("Failed to close browser", zap.Error(err))
	}

	if path := cfg.MetricsConfig.TextfilePath; path != "" {
		if err := recorder.WriteTextfile(path); err != nil {
			logger.Error("Failed to write metrics", zap.String("path", path), zap.Error(err))
		}
	}
}
