package bootstrap

import (
	"context"
	"errors"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"websmith/internal/config"
	"websmith/internal/ports"
	"websmith/internal/scenario"
	"websmith/internal/usecase"
	"websmith/pkg/logg"
)

// ExitFailed is the exit code reported when a scenario fails or cannot be
// loaded.
const ExitFailed = 1

type runnerParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Options    Options
	Config     *config.Config
	Logger     *zap.Logger
	Usecase    *usecase.Service
	Browser    ports.BrowserManager
	Metrics    ports.MetricsRecorder
	Tracer     *sdktrace.TracerProvider
}

// runScenarios runs every file of Options.Files in order once the browser
// is up, then asks the app to stop with an exit code reflecting the result.
func runScenarios(p runnerParams) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			if len(p.Options.Files) == 0 {
				cancel()

				return errors.New("no scenario files given")
			}

			if err := p.Browser.Launch(startCtx); err != nil {
				cancel()
				p.Logger.Error("Failed to launch browser", zap.Error(err))

				return err
			}

			go func() {
				defer close(done)

				code := runFiles(ctx, p)
				if err := p.Shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					p.Logger.Error("Failed to request shutdown", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()

			select {
			case <-done:
			case <-stopCtx.Done():
			}

			shutdownBrowser(stopCtx, p.Browser, p.Metrics, p.Config, p.Logger)

			return nil
		},
	})
}

func runFiles(ctx context.Context, p runnerParams) int {
	for _, path := range p.Options.Files {
		logger := p.Logger.With(zap.String("file", path))

		scn, err := scenario.Load(path)
		if err != nil {
			logger.Error("Failed to load scenario", zap.Error(err))

			return ExitFailed
		}

		run, err := p.Usecase.Scenario.Run(ctx, scn)
		if err != nil {
			logger.Error("Scenario failed", zap.String(logg.Scenario, scn.Name), zap.Error(err))

			return ExitFailed
		}

		logger.Info("Scenario passed",
			zap.String(logg.Scenario, scn.Name),
			zap.String(logg.RunID, run.ID.String()),
			zap.Int("steps", len(run.Results)))
	}

	return 0
}
