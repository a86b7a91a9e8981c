package bootstrap

import (
	"time"

	"go.uber.org/fx"

	"websmith/internal/browser"
	"websmith/internal/config"
	"websmith/internal/console"
	"websmith/internal/metrics"
	"websmith/internal/ports"
	"websmith/internal/usecase"
)

type Mode int

const (
	ModeRun Mode = iota
	ModeShell
)

// Options carries what the command line decided before the container is
// built.
type Options struct {
	Mode   Mode
	Files  []string
	Driver string
}

func NewApp(opts Options) *fx.App {
	invoke := fx.Invoke(runScenarios)
	if opts.Mode == ModeShell {
		invoke = fx.Invoke(runConsole)
	}

	return fx.New(
		fx.Supply(opts),
		fx.Provide(
			newConfig,
			newLogger,
			newTraceProvider,

			fx.Annotate(browser.NewManager, fx.As(new(ports.BrowserManager))),
			fx.Annotate(metrics.NewRecorder, fx.As(new(ports.MetricsRecorder))),

			usecase.NewUsecase,

			console.NewInterface,
		),

		invoke,

		fx.NopLogger,
		fx.StartTimeout(2*time.Minute),
	)
}

func newConfig(opts Options) (*config.Config, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	if opts.Driver != "" {
		cfg.BrowserConfig.Driver = opts.Driver

		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
