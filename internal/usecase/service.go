package usecase

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"websmith/internal/config"
	"websmith/internal/ports"
	"websmith/internal/usecase/adapters"
)

type Service struct {
	Scenario adapters.ScenarioService
	Browser  adapters.BrowserService
}

type Params struct {
	fx.In

	Logger  *zap.Logger
	Config  *config.Config
	Browser ports.BrowserManager
	Metrics ports.MetricsRecorder
}

func NewUsecase(params Params) *Service {
	factory := newServiceFactory(params)

	return &Service{
		Scenario: factory.CreateScenarioService(),
		Browser:  factory.CreateBrowserService(),
	}
}
