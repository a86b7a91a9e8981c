package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"websmith/internal/config"
	"websmith/internal/entity"
	"websmith/internal/ports"
	"websmith/internal/usecase/adapters"
	"websmith/pkg/apperr"
	"websmith/pkg/logg"
	"websmith/pkg/tracing"
	"websmith/pkg/websmith"
)

const (
	scenarioServiceName = "ScenarioService"
	scenarioTracer      = "usecase.scenario"
)

type ScenarioService struct {
	config  *config.Config
	logger  *zap.Logger
	browser ports.BrowserManager
	metrics ports.MetricsRecorder
	tracer  trace.Tracer
}

type ScenarioServiceParams struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Browser ports.BrowserManager
	Metrics ports.MetricsRecorder
}

func NewScenarioService(params ScenarioServiceParams) *ScenarioService {
	return &ScenarioService{
		config:  params.Config,
		logger:  params.Logger.With(zap.String(logg.Layer, scenarioServiceName)),
		browser: params.Browser,
		metrics: params.Metrics,
		tracer:  otel.Tracer(scenarioTracer),
	}
}

var _ adapters.ScenarioService = (*ScenarioService)(nil)

// Attached is a session bound to the managed browser's driver.
type Attached struct {
	session *websmith.Session
	driver  websmith.Driver
}

func (a *Attached) Session() *websmith.Session {
	return a.session
}

func (a *Attached) Driver() websmith.Driver {
	return a.driver
}

func (a *Attached) Close() error {
	return a.session.Close()
}

// Attach opens a session on the browser's current driver. The caller closes
// it; the browser itself stays up.
func (s *ScenarioService) Attach(ctx context.Context) (adapters.Attachment, error) {
	const op = "Attach"

	if !s.browser.IsReady() {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	driver, err := s.browser.Driver(ctx)
	if err != nil {
		return nil, err
	}

	wait := s.config.WaitConfig
	session, err := websmith.Open(driver,
		websmith.WithLogger(s.logger),
		websmith.WithObserver(s.metrics),
		websmith.WithWaitConfig(websmith.WaitConfig{
			Timeout:       wait.Timeout,
			PollInterval:  wait.PollInterval,
			SettleTimeout: wait.SettleTimeout,
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Attached{session: session, driver: driver}, nil
}

// Run executes every step of scn in order on a fresh session and stops at
// the first failing step.
func (s *ScenarioService) Run(ctx context.Context, scn *entity.Scenario) (run *entity.Run, err error) {
	const op = "Run"

	if scn == nil || len(scn.Steps) == 0 {
		return nil, apperr.InvalidReqError(op, "scenario", errors.New("scenario has no steps"))
	}

	run = &entity.Run{
		ID:        uuid.New(),
		Scenario:  scn.Name,
		Status:    entity.RunStatusInProgress,
		StartedAt: time.Now(),
		Results:   make([]entity.StepResult, 0, len(scn.Steps)),
	}

	logger := s.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.Scenario, scn.Name),
		zap.String(logg.RunID, run.ID.String()),
	)

	ctx, span := tracing.StartSpan(ctx, s.tracer, logger, op,
		attribute.String("scenario", scn.Name),
		attribute.Int("steps", len(scn.Steps)))
	defer func() {
		span.End(err)
		s.metrics.ObserveScenario(err)
		finish(run, err)
	}()

	logger.Info("Running scenario", zap.Int("steps", len(scn.Steps)))

	attached, err := s.Attach(ctx)
	if err != nil {
		return run, err
	}
	defer attached.Close()

	for i, step := range scn.Steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return run, apperr.Wrap(op, apperr.CodeInternal, ctxErr, map[string]any{
				apperr.MetaReason: "context_cancelled",
				apperr.MetaStage:  apperr.StageScenario,
				apperr.MetaStep:   i + 1,
			})
		}

		start := time.Now()
		_, stepErr := s.ExecuteStep(ctx, attached, step)
		s.metrics.ObserveStep(string(step.Action), stepErr)

		result := entity.StepResult{
			Index:    i + 1,
			Action:   step.Action,
			Success:  stepErr == nil,
			Duration: time.Since(start),
		}

		if stepErr != nil {
			result.Error = stepErr.Error()
			run.Results = append(run.Results, result)

			logger.Error("Step failed",
				zap.Int(logg.Step, i+1),
				zap.String(logg.Action, string(step.Action)),
				zap.Error(stepErr))

			code := apperr.CodeOf(stepErr)
			if code == "" {
				code = apperr.CodeActionFailed
			}

			return run, apperr.Wrap(op, code, fmt.Errorf("step %d (%s): %w", i+1, step.Action, stepErr), map[string]any{
				apperr.MetaReason: "step_failed",
				apperr.MetaStage:  apperr.StageScenario,
				apperr.MetaStep:   i + 1,
				apperr.MetaAction: string(step.Action),
			})
		}

		run.Results = append(run.Results, result)
		span.AddEvent("step completed", attribute.Int("step", i+1))
	}

	logger.Info("Scenario passed", zap.Duration(logg.Elapsed, time.Since(run.StartedAt)))

	return run, nil
}

func finish(run *entity.Run, err error) {
	if run == nil {
		return
	}

	completedAt := time.Now()
	run.CompletedAt = &completedAt

	if err != nil {
		run.Status = entity.RunStatusFailed
		run.Error = err.Error()

		return
	}

	run.Status = entity.RunStatusPassed
}
