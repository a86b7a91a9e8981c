package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"websmith/internal/browser"
	"websmith/internal/config"
	"websmith/internal/entity"
	"websmith/pkg/apperr"
	"websmith/pkg/websmith"
)

const formPage = `<html><head><title>WebSmith</title></head><body>
<form id="login">
  <input type="text" name="firstname">
  <input type="text" name="lastname">
  <input type="checkbox" name="subscribe">
  <input type="radio" name="writers" value="bradbury">Ray Bradbury
  <input type="radio" name="writers" value="steinbeck">John Steinbeck
  <select name="writers">
    <option value="bradbury">Ray Bradbury</option>
    <option value="steinbeck">John Steinbeck</option>
  </select>
</form>
<p id="note">Hello</p>
<a href="/next">Next page</a>
</body></html>`

type fakeMetrics struct {
	mu        sync.Mutex
	actions   []string
	steps     []string
	scenarios []error
}

func (f *fakeMetrics) ObserveAction(action string, _ time.Duration, _ error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

func (f *fakeMetrics) ObserveWait(string, time.Duration, error) {}

func (f *fakeMetrics) ObserveStep(action string, _ error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps = append(f.steps, action)
}

func (f *fakeMetrics) ObserveScenario(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scenarios = append(f.scenarios, err)
}

func (f *fakeMetrics) WriteTextfile(string) error { return nil }

func newService(t *testing.T) (*ScenarioService, *fakeMetrics, string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/next" {
			_, _ = w.Write([]byte(`<html><head><title>Next</title></head></html>`))

			return
		}

		_, _ = w.Write([]byte(formPage))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		BrowserConfig: &config.BrowserConfig{Driver: config.DriverStatic, Timeout: 5000},
		WaitConfig: &config.WaitConfig{
			Timeout:       80 * time.Millisecond,
			PollInterval:  10 * time.Millisecond,
			SettleTimeout: 80 * time.Millisecond,
		},
	}

	manager := browser.NewManager(browser.Params{Config: cfg, Logger: zap.NewNop(), Client: srv.Client()})
	require.NoError(t, manager.Launch(context.Background()))
	t.Cleanup(func() { _ = manager.Close(context.Background()) })

	metrics := &fakeMetrics{}

	svc := NewScenarioService(ScenarioServiceParams{
		Config:  cfg,
		Logger:  zap.NewNop(),
		Browser: manager,
		Metrics: metrics,
	})

	return svc, metrics, srv.URL
}

func TestScenarioService_RunPasses(t *testing.T) {
	svc, metrics, base := newService(t)

	scn := &entity.Scenario{
		Name: "login form",
		Steps: []entity.Step{
			{Action: entity.StepGo, URL: base + "/"},
			{Action: entity.StepExpectTitle, Value: "WebSmith"},
			{Action: entity.StepFillForm, Fields: map[string]any{"firstname": "John", "lastname": "Steinbeck"}},
			{Action: entity.StepExpectValue, Target: "name=firstname", Value: "John"},
			{Action: entity.StepCheck, Name: "subscribe"},
			{Action: entity.StepExpectChecked, Target: "name=subscribe"},
			{Action: entity.StepChoose, Name: "writers", Value: "steinbeck"},
			{Action: entity.StepSelect, Name: "writers", Value: "John Steinbeck", ByText: true},
			{Action: entity.StepExpectChecked, Target: `xpath=//option[@value="bradbury"]`, Value: false},
			{Action: entity.StepExpectText, Target: "id=note", Value: "Hello"},
			{Action: entity.StepWaitAndClick, Target: "link-text=Next page"},
			{Action: entity.StepExpectTitle, Value: "Next"},
		},
	}

	run, err := svc.Run(context.Background(), scn)
	require.NoError(t, err)

	assert.True(t, run.Passed())
	assert.Equal(t, "login form", run.Scenario)
	require.Len(t, run.Results, len(scn.Steps))
	require.NotNil(t, run.CompletedAt)

	for _, r := range run.Results {
		assert.True(t, r.Success, r.Action)
	}

	assert.Len(t, metrics.steps, len(scn.Steps))
	assert.Equal(t, []error{nil}, metrics.scenarios)
	assert.Contains(t, metrics.actions, "FillForm")
}

func TestScenarioService_RunStopsAtFailure(t *testing.T) {
	svc, metrics, base := newService(t)

	scn := &entity.Scenario{
		Name: "wrong title",
		Steps: []entity.Step{
			{Action: entity.StepGo, URL: base + "/"},
			{Action: entity.StepExpectTitle, Value: "Something else"},
			{Action: entity.StepScrollPage},
		},
	}

	run, err := svc.Run(context.Background(), scn)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrAssertionFailed)
	assert.Equal(t, apperr.CodeAssertion, apperr.CodeOf(err))

	step, _ := apperr.Meta(err, apperr.MetaStep)
	assert.Equal(t, 2, step)

	assert.Equal(t, entity.RunStatusFailed, run.Status)
	require.Len(t, run.Results, 2)
	assert.False(t, run.Results[1].Success)
	assert.NotEmpty(t, run.Error)
	assert.Len(t, metrics.steps, 2)
}

func TestScenarioService_WaitTimeoutFailsStep(t *testing.T) {
	svc, _, base := newService(t)

	scn := &entity.Scenario{
		Name: "missing element",
		Steps: []entity.Step{
			{Action: entity.StepGo, URL: base + "/"},
			{Action: entity.StepWait, Target: "id=never"},
		},
	}

	_, err := svc.Run(context.Background(), scn)
	require.Error(t, err)
	assert.ErrorIs(t, err, websmith.ErrWaitTimeout)
	assert.Equal(t, apperr.CodeTimeout, apperr.CodeOf(err))
}

func TestScenarioService_ScreenshotUnsupported(t *testing.T) {
	svc, _, base := newService(t)
	ctx := context.Background()

	a, err := svc.Attach(ctx)
	require.NoError(t, err)
	defer a.Close()

	_, err = svc.ExecuteStep(ctx, a, entity.Step{Action: entity.StepGo, URL: base + "/"})
	require.NoError(t, err)

	_, err = svc.ExecuteStep(ctx, a, entity.Step{Action: entity.StepScreenshot, Value: "shot.png"})
	assert.ErrorIs(t, err, ErrUnsupported)

	out, err := svc.ExecuteStep(ctx, a, entity.Step{Action: entity.StepWaitVisible, Target: "id=login"})
	require.NoError(t, err)
	assert.Equal(t, "found <form>", out)
}

func TestScenarioService_RunEmpty(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Run(context.Background(), &entity.Scenario{Name: "empty"})
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
}

func TestWantChecked(t *testing.T) {
	for in, want := range map[any]bool{nil: true, true: true, false: false, "false": false, "1": true} {
		got, err := wantChecked(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := wantChecked("maybe")
	assert.Error(t, err)
}
