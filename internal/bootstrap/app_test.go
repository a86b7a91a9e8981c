package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"websmith/internal/config"
)

func staticEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("BROWSER_DRIVER", config.DriverStatic)
	t.Setenv("WAIT_TIMEOUT", "200ms")
	t.Setenv("WAIT_POLL_INTERVAL", "20ms")
	t.Setenv("LOG_LEVEL", "error")

	return dir
}

func TestNewConfig_DriverOverride(t *testing.T) {
	staticEnv(t)

	cfg, err := newConfig(Options{Driver: config.DriverPlaywright})
	require.NoError(t, err)
	assert.Equal(t, config.DriverPlaywright, cfg.BrowserConfig.Driver)

	cfg, err = newConfig(Options{})
	require.NoError(t, err)
	assert.Equal(t, config.DriverStatic, cfg.BrowserConfig.Driver)

	_, err = newConfig(Options{Driver: "netscape"})
	assert.Error(t, err)
}

func TestNewApp_Wiring(t *testing.T) {
	staticEnv(t)

	require.NoError(t, NewApp(Options{Mode: ModeShell}).Err())
	require.NoError(t, NewApp(Options{Mode: ModeRun, Files: []string{"x.yaml"}}).Err())
}

func runApp(t *testing.T, files ...string) int {
	t.Helper()

	app := NewApp(Options{Mode: ModeRun, Files: files})
	require.NoError(t, app.Err())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, app.Start(ctx))

	var signal int
	select {
	case s := <-app.Wait():
		signal = s.ExitCode
	case <-ctx.Done():
		t.Fatal("scenario run did not finish")
	}

	require.NoError(t, app.Stop(ctx))

	return signal
}

func TestRunMode_ExitCodes(t *testing.T) {
	dir := staticEnv(t)
	metricsPath := filepath.Join(dir, "websmith.prom")
	t.Setenv("METRICS_TEXTFILE", metricsPath)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Home</title></head><body><input name="q"></body></html>`))
	}))
	defer srv.Close()

	pass := filepath.Join(dir, "pass.yaml")
	require.NoError(t, os.WriteFile(pass, []byte("name: pass\nsteps:\n"+
		"  - action: go\n    url: "+srv.URL+"/\n"+
		"  - action: fill\n    name: q\n    value: hi\n"+
		"  - action: expect_title\n    value: Home\n"), 0o600))

	fail := filepath.Join(dir, "fail.yaml")
	require.NoError(t, os.WriteFile(fail, []byte("name: fail\nsteps:\n"+
		"  - action: go\n    url: "+srv.URL+"/\n"+
		"  - action: expect_title\n    value: Elsewhere\n"), 0o600))

	assert.Equal(t, 0, runApp(t, pass))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "websmith_scenario_runs_total")

	assert.Equal(t, ExitFailed, runApp(t, pass, fail))
	assert.Equal(t, ExitFailed, runApp(t, filepath.Join(dir, "missing.yaml")))
}

func TestNewLogger_Level(t *testing.T) {
	cfg := &config.Config{AppConfig: &config.AppConfig{LogLevel: "warn"}}

	logger, err := newLogger(cfg)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	cfg.AppConfig.LogLevel = "loud"
	_, err = newLogger(cfg)
	assert.Error(t, err)
}
