package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"websmith/internal/config"
	"websmith/pkg/apperr"
	"websmith/pkg/htmldriver"
)

func staticConfig() *config.Config {
	return &config.Config{
		BrowserConfig: &config.BrowserConfig{Driver: config.DriverStatic, Timeout: 5000},
	}
}

func TestManager_StaticLifecycle(t *testing.T) {
	m := NewManager(Params{Config: staticConfig(), Logger: zap.NewNop()})
	ctx := context.Background()

	assert.Equal(t, config.DriverStatic, m.Kind())
	assert.False(t, m.IsReady())

	_, err := m.Driver(ctx)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeBrowserNotReady, apperr.CodeOf(err))

	require.NoError(t, m.Launch(ctx))
	assert.True(t, m.IsReady())

	d, err := m.Driver(ctx)
	require.NoError(t, err)
	assert.IsType(t, &htmldriver.Driver{}, d)

	again, err := m.Driver(ctx)
	require.NoError(t, err)
	assert.Same(t, d, again)

	require.NoError(t, m.Close(ctx))
	assert.False(t, m.IsReady())
	require.NoError(t, m.Close(ctx))
}

func TestManager_PlaywrightNotLaunched(t *testing.T) {
	cfg := staticConfig()
	cfg.BrowserConfig.Driver = config.DriverPlaywright

	m := NewManager(Params{Config: cfg, Logger: zap.NewNop()})

	assert.False(t, m.IsReady())

	d, err := m.Driver(context.Background())
	require.Error(t, err)
	assert.Nil(t, d)
}
