// Package browser selects and manages the driver named by BROWSER_DRIVER:
// a real browser through playwright, or the in-process static HTML driver.
package browser

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"websmith/internal/config"
	"websmith/internal/ports"
	"websmith/pkg/apperr"
	pwbrowser "websmith/pkg/browser"
	"websmith/pkg/htmldriver"
	"websmith/pkg/logg"
	"websmith/pkg/websmith"
)

const browserManagerName = "BrowserManager"

type Manager struct {
	kind   string
	logger *zap.Logger

	playwright *pwbrowser.Manager
	client     *http.Client

	mu     sync.Mutex
	static *htmldriver.Driver
}

var _ ports.BrowserManager = (*Manager)(nil)

type Params struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
	Client *http.Client `optional:"true"`
}

func NewManager(params Params) *Manager {
	cfg := params.Config.BrowserConfig
	logger := params.Logger.With(zap.String(logg.Layer, browserManagerName))

	m := &Manager{
		kind:   cfg.Driver,
		logger: logger,
		client: params.Client,
	}

	if m.client == nil {
		m.client = &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Millisecond}
	}

	if m.kind == config.DriverPlaywright {
		m.playwright = pwbrowser.NewManager(pwbrowser.Config{
			Engine:      cfg.Name,
			Headless:    cfg.Headless,
			SlowMo:      cfg.SlowMo,
			Timeout:     cfg.Timeout,
			KeyDelay:    cfg.KeyDelay,
			UserDataDir: cfg.UserDataDir,
			SkipInstall: cfg.SkipInstall,
		}, params.Logger)
	}

	return m
}

func (m *Manager) Kind() string {
	return m.kind
}

func (m *Manager) Launch(ctx context.Context) error {
	const op = "Launch"

	if m.playwright != nil {
		return m.playwright.Launch(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.static == nil {
		m.static = htmldriver.New(htmldriver.WithHTTPClient(m.client), htmldriver.WithLogger(m.logger))
		m.logger.Info("Static HTML driver ready", zap.String(logg.Operation, op))
	}

	return nil
}

func (m *Manager) Close(ctx context.Context) error {
	if m.playwright != nil {
		return m.playwright.Close(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.static == nil {
		return nil
	}

	err := m.static.Quit(ctx)
	m.static = nil

	return err
}

func (m *Manager) IsReady() bool {
	if m.playwright != nil {
		return m.playwright.IsReady()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.static != nil
}

func (m *Manager) Driver(ctx context.Context) (websmith.Driver, error) {
	const op = "Driver"

	if m.playwright != nil {
		d, err := m.playwright.Driver(ctx)
		if err != nil {
			return nil, err
		}

		return d, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.static == nil {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	return m.static, nil
}
