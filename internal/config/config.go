package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPlaywright = "playwright"
	DriverStatic     = "static"
)

type Config struct {
	AppConfig     *AppConfig
	BrowserConfig *BrowserConfig
	WaitConfig    *WaitConfig
	MetricsConfig *MetricsConfig
	TracingConfig *TracingConfig
}

type AppConfig struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type BrowserConfig struct {
	Driver      string `envconfig:"BROWSER_DRIVER" default:"playwright"`
	Name        string `envconfig:"BROWSER_NAME" default:"chromium"`
	Headless    bool   `envconfig:"BROWSER_HEADLESS" default:"true"`
	SlowMo      int    `envconfig:"BROWSER_SLOW_MO" default:"0"`
	Timeout     int    `envconfig:"BROWSER_TIMEOUT" default:"30000"`
	KeyDelay    int    `envconfig:"BROWSER_KEY_DELAY" default:"0"`
	UserDataDir string `envconfig:"BROWSER_USER_DATA_DIR"`
	SkipInstall bool   `envconfig:"BROWSER_SKIP_INSTALL" default:"false"`
}

type WaitConfig struct {
	Timeout       time.Duration `envconfig:"WAIT_TIMEOUT" default:"12s"`
	PollInterval  time.Duration `envconfig:"WAIT_POLL_INTERVAL" default:"500ms"`
	SettleTimeout time.Duration `envconfig:"WAIT_SETTLE_TIMEOUT" default:"30s"`
}

type MetricsConfig struct {
	TextfilePath string `envconfig:"METRICS_TEXTFILE"`
}

type TracingConfig struct {
	Enabled bool `envconfig:"TRACING_ENABLED" default:"false"`
}

func GetConfig() (*Config, error) {
	_ = godotenv.Load()

	var conf Config

	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("read config from env vars: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c *Config) Validate() error {
	switch c.BrowserConfig.Driver {
	case DriverPlaywright, DriverStatic:
	default:
		return fmt.Errorf("BROWSER_DRIVER must be %q or %q, got %q", DriverPlaywright, DriverStatic, c.BrowserConfig.Driver)
	}

	if c.WaitConfig.PollInterval > c.WaitConfig.Timeout {
		return fmt.Errorf("WAIT_POLL_INTERVAL (%s) exceeds WAIT_TIMEOUT (%s)", c.WaitConfig.PollInterval, c.WaitConfig.Timeout)
	}

	return nil
}
