package browser

const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"

	defaultTimeoutMs = 30000
)

// Config controls how Manager starts the browser. Timeout is in
// milliseconds and applies to every playwright call the driver makes.
// KeyDelay is the pause between keystrokes typed by SendKeys, also in
// milliseconds; zero types as fast as the page accepts input.
type Config struct {
	Engine      string
	Headless    bool
	SlowMo      int
	Timeout     int
	KeyDelay    int
	UserDataDir string
	SkipInstall bool
}

func (c Config) timeout() float64 {
	if c.Timeout <= 0 {
		return defaultTimeoutMs
	}

	return float64(c.Timeout)
}

func (c Config) keyDelay() float64 {
	return float64(max(c.KeyDelay, 0))
}

func (c Config) engine() string {
	switch c.Engine {
	case EngineFirefox, EngineWebKit:
		return c.Engine
	default:
		return EngineChromium
	}
}
