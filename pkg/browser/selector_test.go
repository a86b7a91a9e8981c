package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"websmith/pkg/websmith"
)

func TestSelectorFor(t *testing.T) {
	sel, err := selectorFor(websmith.ByCSS("form#login > input"))
	require.NoError(t, err)
	assert.Equal(t, "css=form#login > input", sel)

	sel, err = selectorFor(websmith.ByName("firstname"))
	require.NoError(t, err)
	assert.Equal(t, `xpath=//*[@name="firstname"]`, sel)

	sel, err = selectorFor(websmith.ByPartialHref("Bradbury"))
	require.NoError(t, err)
	assert.Equal(t, `xpath=//a[contains(@href, "Bradbury")]`, sel)

	_, err = selectorFor(websmith.Locator{Strategy: "shadow", Value: "x"})
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, EngineChromium, Config{}.engine())
	assert.Equal(t, EngineFirefox, Config{Engine: EngineFirefox}.engine())
	assert.Equal(t, EngineChromium, Config{Engine: "netscape"}.engine())
	assert.Equal(t, float64(defaultTimeoutMs), Config{}.timeout())
	assert.Equal(t, float64(5000), Config{Timeout: 5000}.timeout())
	assert.Zero(t, Config{}.keyDelay())
	assert.Zero(t, Config{KeyDelay: -10}.keyDelay())
	assert.Equal(t, float64(120), Config{KeyDelay: 120}.keyDelay())
}

func TestManager_DriverBeforeLaunch(t *testing.T) {
	m := NewManager(Config{}, nil)

	assert.False(t, m.IsReady())

	_, err := m.Driver(t.Context())
	require.Error(t, err)
}
