//go:build integration

package browser_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"websmith/pkg/browser"
	"websmith/pkg/websmith"
)

const fixture = `<!DOCTYPE html>
<html><head><title>WebSmith</title></head>
<body>
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
  <div id="late"></div>
  <a href="https://github.com/omaciel/websmith">WebSmith</a>
  <script>
    setTimeout(() => {
      const b = document.createElement('button');
      b.id = 'appeared';
      b.textContent = 'ready';
      document.getElementById('late').appendChild(b);
    }, 300);
  </script>
</body></html>`

func launch(t *testing.T) (*websmith.Session, string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(fixture))
	}))
	t.Cleanup(srv.Close)

	m := browser.NewManager(browser.Config{Headless: true, Timeout: 10000}, nil)
	require.NoError(t, m.Launch(context.Background()))
	t.Cleanup(func() { _ = m.Close(context.Background()) })

	driver, err := m.Driver(context.Background())
	require.NoError(t, err)

	s, err := websmith.Open(driver, websmith.WithWaitTimeout(3*time.Second), websmith.WithPollInterval(100*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, srv.URL
}

func TestPlaywright_FormActions(t *testing.T) {
	s, url := launch(t)
	ctx := context.Background()

	require.NoError(t, s.Go(ctx, url))

	title, err := s.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "WebSmith", title)

	require.NoError(t, s.FillForm(ctx, map[string]any{"firstname": "John", "lastname": "Steinbeck", "subscribe": true}))

	first, err := s.FindByName(ctx, "firstname")
	require.NoError(t, err)
	v, err := first.Value()
	require.NoError(t, err)
	assert.Equal(t, "John", v)

	require.NoError(t, s.Choose(ctx, "writers", "steinbeck"))
	radio, err := s.FindByXPath(ctx, `//input[@type="radio" and @value="steinbeck"]`)
	require.NoError(t, err)
	checked, err := radio.Checked()
	require.NoError(t, err)
	assert.True(t, checked)

	require.NoError(t, s.SelectByText(ctx, "writers", "Ray Bradbury"))
	opt, err := s.FindByXPath(ctx, `//option[@value="bradbury"]`)
	require.NoError(t, err)
	selected, err := opt.Checked()
	require.NoError(t, err)
	assert.True(t, selected)

	link, err := s.LinkByText(ctx, "WebSmith")
	require.NoError(t, err)
	v, err = link.Value()
	require.NoError(t, err)
	assert.Equal(t, "WebSmith", v)
}

func TestPlaywright_WaitForLateElement(t *testing.T) {
	s, url := launch(t)
	ctx := context.Background()

	require.NoError(t, s.Go(ctx, url))

	el, err := s.WaitVisible(ctx, websmith.ByID("appeared"))
	require.NoError(t, err)
	text, err := el.Text()
	require.NoError(t, err)
	assert.Equal(t, "ready", text)

	require.NoError(t, s.Hover(ctx, websmith.ByID("appeared")))
	require.NoError(t, s.ScrollPage(ctx))

	_, err = s.Wait(ctx, websmith.ByID("never"))
	assert.ErrorIs(t, err, websmith.ErrWaitTimeout)
}
