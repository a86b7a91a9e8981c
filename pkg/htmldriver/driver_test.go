package htmldriver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"websmith/pkg/apperr"
	"websmith/pkg/websmith"
)

const page = `<html><head><title> Fixture </title><script>var x = 1;</script></head>
<body>
  <form id="f">
    <input name="q">
    <input type="checkbox" name="c" checked>
    <input type="radio" name="r" value="a" checked>
    <input type="radio" name="r" value="b">
    <select name="s" multiple>
      <option>plain</option>
      <option value="v1" selected>One</option>
    </select>
    <textarea name="t">old</textarea>
  </form>
  <form id="g"><input type="radio" name="r" value="z" checked></form>
  <div hidden><span id="inner">hidden child</span></div>
  <p id="styled" style="visibility : hidden">ghost</p>
  <p id="shown" class="note">shown</p>
</body></html>`

func loaded(t *testing.T) *Driver {
	t.Helper()

	d := New()
	require.NoError(t, d.LoadHTML("http://fixture.test/", strings.NewReader(page)))

	return d
}

func find(t *testing.T, d *Driver, loc websmith.Locator) websmith.Element {
	t.Helper()

	el, err := d.FindOne(context.Background(), loc)
	require.NoError(t, err)

	return el
}

func TestDriver_Title(t *testing.T) {
	d := loaded(t)

	title, err := d.Title(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Fixture", title)
}

func TestDriver_NoDocument(t *testing.T) {
	d := New()

	_, err := d.FindOne(context.Background(), websmith.ByID("x"))
	assert.ErrorIs(t, err, ErrNoDocument)

	_, err = d.Title(context.Background())
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestDriver_FindCSSAndXPath(t *testing.T) {
	d := loaded(t)
	ctx := context.Background()

	byCSS, err := d.FindMany(ctx, websmith.ByCSS("p.note"))
	require.NoError(t, err)
	require.Len(t, byCSS, 1)

	text, err := byCSS[0].Text()
	require.NoError(t, err)
	assert.Equal(t, "shown", text)

	radios, err := d.FindMany(ctx, websmith.ByXPath(`//input[@type="radio"]`))
	require.NoError(t, err)
	assert.Len(t, radios, 3)

	_, err = d.FindOne(ctx, websmith.ByID("missing"))
	assert.ErrorIs(t, err, websmith.ErrElementNotFound)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))

	_, err = d.FindMany(ctx, websmith.ByXPath("//[["))
	assert.Error(t, err)
}

func TestDriver_TextNodesAreNotElements(t *testing.T) {
	d := loaded(t)

	els, err := d.FindMany(context.Background(), websmith.ByXPath("//p/text()"))
	require.NoError(t, err)
	assert.Empty(t, els)
}

func TestDriver_SendKeysAndSetValue(t *testing.T) {
	d := loaded(t)
	ctx := context.Background()

	q := find(t, d, websmith.ByName("q"))
	require.NoError(t, d.SendKeys(ctx, q, "go"))
	require.NoError(t, d.SendKeys(ctx, q, "lang"))

	v, err := q.Value()
	require.NoError(t, err)
	assert.Equal(t, "golang", v)

	ta := find(t, d, websmith.ByName("t"))
	require.NoError(t, d.SetValue(ctx, ta, ""))
	require.NoError(t, d.SendKeys(ctx, ta, "new"))

	v, err = ta.Value()
	require.NoError(t, err)
	assert.Equal(t, "new", v)

	p := find(t, d, websmith.ByID("shown"))
	assert.ErrorIs(t, d.SendKeys(ctx, p, "x"), ErrUnsupported)
}

func TestDriver_CheckboxClickToggles(t *testing.T) {
	d := loaded(t)
	ctx := context.Background()

	c := find(t, d, websmith.ByName("c"))

	require.NoError(t, d.Click(ctx, c))
	checked, err := c.Checked()
	require.NoError(t, err)
	assert.False(t, checked)

	require.NoError(t, d.SetChecked(ctx, c, true))
	checked, err = c.Checked()
	require.NoError(t, err)
	assert.True(t, checked)
}

func TestDriver_RadioGroupScopedToForm(t *testing.T) {
	d := loaded(t)
	ctx := context.Background()

	a := find(t, d, websmith.ByXPath(`//input[@value="a"]`))
	b := find(t, d, websmith.ByXPath(`//input[@value="b"]`))
	z := find(t, d, websmith.ByXPath(`//input[@value="z"]`))

	require.NoError(t, d.Click(ctx, b))

	for el, want := range map[websmith.Element]bool{a: false, b: true, z: true} {
		got, err := el.Checked()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDriver_SelectOption(t *testing.T) {
	d := loaded(t)
	ctx := context.Background()

	sel := find(t, d, websmith.ByName("s"))

	v, err := sel.Value()
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	require.NoError(t, d.SelectOption(ctx, sel, "plain"))

	plain := find(t, d, websmith.ByXPath(`//option[1]`))
	selected, err := plain.Checked()
	require.NoError(t, err)
	assert.True(t, selected)

	one := find(t, d, websmith.ByXPath(`//option[@value="v1"]`))
	selected, err = one.Checked()
	require.NoError(t, err)
	assert.True(t, selected, "multiple select keeps earlier selection")

	assert.ErrorIs(t, d.SelectOption(ctx, sel, "nope"), websmith.ErrElementNotFound)
	assert.ErrorIs(t, d.SelectOption(ctx, plain, "plain"), ErrUnsupported)
}

func TestDriver_Visibility(t *testing.T) {
	d := loaded(t)

	for id, want := range map[string]bool{"inner": false, "styled": false, "shown": true} {
		visible, err := find(t, d, websmith.ByID(id)).Visible()
		require.NoError(t, err)
		assert.Equal(t, want, visible, id)
	}

	script := find(t, d, websmith.ByTag("script"))
	visible, err := script.Visible()
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestDriver_ForeignElement(t *testing.T) {
	d1 := loaded(t)
	d2 := loaded(t)

	el := find(t, d1, websmith.ByName("q"))
	assert.ErrorIs(t, d2.Click(context.Background(), el), ErrForeignElement)
}

func TestDriver_ExecuteScript(t *testing.T) {
	d := loaded(t)

	_, err := d.ExecuteScript(context.Background(), "jQuery.active")
	assert.ErrorIs(t, err, ErrScriptUnsupported)
}

func TestDriver_NavigateHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(`<html><head><title>Home</title></head><body><a href="next">next</a></body></html>`))
		case "/next":
			_, _ = w.Write([]byte(`<html><head><title>Next</title></head></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d := New(WithHTTPClient(srv.Client()))
	ctx := context.Background()

	require.NoError(t, d.Navigate(ctx, srv.URL+"/"))
	require.NoError(t, d.Click(ctx, find(t, d, websmith.ByLinkText("next"))))

	title, err := d.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Next", title)
	assert.Equal(t, srv.URL+"/next", d.URL())

	assert.Error(t, d.Navigate(ctx, "/missing"))
}

func TestDriver_NavigateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o600))

	d := New()
	require.NoError(t, d.Navigate(context.Background(), "file://"+path))

	title, err := d.Title(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Fixture", title)
}

func TestDriver_Quit(t *testing.T) {
	d := loaded(t)

	require.NoError(t, d.Quit(context.Background()))
	assert.Empty(t, d.URL())
	assert.Error(t, d.LoadHTML("http://fixture.test/", strings.NewReader(page)))
}

func TestDriver_ClickInPageLinks(t *testing.T) {
	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		if r.URL.Path == "/other.html" {
			_, _ = w.Write([]byte(`<html><head><title>Other</title></head></html>`))

			return
		}

		_, _ = w.Write([]byte(`<html><head><title>Links</title></head><body>
<input name="q">
<a id="top" href="#top">Top</a>
<a id="self" href="p.html#section">Section</a>
<a id="bare" href="#">Bare</a>
<a id="js" href="javascript:void(0)">Script</a>
<a id="other" href="other.html#x">Other</a>
</body></html>`))
	}))
	defer srv.Close()

	ctx := context.Background()
	d := New(WithHTTPClient(srv.Client()))
	require.NoError(t, d.Navigate(ctx, srv.URL+"/p.html"))
	require.EqualValues(t, 1, hits.Load())

	q := find(t, d, websmith.ByName("q"))
	require.NoError(t, d.SendKeys(ctx, q, "John"))

	tests := []struct {
		id      string
		wantURL string
	}{
		{"top", srv.URL + "/p.html#top"},
		{"self", srv.URL + "/p.html#section"},
		{"bare", srv.URL + "/p.html#section"},
		{"js", srv.URL + "/p.html#section"},
	}

	for _, tt := range tests {
		require.NoError(t, d.Click(ctx, find(t, d, websmith.ByID(tt.id))), tt.id)
		assert.Equal(t, tt.wantURL, d.URL(), tt.id)
		assert.EqualValues(t, 1, hits.Load(), tt.id)

		value, err := find(t, d, websmith.ByName("q")).Value()
		require.NoError(t, err)
		assert.Equal(t, "John", value, tt.id)
	}

	require.NoError(t, d.Click(ctx, find(t, d, websmith.ByID("other"))))
	assert.EqualValues(t, 2, hits.Load())
	assert.Equal(t, srv.URL+"/other.html#x", d.URL())

	title, err := d.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Other", title)
}
