// Package htmldriver is a websmith.Driver over a static, in-process DOM. It
// fetches pages over HTTP (or reads file:// URLs), parses them with
// golang.org/x/net/html and answers CSS queries through goquery and XPath
// queries through htmlquery. Form interactions mutate the parsed tree.
// Scripts never run, so ExecuteScript always fails with ErrScriptUnsupported.
package htmldriver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"websmith/pkg/apperr"
	"websmith/pkg/logg"
	"websmith/pkg/websmith"
)

const (
	driverName     = "HTMLDriver"
	defaultTimeout = 30 * time.Second
	blankPage      = "about:blank"
)

var (
	ErrScriptUnsupported = errors.New("static driver cannot execute scripts")
	ErrNoDocument        = errors.New("no document loaded")
	ErrForeignElement    = errors.New("element does not belong to this driver")
	ErrUnsupported       = errors.New("operation not supported by element")
	ErrQuit              = errors.New("driver has quit")
)

type Driver struct {
	client *http.Client
	logger *zap.Logger

	mu   sync.Mutex
	doc  *html.Node
	url  string
	quit bool
}

type Option func(*Driver)

func WithHTTPClient(client *http.Client) Option {
	return func(d *Driver) {
		if client != nil {
			d.client = client
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func New(opts ...Option) *Driver {
	d := &Driver{
		client: &http.Client{Timeout: defaultTimeout},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.logger = d.logger.With(zap.String(logg.Layer, driverName))

	return d
}

var _ websmith.Driver = (*Driver)(nil)

// LoadHTML replaces the current document with the markup read from r, as if
// it had been served from pageURL.
func (d *Driver) LoadHTML(pageURL string, r io.Reader) error {
	const op = "LoadHTML"

	doc, err := htmlquery.Parse(r)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInvalidArgument, err, map[string]any{
			apperr.MetaReason: "parse_failed",
			apperr.MetaURL:    pageURL,
		})
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.quit {
		return apperr.Wrap(op, apperr.CodeUnavailable, ErrQuit, nil)
	}

	d.doc = doc
	d.url = pageURL

	return nil
}

// URL returns the address of the current document.
func (d *Driver) URL() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.url
}

func (d *Driver) Navigate(ctx context.Context, rawURL string) error {
	const op = "Navigate"
	logger := d.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, rawURL))

	target, err := d.resolve(rawURL)
	if err != nil {
		return apperr.InvalidReqError(op, "url", err)
	}

	logger.Debug("Loading page", zap.String("resolved", target.String()))

	body, err := d.fetch(ctx, target)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "fetch_failed",
			apperr.MetaStage:  apperr.StageNavigation,
			apperr.MetaURL:    target.String(),
		})
	}
	defer body.Close()

	return d.LoadHTML(target.String(), body)
}

func (d *Driver) resolve(rawURL string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	current := d.url
	d.mu.Unlock()

	if ref.IsAbs() || current == "" || current == blankPage {
		return ref, nil
	}

	base, err := url.Parse(current)
	if err != nil {
		return ref, nil
	}

	return base.ResolveReference(ref), nil
}

func (d *Driver) fetch(ctx context.Context, target *url.URL) (io.ReadCloser, error) {
	switch target.Scheme {
	case "about":
		return io.NopCloser(strings.NewReader("<html><head></head><body></body></html>")), nil
	case "file":
		return os.Open(target.Path)
	case "http", "https":
	default:
		return nil, fmt.Errorf("unsupported url scheme %q", target.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()

		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return resp.Body, nil
}

func (d *Driver) Title(_ context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.doc == nil {
		return "", ErrNoDocument
	}

	title := htmlquery.FindOne(d.doc, "//title")
	if title == nil {
		return "", nil
	}

	return strings.TrimSpace(htmlquery.InnerText(title)), nil
}

func (d *Driver) FindOne(_ context.Context, loc websmith.Locator) (websmith.Element, error) {
	nodes, err := d.query(loc)
	if err != nil {
		return nil, err
	}

	if len(nodes) == 0 {
		return nil, apperr.NotFoundError("FindOne", fmt.Errorf("%s: %w", loc, websmith.ErrElementNotFound))
	}

	return &element{driver: d, node: nodes[0]}, nil
}

func (d *Driver) FindMany(_ context.Context, loc websmith.Locator) ([]websmith.Element, error) {
	nodes, err := d.query(loc)
	if err != nil {
		return nil, err
	}

	out := make([]websmith.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &element{driver: d, node: n})
	}

	return out, nil
}

func (d *Driver) query(loc websmith.Locator) ([]*html.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.doc == nil {
		return nil, ErrNoDocument
	}

	if loc.Strategy == websmith.StrategyCSS {
		return goquery.NewDocumentFromNode(d.doc).Find(loc.Value).Nodes, nil
	}

	expr, ok := loc.XPath()
	if !ok {
		return nil, fmt.Errorf("unsupported locator strategy %q", loc.Strategy)
	}

	nodes, err := htmlquery.QueryAll(d.doc, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}

	return elementsOnly(nodes), nil
}

func elementsOnly(nodes []*html.Node) []*html.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
	}

	return out
}

func (d *Driver) Click(ctx context.Context, el websmith.Element) error {
	n, err := d.own(el)
	if err != nil {
		return err
	}

	d.mu.Lock()
	href := d.clickLocked(n)
	d.mu.Unlock()

	if href == "" {
		return nil
	}

	target, follow := d.linkTarget(href)
	if !follow {
		return nil
	}

	return d.Navigate(ctx, target)
}

// linkTarget decides what a click on a link with href does. javascript:
// links and in-page fragment jumps keep the current document; a fragment jump
// only updates URL.
func (d *Driver) linkTarget(href string) (string, bool) {
	href = strings.TrimSpace(href)

	if strings.HasPrefix(strings.ToLower(href), "javascript:") {
		d.logger.Debug("Ignoring script link", zap.String(logg.URL, href))

		return "", false
	}

	ref, err := d.resolve(href)
	if err != nil || ref.Fragment == "" && !strings.HasSuffix(href, "#") {
		return href, true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	current, err := url.Parse(d.url)
	if err != nil {
		return href, true
	}

	sameDoc := *ref
	sameDoc.Fragment, sameDoc.RawFragment = "", ""
	current.Fragment, current.RawFragment = "", ""

	if sameDoc.String() != current.String() {
		return href, true
	}

	d.url = ref.String()

	return "", false
}

// clickLocked applies the DOM side effect of a click and returns the href to
// follow when n is (inside) a link.
func (d *Driver) clickLocked(n *html.Node) string {
	switch tagOf(n) {
	case "input":
		switch inputType(n) {
		case "checkbox":
			if hasAttr(n, "checked") {
				removeAttr(n, "checked")
			} else {
				setAttr(n, "checked", "checked")
			}

			return ""
		case "radio":
			checkRadio(n)

			return ""
		}
	case "option":
		if sel := enclosingSelect(n); sel != nil {
			selectOptionNode(sel, n)
		}

		return ""
	}

	for a := n; a != nil; a = a.Parent {
		if tagOf(a) == "a" {
			return htmlquery.SelectAttr(a, "href")
		}
	}

	return ""
}

func (d *Driver) SendKeys(_ context.Context, el websmith.Element, text string) error {
	n, err := d.own(el)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch tagOf(n) {
	case "input":
		setAttr(n, "value", htmlquery.SelectAttr(n, "value")+text)
	case "textarea":
		setText(n, htmlquery.InnerText(n)+text)
	default:
		return fmt.Errorf("send keys to <%s>: %w", tagOf(n), ErrUnsupported)
	}

	return nil
}

func (d *Driver) SetValue(_ context.Context, el websmith.Element, value string) error {
	n, err := d.own(el)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch tagOf(n) {
	case "textarea":
		setText(n, value)
	case "select":
		opt := findOption(n, value)
		if opt == nil {
			return fmt.Errorf("option %q: %w", value, websmith.ErrElementNotFound)
		}

		selectOptionNode(n, opt)
	default:
		setAttr(n, "value", value)
	}

	return nil
}

func (d *Driver) SetChecked(_ context.Context, el websmith.Element, checked bool) error {
	n, err := d.own(el)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if tagOf(n) != "input" {
		return fmt.Errorf("set checked on <%s>: %w", tagOf(n), ErrUnsupported)
	}

	switch inputType(n) {
	case "checkbox":
		if checked {
			setAttr(n, "checked", "checked")
		} else {
			removeAttr(n, "checked")
		}
	case "radio":
		if checked {
			checkRadio(n)
		} else {
			removeAttr(n, "checked")
		}
	default:
		return fmt.Errorf("set checked on input type %q: %w", inputType(n), ErrUnsupported)
	}

	return nil
}

func (d *Driver) SelectOption(_ context.Context, el websmith.Element, value string) error {
	n, err := d.own(el)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if tagOf(n) != "select" {
		return fmt.Errorf("select option on <%s>: %w", tagOf(n), ErrUnsupported)
	}

	opt := findOption(n, value)
	if opt == nil {
		return fmt.Errorf("option %q: %w", value, websmith.ErrElementNotFound)
	}

	selectOptionNode(n, opt)

	return nil
}

// MoveTo and ScrollIntoView have no layout to act on; they only check that
// the element is ours.
func (d *Driver) MoveTo(_ context.Context, el websmith.Element) error {
	_, err := d.own(el)

	return err
}

func (d *Driver) ScrollIntoView(_ context.Context, el websmith.Element) error {
	_, err := d.own(el)

	return err
}

func (d *Driver) ExecuteScript(_ context.Context, script string, _ ...any) (any, error) {
	return nil, fmt.Errorf("%.40q: %w", script, ErrScriptUnsupported)
}

func (d *Driver) Quit(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.doc = nil
	d.url = ""
	d.quit = true
	d.logger.Debug("Driver quit")

	return nil
}

func (d *Driver) own(el websmith.Element) (*html.Node, error) {
	e, ok := el.(*element)
	if !ok || e == nil || e.driver != d {
		return nil, ErrForeignElement
	}

	return e.node, nil
}
