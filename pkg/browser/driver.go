package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"websmith/pkg/apperr"
	"websmith/pkg/logg"
	"websmith/pkg/tracing"
	"websmith/pkg/websmith"
)

const (
	driverName   = "PlaywrightDriver"
	driverTracer = "browser.driver"
)

var ErrForeignElement = errors.New("element does not belong to this driver")

var fillableInputs = map[string]bool{
	"": true, "text": true, "password": true, "email": true, "search": true,
	"tel": true, "url": true, "number": true, "date": true, "time": true,
	"datetime-local": true, "month": true, "week": true, "color": true, "range": true,
}

// Driver is a websmith.Driver over one playwright page.
type Driver struct {
	page     playwright.Page
	timeout  float64
	keyDelay float64
	logger   *zap.Logger
	tracer   trace.Tracer
}

var _ websmith.Driver = (*Driver)(nil)

func newDriver(page playwright.Page, cfg Config, logger *zap.Logger) *Driver {
	return &Driver{
		page:     page,
		timeout:  cfg.timeout(),
		keyDelay: cfg.keyDelay(),
		logger:   logger.With(zap.String(logg.Layer, driverName)),
		tracer:   otel.Tracer(driverTracer),
	}
}

func (d *Driver) Navigate(ctx context.Context, url string) (err error) {
	const op = "Navigate"
	logger := d.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	_, step := tracing.StartSpan(ctx, d.tracer, logger, op, attribute.String("url", url))
	defer func() {
		step.End(err)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err = d.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(d.timeout),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "goto_failed",
			apperr.MetaStage:  apperr.StageNavigation,
			apperr.MetaURL:    url,
		})
	}

	step.AddEvent("navigation completed")

	return nil
}

func (d *Driver) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return d.page.Title()
}

func (d *Driver) FindOne(ctx context.Context, loc websmith.Locator) (websmith.Element, error) {
	l, err := d.locate(ctx, loc)
	if err != nil {
		return nil, err
	}

	n, err := l.Count()
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, apperr.NotFoundError("FindOne", fmt.Errorf("%s: %w", loc, websmith.ErrElementNotFound))
	}

	return d.wrap(l.First()), nil
}

func (d *Driver) FindMany(ctx context.Context, loc websmith.Locator) ([]websmith.Element, error) {
	l, err := d.locate(ctx, loc)
	if err != nil {
		return nil, err
	}

	all, err := l.All()
	if err != nil {
		return nil, err
	}

	out := make([]websmith.Element, 0, len(all))
	for _, item := range all {
		out = append(out, d.wrap(item))
	}

	return out, nil
}

func (d *Driver) locate(ctx context.Context, loc websmith.Locator) (playwright.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sel, err := selectorFor(loc)
	if err != nil {
		return nil, err
	}

	return d.page.Locator(sel), nil
}

func (d *Driver) Click(ctx context.Context, el websmith.Element) error {
	e, err := d.own(ctx, el)
	if err != nil {
		return err
	}

	return e.loc.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(d.timeout)})
}

func (d *Driver) SendKeys(ctx context.Context, el websmith.Element, text string) error {
	e, err := d.own(ctx, el)
	if err != nil {
		return err
	}

	return e.loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay:   playwright.Float(d.keyDelay),
		Timeout: playwright.Float(d.timeout),
	})
}

func (d *Driver) SetValue(ctx context.Context, el websmith.Element, value string) error {
	e, err := d.own(ctx, el)
	if err != nil {
		return err
	}

	tag, err := e.TagName()
	if err != nil {
		return err
	}

	switch tag {
	case "textarea":
		return e.loc.Fill(value, playwright.LocatorFillOptions{Timeout: playwright.Float(d.timeout)})
	case "select":
		return d.SelectOption(ctx, el, value)
	case "input":
		typ, err := e.Attribute("type")
		if err != nil {
			return err
		}

		if fillableInputs[strings.ToLower(typ)] {
			return e.loc.Fill(value, playwright.LocatorFillOptions{Timeout: playwright.Float(d.timeout)})
		}
	}

	_, err = e.loc.Evaluate(scriptSetValue, value, playwright.LocatorEvaluateOptions{Timeout: playwright.Float(d.timeout)})

	return err
}

func (d *Driver) SetChecked(ctx context.Context, el websmith.Element, checked bool) error {
	e, err := d.own(ctx, el)
	if err != nil {
		return err
	}

	return e.loc.SetChecked(checked, playwright.LocatorSetCheckedOptions{Timeout: playwright.Float(d.timeout)})
}

func (d *Driver) SelectOption(ctx context.Context, el websmith.Element, value string) error {
	e, err := d.own(ctx, el)
	if err != nil {
		return err
	}

	_, err = e.loc.SelectOption(
		playwright.SelectOptionValues{Values: playwright.StringSlice(value)},
		playwright.LocatorSelectOptionOptions{Timeout: playwright.Float(d.timeout)},
	)

	return err
}

func (d *Driver) MoveTo(ctx context.Context, el websmith.Element) error {
	e, err := d.own(ctx, el)
	if err != nil {
		return err
	}

	return e.loc.Hover(playwright.LocatorHoverOptions{Timeout: playwright.Float(d.timeout)})
}

func (d *Driver) ScrollIntoView(ctx context.Context, el websmith.Element) error {
	e, err := d.own(ctx, el)
	if err != nil {
		return err
	}

	_, err = e.loc.Evaluate(scriptScrollIntoView, nil, playwright.LocatorEvaluateOptions{Timeout: playwright.Float(d.timeout)})

	return err
}

func (d *Driver) ExecuteScript(ctx context.Context, script string, args ...any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return d.page.Evaluate(script, args...)
}

// Quit closes the page. The browser stays up until its Manager closes.
func (d *Driver) Quit(_ context.Context) error {
	if d.page.IsClosed() {
		return nil
	}

	return d.page.Close()
}

// Screenshot writes a full-page PNG of the current page to path.
func (d *Driver) Screenshot(ctx context.Context, path string) (err error) {
	const op = "Screenshot"
	logger := d.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, d.tracer, logger, op, attribute.String("path", path))
	defer func() {
		step.End(err)
	}()

	_, err = d.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
		Timeout:  playwright.Float(d.timeout),
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "screenshot_failed",
			apperr.MetaStage:  apperr.StageScreenshot,
		})
	}

	return nil
}

// Inspect lists the interactive elements on the current page.
func (d *Driver) Inspect(ctx context.Context) ([]ElementInfo, error) {
	const op = "Inspect"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := d.page.Evaluate(scriptInspect)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "evaluate_failed",
		})
	}

	items, ok := result.([]any)
	if !ok {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeInternal, "unexpected_result_type")
	}

	infos := make([]ElementInfo, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		infos = append(infos, ElementInfo{
			Tag:     getString(m, "tag"),
			Type:    getString(m, "type"),
			Text:    getString(m, "text"),
			Locator: getString(m, "locator"),
			Visible: getBool(m, "visible"),
		})
	}

	return infos, nil
}

func (d *Driver) wrap(l playwright.Locator) *element {
	return &element{driver: d, loc: l}
}

func (d *Driver) own(ctx context.Context, el websmith.Element) (*element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, ok := el.(*element)
	if !ok || e == nil || e.driver != d {
		return nil, ErrForeignElement
	}

	return e, nil
}
