package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"websmith/pkg/websmith"
)

type element struct {
	driver *Driver
	loc    playwright.Locator
}

var _ websmith.Element = (*element)(nil)

func (e *element) evalOpts() playwright.LocatorEvaluateOptions {
	return playwright.LocatorEvaluateOptions{Timeout: playwright.Float(e.driver.timeout)}
}

func (e *element) TagName() (string, error) {
	v, err := e.loc.Evaluate(scriptTagName, nil, e.evalOpts())
	if err != nil {
		return "", err
	}

	return fmt.Sprint(v), nil
}

func (e *element) Attribute(name string) (string, error) {
	return e.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: playwright.Float(e.driver.timeout)})
}

func (e *element) Text() (string, error) {
	text, err := e.loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: playwright.Float(e.driver.timeout)})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

func (e *element) Value() (string, error) {
	v, err := e.loc.Evaluate(scriptValue, nil, e.evalOpts())
	if err != nil {
		return "", err
	}

	return fmt.Sprint(v), nil
}

func (e *element) Checked() (bool, error) {
	v, err := e.loc.Evaluate(scriptChecked, nil, e.evalOpts())
	if err != nil {
		return false, err
	}

	checked, _ := v.(bool)

	return checked, nil
}

func (e *element) Visible() (bool, error) {
	return e.loc.IsVisible()
}
