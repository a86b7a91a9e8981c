package websmith

import "context"

//go:generate mockgen -destination=mocks/driver_mock.go -package=mocks websmith/pkg/websmith Driver,Element

// Driver is the browser-automation layer a Session delegates to. FindOne
// returns ErrElementNotFound when nothing matches; FindMany returns an empty
// slice in that case.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	Title(ctx context.Context) (string, error)
	FindOne(ctx context.Context, loc Locator) (Element, error)
	FindMany(ctx context.Context, loc Locator) ([]Element, error)
	Click(ctx context.Context, el Element) error
	SendKeys(ctx context.Context, el Element, text string) error
	SetValue(ctx context.Context, el Element, value string) error
	SetChecked(ctx context.Context, el Element, checked bool) error
	SelectOption(ctx context.Context, el Element, value string) error
	MoveTo(ctx context.Context, el Element) error
	ScrollIntoView(ctx context.Context, el Element) error
	ExecuteScript(ctx context.Context, script string, args ...any) (any, error)
	Quit(ctx context.Context) error
}

// Element is a driver-owned reference to a DOM node. Callers must not keep it
// past the call that produced it.
type Element interface {
	TagName() (string, error)
	Attribute(name string) (string, error)
	Text() (string, error)
	Value() (string, error)
	Checked() (bool, error)
	Visible() (bool, error)
}
