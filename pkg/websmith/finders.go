package websmith

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"websmith/pkg/apperr"
	"websmith/pkg/logg"
)

// FindOne runs a single direct query for loc. No waiting, no retry.
func (s *Session) FindOne(ctx context.Context, loc Locator) (Element, error) {
	return s.findOne(ctx, "FindOne", loc)
}

// FindMany returns every element matching loc, or an empty slice.
func (s *Session) FindMany(ctx context.Context, loc Locator) ([]Element, error) {
	return s.findMany(ctx, "FindMany", loc)
}

func (s *Session) FindByID(ctx context.Context, id string) (Element, error) {
	return s.findOne(ctx, "FindByID", ByID(id))
}

func (s *Session) FindByName(ctx context.Context, name string) (Element, error) {
	return s.findOne(ctx, "FindByName", ByName(name))
}

func (s *Session) FindByXPath(ctx context.Context, xpath string) (Element, error) {
	return s.findOne(ctx, "FindByXPath", ByXPath(xpath))
}

func (s *Session) LinkByText(ctx context.Context, text string) (Element, error) {
	return s.findOne(ctx, "LinkByText", ByLinkText(text))
}

func (s *Session) LinkByPartialText(ctx context.Context, text string) (Element, error) {
	return s.findOne(ctx, "LinkByPartialText", ByPartialLinkText(text))
}

func (s *Session) LinkByHref(ctx context.Context, href string) (Element, error) {
	return s.findOne(ctx, "LinkByHref", ByHref(href))
}

func (s *Session) LinkByPartialHref(ctx context.Context, href string) (Element, error) {
	return s.findOne(ctx, "LinkByPartialHref", ByPartialHref(href))
}

func (s *Session) FindByCSS(ctx context.Context, css string) ([]Element, error) {
	return s.findMany(ctx, "FindByCSS", ByCSS(css))
}

func (s *Session) FindByTag(ctx context.Context, tag string) ([]Element, error) {
	return s.findMany(ctx, "FindByTag", ByTag(tag))
}

func (s *Session) FindByText(ctx context.Context, text string) ([]Element, error) {
	return s.findMany(ctx, "FindByText", ByText(text))
}

func (s *Session) FindByValue(ctx context.Context, value string) ([]Element, error) {
	return s.findMany(ctx, "FindByValue", ByValue(value))
}

func (s *Session) findOne(ctx context.Context, op string, loc Locator) (Element, error) {
	return perform(ctx, s, action(op, zap.String(logg.Locator, loc.String())), func(ctx context.Context, d Driver, _ *Waiter) (Element, error) {
		el, err := d.FindOne(ctx, loc)
		if err != nil {
			return nil, lookupError(op, loc, err)
		}

		return el, nil
	})
}

func (s *Session) findMany(ctx context.Context, op string, loc Locator) ([]Element, error) {
	return perform(ctx, s, action(op, zap.String(logg.Locator, loc.String())), func(ctx context.Context, d Driver, _ *Waiter) ([]Element, error) {
		els, err := d.FindMany(ctx, loc)
		if err != nil {
			return nil, lookupError(op, loc, err)
		}

		if els == nil {
			els = []Element{}
		}

		return els, nil
	})
}

func lookupError(op string, loc Locator, err error) error {
	code := apperr.CodeActionFailed
	reason := "driver_fault"

	if errors.Is(err, ErrElementNotFound) {
		code = apperr.CodeNotFound
		reason = "element_not_found"
	}

	return apperr.Wrap(op, code, err, map[string]any{
		apperr.MetaReason:  reason,
		apperr.MetaStage:   apperr.StageLookup,
		apperr.MetaLocator: loc.String(),
	})
}
