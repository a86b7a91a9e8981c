package websmith

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"websmith/pkg/apperr"
	"websmith/pkg/logg"
)

// Go loads url in the browser.
func (s *Session) Go(ctx context.Context, url string) error {
	const op = "Go"

	return performErr(ctx, s, action(op, zap.String(logg.URL, url)), func(ctx context.Context, d Driver, _ *Waiter) error {
		if strings.TrimSpace(url) == "" {
			return apperr.InvalidReqError(op, "url", errors.New("url cannot be empty"))
		}

		if err := d.Navigate(ctx, url); err != nil {
			return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
				apperr.MetaReason: "navigate_failed",
				apperr.MetaStage:  apperr.StageNavigation,
				apperr.MetaURL:    url,
			})
		}

		return nil
	})
}

// Title returns the current document title.
func (s *Session) Title(ctx context.Context) (string, error) {
	return perform(ctx, s, action("Title"), func(ctx context.Context, d Driver, _ *Waiter) (string, error) {
		return d.Title(ctx)
	})
}

// Fill waits for the field called name and fills it according to its kind:
// text-like fields are cleared and typed into, checkboxes follow the
// truthiness of value, radio groups and selects pick the matching option and
// anything else has its value assigned.
func (s *Session) Fill(ctx context.Context, name string, value any) error {
	const op = "Fill"

	return performErr(ctx, s, action(op, zap.String(apperr.MetaField, name), zap.Any("value", value)), func(ctx context.Context, d Driver, w *Waiter) error {
		el, err := w.UntilPresent(ctx, ByName(name))
		if err != nil {
			return notInteractable(op, ByName(name), err)
		}

		kind, err := KindOf(el)
		if err != nil {
			return interactionError(op, ByName(name), "kind_lookup_failed", err)
		}

		s.logger.Debug("Resolved field kind", zap.String(apperr.MetaField, name), zap.Stringer("kind", kind))

		switch kind {
		case FieldText:
			if err := d.SetValue(ctx, el, ""); err != nil {
				return interactionError(op, ByName(name), "clear_failed", err)
			}

			if err := d.SendKeys(ctx, el, stringify(value)); err != nil {
				return interactionError(op, ByName(name), "send_keys_failed", err)
			}
		case FieldCheckbox:
			if err := d.SetChecked(ctx, el, truthy(value)); err != nil {
				return interactionError(op, ByName(name), "set_checked_failed", err)
			}
		case FieldRadio:
			return s.Choose(ctx, name, stringify(value))
		case FieldSelect:
			return s.Select(ctx, name, stringify(value))
		case FieldOther:
			if err := d.SetValue(ctx, el, stringify(value)); err != nil {
				return interactionError(op, ByName(name), "set_value_failed", err)
			}
		}

		return nil
	})
}

// FillForm fills every field of fields, keyed by name, in sorted key order.
// It stops at the first field that fails.
func (s *Session) FillForm(ctx context.Context, fields map[string]any) error {
	const op = "FillForm"

	return performErr(ctx, s, action(op, zap.Strings("fields", slices.Sorted(maps.Keys(fields)))), func(ctx context.Context, _ Driver, _ *Waiter) error {
		for _, name := range slices.Sorted(maps.Keys(fields)) {
			if err := s.Fill(ctx, name, fields[name]); err != nil {
				return err
			}
		}

		return nil
	})
}

// Choose clicks the radio button of group whose value attribute equals value.
func (s *Session) Choose(ctx context.Context, group, value string) error {
	const op = "Choose"

	return performErr(ctx, s, action(op, zap.String("group", group), zap.String("value", value)), func(ctx context.Context, d Driver, _ *Waiter) error {
		loc := ByXPath(`//input[@type="radio" and @name=` + xpathLiteral(group) + `]`)

		radios, err := d.FindMany(ctx, loc)
		if err != nil {
			return lookupError(op, loc, err)
		}

		for _, radio := range radios {
			v, err := radio.Attribute("value")
			if err != nil {
				continue
			}

			if v == value {
				if err := d.Click(ctx, radio); err != nil {
					return interactionError(op, loc, "click_failed", err)
				}

				return nil
			}
		}

		return apperr.Wrap(op, apperr.CodeNotFound, fmt.Errorf("no radio %q in group %q: %w", value, group, ErrElementNotFound), map[string]any{
			apperr.MetaReason:  "option_not_found",
			apperr.MetaStage:   apperr.StageLookup,
			apperr.MetaLocator: loc.String(),
		})
	})
}

// Select picks the option of the named select whose value attribute is value.
func (s *Session) Select(ctx context.Context, name, value string) error {
	return s.selectOption(ctx, "Select", name, value, false)
}

// SelectByText picks the option of the named select whose trimmed text is
// exactly text.
func (s *Session) SelectByText(ctx context.Context, name, text string) error {
	return s.selectOption(ctx, "SelectByText", name, text, true)
}

func (s *Session) selectOption(ctx context.Context, op, name, want string, byText bool) error {
	c := action(op, zap.String(apperr.MetaField, name), zap.String("value", want), zap.Bool("by_text", byText))

	return performErr(ctx, s, c, func(ctx context.Context, d Driver, _ *Waiter) error {
		selectLoc := ByXPath(`//select[@name=` + xpathLiteral(name) + `]`)

		sel, err := d.FindOne(ctx, selectLoc)
		if err != nil {
			return lookupError(op, selectLoc, err)
		}

		optionsLoc := ByXPath(`//select[@name=` + xpathLiteral(name) + `]//option`)

		options, err := d.FindMany(ctx, optionsLoc)
		if err != nil {
			return lookupError(op, optionsLoc, err)
		}

		for _, option := range options {
			optionValue, err := option.Attribute("value")
			if err != nil {
				continue
			}

			matched := optionValue == want
			if byText {
				text, err := option.Text()
				if err != nil {
					continue
				}

				matched = strings.TrimSpace(text) == want
				if optionValue == "" {
					optionValue = strings.TrimSpace(text)
				}
			}

			if !matched {
				continue
			}

			if err := d.SelectOption(ctx, sel, optionValue); err != nil {
				return interactionError(op, selectLoc, "select_failed", err)
			}

			return nil
		}

		return apperr.Wrap(op, apperr.CodeNotFound, fmt.Errorf("no option %q under select %q: %w", want, name, ErrElementNotFound), map[string]any{
			apperr.MetaReason:  "option_not_found",
			apperr.MetaStage:   apperr.StageLookup,
			apperr.MetaLocator: optionsLoc.String(),
		})
	})
}

// Check marks the named checkbox as checked.
func (s *Session) Check(ctx context.Context, name string) error {
	return s.setChecked(ctx, "Check", name, true)
}

// Uncheck clears the named checkbox.
func (s *Session) Uncheck(ctx context.Context, name string) error {
	return s.setChecked(ctx, "Uncheck", name, false)
}

func (s *Session) setChecked(ctx context.Context, op, name string, checked bool) error {
	return performErr(ctx, s, action(op, zap.String(apperr.MetaField, name)), func(ctx context.Context, d Driver, w *Waiter) error {
		el, err := w.UntilPresent(ctx, ByName(name))
		if err != nil {
			return notInteractable(op, ByName(name), err)
		}

		if err := d.SetChecked(ctx, el, checked); err != nil {
			return interactionError(op, ByName(name), "set_checked_failed", err)
		}

		return nil
	})
}

// Click clicks the first element matching loc without waiting for it.
func (s *Session) Click(ctx context.Context, loc Locator) error {
	const op = "Click"

	return performErr(ctx, s, action(op, zap.String(logg.Locator, loc.String())), func(ctx context.Context, d Driver, _ *Waiter) error {
		el, err := d.FindOne(ctx, loc)
		if err != nil {
			return lookupError(op, loc, err)
		}

		if err := d.Click(ctx, el); err != nil {
			return interactionError(op, loc, "click_failed", err)
		}

		return nil
	})
}

// WaitAndClick waits for loc to be present, then clicks it.
func (s *Session) WaitAndClick(ctx context.Context, loc Locator) error {
	const op = "WaitAndClick"

	return performErr(ctx, s, action(op, zap.String(logg.Locator, loc.String())), func(ctx context.Context, d Driver, w *Waiter) error {
		el, err := w.UntilPresent(ctx, loc)
		if err != nil {
			return notInteractable(op, loc, err)
		}

		if err := d.Click(ctx, el); err != nil {
			return interactionError(op, loc, "click_failed", err)
		}

		return nil
	})
}

// Hover waits for loc to be visible, scrolls it into view, moves the pointer
// over it and waits for async activity to settle.
func (s *Session) Hover(ctx context.Context, loc Locator) error {
	const op = "Hover"

	return performErr(ctx, s, action(op, zap.String(logg.Locator, loc.String())), func(ctx context.Context, d Driver, w *Waiter) error {
		el, err := w.UntilVisible(ctx, loc)
		if err != nil {
			return notInteractable(op, loc, err)
		}

		if err := d.ScrollIntoView(ctx, el); err != nil {
			return interactionError(op, loc, "scroll_failed", err)
		}

		if err := d.MoveTo(ctx, el); err != nil {
			return interactionError(op, loc, "move_failed", err)
		}

		return w.Settle(ctx)
	})
}

// SendKeys waits for loc to be present and types value into it.
func (s *Session) SendKeys(ctx context.Context, loc Locator, value string) error {
	const op = "SendKeys"

	return performErr(ctx, s, action(op, zap.String(logg.Locator, loc.String()), zap.String("value", value)), func(ctx context.Context, d Driver, w *Waiter) error {
		el, err := w.UntilPresent(ctx, loc)
		if err != nil {
			return notInteractable(op, loc, err)
		}

		if err := d.SendKeys(ctx, el, value); err != nil {
			return interactionError(op, loc, "send_keys_failed", err)
		}

		return nil
	})
}

// Wait blocks until loc is present. A timeout yields a nil element and an
// error matching ErrWaitTimeout; callers decide whether that is fatal.
func (s *Session) Wait(ctx context.Context, loc Locator) (Element, error) {
	return perform(ctx, s, action("Wait", zap.String(logg.Locator, loc.String())), func(ctx context.Context, _ Driver, w *Waiter) (Element, error) {
		return w.UntilPresent(ctx, loc)
	})
}

// WaitVisible is Wait for a visible element.
func (s *Session) WaitVisible(ctx context.Context, loc Locator) (Element, error) {
	return perform(ctx, s, action("WaitVisible", zap.String(logg.Locator, loc.String())), func(ctx context.Context, _ Driver, w *Waiter) (Element, error) {
		return w.UntilVisible(ctx, loc)
	})
}

// ScrollIntoView waits for loc and scrolls it into the visible area,
// aligned to the bottom of the viewport.
func (s *Session) ScrollIntoView(ctx context.Context, loc Locator) error {
	const op = "ScrollIntoView"

	return performErr(ctx, s, action(op, zap.String(logg.Locator, loc.String())), func(ctx context.Context, d Driver, w *Waiter) error {
		el, err := w.UntilPresent(ctx, loc)
		if err != nil {
			return notInteractable(op, loc, err)
		}

		if err := d.ScrollIntoView(ctx, el); err != nil {
			return interactionError(op, loc, "scroll_failed", err)
		}

		return nil
	})
}

// ScrollPage scrolls the window back to the top.
func (s *Session) ScrollPage(ctx context.Context) error {
	const op = "ScrollPage"

	return performErr(ctx, s, action(op), func(ctx context.Context, d Driver, _ *Waiter) error {
		if _, err := d.ExecuteScript(ctx, "window.scroll(350, 0)"); err != nil {
			return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
				apperr.MetaReason: "script_failed",
				apperr.MetaStage:  apperr.StageInteraction,
			})
		}

		return nil
	})
}

func notInteractable(op string, loc Locator, err error) error {
	return apperr.Wrap(op, apperr.CodeNotInteractable, fmt.Errorf("%w: %w", ErrNotInteractable, err), map[string]any{
		apperr.MetaReason:  "wait_yielded_nothing",
		apperr.MetaStage:   apperr.StageInteraction,
		apperr.MetaLocator: loc.String(),
	})
}

func interactionError(op string, loc Locator, reason string, err error) error {
	return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
		apperr.MetaReason:  reason,
		apperr.MetaStage:   apperr.StageInteraction,
		apperr.MetaLocator: loc.String(),
	})
}
