package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"websmith/internal/entity"
	"websmith/internal/usecase/adapters"
	"websmith/pkg/apperr"
	"websmith/pkg/logg"
	"websmith/pkg/tracing"
	"websmith/pkg/websmith"
)

var (
	ErrAssertionFailed = errors.New("assertion failed")
	ErrUnsupported     = errors.New("not supported by the current driver")
)

type screenshotter interface {
	Screenshot(ctx context.Context, path string) error
}

// ExecuteStep runs one step on an attached session. The returned text is a
// short human-readable outcome, empty for steps that only act.
func (s *ScenarioService) ExecuteStep(ctx context.Context, a adapters.Attachment, step entity.Step) (out string, err error) {
	const op = "ExecuteStep"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Action, string(step.Action)))

	ctx, span := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String("action", string(step.Action)))
	defer func() {
		span.End(err)
	}()

	session := a.Session()

	var loc websmith.Locator
	if step.Target != "" {
		loc, err = websmith.ParseLocator(step.Target)
		if err != nil {
			return "", err
		}
	}

	switch step.Action {
	case entity.StepGo:
		return "", session.Go(ctx, step.URL)
	case entity.StepFill:
		return "", session.Fill(ctx, step.Name, step.Value)
	case entity.StepFillForm:
		return "", session.FillForm(ctx, step.Fields)
	case entity.StepChoose:
		return "", session.Choose(ctx, step.Name, text(step.Value))
	case entity.StepSelect:
		if step.ByText {
			return "", session.SelectByText(ctx, step.Name, text(step.Value))
		}

		return "", session.Select(ctx, step.Name, text(step.Value))
	case entity.StepCheck:
		return "", session.Check(ctx, step.Name)
	case entity.StepUncheck:
		return "", session.Uncheck(ctx, step.Name)
	case entity.StepClick:
		return "", session.Click(ctx, loc)
	case entity.StepWaitAndClick:
		return "", session.WaitAndClick(ctx, loc)
	case entity.StepHover:
		return "", session.Hover(ctx, loc)
	case entity.StepSendKeys:
		return "", session.SendKeys(ctx, loc, text(step.Value))
	case entity.StepWait:
		return describe(session.Wait(ctx, loc))
	case entity.StepWaitVisible:
		return describe(session.WaitVisible(ctx, loc))
	case entity.StepScrollIntoView:
		return "", session.ScrollIntoView(ctx, loc)
	case entity.StepScrollPage:
		return "", session.ScrollPage(ctx)
	case entity.StepScreenshot:
		return s.screenshot(ctx, a.Driver(), text(step.Value))
	case entity.StepExpectTitle:
		return s.expectTitle(ctx, session, text(step.Value))
	case entity.StepExpectValue:
		return s.expectElement(ctx, session, loc, "value", text(step.Value), websmith.Element.Value)
	case entity.StepExpectText:
		return s.expectElement(ctx, session, loc, "text", text(step.Value), websmith.Element.Text)
	case entity.StepExpectChecked:
		return s.expectChecked(ctx, session, loc, step.Value)
	default:
		return "", apperr.InvalidReqError(op, "action", fmt.Errorf("unknown action %q", step.Action))
	}
}

func (s *ScenarioService) screenshot(ctx context.Context, driver websmith.Driver, path string) (string, error) {
	const op = "Screenshot"

	shooter, ok := driver.(screenshotter)
	if !ok {
		return "", apperr.Wrap(op, apperr.CodeInvalidArgument, ErrUnsupported, map[string]any{
			apperr.MetaReason: "screenshot_unsupported",
			apperr.MetaStage:  apperr.StageScreenshot,
		})
	}

	if err := shooter.Screenshot(ctx, path); err != nil {
		return "", err
	}

	return "saved " + path, nil
}

func (s *ScenarioService) expectTitle(ctx context.Context, session *websmith.Session, want string) (string, error) {
	const op = "ExpectTitle"

	got, err := session.Title(ctx)
	if err != nil {
		return "", err
	}

	if got != want {
		return "", assertionError(op, "title", want, got, websmith.Locator{})
	}

	return "title: " + got, nil
}

func (s *ScenarioService) expectElement(
	ctx context.Context,
	session *websmith.Session,
	loc websmith.Locator,
	what, want string,
	read func(websmith.Element) (string, error),
) (string, error) {
	const op = "ExpectElement"

	el, err := session.Wait(ctx, loc)
	if err != nil {
		return "", err
	}

	got, err := read(el)
	if err != nil {
		return "", apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason:  "read_failed",
			apperr.MetaStage:   apperr.StageAssertion,
			apperr.MetaLocator: loc.String(),
		})
	}

	if got != want {
		return "", assertionError(op, what, want, got, loc)
	}

	return fmt.Sprintf("%s: %s", what, got), nil
}

func (s *ScenarioService) expectChecked(ctx context.Context, session *websmith.Session, loc websmith.Locator, value any) (string, error) {
	const op = "ExpectChecked"

	want, err := wantChecked(value)
	if err != nil {
		return "", apperr.InvalidReqError(op, "value", err)
	}

	el, err := session.Wait(ctx, loc)
	if err != nil {
		return "", err
	}

	got, err := el.Checked()
	if err != nil {
		return "", apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason:  "read_failed",
			apperr.MetaStage:   apperr.StageAssertion,
			apperr.MetaLocator: loc.String(),
		})
	}

	if got != want {
		return "", assertionError(op, "checked", strconv.FormatBool(want), strconv.FormatBool(got), loc)
	}

	return "checked: " + strconv.FormatBool(got), nil
}

func assertionError(op, what, want, got string, loc websmith.Locator) error {
	meta := map[string]any{
		apperr.MetaReason: what + "_mismatch",
		apperr.MetaStage:  apperr.StageAssertion,
	}
	if loc.Value != "" {
		meta[apperr.MetaLocator] = loc.String()
	}

	return apperr.Wrap(op, apperr.CodeAssertion, fmt.Errorf("%w: %s is %q, want %q", ErrAssertionFailed, what, got, want), meta)
}

func wantChecked(v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return true, nil
	case bool:
		return t, nil
	default:
		return strconv.ParseBool(strings.TrimSpace(fmt.Sprint(t)))
	}
}

func describe(el websmith.Element, err error) (string, error) {
	if err != nil {
		return "", err
	}

	tag, err := el.TagName()
	if err != nil {
		return "found element", nil
	}

	return "found <" + tag + ">", nil
}

func text(v any) string {
	if v == nil {
		return ""
	}

	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}
