package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"

	"websmith/internal/entity"
	"websmith/internal/scenario"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// splitArgs splits a line the way a POSIX shell would, without expansion.
// A word starting with # begins a comment, so bare css ids need quoting or
// the css= prefix.
func splitArgs(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUnterminatedQuote, err)
	}

	return args, nil
}

// parseStep turns a console line such as `fill firstname "John"` into a
// validated step. Hyphens in the action name are accepted for underscores.
func parseStep(line string) (entity.Step, error) {
	args, err := splitArgs(line)
	if err != nil {
		return entity.Step{}, err
	}

	if len(args) == 0 {
		return entity.Step{}, errors.New("empty command")
	}

	step := entity.Step{Action: entity.StepAction(strings.ReplaceAll(strings.ToLower(args[0]), "-", "_"))}
	rest := args[1:]

	arg := func(i int) string {
		if i < len(rest) {
			return rest[i]
		}

		return ""
	}
	tail := func(i int) any {
		if i < len(rest) {
			return strings.Join(rest[i:], " ")
		}

		return nil
	}

	switch step.Action {
	case entity.StepGo:
		step.URL = arg(0)
	case entity.StepFill, entity.StepChoose:
		step.Name = arg(0)
		step.Value = tail(1)
	case entity.StepSelect:
		if arg(0) == "-t" || arg(0) == "--text" {
			step.ByText = true
			rest = rest[1:]
		}

		step.Name = arg(0)
		step.Value = tail(1)
	case entity.StepFillForm:
		step.Fields = make(map[string]any, len(rest))

		for _, kv := range rest {
			name, value, ok := strings.Cut(kv, "=")
			if !ok || name == "" {
				return entity.Step{}, fmt.Errorf("fill_form field %q is not NAME=VALUE", kv)
			}

			step.Fields[name] = value
		}
	case entity.StepCheck, entity.StepUncheck:
		step.Name = arg(0)
	case entity.StepClick, entity.StepWaitAndClick, entity.StepHover, entity.StepWait,
		entity.StepWaitVisible, entity.StepScrollIntoView:
		step.Target = arg(0)
	case entity.StepSendKeys, entity.StepExpectValue, entity.StepExpectText:
		step.Target = arg(0)
		step.Value = tail(1)
	case entity.StepExpectChecked:
		step.Target = arg(0)
		if v := arg(1); v != "" {
			step.Value = v
		}
	case entity.StepScreenshot, entity.StepExpectTitle:
		step.Value = tail(0)
	case entity.StepScrollPage:
	}

	if err := scenario.ValidateStep(&step); err != nil {
		return entity.Step{}, err
	}

	return step, nil
}
