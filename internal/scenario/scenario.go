// Package scenario reads YAML step files into entity.Scenario values and
// checks that every step carries the fields its action needs.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"websmith/internal/entity"
	"websmith/pkg/apperr"
	"websmith/pkg/websmith"
)

// Load reads and validates the scenario at path.
func Load(path string) (*entity.Scenario, error) {
	const op = "scenario.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeNotFound, err, map[string]any{
			apperr.MetaReason: "open_failed",
			apperr.MetaStage:  apperr.StageScenario,
		})
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse decodes one scenario document from r. source names it in errors and
// becomes the scenario name when the document has none.
func Parse(r io.Reader, source string) (*entity.Scenario, error) {
	const op = "scenario.Parse"

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var scn entity.Scenario
	if err := dec.Decode(&scn); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}

		return nil, apperr.Wrap(op, apperr.CodeInvalidArgument, fmt.Errorf("%s: %w", source, err), map[string]any{
			apperr.MetaReason: "decode_failed",
			apperr.MetaStage:  apperr.StageScenario,
		})
	}

	scn.Source = source
	if scn.Name == "" {
		scn.Name = source
	}

	if err := Validate(&scn); err != nil {
		return nil, err
	}

	return &scn, nil
}

// Validate checks every step and resolves relative go URLs against BaseURL.
func Validate(scn *entity.Scenario) error {
	const op = "scenario.Validate"

	if len(scn.Steps) == 0 {
		return apperr.Wrap(op, apperr.CodeInvalidArgument, fmt.Errorf("%s: no steps", scn.Name), map[string]any{
			apperr.MetaReason: "no_steps",
			apperr.MetaStage:  apperr.StageScenario,
		})
	}

	for i := range scn.Steps {
		step := &scn.Steps[i]

		if err := ValidateStep(step); err != nil {
			return apperr.Wrap(op, apperr.CodeInvalidArgument, fmt.Errorf("%s: step %d (%s): %w", scn.Name, i+1, step.Action, err), map[string]any{
				apperr.MetaReason: "invalid_step",
				apperr.MetaStage:  apperr.StageScenario,
				apperr.MetaStep:   i + 1,
			})
		}

		if step.Action == entity.StepGo && scn.BaseURL != "" {
			resolved, err := resolve(scn.BaseURL, step.URL)
			if err != nil {
				return apperr.InvalidReqError(op, "base_url", err)
			}

			step.URL = resolved
		}
	}

	return nil
}

// ValidateStep checks that step names a known action and carries the fields
// that action needs.
func ValidateStep(step *entity.Step) error {
	if !slices.Contains(entity.StepActions, step.Action) {
		return fmt.Errorf("unknown action %q", step.Action)
	}

	var missing []string
	need := func(ok bool, field string) {
		if !ok {
			missing = append(missing, field)
		}
	}

	hasValue := step.Value != nil && fmt.Sprint(step.Value) != ""

	switch step.Action {
	case entity.StepGo:
		need(step.URL != "", "url")
	case entity.StepFill, entity.StepChoose, entity.StepSelect:
		need(step.Name != "", "name")
		need(step.Value != nil, "value")
	case entity.StepFillForm:
		need(len(step.Fields) > 0, "fields")
	case entity.StepCheck, entity.StepUncheck:
		need(step.Name != "", "name")
	case entity.StepClick, entity.StepWaitAndClick, entity.StepHover, entity.StepWait,
		entity.StepWaitVisible, entity.StepScrollIntoView, entity.StepExpectChecked:
		need(step.Target != "", "target")
	case entity.StepSendKeys, entity.StepExpectValue, entity.StepExpectText:
		need(step.Target != "", "target")
		need(step.Value != nil, "value")
	case entity.StepScreenshot, entity.StepExpectTitle:
		need(hasValue, "value")
	case entity.StepScrollPage:
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}

	if step.Target != "" {
		if _, err := websmith.ParseLocator(step.Target); err != nil {
			return err
		}
	}

	return nil
}

func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}

	return b.ResolveReference(r).String(), nil
}
