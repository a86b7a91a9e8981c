package entity

import (
	"time"

	"github.com/google/uuid"
)

// Scenario is an ordered list of steps loaded from a YAML file.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Steps       []Step `yaml:"steps"`
	Source      string `yaml:"-"`
}

// Step is one action. Which fields matter depends on Action.
type Step struct {
	Action StepAction     `yaml:"action"`
	URL    string         `yaml:"url,omitempty"`
	Target string         `yaml:"target,omitempty"`
	Name   string         `yaml:"name,omitempty"`
	Value  any            `yaml:"value,omitempty"`
	ByText bool           `yaml:"by_text,omitempty"`
	Fields map[string]any `yaml:"fields,omitempty"`
}

type StepAction string

const (
	StepGo             StepAction = "go"
	StepFill           StepAction = "fill"
	StepFillForm       StepAction = "fill_form"
	StepChoose         StepAction = "choose"
	StepSelect         StepAction = "select"
	StepCheck          StepAction = "check"
	StepUncheck        StepAction = "uncheck"
	StepClick          StepAction = "click"
	StepWaitAndClick   StepAction = "wait_and_click"
	StepHover          StepAction = "hover"
	StepSendKeys       StepAction = "send_keys"
	StepWait           StepAction = "wait"
	StepWaitVisible    StepAction = "wait_visible"
	StepScrollIntoView StepAction = "scroll_into_view"
	StepScrollPage     StepAction = "scroll_page"
	StepScreenshot     StepAction = "screenshot"
	StepExpectTitle    StepAction = "expect_title"
	StepExpectValue    StepAction = "expect_value"
	StepExpectText     StepAction = "expect_text"
	StepExpectChecked  StepAction = "expect_checked"
)

// StepActions lists every action a step may name.
var StepActions = []StepAction{
	StepGo, StepFill, StepFillForm, StepChoose, StepSelect, StepCheck,
	StepUncheck, StepClick, StepWaitAndClick, StepHover, StepSendKeys,
	StepWait, StepWaitVisible, StepScrollIntoView, StepScrollPage,
	StepScreenshot, StepExpectTitle, StepExpectValue, StepExpectText,
	StepExpectChecked,
}

type RunStatus string

const (
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusPassed     RunStatus = "passed"
	RunStatusFailed     RunStatus = "failed"
)

// Run is the outcome of executing one scenario.
type Run struct {
	ID          uuid.UUID
	Scenario    string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Results     []StepResult
	Error       string
}

type StepResult struct {
	Index    int
	Action   StepAction
	Success  bool
	Error    string
	Duration time.Duration
}

// Passed reports whether every step succeeded.
func (r *Run) Passed() bool {
	return r.Status == RunStatusPassed
}
