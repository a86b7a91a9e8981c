package apperr

import (
	"errors"
	"fmt"
)

const (
	MetaReason  = "reason"
	MetaStage   = "stage"
	MetaField   = "field"
	MetaAction  = "action"
	MetaLocator = "locator"
	MetaURL     = "url"
	MetaStep    = "step"

	StageBrowser     = "browser"
	StageSession     = "session"
	StageWait        = "wait"
	StageSettle      = "settle"
	StageLookup      = "lookup"
	StageNavigation  = "navigation"
	StageInteraction = "interaction"
	StageScenario    = "scenario"
	StageAssertion   = "assertion"
	StageScreenshot  = "screenshot"

	CodeInternal        = "internal"
	CodeInvalidArgument = "invalid_argument"
	CodeNotFound        = "not_found"
	CodeUnavailable     = "unavailable"
	CodeTimeout         = "timeout"
	CodeBrowserNotReady = "browser_not_ready"
	CodeActionFailed    = "action_failed"
	CodeNoBoundDriver   = "no_bound_driver"
	CodeNotInteractable = "not_interactable"
	CodeAssertion       = "assertion_failed"
)

type Error struct {
	Op       string
	Code     string
	Err      error
	Metadata map[string]any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Wrap(op, code string, err error, metadata map[string]any) error {
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &Error{
		Op:       op,
		Code:     code,
		Err:      err,
		Metadata: metadata,
	}
}

func WrapErrorWithReason(op, code, reason string) error {
	return Wrap(op, code, errors.New(reason), map[string]any{
		MetaReason: reason,
	})
}

func InvalidReqError(op, field string, err error) error {
	return Wrap(op, CodeInvalidArgument, err, map[string]any{
		MetaField:  field,
		MetaReason: "invalid_request",
	})
}

func NotFoundError(op string, err error) error {
	return Wrap(op, CodeNotFound, err, map[string]any{
		MetaReason: "not_found",
	})
}

// CodeOf returns the code of the outermost *Error in the chain, or "" when
// err carries none.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return ""
}

// Meta looks up a metadata value on the outermost *Error in the chain.
func Meta(err error, key string) (any, bool) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return nil, false
	}

	v, ok := appErr.Metadata[key]

	return v, ok
}
