package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_UnwrapsToCause(t *testing.T) {
	cause := errors.New("boom")

	err := Wrap("Click", CodeActionFailed, cause, nil)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "Click: boom", err.Error())
	assert.Equal(t, CodeActionFailed, CodeOf(err))
}

func TestCodeOf_FindsOutermostAppError(t *testing.T) {
	inner := Wrap("FindOne", CodeNotFound, errors.New("missing"), nil)
	outer := Wrap("Hover", CodeNotInteractable, inner, nil)

	assert.Equal(t, CodeNotInteractable, CodeOf(outer))
	assert.Equal(t, CodeNotInteractable, CodeOf(fmt.Errorf("ctx: %w", outer)))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestWrapErrorWithReason_SetsReasonMeta(t *testing.T) {
	err := WrapErrorWithReason("Open", CodeInvalidArgument, "nil_driver")

	reason, ok := Meta(err, MetaReason)
	require.True(t, ok)
	assert.Equal(t, "nil_driver", reason)
	assert.Equal(t, "Open: nil_driver", err.Error())
}

func TestInvalidReqError_RecordsField(t *testing.T) {
	err := InvalidReqError("Go", "url", errors.New("url cannot be empty"))

	field, ok := Meta(err, MetaField)
	require.True(t, ok)
	assert.Equal(t, "url", field)
	assert.Equal(t, CodeInvalidArgument, CodeOf(err))
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("FindByID", errors.New("no element"))

	assert.Equal(t, CodeNotFound, CodeOf(err))

	_, ok := Meta(errors.New("plain"), MetaReason)
	assert.False(t, ok)
}
