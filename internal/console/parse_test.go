package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"websmith/internal/entity"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`go http://x`, []string{"go", "http://x"}},
		{`fill  bio   "two words"`, []string{"fill", "bio", "two words"}},
		{`expect_text css=p 'it''s'`, []string{"expect_text", "css=p", "its"}},
		{`send_keys id=q "say \"hi\""`, []string{"send_keys", "id=q", `say "hi"`}},
		{`fill name ""`, []string{"fill", "name", ""}},
		{`click css=#login`, []string{"click", "css=#login"}},
		{`click "#login" # trailing note`, []string{"click", "#login"}},
		{`send_keys id=q it\'s`, []string{"send_keys", "id=q", "it's"}},
	}

	for _, tt := range tests {
		got, err := splitArgs(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}

	for _, line := range []string{`fill name "open`, `fill name 'open`, `fill name trailing\`} {
		_, err := splitArgs(line)
		assert.ErrorIs(t, err, errUnterminatedQuote, line)
	}
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		line string
		want entity.Step
	}{
		{"go https://example.com", entity.Step{Action: entity.StepGo, URL: "https://example.com"}},
		{"fill firstname John", entity.Step{Action: entity.StepFill, Name: "firstname", Value: "John"}},
		{`fill bio "likes books"`, entity.Step{Action: entity.StepFill, Name: "bio", Value: "likes books"}},
		{"choose writers steinbeck", entity.Step{Action: entity.StepChoose, Name: "writers", Value: "steinbeck"}},
		{"select writers bradbury", entity.Step{Action: entity.StepSelect, Name: "writers", Value: "bradbury"}},
		{"select -t writers John Steinbeck", entity.Step{Action: entity.StepSelect, Name: "writers", Value: "John Steinbeck", ByText: true}},
		{"check subscribe", entity.Step{Action: entity.StepCheck, Name: "subscribe"}},
		{"wait-and-click link-text=Next", entity.Step{Action: entity.StepWaitAndClick, Target: "link-text=Next"}},
		{"send_keys name=q hello world", entity.Step{Action: entity.StepSendKeys, Target: "name=q", Value: "hello world"}},
		{"expect_title My Page", entity.Step{Action: entity.StepExpectTitle, Value: "My Page"}},
		{"expect_checked name=subscribe false", entity.Step{Action: entity.StepExpectChecked, Target: "name=subscribe", Value: "false"}},
		{"scroll_page", entity.Step{Action: entity.StepScrollPage}},
		{
			"fill_form firstname=John lastname=Steinbeck",
			entity.Step{Action: entity.StepFillForm, Fields: map[string]any{"firstname": "John", "lastname": "Steinbeck"}},
		},
	}

	for _, tt := range tests {
		got, err := parseStep(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestParseStep_Invalid(t *testing.T) {
	for _, line := range []string{
		"teleport somewhere",
		"go",
		"fill firstname",
		"click",
		"click foo=bar=",
		"fill_form firstname",
		`fill name "open`,
	} {
		_, err := parseStep(line)
		assert.Error(t, err, line)
	}
}
