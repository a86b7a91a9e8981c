package websmith

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldKind is the input strategy a form field needs.
type FieldKind int

const (
	FieldOther FieldKind = iota
	FieldText
	FieldCheckbox
	FieldRadio
	FieldSelect
)

func (k FieldKind) String() string {
	switch k {
	case FieldText:
		return "text"
	case FieldCheckbox:
		return "checkbox"
	case FieldRadio:
		return "radio"
	case FieldSelect:
		return "select"
	default:
		return "other"
	}
}

var textInputTypes = map[string]bool{
	"":         true,
	"text":     true,
	"password": true,
	"email":    true,
	"search":   true,
	"tel":      true,
	"url":      true,
	"number":   true,
}

// KindOf resolves the FieldKind of el from its tag and type attribute.
func KindOf(el Element) (FieldKind, error) {
	tag, err := el.TagName()
	if err != nil {
		return FieldOther, err
	}

	switch strings.ToLower(tag) {
	case "textarea":
		return FieldText, nil
	case "select":
		return FieldSelect, nil
	case "input":
		typ, err := el.Attribute("type")
		if err != nil {
			return FieldOther, err
		}

		typ = strings.ToLower(strings.TrimSpace(typ))

		switch {
		case textInputTypes[typ]:
			return FieldText, nil
		case typ == "checkbox":
			return FieldCheckbox, nil
		case typ == "radio":
			return FieldRadio, nil
		}
	}

	return FieldOther, nil
}

// truthy decides the checked state a form value asks for.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}

		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		s := fmt.Sprint(t)

		return s != "" && s != "0"
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
