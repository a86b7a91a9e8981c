package websmith

import (
	"fmt"
	"regexp"
	"strings"

	"websmith/pkg/apperr"
)

// Strategy names how a Locator value is matched against the page.
type Strategy string

const (
	StrategyID              Strategy = "id"
	StrategyName            Strategy = "name"
	StrategyCSS             Strategy = "css"
	StrategyXPath           Strategy = "xpath"
	StrategyTag             Strategy = "tag"
	StrategyText            Strategy = "text"
	StrategyValue           Strategy = "value"
	StrategyLinkText        Strategy = "link-text"
	StrategyLinkPartialText Strategy = "link-partial-text"
	StrategyLinkHref        Strategy = "link-href"
	StrategyLinkPartialHref Strategy = "link-partial-href"
)

var strategies = []Strategy{
	StrategyID,
	StrategyName,
	StrategyCSS,
	StrategyXPath,
	StrategyTag,
	StrategyText,
	StrategyValue,
	StrategyLinkText,
	StrategyLinkPartialText,
	StrategyLinkHref,
	StrategyLinkPartialHref,
}

// Strategies returns every supported strategy.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)

	return out
}

func (s Strategy) Valid() bool {
	for _, known := range strategies {
		if s == known {
			return true
		}
	}

	return false
}

// Locator identifies zero or more elements on a page.
type Locator struct {
	Strategy Strategy
	Value    string
}

func ByID(id string) Locator                { return Locator{StrategyID, id} }
func ByName(name string) Locator            { return Locator{StrategyName, name} }
func ByCSS(css string) Locator              { return Locator{StrategyCSS, css} }
func ByXPath(xpath string) Locator          { return Locator{StrategyXPath, xpath} }
func ByTag(tag string) Locator              { return Locator{StrategyTag, tag} }
func ByText(text string) Locator            { return Locator{StrategyText, text} }
func ByValue(value string) Locator          { return Locator{StrategyValue, value} }
func ByLinkText(text string) Locator        { return Locator{StrategyLinkText, text} }
func ByPartialLinkText(text string) Locator { return Locator{StrategyLinkPartialText, text} }
func ByHref(href string) Locator            { return Locator{StrategyLinkHref, href} }
func ByPartialHref(href string) Locator     { return Locator{StrategyLinkPartialHref, href} }

func (l Locator) String() string {
	return string(l.Strategy) + "=" + l.Value
}

// XPath renders the locator as an XPath 1.0 expression. Every strategy except
// css has one; ok is false for css and for unknown strategies.
func (l Locator) XPath() (expr string, ok bool) {
	lit := xpathLiteral(l.Value)

	switch l.Strategy {
	case StrategyID:
		return "//*[@id=" + lit + "]", true
	case StrategyName:
		return "//*[@name=" + lit + "]", true
	case StrategyXPath:
		return l.Value, true
	case StrategyTag:
		return "//" + l.Value, true
	case StrategyText:
		return "//*[text()=" + lit + "]", true
	case StrategyValue:
		return "//*[@value=" + lit + "]", true
	case StrategyLinkText:
		return "//a[normalize-space(.)=" + lit + "]", true
	case StrategyLinkPartialText:
		return "//a[contains(normalize-space(.), " + lit + ")]", true
	case StrategyLinkHref:
		return "//a[@href=" + lit + "]", true
	case StrategyLinkPartialHref:
		return "//a[contains(@href, " + lit + ")]", true
	default:
		return "", false
	}
}

var strategyLike = regexp.MustCompile(`^[a-z][a-z-]*$`)

// ParseLocator reads "strategy=value" text. Text without a strategy prefix
// is treated as css; an unknown bare-word prefix is rejected.
func ParseLocator(text string) (Locator, error) {
	const op = "ParseLocator"

	text = strings.TrimSpace(text)
	if text == "" {
		return Locator{}, apperr.InvalidReqError(op, "locator", fmt.Errorf("locator cannot be empty"))
	}

	prefix, value, found := strings.Cut(text, "=")
	if !found {
		return ByCSS(text), nil
	}

	if Strategy(prefix).Valid() {
		if value == "" {
			return Locator{}, apperr.InvalidReqError(op, "locator", fmt.Errorf("locator %q has no value", text))
		}

		return Locator{Strategy: Strategy(prefix), Value: value}, nil
	}

	// A bare word before "=" is a mistyped strategy; CSS would only use "="
	// inside an attribute selector.
	if strategyLike.MatchString(prefix) {
		return Locator{}, apperr.InvalidReqError(op, "locator", fmt.Errorf("unknown locator strategy %q in %q", prefix, text))
	}

	return ByCSS(text), nil
}

// xpathLiteral quotes s as an XPath string literal, falling back to concat()
// when s contains both quote characters.
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}

	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)

	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}

		if part != "" {
			quoted = append(quoted, `"`+part+`"`)
		}
	}

	return "concat(" + strings.Join(quoted, ", ") + ")"
}
