package browser

import (
	"fmt"

	"websmith/pkg/websmith"
)

// selectorFor renders loc in playwright selector syntax. CSS passes through
// unchanged; every other strategy goes through its XPath form.
func selectorFor(loc websmith.Locator) (string, error) {
	if loc.Strategy == websmith.StrategyCSS {
		return "css=" + loc.Value, nil
	}

	expr, ok := loc.XPath()
	if !ok {
		return "", fmt.Errorf("unsupported locator strategy %q", loc.Strategy)
	}

	return "xpath=" + expr, nil
}
