package browser

const (
	scriptTagName = `el => el.tagName.toLowerCase()`

	scriptValue = `el => {
		const tag = el.tagName.toLowerCase();
		if (['input', 'textarea', 'select', 'option'].includes(tag)) return String(el.value);
		if (el.hasAttribute('value')) return el.getAttribute('value');
		return (el.textContent || '').trim();
	}`

	scriptChecked = `el => el.tagName.toLowerCase() === 'option' ? el.selected : !!el.checked`

	scriptScrollIntoView = `el => el.scrollIntoView(false)`

	scriptSetValue = `(el, value) => {
		el.value = value;
		el.dispatchEvent(new Event('input', {bubbles: true}));
		el.dispatchEvent(new Event('change', {bubbles: true}));
	}`

	// scriptInspect lists the interactive elements of the page with a
	// locator in strategy=value form that finds each of them.
	scriptInspect = `(() => {
		const out = [];
		const tags = 'a, button, input, select, textarea, [role="button"], [onclick]';
		const isVisible = (el) => {
			const rect = el.getBoundingClientRect();
			const style = window.getComputedStyle(el);
			return rect.width > 0 && rect.height > 0 &&
				style.display !== 'none' && style.visibility !== 'hidden';
		};
		const locatorFor = (el) => {
			const tag = el.tagName.toLowerCase();
			if (el.id && /^[A-Za-z][\w-]*$/.test(el.id)) return 'id=' + el.id;
			const name = el.getAttribute('name');
			if (name && ['input', 'select', 'textarea', 'button'].includes(tag)) {
				if (el.type === 'radio' || el.type === 'checkbox') {
					return 'xpath=//input[@name="' + name + '" and @value="' + (el.getAttribute('value') || '') + '"]';
				}
				return 'name=' + name;
			}
			const text = (el.textContent || '').trim();
			if (tag === 'a' && text && text.length < 80) return 'link-text=' + text.replace(/\s+/g, ' ');
			return 'css=' + tag + ':nth-of-type(' + (Array.from(el.parentNode.children).filter(c => c.tagName === el.tagName).indexOf(el) + 1) + ')';
		};
		for (const el of document.querySelectorAll(tags)) {
			out.push({
				tag: el.tagName.toLowerCase(),
				type: el.getAttribute('type') || '',
				text: (el.innerText || el.value || '').trim().slice(0, 80),
				locator: locatorFor(el),
				visible: isVisible(el),
			});
		}
		return out;
	})()`
)

// ElementInfo describes one interactive element found by Inspect.
type ElementInfo struct {
	Tag     string
	Type    string
	Text    string
	Locator string
	Visible bool
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}

	return ""
}

func getBool(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}

	return false
}
