package htmldriver

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"websmith/pkg/websmith"
)

type element struct {
	driver *Driver
	node   *html.Node
}

var _ websmith.Element = (*element)(nil)

func (e *element) TagName() (string, error) {
	return tagOf(e.node), nil
}

func (e *element) Attribute(name string) (string, error) {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()

	return htmlquery.SelectAttr(e.node, name), nil
}

func (e *element) Text() (string, error) {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()

	return strings.TrimSpace(htmlquery.InnerText(e.node)), nil
}

func (e *element) Value() (string, error) {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()

	return valueOf(e.node), nil
}

func (e *element) Checked() (bool, error) {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()

	switch tagOf(e.node) {
	case "option":
		return hasAttr(e.node, "selected"), nil
	default:
		return hasAttr(e.node, "checked"), nil
	}
}

func (e *element) Visible() (bool, error) {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()

	return visible(e.node), nil
}

func (e *element) String() string {
	return "<" + tagOf(e.node) + ">"
}

func valueOf(n *html.Node) string {
	switch tagOf(n) {
	case "input":
		return htmlquery.SelectAttr(n, "value")
	case "textarea":
		return htmlquery.InnerText(n)
	case "option":
		return optionValue(n)
	case "select":
		options := htmlquery.Find(n, ".//option")
		for _, opt := range options {
			if hasAttr(opt, "selected") {
				return optionValue(opt)
			}
		}

		if len(options) > 0 {
			return optionValue(options[0])
		}

		return ""
	default:
		if hasAttr(n, "value") {
			return htmlquery.SelectAttr(n, "value")
		}

		return strings.TrimSpace(htmlquery.InnerText(n))
	}
}

func optionValue(n *html.Node) string {
	if hasAttr(n, "value") {
		return htmlquery.SelectAttr(n, "value")
	}

	return strings.TrimSpace(htmlquery.InnerText(n))
}

var invisibleTags = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"title":    true,
	"meta":     true,
	"link":     true,
	"template": true,
	"noscript": true,
}

// visible walks n and its ancestors looking for markup that hides it. Without
// a layout engine, stylesheet rules are not considered.
func visible(n *html.Node) bool {
	if tagOf(n) == "input" && inputType(n) == "hidden" {
		return false
	}

	for a := n; a != nil && a.Type == html.ElementNode; a = a.Parent {
		if invisibleTags[tagOf(a)] || hasAttr(a, "hidden") {
			return false
		}

		style := strings.ReplaceAll(strings.ToLower(htmlquery.SelectAttr(a, "style")), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
	}

	return true
}

func tagOf(n *html.Node) string {
	if n == nil {
		return ""
	}

	return strings.ToLower(n.Data)
}

func inputType(n *html.Node) string {
	t := strings.ToLower(strings.TrimSpace(htmlquery.SelectAttr(n, "type")))
	if t == "" {
		return "text"
	}

	return t
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}

	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val

			return
		}
	}

	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}

	n.Attr = attrs
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}

	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// checkRadio checks n and unchecks every other radio in its group within the
// same form, or the whole document when n has no form.
func checkRadio(n *html.Node) {
	name := htmlquery.SelectAttr(n, "name")
	if name != "" {
		scope := enclosing(n, "form")
		if scope == nil {
			scope = root(n)
		}

		for _, other := range htmlquery.Find(scope, `.//input[@type="radio"]`) {
			if other != n && htmlquery.SelectAttr(other, "name") == name {
				removeAttr(other, "checked")
			}
		}
	}

	setAttr(n, "checked", "checked")
}

func enclosingSelect(n *html.Node) *html.Node {
	return enclosing(n, "select")
}

func enclosing(n *html.Node, tag string) *html.Node {
	for a := n.Parent; a != nil; a = a.Parent {
		if a.Type == html.ElementNode && tagOf(a) == tag {
			return a
		}
	}

	return nil
}

func root(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}

	return n
}

func findOption(sel *html.Node, value string) *html.Node {
	for _, opt := range htmlquery.Find(sel, ".//option") {
		if optionValue(opt) == value {
			return opt
		}
	}

	return nil
}

func selectOptionNode(sel, opt *html.Node) {
	if !hasAttr(sel, "multiple") {
		for _, other := range htmlquery.Find(sel, ".//option") {
			removeAttr(other, "selected")
		}
	}

	setAttr(opt, "selected", "selected")
}
