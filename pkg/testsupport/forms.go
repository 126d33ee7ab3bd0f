package testsupport

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// FormValues parses rendered form markup the way a browser builds the
// submission: enabled inputs with a name contribute their value, checkboxes
// and radios only when checked, selects contribute their selected option and
// later entries with the same name override earlier ones.
func FormValues(t *testing.T, markup string) map[string]string {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse form markup: %v", err)
	}

	values := make(map[string]string)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			name := attr(n, "name")
			_, disabled := attrOK(n, "disabled")
			if name != "" && !disabled {
				switch n.Data {
				case "input":
					collectInput(n, name, values)
				case "textarea":
					values[name] = textContent(n)
				case "select":
					if value, ok := selectedOption(n); ok {
						values[name] = value
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return values
}

func collectInput(n *html.Node, name string, values map[string]string) {
	switch strings.ToLower(attr(n, "type")) {
	case "checkbox", "radio":
		if _, checked := attrOK(n, "checked"); !checked {
			return
		}
		value, ok := attrOK(n, "value")
		if !ok {
			value = "on"
		}
		values[name] = value
	case "file", "submit", "button":
	default:
		values[name] = attr(n, "value")
	}
}

func selectedOption(n *html.Node) (string, bool) {
	var first, selected *html.Node
	var find func(*html.Node)
	find = func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == "option" {
			if first == nil {
				first = c
			}
			if _, ok := attrOK(c, "selected"); ok && selected == nil {
				selected = c
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			find(child)
		}
	}
	find(n)
	if selected == nil {
		selected = first
	}
	if selected == nil {
		return "", false
	}
	if value, ok := attrOK(selected, "value"); ok {
		return value, true
	}
	return textContent(selected), true
}

func attr(n *html.Node, key string) string {
	value, _ := attrOK(n, key)
	return value
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
