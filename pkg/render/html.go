package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Escape HTML-escapes text content and attribute values.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Attr writes ` name="value"` with the value escaped. Empty values are skipped.
func Attr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
}

// BoolAttr writes ` name` when on.
func BoolAttr(b *strings.Builder, name string, on bool) {
	if !on {
		return
	}
	b.WriteByte(' ')
	b.WriteString(name)
}

// Classes joins class tokens, skipping blanks and duplicates.
func Classes(tokens ...string) string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		for _, part := range strings.Fields(token) {
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return strings.Join(out, " ")
}

// ClassIf returns class when on, "" otherwise.
func ClassIf(on bool, class string) string {
	if on {
		return class
	}
	return ""
}

// NewlinesToBreaks escapes text and converts newlines into <br>.
func NewlinesToBreaks(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}

// Icon renders an icon. Values starting with "<svg" are sanitized inline SVG;
// anything else is treated as an icon name.
func Icon(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(name), "<svg") {
		svg := SanitizeIcon(name)
		if svg == "" {
			return ""
		}
		return `<span class="` + ClassPrefix + `icon" aria-hidden="true">` + svg + `</span>`
	}
	return `<i class="` + ClassPrefix + `icon ` + ClassPrefix + `icon-` + html.EscapeString(sanitizeIconName(name)) + `" aria-hidden="true"></i>`
}

func sanitizeIconName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.' || r == '/':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy

	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

// SanitizeIcon keeps a safe subset of inline SVG markup.
func SanitizeIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

// SanitizeHTML applies bluemonday's UGC policy to user-authored rich text.
func SanitizeHTML(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	htmlPolicyOnce.Do(func() {
		htmlPolicy = bluemonday.UGCPolicy()
	})
	return htmlPolicy.Sanitize(raw)
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "desc", "defs",
		)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"stroke-linecap", "stroke-linejoin", "class",
			).OnElements(el)
		}
		policy.AllowAttrs("id").OnElements("g", "defs")

		iconPolicy = policy
	})
	return iconPolicy
}
