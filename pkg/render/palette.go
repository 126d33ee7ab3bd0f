package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ClassPrefix namespaces every CSS class the engine emits.
const ClassPrefix = "av-"

// Palette maps semantic colours (success, warning, info, ...) to CSS classes.
// Theme tokens named "<kind>.<color>" (e.g. "badge.success") replace the
// default "av-<kind> av-<kind>--<color>" classes.
type Palette struct {
	tokens map[string]string
}

// NewPalette builds a palette from raw tokens.
func NewPalette(tokens map[string]string) Palette {
	if len(tokens) == 0 {
		return Palette{}
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return Palette{tokens: out}
}

// PaletteFromSelection merges manifest tokens with the selected variant's
// tokens, the variant winning.
func PaletteFromSelection(selection *theme.Selection) Palette {
	if selection == nil || selection.Manifest == nil {
		return Palette{}
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return NewPalette(tokens)
}

// Token returns the raw token value.
func (p Palette) Token(key string) (string, bool) {
	value, ok := p.tokens[key]
	return value, ok && value != ""
}

// Class resolves the class list for a coloured element of kind.
func (p Palette) Class(kind, color string) string {
	color = sanitizeToken(color)
	if color == "" {
		color = "secondary"
	}
	if value, ok := p.Token(kind + "." + color); ok {
		return value
	}
	return ClassPrefix + kind + " " + ClassPrefix + kind + "--" + color
}

func sanitizeToken(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ClassToken reduces value to the characters allowed in a class-name suffix.
func ClassToken(value string) string {
	return sanitizeToken(value)
}

// Merge returns a palette holding p's tokens overlaid by other's.
func (p Palette) Merge(other Palette) Palette {
	if len(other.tokens) == 0 {
		return p
	}
	if len(p.tokens) == 0 {
		return other
	}
	out := make(map[string]string, len(p.tokens)+len(other.tokens))
	for key, value := range p.tokens {
		out[key] = value
	}
	for key, value := range other.tokens {
		out[key] = value
	}
	return Palette{tokens: out}
}
