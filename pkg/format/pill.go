package format

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

func errBuiltin(tag model.ValueFormat) error {
	return fmt.Errorf("format: %q is a built-in format", tag)
}

// Pill renders a coloured badge with an optional icon.
func Pill(rc *render.Context, color, icon, label string) string {
	var b strings.Builder
	b.WriteString(`<span class="`)
	b.WriteString(render.Escape(rc.Colors().Class("badge", color)))
	b.WriteString(`">`)
	b.WriteString(render.Icon(icon))
	b.WriteString(render.Escape(label))
	b.WriteString(`</span>`)
	return b.String()
}

// MapEntryLabel resolves the label for a mapped value: label_key through the
// translator, then label, then the raw value.
func MapEntryLabel(rc *render.Context, entry model.MapEntry, raw string) string {
	if strings.TrimSpace(entry.LabelKey) != "" {
		fallback := entry.Label
		if fallback == "" {
			fallback = raw
		}
		return rc.T(entry.LabelKey, fallback)
	}
	if strings.TrimSpace(entry.Label) != "" {
		return entry.Label
	}
	return raw
}

// LookupMap finds the entry for value's stringified form.
func LookupMap(entries map[string]model.MapEntry, value any) (model.MapEntry, string, bool) {
	raw := model.Stringify(value)
	if len(entries) == 0 {
		return model.MapEntry{}, raw, false
	}
	entry, ok := entries[raw]
	if !ok {
		entry, ok = entries[strings.TrimSpace(raw)]
	}
	return entry, raw, ok
}

// MappedPill renders value through map: a hit uses the entry's colour, icon
// and label; a miss renders a neutral pill with the raw value; an empty value
// renders Sentinel.
func MappedPill(rc *render.Context, entries map[string]model.MapEntry, value any) string {
	if model.IsEmpty(value) {
		return Sentinel
	}
	entry, raw, ok := LookupMap(entries, value)
	if !ok {
		return Pill(rc, "secondary", "", raw)
	}
	return Pill(rc, entry.Color, entry.Icon, MapEntryLabel(rc, entry, raw))
}
