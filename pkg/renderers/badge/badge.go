// Package badge renders the small coloured labels shown in detail headers.
package badge

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-adminview/pkg/format"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

// Renderer renders BadgeConfig entries against an item.
type Renderer struct {
	formatter *format.Formatter
}

// New creates a badge renderer. A nil formatter uses format.New().
func New(formatter *format.Formatter) *Renderer {
	if formatter == nil {
		formatter = format.New()
	}
	return &Renderer{formatter: formatter}
}

// RenderAll renders every badge whose condition and permission pass,
// space-joined. entity resolves bare permissions.
func (r *Renderer) RenderAll(rc *render.Context, configs []model.BadgeConfig, item model.Item, entity string) string {
	parts := make([]string, 0, len(configs))
	for _, cfg := range configs {
		if !rc.Visible(cfg.Condition, item) {
			continue
		}
		if !rc.Can(cfg.Permission, entity) {
			continue
		}
		if out := r.Render(rc, cfg, item); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, " ")
}

// Render renders one badge. Only a status badge with an unmapped value, or a
// badge over an empty field, renders nothing.
func (r *Renderer) Render(rc *render.Context, cfg model.BadgeConfig, item model.Item) string {
	value := item.Value(cfg.Field)
	kind := model.BadgeType(strings.ToLower(strings.TrimSpace(string(cfg.Type))))

	switch kind {
	case model.BadgeFlag:
		return r.flag(rc, cfg, value)
	case model.BadgeCount:
		return r.count(rc, cfg, value)
	}

	if model.IsEmpty(value) {
		return ""
	}
	entry, raw, mapped := format.LookupMap(cfg.Map, value)

	switch kind {
	case model.BadgeStatus:
		if !mapped {
			return ""
		}
		return format.Pill(rc, entry.Color, entry.Icon, format.MapEntryLabel(rc, entry, raw))
	case model.BadgeIconText:
		icon, text := cfg.Icon, raw
		if mapped {
			text = format.MapEntryLabel(rc, entry, raw)
			if entry.Icon != "" {
				icon = entry.Icon
			}
		}
		return `<span class="av-icon-text">` + render.Icon(icon) + render.Escape(text) + `</span>`
	case model.BadgeCode:
		return `<span class="` + render.Escape(render.Classes(rc.Colors().Class("badge", fallback(cfg.Color, "secondary")), "av-badge--code")) +
			`"><code>` + render.Escape(raw) + `</code></span>`
	case model.BadgeRole:
		if mapped {
			return format.Pill(rc, entry.Color, entry.Icon, format.MapEntryLabel(rc, entry, raw))
		}
		return format.Pill(rc, fallback(cfg.Color, "secondary"), cfg.Icon, model.HumanizeKey(raw))
	case model.BadgeImage:
		src := format.ImageSource(raw)
		if src == "" {
			return format.Pill(rc, "secondary", "", raw)
		}
		alt := rc.Label(cfg.LabelKey, cfg.Label, cfg.Field)
		return `<img src="` + render.Escape(src) + `" alt="` + render.Escape(alt) + `" class="av-badge-image" loading="lazy">`
	case model.BadgeColor:
		color := strings.TrimSpace(raw)
		if !format.ValidColor(color) {
			return format.Pill(rc, "secondary", "", raw)
		}
		label := raw
		if mapped {
			label = format.MapEntryLabel(rc, entry, raw)
		}
		return `<span class="av-badge av-badge--color"><span class="av-color__swatch" style="background-color: ` +
			render.Escape(color) + `"></span>` + render.Escape(label) + `</span>`
	case model.BadgePlain:
	default:
		rc.Log().Debug().Str("badge", string(cfg.Type)).Msg("unknown badge type, rendering as plain")
	}

	if mapped {
		return format.Pill(rc, entry.Color, entry.Icon, format.MapEntryLabel(rc, entry, raw))
	}
	return format.Pill(rc, fallback(cfg.Color, "secondary"), cfg.Icon, raw)
}

func (r *Renderer) flag(rc *render.Context, cfg model.BadgeConfig, value any) string {
	if model.Truthy(value) {
		if entry, ok := cfg.Map["1"]; ok {
			return format.Pill(rc, entry.Color, entry.Icon, format.MapEntryLabel(rc, entry, rc.Label(cfg.LabelKey, cfg.Label, cfg.Field)))
		}
		return format.Pill(rc, fallback(cfg.Color, "success"), cfg.Icon, rc.Label(cfg.LabelKey, cfg.Label, cfg.Field))
	}
	if model.IsEmpty(value) {
		return ""
	}
	label := rc.Label(cfg.LabelKey, cfg.Label, cfg.Field)
	if entry, ok := cfg.Map["0"]; ok {
		return format.Pill(rc, entry.Color, entry.Icon, format.MapEntryLabel(rc, entry, label))
	}
	return format.Pill(rc, "secondary", "x", label)
}

func (r *Renderer) count(rc *render.Context, cfg model.BadgeConfig, value any) string {
	if model.IsEmpty(value) {
		return ""
	}
	n, ok := model.Count(value)
	if !ok {
		return format.Pill(rc, fallback(cfg.Color, "info"), cfg.Icon, model.Stringify(value))
	}

	text := strconv.Itoa(n)
	if cfg.Singular != "" || cfg.Few != "" || cfg.Many != "" {
		noun := format.Plural(n, rc.T(cfg.Singular, cfg.Singular), rc.T(cfg.Few, cfg.Few), rc.T(cfg.Many, cfg.Many))
		if noun != "" {
			text += " " + noun
		}
	} else if label := rc.Label(cfg.LabelKey, cfg.Label, ""); label != "" {
		text += " " + label
	}
	return format.Pill(rc, fallback(cfg.Color, "info"), cfg.Icon, text)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
