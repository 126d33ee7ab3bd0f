package detail

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-adminview/pkg/format"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/render/template"
)

// DefaultMaxItems caps related lists without an explicit max_items.
const DefaultMaxItems = 5

// SectionRenderer renders detail sidebar sections.
type SectionRenderer struct {
	formatter *format.Formatter
	rows      *RowRenderer
	specials  *Specials
	templates template.Renderer
}

// SectionOption customises a SectionRenderer.
type SectionOption func(*SectionRenderer)

// WithSpecials sets the special-section callback registry.
func WithSpecials(specials *Specials) SectionOption {
	return func(r *SectionRenderer) {
		if specials != nil {
			r.specials = specials
		}
	}
}

// WithTemplates enables file-backed special sections.
func WithTemplates(templates template.Renderer) SectionOption {
	return func(r *SectionRenderer) {
		r.templates = templates
	}
}

// NewSectionRenderer creates a section renderer. A nil formatter uses
// format.New().
func NewSectionRenderer(formatter *format.Formatter, opts ...SectionOption) *SectionRenderer {
	if formatter == nil {
		formatter = format.New()
	}
	r := &SectionRenderer{
		formatter: formatter,
		rows:      NewRowRenderer(formatter),
		specials:  NewSpecials(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Specials exposes the callback registry for registration.
func (r *SectionRenderer) Specials() *Specials {
	return r.specials
}

// RenderAll renders sections in order.
func (r *SectionRenderer) RenderAll(rc *render.Context, sections []model.SectionConfig, item model.Item, related model.RelatedData, entity string) string {
	var b strings.Builder
	for _, section := range sections {
		b.WriteString(r.Render(rc, section, item, related, entity))
	}
	return b.String()
}

// Render renders one section. Failing condition or permission, an unknown
// type, or a body that has nothing to show yields "".
func (r *SectionRenderer) Render(rc *render.Context, section model.SectionConfig, item model.Item, related model.RelatedData, entity string) string {
	if !rc.Visible(section.Condition, item) {
		return ""
	}
	if !rc.Can(section.Permission, entity) {
		return ""
	}

	kind := model.SectionType(strings.ToLower(strings.TrimSpace(string(section.Type))))
	var (
		body  string
		chip  string
		shown bool
	)
	switch kind {
	case model.SectionInfoRows:
		body, shown = r.infoRows(rc, section, item)
	case model.SectionRelatedList:
		body, chip, shown = r.relatedList(rc, section, item, related)
	case model.SectionTextBlock:
		body, shown = r.textBlock(rc, section, item)
	case model.SectionMetadata:
		body, shown = r.metadata(rc, item)
	case model.SectionStatGrid:
		body, shown = r.statGrid(rc, section, item)
	case model.SectionTimeline:
		body, shown = r.timeline(rc, section, related)
	case model.SectionFeatureList:
		body, shown = r.featureList(rc, section, item)
	case model.SectionSpecial:
		body, shown = r.special(rc, section, item, related, entity)
	default:
		rc.Log().Debug().Str("section", string(section.Type)).Msg("unknown section type skipped")
		return ""
	}
	if !shown {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<section class="`)
	b.WriteString(render.Classes("av-section", "av-section--"+render.ClassToken(string(kind)), render.ClassIf(section.Compact, "av-section--compact")))
	b.WriteString(`">`)
	if title := sectionTitle(rc, section, kind); !section.NoHeader && title != "" {
		b.WriteString(`<header class="av-section__header">`)
		b.WriteString(render.Icon(section.Icon))
		b.WriteString(`<h3 class="av-section__title">`)
		b.WriteString(render.Escape(title))
		b.WriteString(`</h3>`)
		b.WriteString(chip)
		b.WriteString(`</header>`)
	}
	b.WriteString(`<div class="av-section__body">`)
	b.WriteString(body)
	b.WriteString(`</div></section>`)
	return b.String()
}

// sectionTitle resolves the header text. Metadata sections only get a header
// when titled; list-like sections fall back to their data key.
func sectionTitle(rc *render.Context, section model.SectionConfig, kind model.SectionType) string {
	title := strings.TrimSpace(rc.Label(section.TitleKey, section.Title, ""))
	if title != "" || kind == model.SectionMetadata {
		return title
	}
	switch kind {
	case model.SectionRelatedList, model.SectionTimeline:
		return model.HumanizeKey(section.DataKey)
	case model.SectionTextBlock:
		return model.HumanizeKey(section.Field)
	}
	return ""
}

func (r *SectionRenderer) infoRows(rc *render.Context, section model.SectionConfig, item model.Item) (string, bool) {
	rows := r.rows.RenderAll(rc, section.Rows, item)
	if rows != "" {
		return rows, true
	}
	if strings.TrimSpace(section.EmptyText) != "" {
		return emptyState(rc, section, "", ""), true
	}
	return "", false
}

func (r *SectionRenderer) relatedList(rc *render.Context, section model.SectionConfig, item model.Item, related model.RelatedData) (string, string, bool) {
	items := related.Items(section.DataKey)
	if len(items) == 0 {
		return emptyState(rc, section, "inbox", rc.T("adminview.related.empty", "No records")), "", true
	}

	limit := section.MaxItems
	if limit <= 0 {
		limit = DefaultMaxItems
	}

	var b strings.Builder
	b.WriteString(`<ul class="av-related">`)
	for i, entry := range items {
		if i >= limit {
			break
		}
		b.WriteString(`<li class="av-related__item">`)
		href := render.ExpandURL(section.Link, entry)
		if href != "" {
			b.WriteString(`<a class="av-related__link" href="`)
			b.WriteString(render.Escape(href))
			b.WriteString(`">`)
		} else {
			b.WriteString(`<div class="av-related__link">`)
		}
		b.WriteString(render.Icon(relatedIcon(section, entry)))
		b.WriteString(`<span class="av-related__title">`)
		b.WriteString(render.Escape(entryTitle(entry, section.TitleField)))
		b.WriteString(`</span>`)
		if sub := strings.TrimSpace(entry.String(section.SubtitleField)); section.SubtitleField != "" && sub != "" {
			b.WriteString(`<small class="av-related__subtitle">`)
			b.WriteString(render.Escape(sub))
			b.WriteString(`</small>`)
		}
		if href != "" {
			b.WriteString(`</a>`)
		} else {
			b.WriteString(`</div>`)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)

	if len(items) > limit {
		label := rc.T("adminview.related.show_all", "Show all") + " (" + strconv.Itoa(len(items)) + ")"
		if href := render.ExpandURL(section.ShowAllURL, item); href != "" {
			b.WriteString(`<a class="av-related__more" href="`)
			b.WriteString(render.Escape(href))
			b.WriteString(`">`)
			b.WriteString(render.Escape(label))
			b.WriteString(`</a>`)
		} else {
			b.WriteString(`<span class="av-related__more">`)
			b.WriteString(render.Escape(label))
			b.WriteString(`</span>`)
		}
	}

	chip := `<span class="av-section__count">` + strconv.Itoa(len(items)) + `</span>`
	return b.String(), chip, true
}

func relatedIcon(section model.SectionConfig, entry model.Item) string {
	if section.IconField != "" {
		if icon, ok := section.IconMap[entry.String(section.IconField)]; ok && icon != "" {
			return icon
		}
	}
	return section.IconMap["default"]
}

func entryTitle(entry model.Item, field string) string {
	if field != "" {
		if title := strings.TrimSpace(entry.String(field)); title != "" {
			return title
		}
	}
	for _, candidate := range []string{"name", "title"} {
		if title := strings.TrimSpace(entry.String(candidate)); title != "" {
			return title
		}
	}
	if id := entry.ID(); id != "" {
		return "#" + id
	}
	return format.Sentinel
}

func (r *SectionRenderer) textBlock(rc *render.Context, section model.SectionConfig, item model.Item) (string, bool) {
	value := item.String(section.Field)
	if strings.TrimSpace(value) == "" {
		if strings.TrimSpace(section.EmptyText) == "" {
			return "", false
		}
		return emptyState(rc, section, "", ""), true
	}
	if section.HTML {
		return `<div class="av-text av-text--html">` + render.SanitizeHTML(value) + `</div>`, true
	}
	return `<div class="av-text"><p>` + render.NewlinesToBreaks(value) + `</p></div>`, true
}

func (r *SectionRenderer) metadata(rc *render.Context, item model.Item) (string, bool) {
	rows := r.rows.RenderAll(rc, []model.RowConfig{
		{Field: "created_at", LabelKey: "adminview.meta.created", Label: "Created", Format: model.FormatDateTime, Muted: true},
		{Field: "updated_at", LabelKey: "adminview.meta.updated", Label: "Updated", Format: model.FormatDateTime, Muted: true},
	}, item)
	return rows, rows != ""
}

func (r *SectionRenderer) statGrid(rc *render.Context, section model.SectionConfig, item model.Item) (string, bool) {
	if len(section.Stats) == 0 {
		return "", false
	}
	var b strings.Builder
	b.WriteString(`<div class="av-stats">`)
	for _, stat := range section.Stats {
		value := item.Value(stat.Field)
		display := "0"
		if !model.IsEmpty(value) {
			if stat.Format != "" {
				display = r.formatter.Format(rc, value, stat.Format, model.RowConfig{Field: stat.Field})
			} else {
				display = render.Escape(model.Stringify(value))
			}
		}
		b.WriteString(`<div class="`)
		b.WriteString(render.Escape(rc.Colors().Class("stat", stat.Color)))
		b.WriteString(`">`)
		b.WriteString(render.Icon(stat.Icon))
		b.WriteString(`<span class="av-stat__value">`)
		b.WriteString(display)
		b.WriteString(`</span><span class="av-stat__label">`)
		b.WriteString(render.Escape(rc.Label(stat.LabelKey, stat.Label, stat.Field)))
		b.WriteString(`</span></div>`)
	}
	b.WriteString(`</div>`)
	return b.String(), true
}

func (r *SectionRenderer) timeline(rc *render.Context, section model.SectionConfig, related model.RelatedData) (string, bool) {
	entries := related.Items(section.DataKey)
	if len(entries) == 0 {
		return emptyState(rc, section, "clock", rc.T("adminview.timeline.empty", "No history")), true
	}
	if section.MaxItems > 0 && len(entries) > section.MaxItems {
		entries = entries[:section.MaxItems]
	}

	titleField := firstNonEmpty(section.TitleField, "title")
	dateField := firstNonEmpty(section.DateField, "created_at")

	var b strings.Builder
	b.WriteString(`<ol class="av-timeline">`)
	for i, entry := range entries {
		status := render.ClassToken(entry.String(section.StatusField))
		b.WriteString(`<li class="`)
		b.WriteString(render.Classes(
			"av-timeline__item",
			render.ClassIf(i == 0, "av-timeline__item--active"),
			render.ClassIf(section.StatusField != "" && status != "", "av-timeline__item--"+status),
		))
		b.WriteString(`"><span class="av-timeline__marker">`)
		b.WriteString(render.Icon(relatedIcon(section, entry)))
		b.WriteString(`</span><div class="av-timeline__content"><strong class="av-timeline__title">`)
		b.WriteString(render.Escape(entryTitle(entry, titleField)))
		b.WriteString(`</strong>`)
		if when := entry.Value(dateField); !model.IsEmpty(when) {
			b.WriteString(`<time class="av-timeline__date">`)
			b.WriteString(r.formatter.Date(when, true))
			b.WriteString(`</time>`)
		}
		if desc := strings.TrimSpace(entry.String(section.DescriptionField)); section.DescriptionField != "" && desc != "" {
			b.WriteString(`<p class="av-timeline__description">`)
			b.WriteString(render.NewlinesToBreaks(desc))
			b.WriteString(`</p>`)
		}
		b.WriteString(`</div></li>`)
	}
	b.WriteString(`</ol>`)
	return b.String(), true
}

func (r *SectionRenderer) featureList(rc *render.Context, section model.SectionConfig, item model.Item) (string, bool) {
	if len(section.Features) == 0 {
		return "", false
	}
	var b strings.Builder
	b.WriteString(`<ul class="av-features">`)
	for _, feature := range section.Features {
		on := model.Truthy(item.Value(feature.Field))
		icon, state := "x", "off"
		if on {
			icon, state = "check", "on"
		}
		b.WriteString(`<li class="av-feature av-feature--`)
		b.WriteString(state)
		b.WriteString(`">`)
		b.WriteString(render.Icon(icon))
		b.WriteString(`<span>`)
		b.WriteString(render.Escape(rc.Label(feature.LabelKey, feature.Label, feature.Field)))
		b.WriteString(`</span></li>`)
	}
	b.WriteString(`</ul>`)
	return b.String(), true
}

func (r *SectionRenderer) special(rc *render.Context, section model.SectionConfig, item model.Item, related model.RelatedData, entity string) (string, bool) {
	key := SpecialKey(entity, section.Template)
	logger := rc.Log().With().Str("special", key).Logger()

	if fn, ok := r.specials.Lookup(entity, section.Template); ok {
		out, err := fn(rc, section, item, related)
		if err != nil {
			logger.Warn().Err(err).Msg("special section callback failed")
			return notice(rc.T("adminview.special.failed", "Section failed") + ": " + key), true
		}
		return out, true
	}

	if r.templates != nil && strings.TrimSpace(section.Template) != "" && r.templates.Exists(key) {
		data := map[string]any{
			"item":    map[string]any(item),
			"related": relatedContext(related),
			"entity":  entity,
			"section": section,
		}
		for name, fn := range rc.TemplateFuncs(entity) {
			data[name] = fn
		}
		out, err := r.templates.RenderTemplate(key, data)
		if err != nil {
			logger.Warn().Err(err).Msg("special section template failed")
			return notice(rc.T("adminview.special.failed", "Section failed") + ": " + key), true
		}
		return out, true
	}

	logger.Warn().Msg("special section template not found")
	return notice(rc.T("adminview.special.not_found", "Template not found") + ": " + key), true
}

func relatedContext(related model.RelatedData) map[string]any {
	out := make(map[string]any, len(related))
	for key, items := range related {
		list := make([]any, 0, len(items))
		for _, entry := range items {
			list = append(list, map[string]any(entry))
		}
		out[key] = list
	}
	return out
}

func notice(text string) string {
	return `<div class="av-notice av-notice--warning">` + render.Escape(text) + `</div>`
}

func emptyState(rc *render.Context, section model.SectionConfig, defaultIcon, defaultText string) string {
	text := defaultText
	if strings.TrimSpace(section.EmptyText) != "" {
		text = rc.T(section.EmptyText, section.EmptyText)
	}
	icon := firstNonEmpty(section.EmptyIcon, defaultIcon)

	var b strings.Builder
	b.WriteString(`<div class="av-empty">`)
	b.WriteString(render.Icon(icon))
	b.WriteString(`<p class="av-empty__text">`)
	b.WriteString(render.Escape(text))
	b.WriteString(`</p></div>`)
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
