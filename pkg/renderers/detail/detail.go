// Package detail renders the detail sidebar: header, badges and sections.
package detail

import (
	"strings"

	"github.com/goliatone/go-adminview/pkg/format"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/renderers/badge"
)

// Renderer renders a module's detail sidebar.
type Renderer struct {
	sections *SectionRenderer
	badges   *badge.Renderer
}

// New creates a detail renderer sharing formatter between sections and
// badges.
func New(formatter *format.Formatter, opts ...SectionOption) *Renderer {
	if formatter == nil {
		formatter = format.New()
	}
	return &Renderer{
		sections: NewSectionRenderer(formatter, opts...),
		badges:   badge.New(formatter),
	}
}

// Sections exposes the section renderer.
func (r *Renderer) Sections() *SectionRenderer {
	return r.sections
}

// Render renders the full sidebar.
func (r *Renderer) Render(rc *render.Context, cfg model.ModuleConfig, item model.Item, related model.RelatedData) string {
	var b strings.Builder
	b.WriteString(`<aside class="av-detail"`)
	render.Attr(&b, "data-entity", cfg.Entity)
	render.Attr(&b, "data-id", item.ID())
	b.WriteString(`><header class="av-detail__header">`)
	b.WriteString(render.Icon(cfg.Detail.Icon))
	b.WriteString(`<div class="av-detail__heading"><h2 class="av-detail__title">`)
	b.WriteString(render.Escape(r.Title(rc, cfg, item)))
	b.WriteString(`</h2>`)
	if sub := strings.TrimSpace(item.String(cfg.Detail.SubtitleField)); cfg.Detail.SubtitleField != "" && sub != "" {
		b.WriteString(`<p class="av-detail__subtitle">`)
		b.WriteString(render.Escape(sub))
		b.WriteString(`</p>`)
	}
	b.WriteString(`</div>`)
	if badges := r.RenderHeaderBadges(rc, cfg, item); badges != "" {
		b.WriteString(`<div class="av-detail__badges">`)
		b.WriteString(badges)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</header><div class="av-detail__content">`)
	b.WriteString(r.RenderContent(rc, cfg, item, related))
	b.WriteString(`</div></aside>`)
	return b.String()
}

// RenderContent renders only the sections, for partial refreshes.
func (r *Renderer) RenderContent(rc *render.Context, cfg model.ModuleConfig, item model.Item, related model.RelatedData) string {
	return r.sections.RenderAll(rc, cfg.Detail.Sections, item, related, cfg.Entity)
}

// RenderHeaderBadges renders the header badge strip.
func (r *Renderer) RenderHeaderBadges(rc *render.Context, cfg model.ModuleConfig, item model.Item) string {
	return r.badges.RenderAll(rc, cfg.Detail.HeaderBadges, item, cfg.Entity)
}

// Title is the sidebar heading: the title field when set, otherwise
// "<singular> #<id>".
func (r *Renderer) Title(rc *render.Context, cfg model.ModuleConfig, item model.Item) string {
	if title := strings.TrimSpace(item.String(cfg.Detail.TitleField)); cfg.Detail.TitleField != "" && title != "" {
		return title
	}
	singular := cfg.Singular
	if singular == "" {
		singular = model.HumanizeKey(cfg.Entity)
	}
	singular = rc.T("entity."+cfg.Entity+".singular", singular)
	if id := item.ID(); id != "" {
		return singular + " #" + id
	}
	return singular
}
