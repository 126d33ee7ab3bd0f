package detail

import (
	"strings"

	"github.com/goliatone/go-adminview/pkg/format"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

// RowRenderer renders label/value lines.
type RowRenderer struct {
	formatter *format.Formatter
}

// NewRowRenderer creates a row renderer. A nil formatter uses format.New().
func NewRowRenderer(formatter *format.Formatter) *RowRenderer {
	if formatter == nil {
		formatter = format.New()
	}
	return &RowRenderer{formatter: formatter}
}

// RenderAll renders rows in order, skipping the ones that produce nothing.
func (r *RowRenderer) RenderAll(rc *render.Context, rows []model.RowConfig, item model.Item) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(r.Render(rc, row, item))
	}
	return b.String()
}

// Render renders one row, or "" when the condition fails or the value is
// empty and neither empty_text nor show_empty is set.
func (r *RowRenderer) Render(rc *render.Context, row model.RowConfig, item model.Item) string {
	if !rc.Visible(row.Condition, item) {
		return ""
	}

	value := item.Value(row.Field)
	var display string
	switch {
	case !model.IsEmpty(value):
		display = r.formatter.Value(rc, item, row)
	case strings.TrimSpace(row.EmptyText) != "":
		display = `<span class="av-row__empty">` + render.Escape(rc.T(row.EmptyText, row.EmptyText)) + `</span>`
	case row.ShowEmpty:
		display = `<span class="av-row__empty">` + format.Sentinel + `</span>`
	default:
		return ""
	}

	if suffix := strings.TrimSpace(item.String(row.SuffixField)); row.SuffixField != "" && suffix != "" {
		display += ` <small class="av-row__suffix">` + render.Escape(suffix) + `</small>`
	}

	return rowMarkup(rowClass(row), rc.Label(row.LabelKey, row.Label, row.Field), display)
}

func rowClass(row model.RowConfig) string {
	return render.Classes(
		"av-row",
		render.ClassIf(row.Bold, "av-row--bold"),
		render.ClassIf(row.Stacked, "av-row--stacked"),
		render.ClassIf(row.Highlight, "av-row--highlight"),
		render.ClassIf(row.Muted, "av-row--muted"),
	)
}

func rowMarkup(class, label, value string) string {
	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(class)
	b.WriteString(`"><span class="av-row__label">`)
	b.WriteString(render.Escape(label))
	b.WriteString(`</span><span class="av-row__value">`)
	b.WriteString(value)
	b.WriteString(`</span></div>`)
	return b.String()
}
