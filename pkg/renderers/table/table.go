// Package table renders list tables with sortable headers and row actions.
package table

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-adminview/pkg/format"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// Sort glyphs shown next to sortable column labels.
const (
	GlyphUnsorted = "↕"
	GlyphAsc      = "↑"
	GlyphDesc     = "↓"
)

var widthPattern = regexp.MustCompile(`^\d+(\.\d+)?(px|%|rem|em|ch)?$`)

// rowActions is the fixed display order; config can only narrow it.
var rowActions = []string{model.ActionView, model.ActionEdit, model.ActionDelete}

// Options carries the current sort state and the URL sort links build on.
type Options struct {
	OrderBy string
	Order   string
	BaseURL string
}

// CellFunc renders a custom column cell.
type CellFunc func(rc *render.Context, value any, item model.Item, column model.ColumnConfig) string

// Renderer renders list tables.
type Renderer struct {
	formatter *format.Formatter
	cells     *render.Registry[CellFunc]
}

// New creates a table renderer. A nil formatter uses format.New().
func New(formatter *format.Formatter) *Renderer {
	if formatter == nil {
		formatter = format.New()
	}
	return &Renderer{
		formatter: formatter,
		cells:     render.NewRegistry[CellFunc]("cell callback"),
	}
}

// RegisterCell registers the callback custom columns reference by name.
func (r *Renderer) RegisterCell(name string, fn CellFunc) error {
	return r.cells.Register(name, fn)
}

// Render renders the table for items. An empty item set keeps the header and
// renders the empty state in place of the body.
func (r *Renderer) Render(rc *render.Context, cfg model.ModuleConfig, items []model.Item, opts Options) string {
	actions := r.allowedActions(rc, cfg)

	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(render.Classes("av-table-wrap", render.ClassIf(len(items) == 0, "av-table-wrap--empty")))
	b.WriteString(`"><table class="av-table"`)
	render.Attr(&b, "data-entity", cfg.Entity)
	b.WriteString(`><thead><tr>`)
	for _, col := range cfg.Columns {
		r.header(&b, rc, col, opts)
	}
	if len(actions) > 0 {
		b.WriteString(`<th class="av-table__th av-table__th--actions"><span class="av-sr-only">`)
		b.WriteString(render.Escape(rc.T("adminview.table.actions", "Actions")))
		b.WriteString(`</span></th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
	if len(items) == 0 {
		span := len(cfg.Columns)
		if len(actions) > 0 {
			span++
		}
		r.emptyState(&b, rc, cfg, span)
	}
	for _, item := range items {
		r.row(&b, rc, cfg, item, actions)
	}
	b.WriteString(`</tbody></table></div>`)
	return b.String()
}

// SortURL builds the header link for column: the same column flips the
// current order, any other column starts ascending. Existing query
// parameters of opts.BaseURL are kept.
func SortURL(column string, opts Options) string {
	next := OrderAsc
	if sameColumn(column, opts.OrderBy) && currentOrder(opts.Order) == OrderAsc {
		next = OrderDesc
	}

	u, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		u = &url.URL{}
	}
	query := u.Query()
	query.Set("orderby", column)
	query.Set("order", next)
	u.RawQuery = query.Encode()
	return u.String()
}

// SortGlyph reports the sort state of column.
func SortGlyph(column string, opts Options) string {
	if !sameColumn(column, opts.OrderBy) {
		return GlyphUnsorted
	}
	if currentOrder(opts.Order) == OrderDesc {
		return GlyphDesc
	}
	return GlyphAsc
}

func sameColumn(column, orderBy string) bool {
	return strings.TrimSpace(orderBy) != "" && strings.EqualFold(strings.TrimSpace(column), strings.TrimSpace(orderBy))
}

func currentOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), OrderDesc) {
		return OrderDesc
	}
	return OrderAsc
}

func (r *Renderer) header(b *strings.Builder, rc *render.Context, col model.ColumnConfig, opts Options) {
	label := rc.Label(col.LabelKey, col.Label, col.Key)
	sorted := col.Sortable && sameColumn(col.Key, opts.OrderBy)

	b.WriteString(`<th class="`)
	b.WriteString(render.Escape(render.Classes(
		"av-table__th",
		render.ClassIf(col.Sortable, "av-table__th--sortable"),
		render.ClassIf(sorted, "av-table__th--sorted"),
		alignClass(col.Align),
	)))
	b.WriteString(`"`)
	if width := columnWidth(col.Width); width != "" {
		render.Attr(b, "style", "width: "+width)
	}
	if sorted {
		ariaSort := "ascending"
		if currentOrder(opts.Order) == OrderDesc {
			ariaSort = "descending"
		}
		render.Attr(b, "aria-sort", ariaSort)
	}
	b.WriteString(`>`)

	if !col.Sortable {
		b.WriteString(render.Escape(label))
		b.WriteString(`</th>`)
		return
	}
	b.WriteString(`<a class="av-sort"`)
	render.Attr(b, "href", SortURL(col.Key, opts))
	b.WriteString(`>`)
	b.WriteString(render.Escape(label))
	b.WriteString(` <span class="av-sort__glyph">`)
	b.WriteString(SortGlyph(col.Key, opts))
	b.WriteString(`</span></a></th>`)
}

func (r *Renderer) row(b *strings.Builder, rc *render.Context, cfg model.ModuleConfig, item model.Item, actions []string) {
	detailURL := render.ExpandURL(cfg.DetailURL, item)

	b.WriteString(`<tr class="`)
	b.WriteString(render.Classes("av-table__row", render.ClassIf(detailURL != "", "is-clickable")))
	b.WriteString(`"`)
	render.Attr(b, "data-id", item.ID())
	render.Attr(b, "data-detail-url", detailURL)
	b.WriteString(`>`)

	for _, col := range cfg.Columns {
		b.WriteString(`<td class="`)
		b.WriteString(render.Escape(render.Classes("av-table__td", alignClass(col.Align), col.Class)))
		b.WriteString(`"`)
		render.Attr(b, "data-label", rc.Label(col.LabelKey, col.Label, col.Key))
		b.WriteString(`>`)
		b.WriteString(r.Cell(rc, col, item))
		b.WriteString(`</td>`)
	}

	if len(actions) > 0 {
		b.WriteString(`<td class="av-table__td av-table__td--actions"><div class="av-actions">`)
		for _, action := range actions {
			b.WriteString(actionControl(rc, cfg, action, item))
		}
		b.WriteString(`</div></td>`)
	}
	b.WriteString(`</tr>`)
}

// Cell renders one cell. Custom columns delegate to the registered callback
// and degrade to text when it is missing.
func (r *Renderer) Cell(rc *render.Context, col model.ColumnConfig, item model.Item) string {
	value := item.Value(col.Key)
	if col.Type.Normalized() == model.FormatCustom {
		if fn, ok := r.cells.Lookup(col.Callback); ok && fn != nil {
			return fn(rc, value, item, col)
		}
		rc.Log().Debug().Str("column", col.Key).Str("callback", col.Callback).Msg("cell callback not registered, rendering as text")
		return render.Escape(model.Stringify(value))
	}
	return r.formatter.Format(rc, value, col.Type, col.Row())
}

// allowedActions intersects the fixed action order with cfg.Actions and the
// capability map.
func (r *Renderer) allowedActions(rc *render.Context, cfg model.ModuleConfig) []string {
	configured := make(map[string]struct{}, len(cfg.Actions))
	for _, action := range cfg.Actions {
		configured[strings.ToLower(strings.TrimSpace(action))] = struct{}{}
	}

	out := make([]string, 0, len(rowActions))
	for _, action := range rowActions {
		if _, ok := configured[action]; !ok {
			continue
		}
		if permission := strings.TrimSpace(cfg.Capabilities[action]); permission != "" && !rc.Can(permission, cfg.Entity) {
			continue
		}
		out = append(out, action)
	}
	return out
}

func actionControl(rc *render.Context, cfg model.ModuleConfig, action string, item model.Item) string {
	var (
		pattern string
		icon    string
		label   string
	)
	switch action {
	case model.ActionView:
		pattern, icon, label = cfg.DetailURL, "eye", rc.T("adminview.action.view", "View")
	case model.ActionEdit:
		pattern, icon, label = cfg.EditURL, "pencil", rc.T("adminview.action.edit", "Edit")
	case model.ActionDelete:
		pattern, icon, label = cfg.DeleteURL, "trash", rc.T("adminview.action.delete", "Delete")
	}
	href := render.ExpandURL(pattern, item)
	class := "av-action av-action--" + action

	var b strings.Builder
	if action == model.ActionDelete || href == "" {
		b.WriteString(`<button type="button"`)
		render.Attr(&b, "class", class)
		render.Attr(&b, "data-action", action)
		render.Attr(&b, "data-id", item.ID())
		render.Attr(&b, "data-url", href)
		if action == model.ActionDelete {
			render.Attr(&b, "data-confirm", rc.T("adminview.action.confirm_delete", "Are you sure you want to delete this record?"))
		}
		render.Attr(&b, "title", label)
		b.WriteString(`>`)
		b.WriteString(render.Icon(icon))
		b.WriteString(`<span class="av-sr-only">`)
		b.WriteString(render.Escape(label))
		b.WriteString(`</span></button>`)
		return b.String()
	}

	b.WriteString(`<a`)
	render.Attr(&b, "class", class)
	render.Attr(&b, "href", href)
	render.Attr(&b, "data-action", action)
	render.Attr(&b, "title", label)
	b.WriteString(`>`)
	b.WriteString(render.Icon(icon))
	b.WriteString(`<span class="av-sr-only">`)
	b.WriteString(render.Escape(label))
	b.WriteString(`</span></a>`)
	return b.String()
}

func (r *Renderer) emptyState(b *strings.Builder, rc *render.Context, cfg model.ModuleConfig, span int) {
	text := rc.T("adminview.table.empty", "No records found")
	if strings.TrimSpace(cfg.EmptyText) != "" {
		text = rc.T(cfg.EmptyText, cfg.EmptyText)
	}
	icon := cfg.EmptyIcon
	if strings.TrimSpace(icon) == "" {
		icon = "inbox"
	}
	if span < 1 {
		span = 1
	}

	b.WriteString(`<tr class="av-table__empty"><td class="av-table__td"`)
	render.Attr(b, "colspan", strconv.Itoa(span))
	b.WriteString(`><div class="av-empty">`)
	b.WriteString(render.Icon(icon))
	b.WriteString(`<p class="av-empty__text">`)
	b.WriteString(render.Escape(text))
	b.WriteString(`</p></div></td></tr>`)
}

func alignClass(align string) string {
	switch strings.ToLower(strings.TrimSpace(align)) {
	case "left", "center", "right":
		return "av-align-" + strings.ToLower(strings.TrimSpace(align))
	}
	return ""
}

// columnWidth accepts a bare number (pixels) or a number with a CSS length
// unit; anything else is dropped.
func columnWidth(raw string) string {
	match := widthPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return ""
	}
	if match[2] == "" {
		return match[0] + "px"
	}
	return match[0]
}
