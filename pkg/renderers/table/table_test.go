package table

import (
	"strings"
	"testing"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/testsupport"
)

const visitsTable = `
entity: visits
route: /visits
actions: [view, edit]
columns:
  status:
    type: badge
    map:
      confirmed: {label: Confirmed, color: info}
`

func TestBadgeColumnScenario(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, visitsTable)
	r := New(nil)
	got := r.Render(render.NewContext(), cfg, []model.Item{{"id": 1, "status": "confirmed"}}, Options{})

	if n := strings.Count(got, `<tr class="av-table__row`); n != 1 {
		t.Fatalf("expected a single row, got %d in %q", n, got)
	}
	if strings.Count(got, "Confirmed") != 1 || !strings.Contains(got, `<span class="av-badge av-badge--info">Confirmed</span>`) {
		t.Fatalf("expected an info badge, got %q", got)
	}
	if !strings.Contains(got, `<tr class="av-table__row is-clickable" data-id="1" data-detail-url="/visits/1">`) {
		t.Fatalf("expected clickable row, got %q", got)
	}
	if !strings.Contains(got, `<th class="av-table__th">Status</th>`) {
		t.Fatalf("expected humanized header, got %q", got)
	}
}

func TestActionWhitelist(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, visitsTable)
	r := New(nil)
	items := []model.Item{{"id": 1, "status": "confirmed", "deletable": true}}
	got := r.Render(render.NewContext(), cfg, items, Options{})

	if strings.Contains(got, `data-action="delete"`) {
		t.Fatalf("delete must not render when not whitelisted: %q", got)
	}
	viewAt := strings.Index(got, `data-action="view"`)
	editAt := strings.Index(got, `data-action="edit"`)
	if viewAt < 0 || editAt < 0 || viewAt > editAt {
		t.Fatalf("expected view then edit, got %q", got)
	}
	if !strings.Contains(got, `href="/visits/1/edit"`) {
		t.Fatalf("expected edit link, got %q", got)
	}

	cfg.Actions = []string{"delete", "view"}
	got = r.Render(render.NewContext(), cfg, items, Options{})
	if !strings.Contains(got, `data-confirm="Are you sure you want to delete this record?"`) {
		t.Fatalf("delete must carry a confirmation, got %q", got)
	}
	if strings.Index(got, `data-action="view"`) > strings.Index(got, `data-action="delete"`) {
		t.Fatalf("actions keep the fixed order")
	}
}

func TestActionCapabilities(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, visitsTable)
	cfg.Capabilities = map[string]string{"edit": "update"}
	r := New(nil)
	items := []model.Item{{"id": 1}}

	if got := r.Render(render.NewContext(), cfg, items, Options{}); strings.Contains(got, `data-action="edit"`) || !strings.Contains(got, `data-action="view"`) {
		t.Fatalf("gated edit must be hidden without a gate, got %q", got)
	}

	rc := render.NewContext()
	rc.Gate = testsupport.Grants("update:visits")
	if got := r.Render(rc, cfg, items, Options{}); !strings.Contains(got, `data-action="edit"`) {
		t.Fatalf("granted edit should render, got %q", got)
	}

	cfg.Actions = nil
	if got := r.Render(rc, cfg, items, Options{}); strings.Contains(got, "av-table__th--actions") {
		t.Fatalf("no actions means no action column, got %q", got)
	}
}

func TestSortToggle(t *testing.T) {
	t.Parallel()

	base := "/admin/visits?page=2&q=acme"

	asc := SortURL("name", Options{OrderBy: "name", Order: "ASC", BaseURL: base})
	if asc != "/admin/visits?order=DESC&orderby=name&page=2&q=acme" {
		t.Fatalf("ascending column should flip to DESC, got %q", asc)
	}
	desc := SortURL("name", Options{OrderBy: "name", Order: "DESC", BaseURL: base})
	if !strings.Contains(desc, "order=ASC") {
		t.Fatalf("descending column should flip to ASC, got %q", desc)
	}
	other := SortURL("date", Options{OrderBy: "name", Order: "DESC", BaseURL: base})
	if !strings.Contains(other, "order=ASC") || !strings.Contains(other, "orderby=date") {
		t.Fatalf("another column resets to ASC, got %q", other)
	}
	if got := SortURL("name", Options{}); got != "?order=ASC&orderby=name" {
		t.Fatalf("unexpected URL without base %q", got)
	}

	cases := []struct {
		opts Options
		want string
	}{
		{opts: Options{}, want: GlyphUnsorted},
		{opts: Options{OrderBy: "date"}, want: GlyphUnsorted},
		{opts: Options{OrderBy: "name", Order: "asc"}, want: GlyphAsc},
		{opts: Options{OrderBy: "name", Order: "DESC"}, want: GlyphDesc},
	}
	for _, tc := range cases {
		if got := SortGlyph("name", tc.opts); got != tc.want {
			t.Fatalf("SortGlyph(%+v) = %q, want %q", tc.opts, got, tc.want)
		}
	}
}

func TestSortableHeaderMarkup(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, `
entity: companies
columns:
  name: {label: Name, sortable: true, width: "120", align: Right}
  city: {sortable: true}
`)
	r := New(nil)
	got := r.Render(nil, cfg, []model.Item{{"id": 1, "name": "Acme", "city": "Brno"}}, Options{OrderBy: "name", Order: "ASC", BaseURL: "/companies"})

	want := `<th class="av-table__th av-table__th--sortable av-table__th--sorted av-align-right" style="width: 120px" aria-sort="ascending">` +
		`<a class="av-sort" href="/companies?order=DESC&amp;orderby=name">Name <span class="av-sort__glyph">↑</span></a></th>`
	if !strings.Contains(got, want) {
		t.Fatalf("expected sorted header\n%s\nin\n%s", want, got)
	}
	if !strings.Contains(got, `<span class="av-sort__glyph">↕</span>`) {
		t.Fatalf("unsorted column should show the neutral glyph")
	}
	if strings.Index(got, ">Name ") > strings.Index(got, ">City ") {
		t.Fatalf("columns must keep config order")
	}
}

func TestCustomCells(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, `
entity: visits
columns:
  visitors: {type: custom, callback: visitor_names}
  host: {type: custom, callback: missing}
`)
	r := New(nil)
	if err := r.RegisterCell("visitor_names", func(_ *render.Context, value any, item model.Item, column model.ColumnConfig) string {
		return "<b>" + column.Key + ":" + model.Stringify(value) + ":" + item.ID() + "</b>"
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	got := r.Render(nil, cfg, []model.Item{{"id": 9, "visitors": 3, "host": "<Jana>"}}, Options{})
	if !strings.Contains(got, "<b>visitors:3:9</b>") {
		t.Fatalf("expected callback output, got %q", got)
	}
	if !strings.Contains(got, "&lt;Jana&gt;") {
		t.Fatalf("missing callback should fall back to escaped text, got %q", got)
	}
}

func TestEmptyState(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, visitsTable)
	r := New(nil)
	got := r.Render(nil, cfg, nil, Options{})
	if !strings.Contains(got, "No records found") || !strings.Contains(got, "av-icon-inbox") {
		t.Fatalf("unexpected empty state %q", got)
	}
	if !strings.Contains(got, `<div class="av-table-wrap av-table-wrap--empty">`) {
		t.Fatalf("expected empty wrapper class, got %q", got)
	}
	if !strings.Contains(got, `<th class="av-table__th">Status</th>`) {
		t.Fatalf("empty table should keep the column headers, got %q", got)
	}
	if !strings.Contains(got, `<tr class="av-table__empty"><td class="av-table__td" colspan="2">`) {
		t.Fatalf("empty state should span every column and the actions column, got %q", got)
	}
	if strings.Contains(got, `av-table__row`) {
		t.Fatalf("empty table must not render data rows, got %q", got)
	}

	cfg.EmptyText = "visits.empty"
	cfg.EmptyIcon = "calendar"
	catalog := render.NewCatalog("cs")
	catalog.Add("cs", map[string]string{"visits.empty": "Žádné návštěvy"})
	rc := render.NewContext()
	rc.Translator = catalog
	got = r.Render(rc, cfg, []model.Item{}, Options{})
	if !strings.Contains(got, "Žádné návštěvy") || !strings.Contains(got, "av-icon-calendar") {
		t.Fatalf("unexpected configured empty state %q", got)
	}
}
