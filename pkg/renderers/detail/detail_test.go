package detail

import (
	"strings"
	"testing"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/testsupport"
)

const visitModule = `
entity: visits
singular: Visit
route: /visits
detail:
  title_field: purpose
  subtitle_field: company.name
  icon: calendar
  header_badges:
    - type: status
      field: status
      map:
        confirmed: {label: Confirmed, color: info}
    - type: count
      field: visitors_count
      singular: visitor
      few: visitors
      many: visitors
  sections:
    - type: info_rows
      title: Details
      rows:
        - field: date
          format: date
        - field: email
          format: email
        - field: note
          empty_text: "—"
    - type: related_list
      title: Visitors
      data_key: visitors
      link: /visitors/{id}
    - type: metadata
`

func TestDetailRender(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, visitModule)
	r := New(nil)
	item := model.Item{
		"id":             7,
		"purpose":        "Audit",
		"status":         "confirmed",
		"visitors_count": 3,
		"date":           "2024-03-05",
		"company":        map[string]any{"name": "Acme"},
		"created_at":     "2024-03-01 08:30:00",
	}
	related := model.RelatedData{"visitors": {{"id": 1, "name": "Jana"}}}

	rc := render.NewContext()
	got := r.Render(rc, cfg, item, related)
	for _, want := range []string{
		`<aside class="av-detail" data-entity="visits" data-id="7">`,
		`<h2 class="av-detail__title">Audit</h2>`,
		`<p class="av-detail__subtitle">Acme</p>`,
		`<span class="av-badge av-badge--info">Confirmed</span> <span class="av-badge av-badge--info">3 visitors</span>`,
		`<span class="av-row__value">5. 3. 2024</span>`,
		`<span class="av-row__empty">—</span>`,
		`href="/visitors/1"`,
		`1. 3. 2024 08:30`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in\n%s", want, got)
		}
	}
	if strings.Contains(got, "mailto:") {
		t.Fatalf("empty email row must be suppressed")
	}

	if again := r.Render(rc, cfg, item, related); again != got {
		t.Fatalf("render must be idempotent")
	}

	content := r.RenderContent(rc, cfg, item, related)
	if strings.Contains(content, "av-detail__header") || !strings.Contains(got, content) {
		t.Fatalf("content must be the sections only")
	}
}

func TestDetailTitleFallback(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, "entity: visit_logs\n")
	r := New(nil)
	if got := r.Title(nil, cfg, model.Item{"id": "12"}); got != "Visit Logs #12" {
		t.Fatalf("unexpected title %q", got)
	}

	catalog := render.NewCatalog("cs")
	catalog.Add("cs", map[string]string{"entity.visit_logs.singular": "Záznam"})
	rc := render.NewContext()
	rc.Translator = catalog
	if got := r.Title(rc, cfg, model.Item{"id": "12"}); got != "Záznam #12" {
		t.Fatalf("unexpected translated title %q", got)
	}
}
