package adminview_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	adminview "github.com/goliatone/go-adminview"
)

func TestNewEngineFS(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"modules/companies.yaml": {Data: []byte(`
entity: companies
route: /admin/companies
columns:
  name: {sortable: true}
  ico: {label: IČO}
actions: [view]
`)},
		"modules/README.md": {Data: []byte("ignored")},
	}
	messages := fstest.MapFS{
		"cs.yaml": {Data: []byte("adminview:\n  table:\n    empty: Žádné záznamy\n")},
	}

	catalog, err := adminview.LoadMessages(context.Background(), messages, ".", "cs")
	if err != nil {
		t.Fatalf("load messages: %v", err)
	}
	engine, err := adminview.NewEngineFS(context.Background(), files, "modules", adminview.WithTranslator(catalog))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	rc := engine.NewContext(context.Background(), adminview.Request{Locale: "cs"})
	out, err := engine.RenderTable(rc, "companies", []adminview.Item{{"id": 4, "name": "Acme", "ico": "123"}}, adminview.TableOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{">IČO<", "Acme", `data-detail-url="/admin/companies/4"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	empty, err := engine.RenderTable(rc, "companies", nil, adminview.TableOptions{})
	if err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(empty, "Žádné záznamy") {
		t.Fatalf("expected translated empty state:\n%s", empty)
	}

	if _, err := engine.RenderForm(rc, "people", nil); !errors.Is(err, adminview.ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestNewEngineFSDuplicate(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"a.yaml": {Data: []byte("entity: companies\n")},
		"b.json": {Data: []byte(`{"entity": "companies"}`)},
	}
	if _, err := adminview.NewEngineFS(context.Background(), files, "."); err == nil {
		t.Fatalf("expected duplicate entity error")
	}
}

func TestWithSettings(t *testing.T) {
	t.Setenv("ADMINVIEW_RENDER__LOCALE", "cs")
	t.Setenv("ADMINVIEW_RENDER__PERMISSIVE_PERMISSIONS", "true")

	s, err := adminview.LoadSettings("")
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	engine, err := adminview.NewEngine(
		adminview.WithSettings(s),
		adminview.WithModules(adminview.ModuleConfig{Entity: "notes", Actions: []string{"delete"}, DeleteURL: "/notes/{id}/delete"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	rc := engine.NewContext(context.Background(), adminview.Request{})
	if rc.Locale != "cs" || !rc.Permissive {
		t.Fatalf("settings not applied: locale=%q permissive=%v", rc.Locale, rc.Permissive)
	}
}
