package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const visitsYAML = `
entity: visits
singular: Visit
plural: Visits
route: /admin/visits
actions: [view, edit, delete]
capabilities:
  delete: delete:visits
columns:
  name:
    sortable: true
  status:
    type: badge
    map:
      confirmed: {label: Confirmed, color: info}
detail:
  title_field: name
  sections:
    - type: info_rows
      title: Details
      rows:
        - field: email
          format: email
    - type: related_list
      title: Visitors
      data_key: visitors
form:
  fields:
    name:
      required: true
    active:
      type: checkbox
`

const visitsJSON = `{"data": [
  {"id": 1, "name": "Acme", "status": "confirmed", "email": "a@acme.test"},
  {"id": 2, "name": "Globex", "status": "pending"}
]}`

type fixture struct {
	dir     string
	modules string
	data    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	dir := t.TempDir()
	modules := filepath.Join(dir, "modules")
	require.NoError(t, os.MkdirAll(modules, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modules, "visits.yaml"), []byte(visitsYAML), 0o644))
	data := filepath.Join(dir, "visits.json")
	require.NoError(t, os.WriteFile(data, []byte(visitsJSON), 0o644))
	return fixture{dir: dir, modules: modules, data: data}
}

func (f fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, prompt Prompter, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(prompt)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-env-file"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestModulesCommand(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, nil, "modules", "--modules", f.modules)
	require.NoError(t, err)
	assert.Contains(t, out, "visits\tVisits\tvisits.yaml")
}

func TestTableCommand(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, nil, "table", "visits",
		"--modules", f.modules,
		"--data", f.data,
		"--query", ".data",
		"--orderby", "name",
		"--order", "ASC",
		"--base-url", "/admin/visits",
	)
	require.NoError(t, err)
	assert.Contains(t, out, `data-id="1"`)
	assert.Contains(t, out, `data-id="2"`)
	assert.Contains(t, out, "Confirmed")
	assert.Contains(t, out, "order=DESC")
	assert.NotContains(t, out, `data-action="delete"`)

	out, err = run(t, nil, "table", "visits",
		"--modules", f.modules,
		"--data", f.data,
		"--query", ".data[]",
		"--grant", "delete:visits",
	)
	require.NoError(t, err)
	assert.Contains(t, out, `data-action="delete"`)
}

func TestTableCommandEmpty(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, nil, "table", "visits", "--modules", f.modules)
	require.NoError(t, err)
	assert.Contains(t, out, "av-table-wrap--empty")
}

func TestDetailCommand(t *testing.T) {
	f := newFixture(t)
	related := f.write(t, "related.json", `{"visitors": [{"id": 9, "name": "Jana"}]}`)

	out, err := run(t, nil, "detail", "visits",
		"--modules", f.modules,
		"--data", f.data,
		"--query", ".data[0]",
		"--related", related,
	)
	require.NoError(t, err)
	assert.Contains(t, out, `<aside class="av-detail"`)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "mailto:a@acme.test")
	assert.Contains(t, out, "Jana")

	out, err = run(t, nil, "detail", "visits",
		"--modules", f.modules,
		"--data", f.data,
		"--query", ".data[0]",
		"--content-only",
	)
	require.NoError(t, err)
	assert.NotContains(t, out, "<aside")

	_, err = run(t, nil, "detail", "visits", "--modules", f.modules)
	require.Error(t, err)

	_, err = run(t, nil, "detail", "visits", "--modules", f.modules, "--data", f.data, "--query", ".data")
	require.Error(t, err, "two records cannot feed a detail view")
}

func TestFormCommand(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, nil, "form", "visits", "--modules", f.modules)
	require.NoError(t, err)
	assert.Contains(t, out, `data-mode="create"`)
	assert.Contains(t, out, `name="name"`)

	out, err = run(t, nil, "form", "visits", "--modules", f.modules, "--data", f.data, "--query", ".data[0]")
	require.NoError(t, err)
	assert.Contains(t, out, `data-mode="edit"`)
	assert.Contains(t, out, `value="Acme"`)
}

func TestPageLayout(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, nil, "table", "visits",
		"--modules", f.modules,
		"--data", f.data,
		"--query", ".data",
		"--page",
		"--template-global", "stylesheet=/static/admin.css",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, "<title>Visits</title>")
	assert.Contains(t, out, `<link rel="stylesheet" href="/static/admin.css">`)
	assert.Contains(t, out, `av-page--table`)
	assert.Contains(t, out, `data-id="1"`)

	layout := f.write(t, "shell.html", `<main data-app="{{ app }}">{{ title }}{{ content|safe }}</main>`)
	out, err = run(t, nil, "form", "visits",
		"--modules", f.modules,
		"--layout", layout,
		"--template-global", "app=backoffice",
	)
	require.NoError(t, err)
	assert.Contains(t, out, `<main data-app="backoffice">Visit<form`)

	_, err = run(t, nil, "form", "visits", "--modules", f.modules, "--template-global", "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func TestUnknownEntity(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, nil, "form", "tickets", "--modules", f.modules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity")
}

func TestEntityPrompt(t *testing.T) {
	f := newFixture(t)

	original := stdinIsTerminal
	t.Cleanup(func() { stdinIsTerminal = original })

	stdinIsTerminal = func() bool { return false }
	_, err := run(t, nil, "form", "--modules", f.modules)
	require.ErrorIs(t, err, ErrEntityRequired)

	stdinIsTerminal = func() bool { return true }
	var offered []string
	prompt := func(_ string, entities []string) (string, error) {
		offered = entities
		return "visits", nil
	}
	out, err := run(t, prompt, "form", "--modules", f.modules)
	require.NoError(t, err)
	assert.Equal(t, []string{"visits"}, offered)
	assert.Contains(t, out, `data-entity="visits"`)

	failing := func(string, []string) (string, error) { return "", ErrAborted }
	_, err = run(t, failing, "form", "--modules", f.modules)
	require.True(t, errors.Is(err, ErrAborted))
}

func TestGrantGate(t *testing.T) {
	gate := grantGate([]string{"edit:visits", "view:*, delete:users"})

	assert.True(t, gate("edit", "visits"))
	assert.True(t, gate("view", "anything"))
	assert.True(t, gate("delete", "users"))
	assert.False(t, gate("delete", "visits"))
	assert.False(t, gate("edit", "users"))
}

func TestRunQuery(t *testing.T) {
	payload := map[string]any{"data": []any{
		map[string]any{"id": 1.0, "name": "a"},
		map[string]any{"id": 2.0, "name": "b"},
	}}

	got, err := runQuery(context.Background(), ".data[] | select(.id > 1)", payload)
	require.NoError(t, err)
	items, err := toItems(got)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].String("name"))

	_, err = runQuery(context.Background(), ".data[", payload)
	require.Error(t, err)

	_, err = toItems("text")
	require.Error(t, err)
}
