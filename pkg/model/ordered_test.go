package model

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestColumnsYAMLKeepsOrder(t *testing.T) {
	t.Parallel()

	var cfg ModuleConfig
	src := `
entity: company
columns:
  name: Name
  status:
    type: badge
    sortable: true
    map:
      active: {label: Active, color: success}
  city:
    label: City
form:
  fields:
    name:
      type: text
      required: true
    kind:
      type: select
      options:
        b: Beta
        a: Alpha
`
	if err := yaml.Unmarshal([]byte(src), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	keys := make([]string, 0, len(cfg.Columns))
	for _, col := range cfg.Columns {
		keys = append(keys, col.Key)
	}
	if got := joinKeys(keys); got != "name,status,city" {
		t.Fatalf("unexpected column order %s", got)
	}
	if cfg.Columns[0].Label != "Name" {
		t.Fatalf("expected scalar shorthand label, got %q", cfg.Columns[0].Label)
	}
	status := cfg.Columns[1]
	if status.Type != FormatBadge || !status.Sortable || status.Map["active"].Color != "success" {
		t.Fatalf("unexpected status column %+v", status)
	}

	if len(cfg.Form.Fields) != 2 || cfg.Form.Fields[1].Name != "kind" {
		t.Fatalf("unexpected fields %+v", cfg.Form.Fields)
	}
	opts := cfg.Form.Fields[1].Options
	if len(opts) != 2 || opts[0].Value != "b" || opts[1].Label != "Alpha" {
		t.Fatalf("expected options in authored order, got %+v", opts)
	}
}

func TestColumnsJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	src := `{"entity":"visit","columns":{"z":{"type":"date"},"a":"Alpha","m":{"key":"m","sortable":true}},
	"form":{"fields":[{"name":"note","type":"textarea"}]}}`

	var cfg ModuleConfig
	if err := json.Unmarshal([]byte(src), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	keys := make([]string, 0, len(cfg.Columns))
	for _, col := range cfg.Columns {
		keys = append(keys, col.Key)
	}
	if got := joinKeys(keys); got != "z,a,m" {
		t.Fatalf("unexpected column order %s", got)
	}
	if cfg.Columns[0].Type != FormatDate || cfg.Columns[1].Label != "Alpha" {
		t.Fatalf("unexpected columns %+v", cfg.Columns)
	}
	if len(cfg.Form.Fields) != 1 || cfg.Form.Fields[0].Type != FieldTextarea {
		t.Fatalf("unexpected fields %+v", cfg.Form.Fields)
	}
}

func TestOptionsDecodeListForms(t *testing.T) {
	t.Parallel()

	var yamlOpts Options
	if err := yaml.Unmarshal([]byte("- draft\n- {value: done, label: Done}\n"), &yamlOpts); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if len(yamlOpts) != 2 || yamlOpts[0].Label != "draft" || yamlOpts.Label("done") != "Done" {
		t.Fatalf("unexpected yaml options %+v", yamlOpts)
	}

	var jsonOpts Options
	if err := json.Unmarshal([]byte(`{"1":"One","2":2}`), &jsonOpts); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(jsonOpts) != 2 || jsonOpts[1].Label != "2" {
		t.Fatalf("unexpected json options %+v", jsonOpts)
	}
}

func TestColumnsRejectScalarDocument(t *testing.T) {
	t.Parallel()

	var cols Columns
	if err := yaml.Unmarshal([]byte("columns: nope\n"), &struct {
		Columns *Columns `yaml:"columns"`
	}{Columns: &cols}); err == nil {
		t.Fatalf("expected error for scalar columns")
	}
}

func joinKeys(keys []string) string {
	out := ""
	for idx, key := range keys {
		if idx > 0 {
			out += ","
		}
		out += key
	}
	return out
}
