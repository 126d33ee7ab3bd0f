package form

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/testsupport"
)

const companyForm = `
entity: companies
route: /companies
form:
  fields:
    general: {type: section, label: General, help: Basic company data}
    name: {label: Name, required: true}
    slug: {readonly_on_edit: true}
    size:
      type: select
      options: {small: Small, large: Large}
    region:
      type: select
      options_callback: regions
    kind:
      type: radio
      options:
        - {value: b2b, label: Business}
        - {value: b2c, label: Consumer}
    rule: {type: divider}
    newsletter: {type: checkbox, label: Newsletter}
    verified: {type: checkbox, readonly_on_edit: true}
    founded: {type: date}
    visited_at: {type: datetime-local}
    password: {type: password}
    note: {type: textarea, rows: 6}
    logo: {type: file, accept: image/*}
    contract: {type: file}
    token: {type: hidden, default: abc}
`

func newRenderer(t *testing.T) *Renderer {
	t.Helper()

	r := New(nil)
	if err := r.RegisterOptions("regions", func(_ *render.Context, _ model.FormFieldConfig, _ model.Item) model.Options {
		return model.Options{{Value: "cz", Label: "Czechia"}, {Value: "sk", Label: "Slovakia"}}
	}); err != nil {
		t.Fatalf("register options: %v", err)
	}
	return r
}

func TestCreateFormSubmission(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, companyForm)
	got := newRenderer(t).Render(render.NewContext(), cfg, nil)

	if !strings.HasPrefix(got, `<form class="av-form av-form--create" method="post" action="/companies" enctype="multipart/form-data" data-entity="companies" data-mode="create">`) {
		t.Fatalf("unexpected form open tag in %q", got)
	}
	if strings.Contains(got, `name="id"`) {
		t.Fatalf("create form must not carry an id")
	}

	want := map[string]string{
		"name":       "",
		"slug":       "",
		"size":       "",
		"region":     "",
		"newsletter": "0",
		"verified":   "0",
		"founded":    "",
		"visited_at": "",
		"password":   "",
		"note":       "",
		"token":      "abc",
	}
	if diff := cmp.Diff(want, testsupport.FormValues(t, got)); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(got, `<option value="cz">Czechia</option>`) {
		t.Fatalf("options callback not used: %q", got)
	}
	if !strings.Contains(got, `<button type="submit" class="av-button av-button--primary">Create</button>`) {
		t.Fatalf("expected create button")
	}
}

func TestCheckboxRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, companyForm)
	r := newRenderer(t)

	values := testsupport.FormValues(t, r.Render(nil, cfg, model.Item{"id": 1, "newsletter": "0"}))
	if v, ok := values["newsletter"]; !ok || v != "0" {
		t.Fatalf("unchecked checkbox must submit 0, got %q (present %v)", v, ok)
	}

	values = testsupport.FormValues(t, r.Render(nil, cfg, model.Item{"id": 1, "newsletter": true, "verified": 1}))
	if values["newsletter"] != "1" {
		t.Fatalf("checked checkbox must submit 1, got %q", values["newsletter"])
	}
	if values["verified"] != "1" {
		t.Fatalf("locked checked checkbox must keep its value, got %q", values["verified"])
	}

	markup := r.Field(nil, model.FormFieldConfig{Name: "active", Type: model.FieldCheckbox}, nil, ModeCreate)
	hidden := strings.Index(markup, `<input type="hidden" name="active" value="0">`)
	box := strings.Index(markup, `type="checkbox"`)
	if hidden < 0 || box < 0 || hidden > box {
		t.Fatalf("hidden companion must precede the checkbox: %q", markup)
	}
}

func TestEditModeValuesAndReadonly(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, companyForm)
	item := model.Item{
		"id":         42,
		"name":       "Acme & Co",
		"slug":       "acme",
		"size":       "large",
		"region":     "sk",
		"kind":       "b2c",
		"founded":    "5. 3. 2024",
		"visited_at": "2024-03-05 14:07:00",
		"password":   "secret",
		"note":       "line <1>",
	}
	got := newRenderer(t).Render(nil, cfg, item)

	if !strings.Contains(got, `<input type="hidden" name="id" value="42">`) {
		t.Fatalf("edit form must carry the id: %q", got)
	}
	if !strings.Contains(got, `name="slug" class="av-input" value="acme" readonly>`) {
		t.Fatalf("slug must be readonly in edit mode: %q", got)
	}
	if strings.Contains(got, "secret") {
		t.Fatalf("password must not be echoed")
	}
	if !strings.Contains(got, `<textarea id="av-field-note" name="note" class="av-input av-input--textarea" rows="6">line &lt;1&gt;</textarea>`) {
		t.Fatalf("unexpected textarea in %q", got)
	}
	if !strings.Contains(got, `<button type="submit" class="av-button av-button--primary">Save</button>`) {
		t.Fatalf("expected save button")
	}

	values := testsupport.FormValues(t, got)
	for field, want := range map[string]string{
		"id":         "42",
		"name":       "Acme & Co",
		"slug":       "acme",
		"size":       "large",
		"region":     "sk",
		"kind":       "b2c",
		"founded":    "2024-03-05",
		"visited_at": "2024-03-05T14:07",
		"note":       "line <1>",
		"token":      "abc",
	} {
		if values[field] != want {
			t.Fatalf("%s = %q, want %q", field, values[field], want)
		}
	}
}

func TestLockedSelectKeepsValue(t *testing.T) {
	t.Parallel()

	r := New(nil)
	field := model.FormFieldConfig{
		Name:           "plan",
		Type:           model.FieldSelect,
		ReadonlyOnEdit: true,
		Options:        model.Options{{Value: "free", Label: "Free"}, {Value: "pro", Label: "Pro"}},
	}
	got := r.Field(nil, field, model.Item{"plan": "pro"}, ModeEdit)
	if !strings.Contains(got, " disabled>") {
		t.Fatalf("locked select must be disabled: %q", got)
	}
	if values := testsupport.FormValues(t, "<form>"+got+"</form>"); values["plan"] != "pro" {
		t.Fatalf("locked select must submit through the hidden carrier, got %v", values)
	}

	if got := r.Field(nil, field, model.Item{"plan": "pro"}, ModeCreate); strings.Contains(got, "disabled") {
		t.Fatalf("readonly_on_edit does not apply to create mode: %q", got)
	}
}

func TestFilePreview(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, companyForm)
	got := newRenderer(t).Render(nil, cfg, model.Item{
		"id":       1,
		"logo":     "/uploads/logo.PNG",
		"contract": "https://cdn.example.com/files/contract.pdf?v=2",
	})

	if !strings.Contains(got, `<img class="av-file-preview__image" src="/uploads/logo.PNG" alt="logo.PNG" loading="lazy">`) {
		t.Fatalf("expected image thumbnail in %q", got)
	}
	if !strings.Contains(got, `<span class="av-file-chip"><i class="av-icon av-icon-file" aria-hidden="true"></i>contract.pdf</span>`) {
		t.Fatalf("expected filename chip in %q", got)
	}

	values := testsupport.FormValues(t, got)
	if values["logo_existing"] != "/uploads/logo.PNG" {
		t.Fatalf("expected existing logo companion, got %q", values["logo_existing"])
	}
	if values["contract_existing"] != "https://cdn.example.com/files/contract.pdf?v=2" {
		t.Fatalf("expected existing contract companion, got %q", values["contract_existing"])
	}
	if _, ok := values["logo"]; ok {
		t.Fatalf("file inputs are not part of the parsed values")
	}

	if got := New(nil).Field(nil, model.FormFieldConfig{Name: "logo", Type: model.FieldFile}, model.Item{}, ModeEdit); strings.Contains(got, "_existing") {
		t.Fatalf("no companion without a current value: %q", got)
	}
}

func TestStructuralEntries(t *testing.T) {
	t.Parallel()

	r := New(nil)
	section := r.Field(nil, model.FormFieldConfig{Name: "general", Type: model.FieldSection, Label: "General", Help: "Basics"}, nil, ModeCreate)
	if section != `<div class="av-form__section"><h3 class="av-form__section-title">General</h3><p class="av-field__help">Basics</p></div>` {
		t.Fatalf("unexpected section markup %q", section)
	}
	if got := r.Field(nil, model.FormFieldConfig{Type: model.FieldDivider}, nil, ModeCreate); got != `<hr class="av-form__divider">` {
		t.Fatalf("unexpected divider markup %q", got)
	}

	cfg := testsupport.MustParseModule(t, companyForm)
	values := testsupport.FormValues(t, r.Render(nil, cfg, nil))
	for _, name := range []string{"general", "rule"} {
		if _, ok := values[name]; ok {
			t.Fatalf("structural entry %q must not submit data", name)
		}
	}
}

func TestMethodSpoofingAndUnknownType(t *testing.T) {
	t.Parallel()

	cfg := testsupport.MustParseModule(t, `
entity: visits
form:
  action: /visits/{id}
  method: PUT
  submit_label: Store
  fields:
    purpose: {type: wysiwyg}
`)
	got := New(nil).Render(nil, cfg, model.Item{"id": 5, "purpose": "Audit"})
	for _, want := range []string{
		`method="post" action="/visits/5"`,
		`<input type="hidden" name="_method" value="PUT">`,
		`<input type="text" id="av-field-purpose" name="purpose" class="av-input" value="Audit">`,
		`>Store</button>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "enctype") {
		t.Fatalf("no multipart without file fields")
	}
}

func TestInputValueEdgeCases(t *testing.T) {
	t.Parallel()

	r := New(nil)
	cases := []struct {
		field model.FormFieldConfig
		value any
		want  string
	}{
		{field: model.FormFieldConfig{Name: "d", Type: model.FieldDate}, value: "0000-00-00", want: ""},
		{field: model.FormFieldConfig{Name: "d", Type: model.FieldDate}, value: "soon", want: "soon"},
		{field: model.FormFieldConfig{Name: "t", Type: model.FieldTime}, value: "14:07:33", want: "14:07"},
		{field: model.FormFieldConfig{Name: "c", Type: model.FieldColor}, value: "#FFAA00", want: "#ffaa00"},
		{field: model.FormFieldConfig{Name: "c", Type: model.FieldColor}, value: "red", want: ""},
		{field: model.FormFieldConfig{Name: "n", Type: model.FieldNumber}, value: 12.5, want: "12.5"},
	}
	for _, tc := range cases {
		markup := r.Field(nil, tc.field, model.Item{tc.field.Name: tc.value}, ModeEdit)
		if got := testsupport.FormValues(t, "<form>"+markup+"</form>")[tc.field.Name]; got != tc.want {
			t.Fatalf("%s value %v = %q, want %q", tc.field.Type, tc.value, got, tc.want)
		}
	}
}
