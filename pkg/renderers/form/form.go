// Package form renders create and edit forms from a module's form config.
package form

import (
	"strings"

	"github.com/goliatone/go-adminview/pkg/format"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

// Mode is the form mode derived from the presence of an item.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// OptionsFunc supplies select and radio choices at render time.
type OptionsFunc func(rc *render.Context, field model.FormFieldConfig, item model.Item) model.Options

// Renderer renders forms.
type Renderer struct {
	formatter *format.Formatter
	options   *render.Registry[OptionsFunc]
}

// New creates a form renderer. A nil formatter uses format.New().
func New(formatter *format.Formatter) *Renderer {
	if formatter == nil {
		formatter = format.New()
	}
	return &Renderer{
		formatter: formatter,
		options:   render.NewRegistry[OptionsFunc]("options callback"),
	}
}

// RegisterOptions registers a named options_callback.
func (r *Renderer) RegisterOptions(name string, fn OptionsFunc) error {
	return r.options.Register(name, fn)
}

// ModeFor reports the mode for item: edit when an item is given.
func ModeFor(item model.Item) Mode {
	if item == nil {
		return ModeCreate
	}
	return ModeEdit
}

// Render renders the form for cfg. A nil item renders the create form.
func (r *Renderer) Render(rc *render.Context, cfg model.ModuleConfig, item model.Item) string {
	mode := ModeFor(item)

	method := strings.ToLower(strings.TrimSpace(cfg.Form.Method))
	if method == "" {
		method = "post"
	}
	spoofed := ""
	if method != "get" && method != "post" {
		spoofed, method = method, "post"
	}

	var b strings.Builder
	b.WriteString(`<form class="av-form av-form--`)
	b.WriteString(string(mode))
	b.WriteString(`"`)
	render.Attr(&b, "method", method)
	render.Attr(&b, "action", render.ExpandURL(cfg.Form.Action, item))
	if hasFileField(cfg.Form.Fields) {
		render.Attr(&b, "enctype", "multipart/form-data")
	}
	render.Attr(&b, "data-entity", cfg.Entity)
	render.Attr(&b, "data-mode", string(mode))
	b.WriteString(`>`)

	if spoofed != "" {
		b.WriteString(hiddenInput("_method", strings.ToUpper(spoofed)))
	}
	if mode == ModeEdit && item.ID() != "" && !hasField(cfg.Form.Fields, "id") {
		b.WriteString(hiddenInput("id", item.ID()))
	}

	for _, field := range cfg.Form.Fields {
		b.WriteString(r.Field(rc, field, item, mode))
	}

	label := cfg.Form.SubmitLabel
	if strings.TrimSpace(label) != "" {
		label = rc.T(label, label)
	} else if mode == ModeEdit {
		label = rc.T("adminview.form.save", "Save")
	} else {
		label = rc.T("adminview.form.create", "Create")
	}
	b.WriteString(`<div class="av-form__actions"><button type="submit" class="av-button av-button--primary">`)
	b.WriteString(render.Escape(label))
	b.WriteString(`</button></div></form>`)
	return b.String()
}

// Field renders one form entry in the given mode.
func (r *Renderer) Field(rc *render.Context, field model.FormFieldConfig, item model.Item, mode Mode) string {
	kind := model.FieldType(strings.ToLower(strings.TrimSpace(string(field.Type))))
	if kind == "" {
		kind = model.FieldText
	}
	if !kind.Known() {
		rc.Log().Debug().Str("field", field.Name).Str("type", string(field.Type)).Msg("unknown field type, rendering as text")
		kind = model.FieldText
	}

	label := rc.Label(field.LabelKey, field.Label, field.Name)
	switch kind {
	case model.FieldSection:
		var b strings.Builder
		b.WriteString(`<div class="av-form__section"><h3 class="av-form__section-title">`)
		b.WriteString(render.Escape(label))
		b.WriteString(`</h3>`)
		writeHelp(&b, rc, field)
		b.WriteString(`</div>`)
		return b.String()
	case model.FieldDivider:
		return `<hr class="av-form__divider">`
	}

	if strings.TrimSpace(field.Name) == "" {
		rc.Log().Debug().Str("type", string(kind)).Msg("form field without name skipped")
		return ""
	}

	value := fieldValue(field, item, mode)
	locked := mode == ModeEdit && field.ReadonlyOnEdit

	if kind == model.FieldHidden {
		return hiddenInput(field.Name, model.Stringify(value))
	}

	c := control{
		id:     fieldID(field.Name),
		field:  field,
		kind:   kind,
		value:  value,
		locked: locked,
		label:  label,
	}

	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(render.Escape(render.Classes(
		"av-field",
		"av-field--"+render.ClassToken(string(kind)),
		render.ClassIf(field.Required, "av-field--required"),
		render.ClassIf(locked, "av-field--readonly"),
		field.Class,
	)))
	b.WriteString(`">`)

	if kind == model.FieldCheckbox {
		b.WriteString(r.checkbox(c))
	} else {
		b.WriteString(`<label class="av-field__label"`)
		if kind != model.FieldRadio {
			render.Attr(&b, "for", c.id)
		}
		b.WriteString(`>`)
		b.WriteString(render.Escape(label))
		if field.Required {
			b.WriteString(` <span class="av-field__required">*</span>`)
		}
		b.WriteString(`</label>`)
		b.WriteString(r.control(rc, c, item))
	}
	writeHelp(&b, rc, field)
	b.WriteString(`</div>`)
	return b.String()
}

// fieldValue picks the item's value in edit mode and the configured default
// otherwise, or when the item lacks the field.
func fieldValue(field model.FormFieldConfig, item model.Item, mode Mode) any {
	if mode == ModeEdit {
		if v, ok := item.Lookup(field.Name); ok {
			return v
		}
	}
	return field.Default
}

func writeHelp(b *strings.Builder, rc *render.Context, field model.FormFieldConfig) {
	if strings.TrimSpace(field.Help) == "" {
		return
	}
	b.WriteString(`<p class="av-field__help">`)
	b.WriteString(render.Escape(rc.T(field.Help, field.Help)))
	b.WriteString(`</p>`)
}

func hiddenInput(name, value string) string {
	var b strings.Builder
	b.WriteString(`<input type="hidden"`)
	render.Attr(&b, "name", name)
	b.WriteString(` value="`)
	b.WriteString(render.Escape(value))
	b.WriteString(`">`)
	return b.String()
}

func fieldID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return "av-field-" + b.String()
}

func hasFileField(fields model.FormFields) bool {
	for _, field := range fields {
		if strings.EqualFold(strings.TrimSpace(string(field.Type)), string(model.FieldFile)) {
			return true
		}
	}
	return false
}

func hasField(fields model.FormFields, name string) bool {
	for _, field := range fields {
		if field.Name == name {
			return true
		}
	}
	return false
}
