package form

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-adminview/pkg/format"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

// DefaultTextareaRows is used when a textarea has no rows setting.
const DefaultTextareaRows = 4

type control struct {
	id     string
	field  model.FormFieldConfig
	kind   model.FieldType
	value  any
	locked bool
	label  string
}

func (r *Renderer) control(rc *render.Context, c control, item model.Item) string {
	switch c.kind {
	case model.FieldTextarea:
		return r.textarea(rc, c)
	case model.FieldSelect:
		return r.selectControl(rc, c, item)
	case model.FieldRadio:
		return r.radio(rc, c, item)
	case model.FieldFile:
		return r.file(c)
	default:
		return r.input(rc, c)
	}
}

func (r *Renderer) input(rc *render.Context, c control) string {
	var b strings.Builder
	b.WriteString(`<input`)
	render.Attr(&b, "type", string(c.kind))
	render.Attr(&b, "id", c.id)
	render.Attr(&b, "name", c.field.Name)
	render.Attr(&b, "class", "av-input")
	render.Attr(&b, "value", r.inputValue(c))
	if c.field.Placeholder != "" {
		render.Attr(&b, "placeholder", rc.T(c.field.Placeholder, c.field.Placeholder))
	}
	render.Attr(&b, "pattern", c.field.Pattern)
	render.Attr(&b, "min", model.Stringify(c.field.Min))
	render.Attr(&b, "max", model.Stringify(c.field.Max))
	render.Attr(&b, "step", model.Stringify(c.field.Step))
	if c.kind == model.FieldPassword {
		render.Attr(&b, "autocomplete", "new-password")
	}
	render.BoolAttr(&b, "required", c.field.Required && !c.locked)
	render.BoolAttr(&b, "readonly", c.locked)
	b.WriteString(`>`)
	return b.String()
}

// inputValue converts the stored value into what the input type accepts.
// Passwords are never echoed.
func (r *Renderer) inputValue(c control) string {
	if model.IsEmpty(c.value) {
		return ""
	}
	switch c.kind {
	case model.FieldPassword:
		return ""
	case model.FieldDate, model.FieldDateTimeLocal, model.FieldTime:
		if v, ok := r.formatter.InputValue(c.value, c.kind); ok {
			return v
		}
		if _, zero, _ := format.ParseTime(c.value, nil); zero {
			return ""
		}
	case model.FieldColor:
		raw := strings.TrimSpace(model.Stringify(c.value))
		if !isHexColor(raw) {
			return ""
		}
		return strings.ToLower(raw)
	}
	return model.Stringify(c.value)
}

func isHexColor(raw string) bool {
	if len(raw) != 7 || raw[0] != '#' {
		return false
	}
	for _, ch := range raw[1:] {
		switch {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

func (r *Renderer) textarea(rc *render.Context, c control) string {
	rows := c.field.Rows
	if rows <= 0 {
		rows = DefaultTextareaRows
	}
	var b strings.Builder
	b.WriteString(`<textarea`)
	render.Attr(&b, "id", c.id)
	render.Attr(&b, "name", c.field.Name)
	render.Attr(&b, "class", "av-input av-input--textarea")
	render.Attr(&b, "rows", strconv.Itoa(rows))
	if c.field.Placeholder != "" {
		render.Attr(&b, "placeholder", rc.T(c.field.Placeholder, c.field.Placeholder))
	}
	render.BoolAttr(&b, "required", c.field.Required && !c.locked)
	render.BoolAttr(&b, "readonly", c.locked)
	b.WriteString(`>`)
	b.WriteString(render.Escape(model.Stringify(c.value)))
	b.WriteString(`</textarea>`)
	return b.String()
}

// choices resolves static options or the named callback. A missing callback
// falls back to the static list.
func (r *Renderer) choices(rc *render.Context, field model.FormFieldConfig, item model.Item) model.Options {
	name := strings.TrimSpace(field.OptionsCallback)
	if name == "" {
		return field.Options
	}
	fn, ok := r.options.Lookup(name)
	if !ok || fn == nil {
		rc.Log().Debug().Str("field", field.Name).Str("callback", name).Msg("options callback not registered")
		return field.Options
	}
	return fn(rc, field, item)
}

// selectedSet collects the selected values; multi-value fields accept slices.
func selectedSet(value any) map[string]struct{} {
	out := make(map[string]struct{})
	switch typed := value.(type) {
	case nil:
	case []any:
		for _, v := range typed {
			out[model.Stringify(v)] = struct{}{}
		}
	case []string:
		for _, v := range typed {
			out[v] = struct{}{}
		}
	default:
		if !model.IsEmpty(value) {
			out[model.Stringify(value)] = struct{}{}
		}
	}
	return out
}

func (r *Renderer) selectControl(rc *render.Context, c control, item model.Item) string {
	options := r.choices(rc, c.field, item)
	selected := selectedSet(c.value)
	name := c.field.Name
	if c.field.Multiple && !strings.HasSuffix(name, "[]") {
		name += "[]"
	}

	var b strings.Builder
	b.WriteString(`<select`)
	render.Attr(&b, "id", c.id)
	render.Attr(&b, "name", name)
	render.Attr(&b, "class", "av-input av-input--select")
	render.BoolAttr(&b, "multiple", c.field.Multiple)
	render.BoolAttr(&b, "required", c.field.Required && !c.locked)
	render.BoolAttr(&b, "disabled", c.locked)
	b.WriteString(`>`)

	if !c.field.Multiple && (!c.field.Required || c.field.Placeholder != "") {
		placeholder := format.Sentinel
		if c.field.Placeholder != "" {
			placeholder = rc.T(c.field.Placeholder, c.field.Placeholder)
		}
		b.WriteString(`<option value="">`)
		b.WriteString(render.Escape(placeholder))
		b.WriteString(`</option>`)
	}
	for _, opt := range options {
		b.WriteString(`<option value="`)
		b.WriteString(render.Escape(opt.Value))
		b.WriteString(`"`)
		_, on := selected[opt.Value]
		render.BoolAttr(&b, "selected", on)
		b.WriteString(`>`)
		b.WriteString(render.Escape(optionLabel(rc, opt)))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)

	if c.locked {
		for _, opt := range options {
			if _, on := selected[opt.Value]; on {
				b.WriteString(hiddenInput(name, opt.Value))
			}
		}
	}
	return b.String()
}

func (r *Renderer) radio(rc *render.Context, c control, item model.Item) string {
	options := r.choices(rc, c.field, item)
	current := ""
	if !model.IsEmpty(c.value) {
		current = model.Stringify(c.value)
	}

	var b strings.Builder
	b.WriteString(`<div class="av-radios">`)
	for idx, opt := range options {
		b.WriteString(`<label class="av-radio"><input type="radio"`)
		render.Attr(&b, "id", c.id+"-"+strconv.Itoa(idx))
		render.Attr(&b, "name", c.field.Name)
		b.WriteString(` value="`)
		b.WriteString(render.Escape(opt.Value))
		b.WriteString(`"`)
		render.BoolAttr(&b, "checked", opt.Value == current)
		render.BoolAttr(&b, "required", c.field.Required && !c.locked)
		render.BoolAttr(&b, "disabled", c.locked)
		b.WriteString(`> <span>`)
		b.WriteString(render.Escape(optionLabel(rc, opt)))
		b.WriteString(`</span></label>`)
	}
	b.WriteString(`</div>`)
	if c.locked && current != "" {
		b.WriteString(hiddenInput(c.field.Name, current))
	}
	return b.String()
}

// checkbox always emits a hidden "0" under the same name first so an
// unchecked box still submits a value.
func (r *Renderer) checkbox(c control) string {
	checked := model.Truthy(c.value)

	var b strings.Builder
	b.WriteString(hiddenInput(c.field.Name, "0"))
	b.WriteString(`<label class="av-check"`)
	render.Attr(&b, "for", c.id)
	b.WriteString(`><input type="checkbox"`)
	render.Attr(&b, "id", c.id)
	render.Attr(&b, "name", c.field.Name)
	render.Attr(&b, "value", "1")
	render.BoolAttr(&b, "checked", checked)
	render.BoolAttr(&b, "required", c.field.Required && !c.locked)
	render.BoolAttr(&b, "disabled", c.locked)
	b.WriteString(`> <span>`)
	b.WriteString(render.Escape(c.label))
	if c.field.Required {
		b.WriteString(` <span class="av-field__required">*</span>`)
	}
	b.WriteString(`</span></label>`)
	if c.locked && checked {
		b.WriteString(hiddenInput(c.field.Name, "1"))
	}
	return b.String()
}

func optionLabel(rc *render.Context, opt model.Option) string {
	if strings.TrimSpace(opt.Label) == "" {
		return opt.Value
	}
	return rc.T(opt.Label, opt.Label)
}
