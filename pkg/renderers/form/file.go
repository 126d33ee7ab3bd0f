package form

import (
	"net/url"
	"path"
	"strings"

	"github.com/goliatone/go-adminview/pkg/format"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

// ExistingSuffix names the hidden companion carrying a file field's current
// value.
const ExistingSuffix = "_existing"

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}, ".svg": {}, ".bmp": {}, ".avif": {},
}

// IsImagePath reports whether ref points at a previewable image.
func IsImagePath(ref string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(filePath(ref)))]
	return ok
}

func filePath(ref string) string {
	ref = strings.TrimSpace(ref)
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		return u.Path
	}
	return ref
}

func (r *Renderer) file(c control) string {
	existing := ""
	if !model.IsEmpty(c.value) {
		existing = strings.TrimSpace(model.Stringify(c.value))
	}

	var b strings.Builder
	if existing != "" {
		b.WriteString(filePreview(existing))
		b.WriteString(hiddenInput(c.field.Name+ExistingSuffix, existing))
	}
	if c.locked {
		return b.String()
	}

	b.WriteString(`<input type="file"`)
	render.Attr(&b, "id", c.id)
	render.Attr(&b, "name", c.field.Name)
	render.Attr(&b, "class", "av-input av-input--file")
	render.Attr(&b, "accept", c.field.Accept)
	render.BoolAttr(&b, "multiple", c.field.Multiple)
	render.BoolAttr(&b, "required", c.field.Required && existing == "")
	b.WriteString(`>`)
	return b.String()
}

// filePreview shows a thumbnail for image references and a filename chip for
// everything else.
func filePreview(ref string) string {
	name := path.Base(filePath(ref))
	if name == "." || name == "/" {
		name = ref
	}

	var b strings.Builder
	b.WriteString(`<div class="av-file-preview">`)
	if src := format.ImageSource(ref); src != "" && IsImagePath(ref) {
		b.WriteString(`<img class="av-file-preview__image"`)
		render.Attr(&b, "src", src)
		render.Attr(&b, "alt", name)
		b.WriteString(` loading="lazy">`)
	} else {
		b.WriteString(`<span class="av-file-chip">`)
		b.WriteString(render.Icon("file"))
		b.WriteString(render.Escape(name))
		b.WriteString(`</span>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
