package gotemplate

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	gotpl "github.com/goliatone/go-template"
)

//go:embed layouts/*.tpl
var layoutFS embed.FS

// DefaultLayout is the embedded page layout name.
const DefaultLayout = "page"

// Page is the data a layout receives. Content is already rendered markup and
// layouts print it with the safe filter.
type Page struct {
	Title   string `json:"title"`
	Entity  string `json:"entity"`
	Surface string `json:"surface"`
	Locale  string `json:"locale"`
	Content string `json:"content"`
}

// LayoutOption configures NewLayout.
type LayoutOption func(*layoutConfig)

type layoutConfig struct {
	dir     string
	name    string
	ext     string
	globals map[string]any
}

// WithLayoutFile renders pages with the template at path instead of the
// embedded layout. The file extension is kept as the template extension.
func WithLayoutFile(path string) LayoutOption {
	return func(cfg *layoutConfig) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		base := filepath.Base(path)
		cfg.dir = filepath.Dir(path)
		cfg.ext = filepath.Ext(base)
		cfg.name = strings.TrimSuffix(base, cfg.ext)
	}
}

// WithLayoutGlobals seeds values every page sees (stylesheet, app name).
func WithLayoutGlobals(globals map[string]any) LayoutOption {
	return func(cfg *layoutConfig) {
		if len(globals) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(globals))
		}
		for key, value := range globals {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Layout wraps rendered fragments into a full HTML document using the
// go-template engine.
type Layout struct {
	engine *gotpl.Engine
	name   string
}

// NewLayout builds a Layout from the embedded page template or a file.
func NewLayout(options ...LayoutOption) (*Layout, error) {
	cfg := &layoutConfig{name: DefaultLayout, ext: templateExt}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.ext == "" {
		cfg.ext = templateExt
	}

	engineOpts := []gotpl.Option{
		gotpl.WithExtension(cfg.ext),
		gotpl.WithGlobalData(cfg.globals),
	}
	if cfg.dir != "" {
		engineOpts = append(engineOpts, gotpl.WithBaseDir(cfg.dir))
	} else {
		sub, err := fs.Sub(layoutFS, "layouts")
		if err != nil {
			return nil, fmt.Errorf("gotemplate: embedded layouts: %w", err)
		}
		engineOpts = append(engineOpts, gotpl.WithFS(sub))
	}

	engine, err := gotpl.NewRenderer(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: layout engine: %w", err)
	}
	return &Layout{engine: engine, name: cfg.name}, nil
}

// Wrap renders page through the layout.
func (l *Layout) Wrap(page Page, out ...io.Writer) (string, error) {
	if l == nil || l.engine == nil {
		return "", fmt.Errorf("gotemplate: layout is nil")
	}
	html, err := l.engine.RenderTemplate(l.name, page, out...)
	if err != nil {
		return "", fmt.Errorf("gotemplate: render layout %q: %w", l.name, err)
	}
	return html, nil
}
