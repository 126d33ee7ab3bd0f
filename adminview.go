// Package adminview renders admin list tables, detail sidebars and
// create/edit forms from declarative module configs. Most callers only need
// this package; the pkg/ tree exposes the individual renderers.
package adminview

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-adminview/pkg/config"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/orchestrator"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/render/template"
	"github.com/goliatone/go-adminview/pkg/renderers/table"
	"github.com/goliatone/go-adminview/pkg/settings"
)

type (
	// Item is one record.
	Item = model.Item
	// RelatedData holds the lists related to an item, keyed by data key.
	RelatedData = model.RelatedData
	// ModuleConfig is the declarative contract for one entity.
	ModuleConfig = model.ModuleConfig

	// Engine renders every surface for the loaded modules.
	Engine = orchestrator.Engine
	// Option configures an Engine.
	Option = orchestrator.Option
	// Request carries per-request locale, permissions and theme.
	Request = orchestrator.Request

	// PermissionGate decides whether an action on a module is allowed.
	PermissionGate = render.PermissionGate
	// Translator resolves message keys.
	Translator = render.Translator
	// TableOptions carries the current sort and the base URL of sort links.
	TableOptions = table.Options
)

// ErrUnknownEntity is returned for entities without a module config.
var ErrUnknownEntity = orchestrator.ErrUnknownEntity

// NewEngine constructs an Engine.
func NewEngine(options ...Option) (*Engine, error) {
	return orchestrator.New(options...)
}

// NewEngineFS loads every module config under dir in files and constructs
// an Engine serving them.
func NewEngineFS(ctx context.Context, files fs.FS, dir string, options ...Option) (*Engine, error) {
	loader := config.NewLoader(config.WithFileSystem(files))
	store, err := loader.LoadDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("adminview: load modules: %w", err)
	}
	return orchestrator.New(append([]Option{orchestrator.WithStore(store)}, options...)...)
}

// LoadMessages reads one catalog file per locale under dir.
func LoadMessages(ctx context.Context, files fs.FS, dir, fallbackLocale string) (*render.Catalog, error) {
	return config.LoadCatalog(ctx, files, dir, fallbackLocale)
}

// WithModules registers module configs directly.
func WithModules(modules ...ModuleConfig) Option {
	return orchestrator.WithModules(modules...)
}

// WithTranslator sets the translator used for labels and messages.
func WithTranslator(t Translator) Option {
	return orchestrator.WithTranslator(t)
}

// WithThemeSelector resolves palette tokens from a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}

// WithPaletteTokens maps "<kind>.<color>" keys to CSS classes.
func WithPaletteTokens(tokens map[string]string) Option {
	return orchestrator.WithPaletteTokens(tokens)
}

// WithTemplates sets the engine rendering file-backed special sections.
func WithTemplates(templates template.Renderer) Option {
	return orchestrator.WithTemplates(templates)
}

// WithPermissivePermissions shows gated content to requests without a gate.
func WithPermissivePermissions(enabled bool) Option {
	return orchestrator.WithPermissivePermissions(enabled)
}

// WithLogger sets the fallback request logger.
func WithLogger(logger zerolog.Logger) Option {
	return orchestrator.WithLogger(logger)
}

// LoadSettings reads engine settings: embedded defaults, then the optional
// TOML file, then ADMINVIEW_* environment variables.
func LoadSettings(file string) (*settings.Settings, error) {
	return settings.Load(settings.Options{File: file})
}

// WithSettings applies loaded settings (locale, layouts, currency, palette).
func WithSettings(s *settings.Settings) Option {
	return orchestrator.WithSettings(s)
}
