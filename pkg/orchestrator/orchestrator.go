package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-adminview/components/timezones"
	"github.com/goliatone/go-adminview/pkg/config"
	"github.com/goliatone/go-adminview/pkg/format"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/render/template"
	"github.com/goliatone/go-adminview/pkg/renderers/detail"
	"github.com/goliatone/go-adminview/pkg/renderers/form"
	"github.com/goliatone/go-adminview/pkg/renderers/table"
	"github.com/goliatone/go-adminview/pkg/visibility"
)

// ErrUnknownEntity is returned when no module config exists for an entity.
var ErrUnknownEntity = errors.New("orchestrator: unknown entity")

// Engine renders the table, detail and form surfaces for every loaded
// module. It is safe for concurrent use once constructed.
type Engine struct {
	store     *config.Store
	pending   []model.ModuleConfig
	formatter *format.Formatter
	specials  *detail.Specials

	tables  *table.Renderer
	details *detail.Renderer
	forms   *form.Renderer

	formatterOpts []format.Option
	translator    render.Translator
	onMissing     render.MissingTranslationHandler
	locale        string
	permissive    bool
	evaluator     visibility.Evaluator
	templates     template.Renderer
	logger        zerolog.Logger

	palette      render.Palette
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string

	initialiseErr error
}

// New constructs an Engine. Missing collaborators fall back to the built-in
// implementations so a bare New() renders with defaults.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.initialiseErr != nil {
		return nil, e.initialiseErr
	}
	if err := e.applyDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) applyDefaults() error {
	if e.store == nil {
		e.store = config.NewStore()
	}
	var errs []error
	for _, module := range e.pending {
		if err := e.store.Add(module, "options"); err != nil {
			errs = append(errs, err)
		}
	}
	e.pending = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("orchestrator: register modules: %w", err)
	}

	e.formatter = format.New(e.formatterOpts...)
	e.specials = detail.NewSpecials()
	sectionOpts := []detail.SectionOption{detail.WithSpecials(e.specials)}
	if e.templates != nil {
		sectionOpts = append(sectionOpts, detail.WithTemplates(e.templates))
	}
	e.tables = table.New(e.formatter)
	e.details = detail.New(e.formatter, sectionOpts...)
	e.forms = form.New(e.formatter)
	if err := e.forms.RegisterOptions(timezones.CallbackName, timezones.Callback()); err != nil {
		return fmt.Errorf("orchestrator: register built-in options: %w", err)
	}

	if e.selector != nil {
		selection, err := e.selector.Select(e.themeName, e.themeVariant)
		if err != nil {
			return fmt.Errorf("orchestrator: select theme %q: %w", e.themeName, err)
		}
		e.palette = e.palette.Merge(render.PaletteFromSelection(selection))
	}
	return nil
}

// Store exposes the module store.
func (e *Engine) Store() *config.Store { return e.store }

// Formatter exposes the shared value formatter.
func (e *Engine) Formatter() *format.Formatter { return e.formatter }

// Entities lists the loaded entity names in sorted order.
func (e *Engine) Entities() []string { return e.store.Entities() }

// Module returns the normalized config for entity.
func (e *Engine) Module(entity string) (model.ModuleConfig, error) {
	cfg, ok := e.store.Get(strings.TrimSpace(entity))
	if !ok {
		return model.ModuleConfig{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	return cfg, nil
}

// RegisterFormat adds a custom value format.
func (e *Engine) RegisterFormat(name string, fn format.Func) error {
	return e.formatter.Register(name, fn)
}

// RegisterCell adds a custom table cell callback.
func (e *Engine) RegisterCell(name string, fn table.CellFunc) error {
	return e.tables.RegisterCell(name, fn)
}

// RegisterOptions adds a form options callback.
func (e *Engine) RegisterOptions(name string, fn form.OptionsFunc) error {
	return e.forms.RegisterOptions(name, fn)
}

// RegisterSpecial adds a callback for a special detail section.
func (e *Engine) RegisterSpecial(entity, templateName string, fn detail.SpecialFunc) error {
	return e.specials.Register(entity, templateName, fn)
}

// Request carries the per-request inputs of a render.
type Request struct {
	// Locale overrides the engine default.
	Locale string

	// Gate decides gated content. Nil hides it unless the engine or the
	// request is permissive.
	Gate       render.PermissionGate
	Permissive bool

	// ThemeName and ThemeVariant pick a theme through the configured
	// selector. Both empty keep the engine palette.
	ThemeName    string
	ThemeVariant string
}

// NewContext builds the render.Context for one request. A logger attached to
// ctx with zerolog's WithContext wins over the engine logger.
func (e *Engine) NewContext(ctx context.Context, req Request) *render.Context {
	rc := render.NewContext()
	rc.Locale = e.locale
	if req.Locale != "" {
		rc.Locale = render.CanonicalLocale(req.Locale)
	}
	rc.Translator = e.translator
	rc.OnMissing = e.onMissing
	rc.Gate = req.Gate
	rc.Permissive = e.permissive || req.Permissive
	if e.evaluator != nil {
		rc.Evaluator = e.evaluator
	}
	rc.Logger = e.logger
	rc.WithLogger(ctx)
	rc.Palette = e.paletteFor(rc, req)
	return rc
}

func (e *Engine) paletteFor(rc *render.Context, req Request) render.Palette {
	if e.selector == nil || (req.ThemeName == "" && req.ThemeVariant == "") {
		return e.palette
	}
	name := req.ThemeName
	if name == "" {
		name = e.themeName
	}
	selection, err := e.selector.Select(name, req.ThemeVariant)
	if err != nil {
		rc.Log().Warn().Err(err).Str("theme", name).Str("variant", req.ThemeVariant).Msg("theme selection failed")
		return e.palette
	}
	return e.palette.Merge(render.PaletteFromSelection(selection))
}

// RenderTable renders the list table for entity.
func (e *Engine) RenderTable(rc *render.Context, entity string, items []model.Item, opts table.Options) (string, error) {
	cfg, err := e.Module(entity)
	if err != nil {
		return "", err
	}
	return e.tables.Render(rc, cfg, items, opts), nil
}

// RenderDetail renders the full detail sidebar.
func (e *Engine) RenderDetail(rc *render.Context, entity string, item model.Item, related model.RelatedData) (string, error) {
	cfg, err := e.Module(entity)
	if err != nil {
		return "", err
	}
	return e.details.Render(rc, cfg, item, related), nil
}

// RenderDetailContent renders only the detail sections, for partial refresh.
func (e *Engine) RenderDetailContent(rc *render.Context, entity string, item model.Item, related model.RelatedData) (string, error) {
	cfg, err := e.Module(entity)
	if err != nil {
		return "", err
	}
	return e.details.RenderContent(rc, cfg, item, related), nil
}

// RenderHeaderBadges renders the detail header badges.
func (e *Engine) RenderHeaderBadges(rc *render.Context, entity string, item model.Item) (string, error) {
	cfg, err := e.Module(entity)
	if err != nil {
		return "", err
	}
	return e.details.RenderHeaderBadges(rc, cfg, item), nil
}

// RenderForm renders the create (nil item) or edit form.
func (e *Engine) RenderForm(rc *render.Context, entity string, item model.Item) (string, error) {
	cfg, err := e.Module(entity)
	if err != nil {
		return "", err
	}
	return e.forms.Render(rc, cfg, item), nil
}
