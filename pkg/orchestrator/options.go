package orchestrator

import (
	"fmt"

	"github.com/rs/zerolog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-adminview/pkg/settings"
	"github.com/goliatone/go-adminview/pkg/config"
	"github.com/goliatone/go-adminview/pkg/format"
	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/render/template"
	"github.com/goliatone/go-adminview/pkg/visibility"
)

// Option customises the engine configuration.
type Option func(*Engine)

// WithStore injects a preloaded module store.
func WithStore(store *config.Store) Option {
	return func(e *Engine) {
		if store != nil {
			e.store = store
		}
	}
}

// WithModules adds module configs to the engine store.
func WithModules(modules ...model.ModuleConfig) Option {
	return func(e *Engine) {
		e.pending = append(e.pending, modules...)
	}
}

// WithFormatterOptions configures the shared value formatter.
func WithFormatterOptions(opts ...format.Option) Option {
	return func(e *Engine) {
		e.formatterOpts = append(e.formatterOpts, opts...)
	}
}

// WithTranslator sets the translator handed to every request context.
func WithTranslator(t render.Translator) Option {
	return func(e *Engine) {
		e.translator = t
	}
}

// WithMissingTranslationHandler overrides the label shown for unknown keys.
func WithMissingTranslationHandler(handler render.MissingTranslationHandler) Option {
	return func(e *Engine) {
		e.onMissing = handler
	}
}

// WithDefaultLocale sets the locale used when a request omits one.
func WithDefaultLocale(locale string) Option {
	return func(e *Engine) {
		e.locale = render.CanonicalLocale(locale)
	}
}

// WithPermissivePermissions shows gated content when a request carries no
// permission gate. Intended for development.
func WithPermissivePermissions(enabled bool) Option {
	return func(e *Engine) {
		e.permissive = enabled
	}
}

// WithEvaluator replaces the condition evaluator.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(e *Engine) {
		e.evaluator = evaluator
	}
}

// WithPaletteTokens registers "<kind>.<color>" class tokens. Theme tokens
// resolved through a selector take precedence.
func WithPaletteTokens(tokens map[string]string) Option {
	return func(e *Engine) {
		e.palette = e.palette.Merge(render.NewPalette(tokens))
	}
}

// WithThemeSelector resolves palette tokens from a go-theme selector. name
// and variant are the defaults for requests that do not pick a theme.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(e *Engine) {
		e.selector = selector
		e.themeName = name
		e.themeVariant = variant
	}
}

// WithTemplates sets the engine used for file-backed special sections.
func WithTemplates(templates template.Renderer) Option {
	return func(e *Engine) {
		e.templates = templates
	}
}

// WithLogger sets the fallback logger for requests whose context.Context
// carries none.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSettings applies loaded engine settings.
func WithSettings(s *settings.Settings) Option {
	return func(e *Engine) {
		if s == nil {
			return
		}
		loc, err := s.Location()
		if err != nil {
			e.initialiseErr = fmt.Errorf("orchestrator: timezone %q: %w", s.Format.Timezone, err)
			return
		}
		e.formatterOpts = append(e.formatterOpts,
			format.WithLocation(loc),
			format.WithLayouts(s.Format.DateLayout, s.Format.DateTimeLayout, s.Format.TimeLayout),
			format.WithCurrency(s.Format.Currency, s.Format.CurrencyPosition),
		)
		if s.Render.Locale != "" {
			e.locale = render.CanonicalLocale(s.Render.Locale)
		}
		e.permissive = e.permissive || s.Render.PermissivePermissions
		e.palette = e.palette.Merge(render.NewPalette(s.PaletteTokens()))
		if e.themeName == "" {
			e.themeName = s.Theme.Name
		}
		if e.themeVariant == "" {
			e.themeVariant = s.Theme.Variant
		}
	}
}
