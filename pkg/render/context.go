package render

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/visibility"
	"github.com/goliatone/go-adminview/pkg/visibility/expr"
)

// Context carries the per-request collaborators every renderer consults. It
// replaces process-wide translator state: build one per request and pass it
// to each render call. A nil *Context is valid and behaves as an anonymous
// request with no translator and no permissions.
type Context struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler

	// Gate decides gated content. When nil, gated content is hidden unless
	// Permissive is set.
	Gate       PermissionGate
	Permissive bool

	Evaluator visibility.Evaluator
	Palette   Palette
	Logger    zerolog.Logger
}

// NewContext returns a Context with a no-op logger and the shared condition
// evaluator.
func NewContext() *Context {
	return &Context{
		Evaluator: expr.Default(),
		Logger:    zerolog.Nop(),
	}
}

// WithLogger attaches the logger stored in ctx (zerolog.Ctx) when present.
func (c *Context) WithLogger(ctx context.Context) *Context {
	if c == nil || ctx == nil {
		return c
	}
	if logger := zerolog.Ctx(ctx); logger != nil && logger.GetLevel() != zerolog.Disabled {
		c.Logger = *logger
	}
	return c
}

// Log returns the request logger.
func (c *Context) Log() *zerolog.Logger {
	if c == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return &c.Logger
}

// T translates key, falling back to fallback (then the key itself).
func (c *Context) T(key, fallback string) string {
	if c == nil {
		return translate("", key, fallback, nil, nil)
	}
	return translate(c.Locale, key, fallback, c.Translator, c.OnMissing)
}

// Label resolves a display label: label_key through the translator, then the
// literal label, then the humanized field name.
func (c *Context) Label(labelKey, label, field string) string {
	if strings.TrimSpace(labelKey) != "" {
		fallback := label
		if strings.TrimSpace(fallback) == "" {
			fallback = model.HumanizeKey(field)
		}
		return c.T(labelKey, fallback)
	}
	if strings.TrimSpace(label) != "" {
		return label
	}
	return model.HumanizeKey(field)
}

// Allowed asks the gate about an action on a module.
func (c *Context) Allowed(action, module string) bool {
	if c == nil {
		return false
	}
	if c.Gate == nil {
		return c.Permissive
	}
	return c.Gate(action, module)
}

// Can checks an "action:module" permission string; a bare action applies to
// entity. An empty permission is always granted.
func (c *Context) Can(permission, entity string) bool {
	action, module := ParsePermission(permission, entity)
	if action == "" {
		return true
	}
	return c.Allowed(action, module)
}

// Visible evaluates a condition rule against item. Errors hide the element
// and are logged at debug level.
func (c *Context) Visible(rule string, item model.Item) bool {
	if strings.TrimSpace(rule) == "" {
		return true
	}
	var eval visibility.Evaluator = expr.Default()
	if c != nil && c.Evaluator != nil {
		eval = c.Evaluator
	}
	ok, err := visibility.Check(eval, rule, item)
	if err != nil {
		c.Log().Debug().Err(err).Str("condition", rule).Msg("condition evaluation failed")
		return false
	}
	return ok
}

// Colors returns the palette.
func (c *Context) Colors() Palette {
	if c == nil {
		return Palette{}
	}
	return c.Palette
}
