package render

import (
	"strings"

	"github.com/goliatone/go-adminview/pkg/model"
)

// TemplateFuncs exposes the request context to file-backed templates:
//
//	{{ t("visit.purpose", "Purpose") }}
//	{{ can("edit:visit") }}
//	{{ icon("calendar")|safe }}
//	{{ label("created_at") }}
func (c *Context) TemplateFuncs(entity string) map[string]any {
	return map[string]any{
		"t": func(key string, fallback ...string) string {
			return c.T(key, strings.Join(fallback, ""))
		},
		"can": func(permission string) bool {
			return c.Can(permission, entity)
		},
		"icon": Icon,
		"label": func(field string) string {
			return model.HumanizeKey(field)
		},
		"locale": func() string {
			if c == nil {
				return ""
			}
			return c.Locale
		},
	}
}
