package render

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/goliatone/go-adminview/pkg/model"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_.]+)\}`)

// ExpandURL substitutes {field} placeholders in pattern with path-escaped
// values of item ("/visits/{id}/edit"). Placeholders for absent fields become
// empty.
func ExpandURL(pattern string, item model.Item) string {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return ""
	}
	return placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		return url.PathEscape(item.String(match[1 : len(match)-1]))
	})
}
