package detail

import (
	"strings"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

// SpecialFunc renders the body of a special section.
type SpecialFunc func(rc *render.Context, section model.SectionConfig, item model.Item, related model.RelatedData) (string, error)

// Specials keys special-section callbacks by entity and template name.
type Specials struct {
	registry *render.Registry[SpecialFunc]
}

// NewSpecials returns an empty callback registry.
func NewSpecials() *Specials {
	return &Specials{registry: render.NewRegistry[SpecialFunc]("special section")}
}

// Register adds the callback for entity's template. Registering the same pair
// twice is an error.
func (s *Specials) Register(entity, template string, fn SpecialFunc) error {
	return s.registry.Register(SpecialKey(entity, template), fn)
}

// Lookup returns the callback registered for the pair.
func (s *Specials) Lookup(entity, template string) (SpecialFunc, bool) {
	if s == nil {
		return nil, false
	}
	fn, ok := s.registry.Lookup(SpecialKey(entity, template))
	return fn, ok && fn != nil
}

// SpecialKey is the "<entity>/<template>" name shared by the callback
// registry, template lookup and the not-found notice.
func SpecialKey(entity, template string) string {
	return strings.Trim(strings.TrimSpace(entity), "/") + "/" + strings.Trim(strings.TrimSpace(template), "/")
}
