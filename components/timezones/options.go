package timezones

import (
	"strings"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
	"github.com/goliatone/go-adminview/pkg/renderers/form"
)

// CallbackName is the options_callback name the engine registers by default.
const CallbackName = "timezones"

// Options configures the callback.
type Options struct {
	Zones   []string
	Regions []string
	Label   func(zone string) string
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// WithZones replaces the embedded list.
func WithZones(zones []string) OptionFn {
	return func(o *Options) { o.Zones = append([]string(nil), zones...) }
}

// WithRegions limits the offered zones to the given top-level regions
// ("Europe", "America"). UTC is always offered.
func WithRegions(regions ...string) OptionFn {
	return func(o *Options) { o.Regions = append(o.Regions, regions...) }
}

// WithLabel overrides the display label.
func WithLabel(fn func(zone string) string) OptionFn {
	return func(o *Options) {
		if fn != nil {
			o.Label = fn
		}
	}
}

// Choices returns the configured zones as select options.
func Choices(fns ...OptionFn) (model.Options, error) {
	opts := Options{Label: Label}
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	zones := opts.Zones
	if zones == nil {
		var err error
		if zones, err = DefaultZones(); err != nil {
			return nil, err
		}
	}

	out := make(model.Options, 0, len(zones))
	for _, zone := range zones {
		if !inRegions(zone, opts.Regions) {
			continue
		}
		out = append(out, model.Option{Value: zone, Label: opts.Label(zone)})
	}
	return out, nil
}

// Callback returns a form options callback offering the zone list. A value
// already stored on the item that is missing from the list is kept as the
// first choice so editing never drops it.
func Callback(fns ...OptionFn) form.OptionsFunc {
	return func(rc *render.Context, field model.FormFieldConfig, item model.Item) model.Options {
		choices, err := Choices(fns...)
		if err != nil {
			rc.Log().Warn().Err(err).Str("field", field.Name).Msg("timezone list unavailable")
		}
		current := strings.TrimSpace(item.String(field.Name))
		if current == "" || choices.Label(current) != "" {
			return choices
		}
		return append(model.Options{{Value: current, Label: current}}, choices...)
	}
}

func inRegions(zone string, regions []string) bool {
	if len(regions) == 0 || zone == "UTC" {
		return true
	}
	region, _, _ := strings.Cut(zone, "/")
	for _, candidate := range regions {
		if strings.EqualFold(strings.TrimSpace(candidate), region) {
			return true
		}
	}
	return false
}
