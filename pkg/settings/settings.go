// Package settings loads engine settings with koanf: embedded defaults, an
// optional TOML file, ADMINVIEW_* environment variables and explicit
// overrides, in that order.
package settings

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// levels: ADMINVIEW_RENDER__LOCALE sets render.locale.
const EnvPrefix = "ADMINVIEW_"

//go:embed defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]any, error) {
	return nil, errors.New("not implemented")
}

// Settings is the decoded configuration.
type Settings struct {
	Render Render `koanf:"render"`
	Format Format `koanf:"format"`
	Theme  Theme  `koanf:"theme"`
	Paths  Paths  `koanf:"paths"`
}

// Render configures request defaults.
type Render struct {
	Locale                string `koanf:"locale"`
	FallbackLocale        string `koanf:"fallback_locale"`
	PermissivePermissions bool   `koanf:"permissive_permissions"`
}

// Format configures the value formatter.
type Format struct {
	Timezone         string `koanf:"timezone"`
	DateLayout       string `koanf:"date_layout"`
	DateTimeLayout   string `koanf:"datetime_layout"`
	TimeLayout       string `koanf:"time_layout"`
	Currency         string `koanf:"currency"`
	CurrencyPosition string `koanf:"currency_position"`
}

// Theme selects the palette. Tokens map element kind -> colour -> classes,
// e.g. [theme.tokens.badge] info = "badge text-bg-info".
type Theme struct {
	Name    string                       `koanf:"name"`
	Variant string                       `koanf:"variant"`
	Tokens  map[string]map[string]string `koanf:"tokens"`
}

// Paths locates module configs, templates and message catalogs.
type Paths struct {
	Modules   string `koanf:"modules"`
	Templates string `koanf:"templates"`
	Messages  string `koanf:"messages"`
}

// Options controls Load.
type Options struct {
	// File is an optional TOML file. A missing file is an error only when
	// set explicitly.
	File string

	// Overrides are applied last, keyed by dotted path ("render.locale").
	Overrides map[string]any

	// SkipEnv disables environment overrides.
	SkipEnv bool
}

// Load builds Settings from the layered sources.
func Load(opts Options) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("settings: load defaults: %w", err)
	}

	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, fmt.Errorf("settings: config file: %w", err)
		}
		if err := k.Load(file.Provider(opts.File), toml.Parser()); err != nil {
			return nil, fmt.Errorf("settings: load %s: %w", opts.File, err)
		}
	}

	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("settings: load env: %w", err)
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("settings: load overrides: %w", err)
		}
	}

	var cfg Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("settings: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values other packages parse later.
func (s *Settings) Validate() error {
	var errs []error
	for name, locale := range map[string]string{"render.locale": s.Render.Locale, "render.fallback_locale": s.Render.FallbackLocale} {
		if locale == "" {
			continue
		}
		if _, err := language.Parse(strings.ReplaceAll(locale, "_", "-")); err != nil {
			errs = append(errs, fmt.Errorf("settings: %s %q: %w", name, locale, err))
		}
	}
	if _, err := s.Location(); err != nil {
		errs = append(errs, fmt.Errorf("settings: format.timezone %q: %w", s.Format.Timezone, err))
	}
	switch strings.ToLower(s.Format.CurrencyPosition) {
	case "", "before", "after":
	default:
		errs = append(errs, fmt.Errorf("settings: format.currency_position must be before or after, got %q", s.Format.CurrencyPosition))
	}
	return errors.Join(errs...)
}

// Location resolves the configured time zone.
func (s *Settings) Location() (*time.Location, error) {
	if strings.TrimSpace(s.Format.Timezone) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Format.Timezone)
}

// PaletteTokens flattens theme tokens into "kind.color" keys.
func (s *Settings) PaletteTokens() map[string]string {
	out := make(map[string]string)
	for kind, colors := range s.Theme.Tokens {
		for color, classes := range colors {
			out[kind+"."+color] = classes
		}
	}
	return out
}
