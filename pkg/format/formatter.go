package format

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

// Sentinel is shown for empty values.
const Sentinel = "—"

// Func formats a value for a custom tag. The returned string is trusted
// markup.
type Func func(rc *render.Context, value any, row model.RowConfig) string

// Option configures a Formatter.
type Option func(*Formatter)

// WithLocation sets the zone dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		if loc != nil {
			f.location = loc
		}
	}
}

// WithLayouts overrides the output layouts; empty values keep the defaults.
func WithLayouts(date, dateTime, clock string) Option {
	return func(f *Formatter) {
		if strings.TrimSpace(date) != "" {
			f.dateLayout = date
		}
		if strings.TrimSpace(dateTime) != "" {
			f.dateTimeLayout = dateTime
		}
		if strings.TrimSpace(clock) != "" {
			f.timeLayout = clock
		}
	}
}

// WithCurrency sets the default currency symbol and position.
func WithCurrency(symbol, position string) Option {
	return func(f *Formatter) {
		if strings.TrimSpace(symbol) != "" {
			f.currency = strings.TrimSpace(symbol)
		}
		if strings.TrimSpace(position) != "" {
			f.currencyPosition = strings.TrimSpace(position)
		}
	}
}

// Formatter dispatches on model.ValueFormat. It is immutable after New
// except for the custom registry, which is safe for concurrent use.
type Formatter struct {
	location         *time.Location
	dateLayout       string
	dateTimeLayout   string
	timeLayout       string
	currency         string
	currencyPosition string

	custom *render.Registry[Func]
}

// New creates a Formatter with Czech-style defaults (UTC, "Kč" after the
// amount).
func New(opts ...Option) *Formatter {
	f := &Formatter{
		location:         time.UTC,
		dateLayout:       DefaultDateLayout,
		dateTimeLayout:   DefaultDateTimeLayout,
		timeLayout:       DefaultTimeLayout,
		currency:         "Kč",
		currencyPosition: "after",
		custom:           render.NewRegistry[Func]("format"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Register adds a custom format tag. Built-in tags cannot be replaced.
func (f *Formatter) Register(name string, fn Func) error {
	tag := model.ValueFormat(name).Normalized()
	if tag.Known() {
		return errBuiltin(tag)
	}
	return f.custom.Register(string(tag), fn)
}

// Format renders value for tag using the parameters on row.
func (f *Formatter) Format(rc *render.Context, value any, tag model.ValueFormat, row model.RowConfig) string {
	tag = tag.Normalized()
	if !tag.Known() {
		if fn, ok := f.custom.Lookup(string(tag)); ok && fn != nil {
			return fn(rc, value, row)
		}
		rc.Log().Debug().Str("format", string(tag)).Msg("unknown format, rendering as text")
		tag = model.FormatText
	}

	switch tag {
	case model.FormatText:
		return render.Escape(model.Stringify(value))
	case model.FormatHTML:
		return render.SanitizeHTML(model.Stringify(value))
	}

	if model.IsEmpty(value) {
		return Sentinel
	}

	switch tag {
	case model.FormatDate:
		return f.dateValue(value, f.layout(row, f.dateLayout))
	case model.FormatDateTime:
		return f.dateValue(value, f.layout(row, f.dateTimeLayout))
	case model.FormatTime:
		return f.dateValue(value, f.layout(row, f.timeLayout))
	case model.FormatPhone:
		return phoneLink(model.Stringify(value))
	case model.FormatEmail:
		return emailLink(model.Stringify(value))
	case model.FormatURL:
		return urlLink(model.Stringify(value), row.LinkText)
	case model.FormatBadge:
		return MappedPill(rc, row.Map, value)
	case model.FormatBoolean:
		return booleanValue(rc, value)
	case model.FormatNumber:
		d, ok := Decimal(value)
		if !ok {
			return render.Escape(model.Stringify(value))
		}
		return Number(d, defaultDecimals(d, row.Decimals, 2))
	case model.FormatCurrency:
		d, ok := Decimal(value)
		if !ok {
			return render.Escape(model.Stringify(value))
		}
		symbol, position := f.currency, f.currencyPosition
		if row.Currency != "" {
			symbol = row.Currency
		}
		if row.CurrencyPosition != "" {
			position = row.CurrencyPosition
		}
		return render.Escape(Currency(d, defaultDecimals(d, row.Decimals, 2), symbol, position))
	case model.FormatPercent:
		d, ok := Decimal(value)
		if !ok {
			return render.Escape(model.Stringify(value))
		}
		return Percent(d, row.IsDecimal, row.Decimals)
	case model.FormatImage:
		return imageTag(model.Stringify(value))
	case model.FormatCode:
		return `<code class="av-code">` + render.Escape(model.Stringify(value)) + `</code>`
	case model.FormatColor:
		return colorSwatch(model.Stringify(value))
	}
	return render.Escape(model.Stringify(value))
}

// Value formats the row's field of item; shorthand used by row and cell
// renderers.
func (f *Formatter) Value(rc *render.Context, item model.Item, row model.RowConfig) string {
	return f.Format(rc, item.Value(row.Field), row.Format, row)
}

// Date exposes date formatting for renderers that need a bare date (timeline,
// metadata). Unparsable input is returned escaped.
func (f *Formatter) Date(value any, withTime bool) string {
	if model.IsEmpty(value) {
		return Sentinel
	}
	layout := f.dateLayout
	if withTime {
		layout = f.dateTimeLayout
	}
	return f.dateValue(value, layout)
}

// InputValue converts a stored date/time into the value format HTML inputs
// expect ("2006-01-02", "2006-01-02T15:04", "15:04"). ok is false when the
// value cannot be parsed.
func (f *Formatter) InputValue(value any, inputType model.FieldType) (string, bool) {
	t, _, ok := ParseTime(value, f.location)
	if !ok {
		return "", false
	}
	switch inputType {
	case model.FieldDate:
		return t.Format("2006-01-02"), true
	case model.FieldDateTimeLocal:
		return t.Format("2006-01-02T15:04"), true
	case model.FieldTime:
		return t.Format("15:04"), true
	}
	return "", false
}

func (f *Formatter) layout(row model.RowConfig, fallback string) string {
	if strings.TrimSpace(row.DateFormat) != "" {
		return row.DateFormat
	}
	return fallback
}

func (f *Formatter) dateValue(value any, layout string) string {
	t, zero, ok := ParseTime(value, f.location)
	if zero {
		return Sentinel
	}
	if !ok {
		return render.Escape(model.Stringify(value))
	}
	return render.Escape(t.Format(layout))
}

func phoneLink(raw string) string {
	var digits strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return render.Escape(raw)
	}
	return `<a href="tel:` + render.Escape(digits.String()) + `" class="av-link">` + render.Escape(raw) + `</a>`
}

func emailLink(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, "@") || strings.ContainsAny(trimmed, " <>\"") {
		return render.Escape(raw)
	}
	return `<a href="mailto:` + render.Escape(trimmed) + `" class="av-link">` + render.Escape(trimmed) + `</a>`
}

func urlLink(raw, linkText string) string {
	href := safeURL(raw)
	if href == "" {
		return render.Escape(raw)
	}
	label := strings.TrimSpace(linkText)
	if label == "" {
		if parsed, err := url.Parse(href); err == nil && parsed.Host != "" {
			label = parsed.Host
		} else {
			label = strings.TrimSpace(raw)
		}
	}
	return `<a href="` + render.Escape(href) + `" class="av-link" target="_blank" rel="noopener noreferrer">` + render.Escape(label) + `</a>`
}

// safeURL adds https:// to scheme-less values and rejects anything that is
// not http(s). Root-relative paths are kept.
func safeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return ""
	case strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "//"):
		return trimmed
	case strings.HasPrefix(trimmed, "//"):
		trimmed = "https:" + trimmed
	case !hasHTTPScheme(trimmed):
		// "javascript:..." and friends; "host.tld:8080" is still allowed.
		if colon := strings.Index(trimmed, ":"); colon >= 0 {
			if dot := strings.Index(trimmed, "."); dot < 0 || colon < dot {
				return ""
			}
		}
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ""
	}
	return parsed.String()
}

func hasHTTPScheme(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// imageSource accepts http(s) URLs and relative paths.
func imageSource(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if hasHTTPScheme(trimmed) || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/") {
		return safeURL(trimmed)
	}
	if trimmed == "" || strings.Contains(trimmed, ":") {
		return ""
	}
	return trimmed
}

func imageTag(raw string) string {
	src := imageSource(raw)
	if src == "" {
		return render.Escape(raw)
	}
	return `<img src="` + render.Escape(src) + `" alt="" class="av-thumb" loading="lazy">`
}

// ImageSource is exported for renderers building thumbnails.
func ImageSource(raw string) string { return imageSource(raw) }

func booleanValue(rc *render.Context, value any) string {
	if model.Truthy(value) {
		return `<span class="av-bool av-bool--yes">` + render.Icon("check") + render.Escape(rc.T("adminview.yes", "Yes")) + `</span>`
	}
	return `<span class="av-bool av-bool--no">` + render.Icon("x") + render.Escape(rc.T("adminview.no", "No")) + `</span>`
}

var (
	hexColor  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColor = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\(\s*[0-9.,%\s/]+\)$`)
	nameColor = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
)

// ValidColor reports whether raw is a CSS colour safe to put in a style
// attribute.
func ValidColor(raw string) bool {
	raw = strings.TrimSpace(raw)
	return hexColor.MatchString(raw) || funcColor.MatchString(raw) || nameColor.MatchString(raw)
}

func colorSwatch(raw string) string {
	color := strings.TrimSpace(raw)
	if !ValidColor(color) {
		return render.Escape(raw)
	}
	return `<span class="av-color"><span class="av-color__swatch" style="background-color: ` + render.Escape(color) + `"></span><code>` + render.Escape(color) + `</code></span>`
}
