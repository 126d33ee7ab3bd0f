package format

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestPluralBoundaries(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		-1: "many", 0: "many", 1: "one", 2: "few", 3: "few", 4: "few", 5: "many", 11: "many", 22: "many",
	}
	for n, want := range cases {
		if got := Plural(n, "one", "few", "many"); got != want {
			t.Fatalf("Plural(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestEmptyValuesUseSentinel(t *testing.T) {
	t.Parallel()

	f := New()
	for _, tag := range model.ValueFormats() {
		for _, empty := range []any{nil, "", []any{}} {
			got := f.Format(nil, empty, tag, model.RowConfig{})
			want := Sentinel
			if tag == model.FormatText || tag == model.FormatHTML {
				want = ""
			}
			if got != want {
				t.Fatalf("Format(%#v, %s) = %q, want %q", empty, tag, got, want)
			}
		}
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	f := New()
	cases := []struct {
		value any
		row   model.RowConfig
		want  string
	}{
		{value: 0.5, want: "50 %"},
		{value: 50, row: model.RowConfig{FormatParams: model.FormatParams{IsDecimal: boolPtr(false)}}, want: "50 %"},
		{value: 50, want: "50 %"},
		{value: 1, want: "1 %"},
		{value: 0.07, want: "7 %"},
		{value: 0.125, want: "12,5 %"},
		{value: "0,25", want: "25 %"},
		{value: 1, row: model.RowConfig{FormatParams: model.FormatParams{IsDecimal: boolPtr(true)}}, want: "100 %"},
		{value: 33.333, row: model.RowConfig{FormatParams: model.FormatParams{Decimals: intPtr(2)}}, want: "33,33 %"},
	}
	for _, tc := range cases {
		if got := f.Format(nil, tc.value, model.FormatPercent, tc.row); got != tc.want {
			t.Fatalf("percent %v = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestNumberAndCurrency(t *testing.T) {
	t.Parallel()

	f := New()
	if got := f.Format(nil, 1234567.891, model.FormatNumber, model.RowConfig{}); got != "1 234 567,89" {
		t.Fatalf("unexpected number %q", got)
	}
	if got := f.Format(nil, "1200", model.FormatNumber, model.RowConfig{}); got != "1 200" {
		t.Fatalf("unexpected integral number %q", got)
	}
	if got := f.Format(nil, -2.5, model.FormatNumber, model.RowConfig{FormatParams: model.FormatParams{Decimals: intPtr(0)}}); got != "-3" {
		t.Fatalf("expected half away from zero, got %q", got)
	}
	if got := f.Format(nil, 1500, model.FormatCurrency, model.RowConfig{}); got != "1 500 Kč" {
		t.Fatalf("unexpected currency %q", got)
	}
	row := model.RowConfig{FormatParams: model.FormatParams{Currency: "€", CurrencyPosition: "before", Decimals: intPtr(2)}}
	if got := f.Format(nil, 99.5, model.FormatCurrency, row); got != "€99,50" {
		t.Fatalf("unexpected prefixed currency %q", got)
	}
	if got := f.Format(nil, "n/a", model.FormatNumber, model.RowConfig{}); got != "n/a" {
		t.Fatalf("expected verbatim non-number, got %q", got)
	}
	if got := Number(decimal.RequireFromString("-0.001"), 2); got != "0,00" {
		t.Fatalf("expected negative zero without sign, got %q", got)
	}
}

func TestNumberRejectsNonFinite(t *testing.T) {
	t.Parallel()

	f := New()
	values := map[string]any{"NaN": math.NaN(), "+Inf": math.Inf(1), "-Inf": float32(math.Inf(-1))}
	tags := []model.ValueFormat{model.FormatNumber, model.FormatCurrency, model.FormatPercent}
	for want, value := range values {
		if _, ok := Decimal(value); ok {
			t.Fatalf("Decimal(%v) should reject non-finite values", value)
		}
		for _, tag := range tags {
			if got := f.Format(nil, value, tag, model.RowConfig{}); got != want {
				t.Fatalf("Format(%v, %s) = %q, want %q", value, tag, got, want)
			}
		}
	}
}

func TestDates(t *testing.T) {
	t.Parallel()

	f := New()
	cases := []struct {
		value any
		tag   model.ValueFormat
		want  string
	}{
		{value: "2024-03-05", tag: model.FormatDate, want: "5. 3. 2024"},
		{value: "2024-03-05 14:07:00", tag: model.FormatDateTime, want: "5. 3. 2024 14:07"},
		{value: "14:07:33", tag: model.FormatTime, want: "14:07"},
		{value: int64(0), tag: model.FormatDate, want: "1. 1. 1970"},
		{value: "1709647620", tag: model.FormatDateTime, want: "5. 3. 2024 14:07"},
		{value: time.Date(2024, 12, 24, 8, 0, 0, 0, time.UTC), tag: model.FormatDate, want: "24. 12. 2024"},
		{value: "0000-00-00 00:00:00", tag: model.FormatDate, want: Sentinel},
		{value: "next tuesday", tag: model.FormatDate, want: "next tuesday"},
		{value: "<b>soon</b>", tag: model.FormatDate, want: "&lt;b&gt;soon&lt;/b&gt;"},
	}
	for _, tc := range cases {
		if got := f.Format(nil, tc.value, tc.tag, model.RowConfig{}); got != tc.want {
			t.Fatalf("Format(%v, %s) = %q, want %q", tc.value, tc.tag, got, tc.want)
		}
	}

	custom := model.RowConfig{FormatParams: model.FormatParams{DateFormat: "2006/01/02"}}
	if got := f.Format(nil, "2024-03-05", model.FormatDate, custom); got != "2024/03/05" {
		t.Fatalf("unexpected custom layout %q", got)
	}

	prague, err := time.LoadLocation("Europe/Prague")
	if err == nil {
		local := New(WithLocation(prague))
		if got := local.Format(nil, "2024-03-05T12:00:00Z", model.FormatDateTime, model.RowConfig{}); got != "5. 3. 2024 13:00" {
			t.Fatalf("expected zone conversion, got %q", got)
		}
	}

	if got, ok := f.InputValue("2024-03-05 14:07:00", model.FieldDateTimeLocal); !ok || got != "2024-03-05T14:07" {
		t.Fatalf("unexpected input value %q %v", got, ok)
	}
}

func TestLinks(t *testing.T) {
	t.Parallel()

	f := New()
	cases := []struct {
		value any
		tag   model.ValueFormat
		row   model.RowConfig
		want  string
	}{
		{value: "+420 777 123 456", tag: model.FormatPhone, want: `<a href="tel:+420777123456" class="av-link">+420 777 123 456</a>`},
		{value: "ada@example.com", tag: model.FormatEmail, want: `<a href="mailto:ada@example.com" class="av-link">ada@example.com</a>`},
		{value: "example.com/about", tag: model.FormatURL, want: `<a href="https://example.com/about" class="av-link" target="_blank" rel="noopener noreferrer">example.com</a>`},
		{value: "https://acme.cz", tag: model.FormatURL, row: model.RowConfig{FormatParams: model.FormatParams{LinkText: "Web"}}, want: `<a href="https://acme.cz" class="av-link" target="_blank" rel="noopener noreferrer">Web</a>`},
		{value: "javascript:alert(1)", tag: model.FormatURL, want: `javascript:alert(1)`},
		{value: "not an email", tag: model.FormatEmail, want: "not an email"},
	}
	for _, tc := range cases {
		if got := f.Format(nil, tc.value, tc.tag, tc.row); got != tc.want {
			t.Fatalf("Format(%v, %s) =\n%q\nwant\n%q", tc.value, tc.tag, got, tc.want)
		}
	}
}

func TestBadgeFormat(t *testing.T) {
	t.Parallel()

	f := New()
	row := model.RowConfig{FormatParams: model.FormatParams{Map: map[string]model.MapEntry{
		"confirmed": {Label: "Confirmed", Color: "info"},
		"1":         {LabelKey: "state.on", Color: "success", Icon: "check"},
	}}}

	if got := f.Format(nil, "confirmed", model.FormatBadge, row); got != `<span class="av-badge av-badge--info">Confirmed</span>` {
		t.Fatalf("unexpected mapped badge %q", got)
	}
	if got := f.Format(nil, "pending", model.FormatBadge, row); got != `<span class="av-badge av-badge--secondary">pending</span>` {
		t.Fatalf("unexpected neutral badge %q", got)
	}

	catalog := render.NewCatalog("cs")
	catalog.Add("cs", map[string]string{"state.on": "Zapnuto"})
	rc := render.NewContext()
	rc.Translator = catalog
	got := f.Format(rc, true, model.FormatBadge, row)
	if !strings.Contains(got, "Zapnuto") || !strings.Contains(got, "av-icon-check") {
		t.Fatalf("expected translated label with icon, got %q", got)
	}
}

func TestMiscFormats(t *testing.T) {
	t.Parallel()

	f := New()
	if got := f.Format(nil, "<b>x</b>", model.FormatText, model.RowConfig{}); got != "&lt;b&gt;x&lt;/b&gt;" {
		t.Fatalf("text must be escaped, got %q", got)
	}
	if got := f.Format(nil, `<p>ok<script>x</script></p>`, model.FormatHTML, model.RowConfig{}); got != "<p>ok</p>" {
		t.Fatalf("html must be sanitized, got %q", got)
	}
	if got := f.Format(nil, "#ff0000", model.FormatColor, model.RowConfig{}); !strings.Contains(got, `background-color: #ff0000`) {
		t.Fatalf("unexpected colour %q", got)
	}
	if got := f.Format(nil, "red;background:url(x)", model.FormatColor, model.RowConfig{}); strings.Contains(got, "style=") {
		t.Fatalf("invalid colour must not reach style attribute: %q", got)
	}
	if got := f.Format(nil, "/uploads/a.png", model.FormatImage, model.RowConfig{}); got != `<img src="/uploads/a.png" alt="" class="av-thumb" loading="lazy">` {
		t.Fatalf("unexpected image %q", got)
	}
	if got := f.Format(nil, "ABC-1", model.FormatCode, model.RowConfig{}); got != `<code class="av-code">ABC-1</code>` {
		t.Fatalf("unexpected code %q", got)
	}
	if got := f.Format(nil, "0", model.FormatBoolean, model.RowConfig{}); !strings.Contains(got, "av-bool--no") {
		t.Fatalf("unexpected boolean %q", got)
	}
	if got := f.Format(nil, "fine", "sparkles", model.RowConfig{}); got != "fine" {
		t.Fatalf("unknown tag should render as text, got %q", got)
	}
}

func TestCustomFormats(t *testing.T) {
	t.Parallel()

	f := New()
	if err := f.Register("upper", func(_ *render.Context, value any, _ model.RowConfig) string {
		return strings.ToUpper(model.Stringify(value))
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := f.Register("date", nil); err == nil {
		t.Fatalf("expected built-in tag to be rejected")
	}
	if got := f.Format(nil, "abc", "UPPER", model.RowConfig{}); got != "ABC" {
		t.Fatalf("unexpected custom output %q", got)
	}
}
