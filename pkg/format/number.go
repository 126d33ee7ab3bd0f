package format

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-adminview/pkg/model"
)

const (
	decimalSeparator   = ","
	thousandsSeparator = " "
)

// Decimal coerces numbers and numeric strings. Strings keep their exact
// decimal representation; "12,5" is accepted as 12.5. NaN and infinities
// are rejected so callers render the raw value.
func Decimal(v any) (decimal.Decimal, bool) {
	switch typed := v.(type) {
	case nil, bool:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return typed, true
	case json.Number:
		d, err := decimal.NewFromString(typed.String())
		return d, err == nil
	case string:
		trimmed := strings.ReplaceAll(strings.TrimSpace(typed), " ", "")
		if trimmed == "" {
			return decimal.Decimal{}, false
		}
		if strings.Contains(trimmed, ",") && !strings.Contains(trimmed, ".") {
			trimmed = strings.Replace(trimmed, ",", ".", 1)
		}
		d, err := decimal.NewFromString(trimmed)
		return d, err == nil
	}
	f, ok := model.Number(v)
	if !ok {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(f), true
}

// Number renders d with comma decimals and space-grouped thousands. Rounding
// is half away from zero.
func Number(d decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	fixed := d.Round(int32(decimals)).StringFixed(int32(decimals))

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative && strings.Trim(intPart+fracPart, "0") != "" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSeparator)
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteString(decimalSeparator)
		b.WriteString(fracPart)
	}
	return b.String()
}

// defaultDecimals keeps integers whole and shows other values with places.
func defaultDecimals(d decimal.Decimal, explicit *int, places int) int {
	if explicit != nil {
		return *explicit
	}
	if d.IsInteger() {
		return 0
	}
	return places
}

// Currency renders d with symbol after ("1 200 Kč") or before ("$1 200").
func Currency(d decimal.Decimal, decimals int, symbol, position string) string {
	number := Number(d, decimals)
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return number
	}
	if strings.EqualFold(strings.TrimSpace(position), "before") {
		return symbol + number
	}
	return number + " " + symbol
}

// Percent renders a percentage. A value is treated as a fraction when
// isDecimal says so or, when unset, when 0 < |v| < 1.
func Percent(d decimal.Decimal, isDecimal *bool, decimals *int) string {
	fraction := false
	if isDecimal != nil {
		fraction = *isDecimal
	} else {
		abs := d.Abs()
		fraction = abs.IsPositive() && abs.LessThan(decimal.NewFromInt(1))
	}
	if fraction {
		d = d.Mul(decimal.NewFromInt(100))
	}
	return Number(d, defaultDecimals(d, decimals, 1)) + " %"
}
