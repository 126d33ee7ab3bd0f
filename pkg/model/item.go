package model

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Item is one record being rendered. Renderers never mutate it.
type Item map[string]any

// RelatedData holds named collections of items associated with the current
// item (e.g. the visitors of a visit).
type RelatedData map[string][]Item

// Lookup resolves a field by exact key first and then by dot-notation
// traversal through nested maps ("company.name").
func (i Item) Lookup(path string) (any, bool) {
	path = strings.TrimSpace(path)
	if len(i) == 0 || path == "" {
		return nil, false
	}
	if v, ok := i[path]; ok {
		return v, true
	}
	if !strings.Contains(path, ".") {
		return nil, false
	}

	var current any = map[string]any(i)
	for _, part := range strings.Split(path, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case Item:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

// Value returns the field value or nil when absent.
func (i Item) Value(path string) any {
	v, _ := i.Lookup(path)
	return v
}

// String returns the stringified field value ("" when absent).
func (i Item) String(path string) string {
	return Stringify(i.Value(path))
}

// ID returns the conventional identifier of the item.
func (i Item) ID() string {
	return i.String("id")
}

// Items returns the related collection stored under key.
func (r RelatedData) Items(key string) []Item {
	if r == nil {
		return nil
	}
	return r[strings.TrimSpace(key)]
}

// IsEmpty reports whether v counts as an empty value: nil, a blank string or an
// empty slice/array/map. false and 0 are not empty.
func IsEmpty(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case []byte:
		return len(strings.TrimSpace(string(typed))) == 0
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case []Item:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	case Item:
		return len(typed) == 0
	case json.Number:
		return typed.String() == ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsEmpty(rv.Elem().Interface())
	}
	return false
}

// Stringify renders a scalar the way map lookups and comparisons expect:
// booleans become "1"/"0", integral floats drop their fraction and slices are
// comma-joined.
func Stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
	case bool:
		if typed {
			return "1"
		}
		return "0"
	case json.Number:
		return typed.String()
	case float64:
		return formatFloat(typed)
	case float32:
		return formatFloat(float64(typed))
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case uint:
		return strconv.FormatUint(uint64(typed), 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case uint32:
		return strconv.FormatUint(uint64(typed), 10)
	case []any:
		parts := make([]string, 0, len(typed))
		for _, entry := range typed {
			if s := Stringify(entry); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(typed, ", ")
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Number coerces numeric values and numeric strings into a float64. NaN and
// infinities are not numbers here, whether typed or spelled as strings.
func Number(v any) (float64, bool) {
	f, ok := number(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func number(v any) (float64, bool) {
	switch typed := v.(type) {
	case nil:
		return 0, false
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	case bool:
		if typed {
			return 1, true
		}
		return 0, true
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Truthy mirrors the loose truthiness used by conditions and feature flags:
// "0", "false", "no" and "off" are false alongside empty values and zero.
func Truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "", "0", "false", "no", "off":
			return false
		}
		return true
	}
	if f, ok := Number(v); ok {
		return f != 0
	}
	return !IsEmpty(v)
}

// Count returns a count-like quantity: numbers as-is, collections by length.
func Count(v any) (int, bool) {
	if f, ok := Number(v); ok {
		if _, isBool := v.(bool); isBool {
			return 0, false
		}
		return int(f), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}
