package format

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/goliatone/go-adminview/pkg/model"
)

// Default output layouts.
const (
	DefaultDateLayout     = "2. 1. 2006"
	DefaultDateTimeLayout = "2. 1. 2006 15:04"
	DefaultTimeLayout     = "15:04"
)

var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"15:04:05",
	"15:04",
	"2.1.2006 15:04",
	"2.1.2006",
	"2. 1. 2006",
}

// ParseTime reads time.Time values, Unix timestamps (seconds) and the common
// SQL/ISO string layouts. MySQL zero dates report zero=true.
func ParseTime(v any, loc *time.Location) (t time.Time, zero bool, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch typed := v.(type) {
	case time.Time:
		if typed.IsZero() {
			return time.Time{}, true, false
		}
		return typed.In(loc), false, true
	case *time.Time:
		if typed == nil || typed.IsZero() {
			return time.Time{}, true, false
		}
		return typed.In(loc), false, true
	case string:
		return parseTimeString(typed, loc)
	case json.Number:
		return parseTimeString(typed.String(), loc)
	case bool, nil:
		return time.Time{}, false, false
	}
	if f, isNum := model.Number(v); isNum {
		return time.Unix(int64(f), 0).In(loc), false, true
	}
	return time.Time{}, false, false
}

func parseTimeString(raw string, loc *time.Location) (time.Time, bool, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, true, false
	}
	if strings.HasPrefix(trimmed, "0000-00-00") {
		return time.Time{}, true, false
	}
	if isDigits(trimmed) {
		if f, ok := model.Number(trimmed); ok {
			return time.Unix(int64(f), 0).In(loc), false, true
		}
	}
	for _, layout := range inputLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return parsed.In(loc), false, true
		}
	}
	return time.Time{}, false, false
}

func isDigits(s string) bool {
	for i, r := range s {
		if r == '-' && i == 0 && len(s) > 1 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
