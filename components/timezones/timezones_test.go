package timezones

import (
	"strings"
	"testing"

	"github.com/goliatone/go-adminview/pkg/model"
)

func TestLoadZones_DedupesSortsAndIgnoresComments(t *testing.T) {
	input := strings.NewReader(`
# Comment
America/New_York
Europe/Paris
America/New_York

UTC
`)

	zones, err := LoadZones(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"America/New_York", "Europe/Paris", "UTC"}
	if strings.Join(zones, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected zones: %#v", zones)
	}
}

func TestDefaultZones_ContainsCommonEntries(t *testing.T) {
	zones, err := DefaultZones()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, expected := range []string{"America/New_York", "Europe/Prague", "UTC"} {
		found := false
		for _, zone := range zones {
			if zone == expected {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected zone %q to be present", expected)
		}
	}

	zones[0] = "mutated"
	again, _ := DefaultZones()
	if again[0] == "mutated" {
		t.Fatalf("DefaultZones must return a copy")
	}
}

func TestChoices_Regions(t *testing.T) {
	choices, err := Choices(
		WithZones([]string{"Europe/Prague", "America/New_York", "UTC"}),
		WithRegions("europe"),
	)
	if err != nil {
		t.Fatalf("choices: %v", err)
	}
	if len(choices) != 2 || choices[0].Value != "Europe/Prague" || choices[1].Value != "UTC" {
		t.Fatalf("unexpected choices %#v", choices)
	}
	if choices[0].Label != "Europe / Prague" {
		t.Fatalf("unexpected label %q", choices[0].Label)
	}
}

func TestCallback_KeepsStoredValue(t *testing.T) {
	cb := Callback(WithZones([]string{"Europe/Prague"}), WithLabel(strings.ToUpper))
	field := model.FormFieldConfig{Name: "timezone", Type: model.FieldSelect}

	got := cb(nil, field, model.Item{"timezone": "Europe/Prague"})
	if len(got) != 1 || got[0].Label != "EUROPE/PRAGUE" {
		t.Fatalf("unexpected options %#v", got)
	}

	got = cb(nil, field, model.Item{"timezone": "Europe/Kiev"})
	if len(got) != 2 || got[0].Value != "Europe/Kiev" {
		t.Fatalf("legacy value must be kept first, got %#v", got)
	}

	got = cb(nil, field, nil)
	if len(got) != 1 {
		t.Fatalf("create mode should offer the list only, got %#v", got)
	}
}
