package expr

import (
	"testing"

	"github.com/goliatone/go-adminview/pkg/model"
)

func TestEvaluatorFieldReferenceForms(t *testing.T) {
	t.Parallel()

	item := model.Item{
		"status":  "confirmed",
		"company": map[string]any{"name": "Acme"},
	}
	rules := []string{
		`item['status'] == 'confirmed'`,
		`item["status"] == "confirmed"`,
		`$item['status'] == 'confirmed'`,
		`item.status == "confirmed"`,
		`status == "confirmed"`,
		`item['company']['name'] == "Acme"`,
		`item.company.name === 'Acme'`,
		`company.name !== 'Other'`,
	}

	eval := New()
	for _, rule := range rules {
		ok, err := eval.Eval(rule, item)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", rule, err)
		}
		if !ok {
			t.Fatalf("Eval(%q) expected true", rule)
		}
	}
}

func TestEvaluatorTruthyAndNot(t *testing.T) {
	t.Parallel()

	eval := New()
	cases := []struct {
		rule string
		item model.Item
		want bool
	}{
		{rule: "item['active']", item: model.Item{"active": true}, want: true},
		{rule: "item['active']", item: model.Item{"active": "0"}, want: false},
		{rule: "!item['active']", item: model.Item{"active": false}, want: true},
		{rule: "!item['missing']", item: model.Item{}, want: true},
		{rule: "item['count']", item: model.Item{"count": 0}, want: false},
		{rule: "item['tags']", item: model.Item{"tags": []any{"a"}}, want: true},
		{rule: "item['tags']", item: model.Item{"tags": []any{}}, want: false},
	}
	for _, tc := range cases {
		got, err := eval.Eval(tc.rule, tc.item)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", tc.rule, err)
		}
		if got != tc.want {
			t.Fatalf("Eval(%q) with %v = %v, want %v", tc.rule, tc.item, got, tc.want)
		}
	}
}

func TestEvaluatorLooseComparison(t *testing.T) {
	t.Parallel()

	eval := New()
	cases := []struct {
		rule string
		item model.Item
		want bool
	}{
		{rule: "item['count'] == 3", item: model.Item{"count": "3"}, want: true},
		{rule: "item['count'] == '3'", item: model.Item{"count": 3.0}, want: true},
		{rule: "item['count'] != 3", item: model.Item{"count": 4}, want: true},
		{rule: "item['enabled'] == true", item: model.Item{"enabled": "1"}, want: true},
		{rule: "item['enabled'] == false", item: model.Item{"enabled": 0}, want: true},
		{rule: "item['missing'] == null", item: model.Item{}, want: true},
		{rule: "item['name'] == null", item: model.Item{"name": ""}, want: true},
		{rule: "item['name'] == null", item: model.Item{"name": "x"}, want: false},
		{rule: "item['note'] != ''", item: model.Item{}, want: false},
		{rule: "item['flag'] == false", item: model.Item{}, want: true},
		{rule: "item['count'] == 0", item: model.Item{}, want: false},
		{rule: "item['name'] == 'inf'", item: model.Item{"name": "Infinity"}, want: false},
		{rule: "item['name'] == 'NaN'", item: model.Item{"name": "NaN"}, want: true},
		{rule: "item['name'] != 'NaN'", item: model.Item{"name": "NaN"}, want: false},
		{rule: "item['ratio'] == '1e3'", item: model.Item{"ratio": 1000}, want: true},
		{rule: "item['name'] != nil", item: model.Item{"name": "x"}, want: true},
		{rule: "item['a'] == item['b']", item: model.Item{"a": "x", "b": "x"}, want: true},
	}
	for _, tc := range cases {
		got, err := eval.Eval(tc.rule, tc.item)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", tc.rule, err)
		}
		if got != tc.want {
			t.Fatalf("Eval(%q) with %v = %v, want %v", tc.rule, tc.item, got, tc.want)
		}
	}
}

func TestEvaluatorPrecedenceAndGrouping(t *testing.T) {
	t.Parallel()

	eval := New()
	item := model.Item{"a": true, "b": false, "c": true}

	cases := map[string]bool{
		"item['a'] || item['b'] && item['b']":   true,
		"(item['a'] || item['b']) && item['b']": false,
		"!(item['a'] && item['c'])":             false,
		"!item['b'] && item['c']":               true,
	}
	for rule, want := range cases {
		got, err := eval.Eval(rule, item)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", rule, err)
		}
		if got != want {
			t.Fatalf("Eval(%q) = %v, want %v", rule, got, want)
		}
	}
}

func TestEvaluatorTreatsFieldValuesAsOpaque(t *testing.T) {
	t.Parallel()

	eval := New()
	item := model.Item{"note": "1); DROP TABLE x; //"}

	ok, err := eval.Eval(`item['note'] == "1); DROP TABLE x; //"`, item)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected value to compare equal as an opaque string")
	}

	ok, err = eval.Eval(`item['note'] == 1`, item)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected value not to be interpreted as the number 1")
	}

	ok, err = eval.Eval(`item['note']`, item)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected non-empty string to be truthy")
	}
}

func TestEvaluatorRejectsMalformedRules(t *testing.T) {
	t.Parallel()

	eval := New()
	rules := []string{
		"item['a'] = 1",
		"item['a'] & item['b']",
		"(item['a']",
		"item['a'] ==",
		"'unterminated",
		"item[a]",
		"$other['a']",
		"item['a'] == 1; exit()",
	}
	for _, rule := range rules {
		if _, err := eval.Eval(rule, model.Item{"a": 1}); err == nil {
			t.Fatalf("Eval(%q) expected error", rule)
		}
	}
}

func TestEvaluatorCachesPrograms(t *testing.T) {
	t.Parallel()

	eval := New()
	first, err := eval.Compile(" item['a'] == 1 ")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	second, err := eval.Compile("item['a'] == 1")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if first != second {
		t.Fatalf("expected cached program to be reused")
	}

	empty, err := eval.Compile("   ")
	if err != nil || empty != nil {
		t.Fatalf("expected empty rule to compile to nil, got %v, %v", empty, err)
	}
	if ok, _ := eval.Eval("", model.Item{}); !ok {
		t.Fatalf("expected empty rule to be visible")
	}
}
