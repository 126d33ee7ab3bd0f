package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/itchyny/gojq"

	"github.com/goliatone/go-adminview/pkg/model"
)

// readJSON decodes path and, when query is set, runs it through gojq.
// Multiple query results are collected into a list.
func readJSON(ctx context.Context, path, query string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: read %s: %w", path, err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("cli: decode %s: %w", path, err)
	}
	if query == "" {
		return payload, nil
	}
	return runQuery(ctx, query, payload)
}

func runQuery(ctx context.Context, src string, payload any) (any, error) {
	query, err := gojq.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("cli: parse query %q: %w", src, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("cli: compile query %q: %w", src, err)
	}

	var results []any
	iter := code.RunWithContext(ctx, payload)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}
			return nil, fmt.Errorf("cli: run query %q: %w", src, err)
		}
		results = append(results, v)
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}

// toItems accepts a list of objects or a single object.
func toItems(payload any) ([]model.Item, error) {
	switch typed := payload.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []model.Item{model.Item(typed)}, nil
	case []any:
		out := make([]model.Item, 0, len(typed))
		for idx, entry := range typed {
			obj, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("cli: entry %d is %T, want an object", idx, entry)
			}
			out = append(out, model.Item(obj))
		}
		return out, nil
	}
	return nil, fmt.Errorf("cli: data is %T, want an object or a list of objects", payload)
}

// toItem requires exactly one object.
func toItem(payload any) (model.Item, error) {
	items, err := toItems(payload)
	if err != nil {
		return nil, err
	}
	if len(items) != 1 {
		return nil, fmt.Errorf("cli: expected one record, got %d", len(items))
	}
	return items[0], nil
}

// toRelated reads {"key": [objects...]}.
func toRelated(payload any) (model.RelatedData, error) {
	if payload == nil {
		return nil, nil
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cli: related data is %T, want an object", payload)
	}
	out := make(model.RelatedData, len(obj))
	for key, value := range obj {
		items, err := toItems(value)
		if err != nil {
			return nil, fmt.Errorf("cli: related %q: %w", key, err)
		}
		out[key] = items
	}
	return out, nil
}
