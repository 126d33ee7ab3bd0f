package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Columns is an ordered column list. It decodes from a list or from a mapping
// keyed by field name, keeping the authored key order. A scalar mapping value
// is shorthand for the column label.
type Columns []ColumnConfig

// FormFields is an ordered field list decoded like Columns; a scalar mapping
// value is shorthand for the field label.
type FormFields []FormFieldConfig

// Options is an ordered choice list decoded from a list of {value,label}
// records or from a value -> label mapping.
type Options []Option

// Find returns the column configured for key.
func (c Columns) Find(key string) (ColumnConfig, bool) {
	for _, col := range c {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnConfig{}, false
}

// Label returns the label for value, or "" when no option matches.
func (o Options) Label(value string) string {
	for _, opt := range o {
		if opt.Value == value {
			return opt.Label
		}
	}
	return ""
}

func (c *Columns) UnmarshalYAML(node *yaml.Node) error {
	out, err := decodeYAMLCollection(node, func(key string, value *yaml.Node) (ColumnConfig, error) {
		var col ColumnConfig
		if value.Kind == yaml.ScalarNode {
			col.Label = value.Value
		} else if err := value.Decode(&col); err != nil {
			return col, err
		}
		if col.Key == "" {
			col.Key = key
		}
		return col, nil
	})
	if err != nil {
		return fmt.Errorf("columns: %w", err)
	}
	*c = out
	return nil
}

func (c *Columns) UnmarshalJSON(data []byte) error {
	out, err := decodeJSONCollection(data, func(key string, raw json.RawMessage) (ColumnConfig, error) {
		var col ColumnConfig
		if label, ok := jsonString(raw); ok {
			col.Label = label
		} else if err := json.Unmarshal(raw, &col); err != nil {
			return col, err
		}
		if col.Key == "" {
			col.Key = key
		}
		return col, nil
	})
	if err != nil {
		return fmt.Errorf("columns: %w", err)
	}
	*c = out
	return nil
}

func (f *FormFields) UnmarshalYAML(node *yaml.Node) error {
	out, err := decodeYAMLCollection(node, func(key string, value *yaml.Node) (FormFieldConfig, error) {
		var field FormFieldConfig
		if value.Kind == yaml.ScalarNode {
			field.Label = value.Value
		} else if err := value.Decode(&field); err != nil {
			return field, err
		}
		if field.Name == "" {
			field.Name = key
		}
		return field, nil
	})
	if err != nil {
		return fmt.Errorf("form fields: %w", err)
	}
	*f = out
	return nil
}

func (f *FormFields) UnmarshalJSON(data []byte) error {
	out, err := decodeJSONCollection(data, func(key string, raw json.RawMessage) (FormFieldConfig, error) {
		var field FormFieldConfig
		if label, ok := jsonString(raw); ok {
			field.Label = label
		} else if err := json.Unmarshal(raw, &field); err != nil {
			return field, err
		}
		if field.Name == "" {
			field.Name = key
		}
		return field, nil
	})
	if err != nil {
		return fmt.Errorf("form fields: %w", err)
	}
	*f = out
	return nil
}

func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	out, err := decodeYAMLCollection(node, func(key string, value *yaml.Node) (Option, error) {
		if key == "" {
			var opt Option
			if value.Kind == yaml.ScalarNode {
				return Option{Value: value.Value, Label: value.Value}, nil
			}
			err := value.Decode(&opt)
			return opt, err
		}
		if value.Kind != yaml.ScalarNode {
			return Option{}, fmt.Errorf("option %q: label must be a scalar", key)
		}
		return Option{Value: key, Label: value.Value}, nil
	})
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	*o = out
	return nil
}

func (o *Options) UnmarshalJSON(data []byte) error {
	out, err := decodeJSONCollection(data, func(key string, raw json.RawMessage) (Option, error) {
		if key == "" {
			if label, ok := jsonString(raw); ok {
				return Option{Value: label, Label: label}, nil
			}
			var opt Option
			err := json.Unmarshal(raw, &opt)
			return opt, err
		}
		label, ok := jsonString(raw)
		if !ok {
			var scalar any
			if err := json.Unmarshal(raw, &scalar); err != nil {
				return Option{}, err
			}
			label = Stringify(scalar)
		}
		return Option{Value: key, Label: label}, nil
	})
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	*o = out
	return nil
}

// decodeYAMLCollection walks a mapping (passing each key) or a sequence
// (passing an empty key) through decode, preserving document order.
func decodeYAMLCollection[T any](node *yaml.Node, decode func(key string, value *yaml.Node) (T, error)) ([]T, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		out := make([]T, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := strings.TrimSpace(node.Content[i].Value)
			entry, err := decode(key, node.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out = append(out, entry)
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]T, 0, len(node.Content))
		for idx, child := range node.Content {
			entry, err := decode("", child)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", idx, err)
			}
			out = append(out, entry)
		}
		return out, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" || strings.TrimSpace(node.Value) == "" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("line %d: expected a mapping or a list", node.Line)
}

// decodeJSONCollection is the JSON counterpart of decodeYAMLCollection. Object
// keys are streamed with json.Decoder so their order survives.
func decodeJSONCollection[T any](data []byte, decode func(key string, raw json.RawMessage) (T, error)) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, err
		}
		out := make([]T, 0, len(raws))
		for idx, raw := range raws {
			entry, err := decode("", raw)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", idx, err)
			}
			out = append(out, entry)
		}
		return out, nil
	case '{':
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var out []T
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", tok)
			}
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			entry, err := decode(strings.TrimSpace(key), raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out = append(out, entry)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected an object or an array")
}

func jsonString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}
