package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-adminview/pkg/model"
)

// MustLoadModule reads a YAML or JSON module config fixture and normalizes it.
func MustLoadModule(t *testing.T, path string) model.ModuleConfig {
	t.Helper()

	cfg, err := LoadModule(path)
	if err != nil {
		t.Fatalf("load module: %v", err)
	}
	return cfg
}

// LoadModule is MustLoadModule for setup code without a *testing.T.
func LoadModule(path string) (model.ModuleConfig, error) {
	if path == "" {
		return model.ModuleConfig{}, errors.New("testsupport: module path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ModuleConfig{}, fmt.Errorf("testsupport: read module: %w", err)
	}
	var cfg model.ModuleConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return model.ModuleConfig{}, fmt.Errorf("testsupport: decode module: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// MustParseModule decodes an inline YAML module config and normalizes it.
func MustParseModule(t *testing.T, src string) model.ModuleConfig {
	t.Helper()

	var cfg model.ModuleConfig
	if err := yaml.Unmarshal([]byte(src), &cfg); err != nil {
		t.Fatalf("parse module: %v", err)
	}
	cfg.Normalize()
	return cfg
}

// MustLoadItems reads a JSON array of items.
func MustLoadItems(t *testing.T, path string) []model.Item {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read items: %v", err)
	}
	var out []model.Item
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal items: %v", err)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// Grants builds a permission gate that allows exactly the listed
// "action:module" pairs. A "*" module matches every module.
func Grants(pairs ...string) func(action, module string) bool {
	allowed := make(map[string]struct{}, len(pairs))
	for _, pair := range pairs {
		allowed[strings.TrimSpace(pair)] = struct{}{}
	}
	return func(action, module string) bool {
		if _, ok := allowed[action+":"+module]; ok {
			return true
		}
		_, ok := allowed[action+":*"]
		return ok
	}
}
