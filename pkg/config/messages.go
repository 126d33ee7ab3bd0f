package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-adminview/pkg/model"
	"github.com/goliatone/go-adminview/pkg/render"
)

// LoadCatalog reads message files under dir into a catalog. Each file is one
// locale named after the file ("cs.yaml", "en-US.json"); nested keys are
// flattened with dots.
func LoadCatalog(ctx context.Context, files fs.FS, dir, fallbackLocale string) (*render.Catalog, error) {
	catalog := render.NewCatalog(fallbackLocale)
	if files == nil {
		return catalog, errors.New("config: message filesystem is nil")
	}
	if dir == "" {
		dir = "."
	}

	var errs []error
	walkErr := fs.WalkDir(files, dir, func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() || !IsConfigFile(name) {
			return nil
		}
		data, err := fs.ReadFile(files, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: read %s: %w", name, err))
			return nil
		}
		messages, err := DecodeMessages(name, data)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		locale := strings.TrimSuffix(path.Base(name), path.Ext(name))
		catalog.Add(locale, messages)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Errorf("config: walk %s: %w", dir, walkErr))
	}
	return catalog, errors.Join(errs...)
}

// DecodeMessages parses one message file into flat key -> text pairs.
func DecodeMessages(name string, data []byte) (map[string]string, error) {
	var raw map[string]any
	var err error
	if strings.EqualFold(path.Ext(name), ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("config: decode messages %s: %w", name, err)
	}

	out := make(map[string]string)
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch typed := value.(type) {
		case map[string]any:
			flatten(full, typed, out)
		case nil:
		default:
			out[full] = model.Stringify(typed)
		}
	}
}
