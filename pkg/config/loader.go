package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-adminview/pkg/model"
)

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// FileSystem is read by LoadDir and LoadFile; defaults to the working
	// directory when nil.
	FileSystem fs.FS

	// Logger receives validation issues.
	Logger zerolog.Logger
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem sets the filesystem configs are read from.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithLogger sets the logger validation issues are reported to.
func WithLogger(logger zerolog.Logger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Logger = logger
	}
}

// Loader reads module configs.
type Loader struct {
	fs     fs.FS
	logger zerolog.Logger
}

// NewLoader constructs a Loader.
func NewLoader(options ...LoaderOption) *Loader {
	cfg := LoaderOptions{Logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.FileSystem == nil {
		cfg.FileSystem = os.DirFS(".")
	}
	return &Loader{fs: cfg.FileSystem, logger: cfg.Logger}
}

// IsConfigFile reports whether name has a supported extension.
func IsConfigFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// LoadDir loads every YAML/JSON file under dir into a new Store. Errors from
// individual files are joined; the store still holds every module that
// loaded.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*Store, error) {
	store := NewStore()
	if dir == "" {
		dir = "."
	}

	var errs []error
	walkErr := fs.WalkDir(l.fs, dir, func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() || !IsConfigFile(name) {
			return nil
		}

		cfg, err := l.LoadFile(ctx, name)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if err := store.Add(cfg, name); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Errorf("config: walk %s: %w", dir, walkErr))
	}
	return store, errors.Join(errs...)
}

// LoadFile reads, decodes, normalizes and validates one module config.
func (l *Loader) LoadFile(ctx context.Context, name string) (model.ModuleConfig, error) {
	if err := ctx.Err(); err != nil {
		return model.ModuleConfig{}, err
	}
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return model.ModuleConfig{}, fmt.Errorf("config: read %s: %w", name, err)
	}
	cfg, err := Decode(name, data)
	if err != nil {
		return model.ModuleConfig{}, err
	}
	cfg.Normalize()
	if cfg.Entity == "" {
		return model.ModuleConfig{}, fmt.Errorf("%w (%s)", ErrMissingEntity, name)
	}
	l.report(name, cfg)
	return cfg, nil
}

func (l *Loader) report(name string, cfg model.ModuleConfig) {
	for _, issue := range cfg.Validate() {
		l.logger.Warn().
			Str("file", name).
			Str("entity", cfg.Entity).
			Str("path", issue.Path).
			Msg(issue.Message)
	}
}

// Decode parses a module config by file extension. Unknown extensions are
// treated as YAML, which also accepts JSON documents.
func Decode(name string, data []byte) (model.ModuleConfig, error) {
	var cfg model.ModuleConfig
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, fmt.Errorf("config: %s is empty", name)
	}

	var err error
	if strings.EqualFold(path.Ext(name), ".json") {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return model.ModuleConfig{}, fmt.Errorf("config: decode %s: %w", name, err)
	}
	return cfg, nil
}
