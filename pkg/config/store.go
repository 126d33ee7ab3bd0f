package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-adminview/pkg/model"
)

var (
	// ErrMissingEntity reports a module config without an entity name.
	ErrMissingEntity = errors.New("config: entity is required")
	// ErrDuplicateEntity reports two module configs for the same entity.
	ErrDuplicateEntity = errors.New("config: duplicate entity")
)

// Store holds normalized module configs keyed by entity.
type Store struct {
	mu      sync.RWMutex
	modules map[string]model.ModuleConfig
	sources map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		modules: make(map[string]model.ModuleConfig),
		sources: make(map[string]string),
	}
}

// Add normalizes cfg and stores it. source names where it came from and is
// used in duplicate errors.
func (s *Store) Add(cfg model.ModuleConfig, source string) error {
	cfg.Normalize()
	if cfg.Entity == "" {
		return fmt.Errorf("%w (%s)", ErrMissingEntity, source)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if previous, exists := s.sources[cfg.Entity]; exists {
		return fmt.Errorf("%w %q in %s (already defined in %s)", ErrDuplicateEntity, cfg.Entity, source, previous)
	}
	s.modules[cfg.Entity] = cfg
	s.sources[cfg.Entity] = source
	return nil
}

// Get returns the config for entity.
func (s *Store) Get(entity string) (model.ModuleConfig, bool) {
	if s == nil {
		return model.ModuleConfig{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.modules[strings.TrimSpace(entity)]
	return cfg, ok
}

// Source reports the file entity was loaded from.
func (s *Store) Source(entity string) string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sources[strings.TrimSpace(entity)]
}

// Entities lists the stored entities in sorted order.
func (s *Store) Entities() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.modules))
	for entity := range s.modules {
		out = append(out, entity)
	}
	sort.Strings(out)
	return out
}

// Len reports how many modules are stored.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.modules)
}
