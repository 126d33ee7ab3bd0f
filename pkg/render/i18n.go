package render

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate delegates to the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what to show when a key cannot be
// translated. fallback is the configured literal label (may be empty).
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Catalog is an in-memory Translator keyed by locale then message key. Lookups
// fall back from "cs-CZ" to "cs" and finally to the catalog's default locale.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
}

// NewCatalog creates an empty catalog; fallbackLocale is consulted last.
func NewCatalog(fallbackLocale string) *Catalog {
	return &Catalog{
		fallback: canonicalLocale(fallbackLocale),
		messages: make(map[string]map[string]string),
	}
}

// Add merges messages for locale, overwriting existing keys.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = canonicalLocale(locale)
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.messages[locale]
	if !ok {
		bucket = make(map[string]string, len(messages))
		c.messages[locale] = bucket
	}
	for key, value := range messages {
		bucket[strings.TrimSpace(key)] = value
	}
}

// Locales lists the locales with at least one message.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	return out
}

// Translate implements Translator. Positional args are applied with
// fmt.Sprintf when present.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range localeChain(locale, c.fallback) {
		if msg, ok := c.messages[candidate][key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

func localeChain(locale, fallback string) []string {
	chain := make([]string, 0, 3)
	add := func(candidate string) {
		if candidate == "" {
			return
		}
		for _, existing := range chain {
			if existing == candidate {
				return
			}
		}
		chain = append(chain, candidate)
	}

	canonical := canonicalLocale(locale)
	add(canonical)
	if tag, err := language.Parse(canonical); err == nil {
		base, _ := tag.Base()
		add(base.String())
	}
	add(fallback)
	return chain
}

// canonicalLocale normalizes "cs_cz" style inputs to BCP 47 ("cs-CZ").
// Unparseable values are returned trimmed.
func canonicalLocale(locale string) string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	return tag.String()
}

// CanonicalLocale is exported for loaders that key catalogs by file name.
func CanonicalLocale(locale string) string { return canonicalLocale(locale) }

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}
