package render

import "errors"

var (
	// ErrMissingTranslator reports a translation lookup without a translator.
	ErrMissingTranslator = errors.New("render: translator not configured")
	// ErrMissingTranslation reports a key the translator does not know.
	ErrMissingTranslation = errors.New("render: translation not found")
	// ErrNotRegistered is returned by registries for unknown names.
	ErrNotRegistered = errors.New("render: not registered")
)
