// Package template defines the template seam used by file-backed detail
// sections. Renderers depend on the Renderer interface; gotemplate provides
// the pongo2-backed implementation.
package template
