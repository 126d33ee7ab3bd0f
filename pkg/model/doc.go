// Package model defines the declarative configuration records and data shapes
// consumed by the renderers. A ModuleConfig describes one entity: the columns
// of its list table, the sections and header badges of its detail sidebar and
// the fields of its create/edit form. Items and RelatedData are plain string
// keyed dictionaries supplied by the caller; renderers only read them.
//
// Configs are hand-authored YAML or JSON. Mapping-shaped collections (columns,
// form fields, select options) keep their authored key order when decoded.
// Normalize applies the documented defaults once at load time and Validate
// reports suspicious entries without rejecting the module.
package model
