// Package config loads module configs and message catalogs from YAML or JSON
// files. Loading validates each module once; validation issues are logged and
// never stop a load, only a missing or duplicated entity does.
package config
