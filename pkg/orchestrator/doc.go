// Package orchestrator wires module configs, the value formatter, the three
// surface renderers and the theme palette into a single Engine. Hosts build
// one Engine at startup and a render.Context per request via NewContext.
package orchestrator
