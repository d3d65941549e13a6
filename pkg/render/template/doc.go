// Package template defines the renderer-agnostic template contract the
// preview layer builds on, keeping the concrete engine swappable.
package template
