package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Behavior marks components that require generated state and handlers.
type Behavior string

const (
	// BehaviorNone covers purely presentational components.
	BehaviorNone Behavior = ""
	// BehaviorModal requires open/close state plus an injected close handler.
	BehaviorModal Behavior = "modal"
	// BehaviorSidebar requires collapse state when the node sets collapsible.
	BehaviorSidebar Behavior = "sidebar"
	// BehaviorNavbar requires dropdown state when the node sets hasDropdown.
	BehaviorNavbar Behavior = "navbar"
)

// Category groups components for the documentation surface.
type Category string

const (
	CategoryLayout     Category = "layout"
	CategoryTypography Category = "typography"
	CategoryInput      Category = "input"
	CategoryDisplay    Category = "display"
	CategoryNavigation Category = "navigation"
	CategoryOverlay    Category = "overlay"
	CategoryChart      Category = "chart"
)

// Definition describes one allowed component type: where it is imported
// from, the strict property schema validated against node props, and which
// props carry handler or icon references.
type Definition struct {
	Name        string
	Module      string
	Category    Category
	Description string
	Behavior    Behavior
	Schema      *openapi3.Schema

	// HandlerProps lists prop names whose values name event handlers.
	HandlerProps []string
	// IconProps lists prop names whose values name icons from the icon set.
	IconProps []string
	// AcceptsChildren reports whether the component renders child content.
	AcceptsChildren bool
}

// ChartPoint is one record of a chart data series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Registry tracks component definitions keyed by type name plus the closed
// icon vocabulary. Safe for concurrent readers; registration normally happens
// once during process start.
type Registry struct {
	mu          sync.RWMutex
	components  map[string]Definition
	icons       map[string]struct{}
	iconOrder   []string
	wrapperName string
}

// New creates an empty registry. Most callers want Default.
func New() *Registry {
	return &Registry{
		components: make(map[string]Definition),
		icons:      make(map[string]struct{}),
	}
}

// Default returns a registry populated with the built-in component set and
// icon vocabulary.
func Default() *Registry {
	reg := New()
	registerBuiltins(reg)
	return reg
}

// Clone returns a deep copy of the registry so callers can mutate it in
// isolation.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, def := range r.components {
		cloned.components[name] = def
	}
	for name := range r.icons {
		cloned.icons[name] = struct{}{}
	}
	cloned.iconOrder = slices.Clone(r.iconOrder)
	cloned.wrapperName = r.wrapperName
	return cloned
}

// Register adds or replaces a component definition.
func (r *Registry) Register(def Definition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("registry: component name is required")
	}
	if def.Schema == nil {
		return fmt.Errorf("registry: schema for %q is nil", name)
	}
	if def.Module == "" {
		return fmt.Errorf("registry: module for %q is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	def.Name = name
	r.components[name] = def
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying built-in
// registry setup.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Definition fetches a component definition by type name.
func (r *Registry) Definition(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.components[strings.TrimSpace(name)]
	return def, ok
}

// SchemaFor returns the property schema for a component type. The second
// return value is false for unknown components, which every consumer treats
// as a hard validation error.
func (r *Registry) SchemaFor(name string) (*openapi3.Schema, bool) {
	def, ok := r.Definition(name)
	if !ok {
		return nil, false
	}
	return def.Schema, true
}

// Has reports whether the component type is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Definition(name)
	return ok
}

// Names returns the sorted set of registered component type names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Wrapper returns the definition of the top-level layout wrapper that every
// generated document is guaranteed to import and render.
func (r *Registry) Wrapper() Definition {
	r.mu.RLock()
	name := r.wrapperName
	r.mu.RUnlock()
	def, ok := r.Definition(name)
	if !ok {
		panic(fmt.Sprintf("registry: wrapper component %q not registered", name))
	}
	return def
}

// SetWrapper nominates the always-present layout wrapper component.
func (r *Registry) SetWrapper(name string) error {
	if !r.Has(name) {
		return fmt.Errorf("registry: wrapper component %q not registered", name)
	}
	r.mu.Lock()
	r.wrapperName = strings.TrimSpace(name)
	r.mu.Unlock()
	return nil
}

// RegisterIcon adds an icon name (kebab-case) to the closed icon vocabulary.
func (r *Registry) RegisterIcon(name string) error {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return fmt.Errorf("registry: icon name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.icons[trimmed]; !exists {
		r.icons[trimmed] = struct{}{}
		r.iconOrder = append(r.iconOrder, trimmed)
	}
	return nil
}

// HasIcon reports whether the icon name belongs to the vocabulary.
func (r *Registry) HasIcon(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.icons[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// IconNames returns the sorted icon vocabulary.
func (r *Registry) IconNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := slices.Clone(r.iconOrder)
	slices.Sort(names)
	return names
}

// IconElement converts an icon name into the element identifier generated
// code references, renaming icons whose natural identifier collides with a
// registered component name (for example the table icon renders as
// TableIcon so it cannot shadow the Table component).
func (r *Registry) IconElement(name string) string {
	_, local := r.IconBinding(name)
	return local
}

// IconBinding returns the identifier the icon module exports and the local
// identifier generated code binds it to. The two differ only when the
// exported name collides with a registered component name.
func (r *Registry) IconBinding(name string) (exported, local string) {
	exported = pascalCase(name)
	if exported == "" {
		return "", ""
	}
	if r.Has(exported) {
		return exported, exported + "Icon"
	}
	return exported, exported
}

// DefaultChartSeries returns the fixed illustrative data series chart
// components fall back to when a node supplies no data. The same structural
// input always yields the same visual output.
func DefaultChartSeries() []ChartPoint {
	return []ChartPoint{
		{Label: "Jan", Value: 40},
		{Label: "Feb", Value: 55},
		{Label: "Mar", Value: 32},
		{Label: "Apr", Value: 68},
		{Label: "May", Value: 51},
	}
}

func pascalCase(name string) string {
	parts := strings.FieldsFunc(strings.TrimSpace(name), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
