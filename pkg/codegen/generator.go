// Package codegen deterministically lowers a validated UI document into a
// self-contained, importable source module. The same AST always produces the
// same text: prop ordering, import grouping, and state scaffolding are all
// derived from sorted traversals with no randomness or locale dependence.
package codegen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/registry"
)

// ComponentName is the exported identifier of the generated entry point.
const ComponentName = "GeneratedUI"

// Result is the outcome of one lowering pass. Code always carries best-effort
// source text, even when Errors is non-empty, so callers can inspect what the
// generator produced for invalid nodes.
type Result struct {
	Code           string   `json:"code"`
	Errors         []string `json:"errors,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	UsedComponents []string `json:"usedComponents"`
	UsedIcons      []string `json:"usedIcons"`
}

// Option customises the generator configuration.
type Option func(*Generator)

// WithRegistry injects a component registry. Defaults to registry.Default.
func WithRegistry(reg *registry.Registry) Option {
	return func(g *Generator) {
		if reg != nil {
			g.registry = reg
		}
	}
}

// Generator lowers documents against a component registry.
type Generator struct {
	registry *registry.Registry
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.registry == nil {
		g.registry = registry.Default()
	}
	return g
}

// stateNeeds records which stateful behaviors the document actually uses.
// State is only declared when a matching node is present, so generated
// modules never carry dead state.
type stateNeeds struct {
	modal   bool
	sidebar bool
	navbar  bool
}

func (s stateNeeds) any() bool {
	return s.modal || s.sidebar || s.navbar
}

// Generate compiles the document into source text. Unknown component types
// emit a placeholder comment and record an error; generation still completes
// and returns whatever could be rendered.
func (g *Generator) Generate(doc ast.Document) Result {
	e := &emitter{
		registry: g.registry,
		used:     make(map[string]struct{}),
		icons:    make(map[string]struct{}),
	}

	e.needs = g.scanState(doc.Components)

	body := e.renderBody(doc)
	code := e.assemble(doc, body)

	return Result{
		Code:           code,
		Errors:         e.errors,
		Warnings:       e.warnings,
		UsedComponents: sortedSet(e.used),
		UsedIcons:      sortedSet(e.icons),
	}
}

// scanState pre-scans the whole tree once so state declarations can be
// emitted ahead of the markup that references them.
func (g *Generator) scanState(nodes []ast.Node) stateNeeds {
	var needs stateNeeds
	g.scanNodes(nodes, &needs)
	return needs
}

func (g *Generator) scanNodes(nodes []ast.Node, needs *stateNeeds) {
	for _, node := range nodes {
		g.scanNode(node, needs)
	}
}

func (g *Generator) scanNode(node ast.Node, needs *stateNeeds) {
	if def, ok := g.registry.Definition(node.Type); ok {
		switch def.Behavior {
		case registry.BehaviorModal:
			needs.modal = true
		case registry.BehaviorSidebar:
			if boolProp(node.Props, "collapsible") {
				needs.sidebar = true
			}
		case registry.BehaviorNavbar:
			if boolProp(node.Props, "hasDropdown") {
				needs.navbar = true
			}
		}
	}
	for _, child := range node.Children {
		if child.Node != nil {
			g.scanNode(*child.Node, needs)
		}
	}
}

func boolProp(props map[string]any, key string) bool {
	switch v := props[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// stateDeclarations emits the hook and handler scaffolding for the behaviors
// the pre-scan found.
func (e *emitter) stateDeclarations() []string {
	var lines []string
	if e.needs.modal {
		lines = append(lines,
			"const [modalOpen, setModalOpen] = useState(false);",
			"const openModal = () => setModalOpen(true);",
			"const closeModal = () => setModalOpen(false);",
		)
	}
	if e.needs.sidebar {
		lines = append(lines,
			"const [sidebarCollapsed, setSidebarCollapsed] = useState(false);",
			"const toggleSidebar = () => setSidebarCollapsed((collapsed) => !collapsed);",
		)
	}
	if e.needs.navbar {
		lines = append(lines,
			"const [dropdownOpen, setDropdownOpen] = useState(false);",
			"const toggleDropdown = () => setDropdownOpen((open) => !open);",
		)
	}
	if e.noop {
		lines = append(lines, "const noop = () => {};")
	}
	return lines
}

// handlerExpr maps a recognized handler name from the AST onto the generated
// identifier. Unrecognized names, or recognized names whose backing state is
// absent from this document, degrade to a shared no-op handler with a
// warning instead of failing generation.
func (e *emitter) handlerExpr(name string) string {
	switch name {
	case "openModal":
		if e.needs.modal {
			return "openModal"
		}
	case "closeModal":
		if e.needs.modal {
			return "closeModal"
		}
	case "toggleSidebar":
		if e.needs.sidebar {
			return "toggleSidebar"
		}
	case "toggleDropdown":
		if e.needs.navbar {
			return "toggleDropdown"
		}
	}
	e.noop = true
	e.warnings = append(e.warnings,
		fmt.Sprintf("handler %q is not recognized; degraded to a no-op", name))
	return "noop"
}

func (e *emitter) assemble(doc ast.Document, body string) string {
	var b strings.Builder

	for _, line := range e.importLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "export default function %s() {\n", ComponentName)

	// noop may have been flagged during body rendering, after the pre-scan.
	if decls := e.stateDeclarations(); len(decls) > 0 {
		for _, decl := range decls {
			b.WriteString(indentUnit)
			b.WriteString(decl)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(indentUnit)
	b.WriteString("return (\n")
	b.WriteString(body)
	b.WriteString(indentUnit)
	b.WriteString(");\n")
	b.WriteString("}\n")

	return b.String()
}
