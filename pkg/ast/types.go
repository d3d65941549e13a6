package ast

import "strings"

// Layout identifies the top-level arrangement of a document's components.
type Layout string

const (
	LayoutStack    Layout = "Stack"
	LayoutGrid     Layout = "Grid"
	LayoutSplit    Layout = "Split"
	LayoutCentered Layout = "Centered"
)

// Layouts returns the supported layout kinds in declaration order.
func Layouts() []Layout {
	return []Layout{LayoutStack, LayoutGrid, LayoutSplit, LayoutCentered}
}

// Theme selects the preview colour scheme. Only light and dark are valid.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Node is a single component instance inside a document. Type must name a
// registry component; Props must satisfy that component's schema after
// defaulting; Children may mix text leaves and nested nodes.
type Node struct {
	Type     string         `json:"type"`
	Props    map[string]any `json:"props,omitempty"`
	Children []Child        `json:"children,omitempty"`
}

// Child is either a text leaf or a nested node, never both. The zero value is
// an empty text leaf.
type Child struct {
	Text string
	Node *Node
}

// TextChild wraps a string literal as a child value.
func TextChild(text string) Child {
	return Child{Text: text}
}

// NodeChild wraps a node as a child value.
func NodeChild(node Node) Child {
	return Child{Node: &node}
}

// IsText reports whether the child is a text leaf.
func (c Child) IsText() bool {
	return c.Node == nil
}

// Document is the AST root: a layout kind, a theme, and the ordered top-level
// component list. All patch addressing is relative to Components.
type Document struct {
	Layout     Layout `json:"layout"`
	Theme      Theme  `json:"theme"`
	Components []Node `json:"components"`
}

// NormalizeLayout maps loosely cased or aliased layout names onto the
// canonical enumeration. Unknown names return the empty Layout.
func NormalizeLayout(raw string) Layout {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "stack", "column", "vertical":
		return LayoutStack
	case "grid":
		return LayoutGrid
	case "split", "sidebar", "two-column":
		return LayoutSplit
	case "centered", "center", "single":
		return LayoutCentered
	default:
		return ""
	}
}

// NormalizeTheme maps loosely cased theme names onto the canonical pair.
// Unknown names return the empty Theme.
func NormalizeTheme(raw string) Theme {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "light":
		return ThemeLight
	case "dark":
		return ThemeDark
	default:
		return ""
	}
}
