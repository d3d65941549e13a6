// Package validate decides whether a UI document is safe to lower to code.
// Validation never panics and never returns Go errors for document problems:
// outcomes are reported as data so callers can decide whether to proceed,
// retry planning upstream, or surface partial results.
package validate

import (
	"fmt"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/registry"
)

// Result captures a single validation pass. Sanitized is populated only when
// the document is valid; it carries stripped unknown props, applied defaults,
// and normalized layout/theme values.
type Result struct {
	Valid     bool          `json:"valid"`
	Errors    []string      `json:"errors,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
	Sanitized *ast.Document `json:"sanitizedAst,omitempty"`
}

// Option customises the validator configuration.
type Option func(*Validator)

// WithRegistry injects a component registry. Defaults to registry.Default.
func WithRegistry(reg *registry.Registry) Option {
	return func(v *Validator) {
		if reg != nil {
			v.registry = reg
		}
	}
}

// Validator checks documents against a component registry.
type Validator struct {
	registry *registry.Registry
}

// New constructs a Validator applying any provided options.
func New(options ...Option) *Validator {
	v := &Validator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	if v.registry == nil {
		v.registry = registry.Default()
	}
	return v
}

// Validate checks the root shape first; a root failure returns immediately
// with no partial validation below it. Otherwise every node is visited
// recursively: unknown component types are errors, unknown prop keys are
// warnings (stripped from the sanitized copy), and props outside their value
// domain are errors attributed to dotted/indexed paths.
func (v *Validator) Validate(doc ast.Document) Result {
	result := Result{}

	sanitized := doc.Clone()
	if !v.validateRoot(&sanitized, &result) {
		return result
	}

	for i := range sanitized.Components {
		v.validateNode(&sanitized.Components[i], fmt.Sprintf("components[%d]", i), &result)
	}

	result.Valid = len(result.Errors) == 0
	if result.Valid {
		result.Sanitized = &sanitized
	}
	return result
}

func (v *Validator) validateRoot(doc *ast.Document, result *Result) bool {
	layout := doc.Layout
	if normalized := ast.NormalizeLayout(string(layout)); normalized != "" {
		if normalized != layout {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("layout: normalized %q to %q", layout, normalized))
			doc.Layout = normalized
		}
	} else {
		result.Errors = append(result.Errors,
			fmt.Sprintf("layout: unknown layout %q", layout))
		return false
	}

	switch doc.Theme {
	case ast.ThemeLight, ast.ThemeDark:
	case "":
		doc.Theme = ast.ThemeLight
	default:
		if normalized := ast.NormalizeTheme(string(doc.Theme)); normalized != "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("theme: normalized %q to %q", doc.Theme, normalized))
			doc.Theme = normalized
		} else {
			result.Errors = append(result.Errors,
				fmt.Sprintf("theme: unknown theme %q", doc.Theme))
			return false
		}
	}

	return true
}

func (v *Validator) validateNode(node *ast.Node, path string, result *Result) {
	def, ok := v.registry.Definition(node.Type)
	if !ok {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s: unknown component type %q", path, node.Type))
		return
	}

	clean, errs, warnings := CheckProps(def, node.Props)
	node.Props = clean
	for _, message := range errs {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", path, message))
	}
	for _, message := range warnings {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", path, message))
	}

	for _, prop := range def.IconProps {
		name, ok := node.Props[prop].(string)
		if !ok || name == "" {
			continue
		}
		if !v.registry.HasIcon(name) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: unknown icon %q in prop %q", path, name, prop))
		}
	}

	for i := range node.Children {
		child := &node.Children[i]
		if child.IsText() {
			continue
		}
		v.validateNode(child.Node, fmt.Sprintf("%s.children[%d]", path, i), result)
	}
}
