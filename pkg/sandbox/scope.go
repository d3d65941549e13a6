package sandbox

import (
	"fmt"
	"strings"
	"unicode"

	"go.starlark.net/starlark"

	"github.com/goliatone/go-uigen/internal/jsx"
	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/registry"
)

// MissingIcon is the pseudo component type bound in place of an icon the
// catalog does not know. The preview renders it as a visible placeholder
// instead of failing the whole tree.
const MissingIcon = "MissingIcon"

// deniedGlobals are browser and runtime names a program may still reference
// after sanitization. They resolve to None so a stray reference fails at the
// point of use with a clear call error instead of a resolve error.
var deniedGlobals = []string{
	"window", "document", "console", "fetch", "XMLHttpRequest", "WebSocket",
	"localStorage", "sessionStorage", "setTimeout", "setInterval",
	"clearTimeout", "clearInterval", "alert", "prompt", "confirm",
	"process", "globalThis", "require",
}

// elementValue wraps a built tree node for use inside the interpreter.
type elementValue struct {
	node *ast.Node
}

func (e *elementValue) String() string        { return fmt.Sprintf("<%s>", e.node.Type) }
func (e *elementValue) Type() string          { return "element" }
func (e *elementValue) Freeze()               {}
func (e *elementValue) Truth() starlark.Bool  { return starlark.True }
func (e *elementValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: element") }

// buildScope assembles the predeclared environment: one constructor per
// registered component, a binding per requested icon import, the inert
// callable, and the denied globals.
func buildScope(reg *registry.Registry, imports []jsx.IconImport) starlark.StringDict {
	scope := starlark.StringDict{}

	for _, name := range reg.Names() {
		scope[name] = componentBuiltin(reg, name)
	}

	for _, imp := range imports {
		kebab := kebabCase(imp.Exported)
		if reg.HasIcon(kebab) {
			scope[imp.Local] = iconBuiltin(imp.Exported, kebab)
		} else {
			scope[imp.Local] = missingIconBuiltin(imp.Exported)
		}
	}

	scope[jsx.NoopBinding] = starlark.NewBuiltin(jsx.NoopBinding, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return starlark.None, nil
	})

	for _, name := range deniedGlobals {
		if _, taken := scope[name]; !taken {
			scope[name] = starlark.None
		}
	}
	return scope
}

// componentBuiltin returns a constructor producing an element for one
// catalog component. Keyword arguments become props; the children keyword
// becomes the child list.
func componentBuiltin(reg *registry.Registry, name string) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(args) > 0 {
			return nil, fmt.Errorf("%s: positional arguments are not supported", name)
		}
		node := &ast.Node{Type: name, Props: map[string]any{}}
		for _, pair := range kwargs {
			key, ok := starlark.AsString(pair[0])
			if !ok {
				return nil, fmt.Errorf("%s: keyword name must be a string", name)
			}
			if key == "children" {
				children, err := childList(name, pair[1])
				if err != nil {
					return nil, err
				}
				node.Children = children
				continue
			}
			node.Props[key] = propValue(pair[1])
		}
		return &elementValue{node: node}, nil
	})
}

func iconBuiltin(exported, kebab string) *starlark.Builtin {
	return starlark.NewBuiltin(exported, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return &elementValue{node: &ast.Node{
			Type:  "Icon",
			Props: map[string]any{"name": kebab},
		}}, nil
	})
}

func missingIconBuiltin(exported string) *starlark.Builtin {
	return starlark.NewBuiltin(exported, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return &elementValue{node: &ast.Node{
			Type:  MissingIcon,
			Props: map[string]any{"name": exported},
		}}, nil
	})
}

func childList(component string, v starlark.Value) ([]ast.Child, error) {
	list, ok := v.(*starlark.List)
	if !ok {
		return nil, fmt.Errorf("%s: children must be a list, got %s", component, v.Type())
	}
	children := make([]ast.Child, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		item := list.Index(i)
		switch item := item.(type) {
		case *elementValue:
			children = append(children, ast.NodeChild(*item.node))
		case starlark.String:
			children = append(children, ast.TextChild(string(item)))
		case starlark.NoneType:
			// conditional child that rendered nothing
		case starlark.Int, starlark.Float, starlark.Bool:
			children = append(children, ast.TextChild(item.String()))
		default:
			return nil, fmt.Errorf("%s: unsupported child type %s", component, item.Type())
		}
	}
	return children, nil
}

// propValue converts an interpreter value into a prop. Icon elements reduce
// to their icon name; callables reduce to their binding name so handler
// props keep a stable textual form.
func propValue(v starlark.Value) any {
	switch v := v.(type) {
	case starlark.NoneType:
		return nil
	case starlark.Bool:
		return bool(v)
	case starlark.String:
		return string(v)
	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return int(i)
		}
		return v.String()
	case starlark.Float:
		return float64(v)
	case *starlark.List:
		items := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			items = append(items, propValue(v.Index(i)))
		}
		return items
	case *starlark.Dict:
		m := make(map[string]any, v.Len())
		for _, key := range v.Keys() {
			name, _ := starlark.AsString(key)
			item, _, _ := v.Get(key)
			m[name] = propValue(item)
		}
		return m
	case *elementValue:
		if v.node.Type == "Icon" || v.node.Type == MissingIcon {
			if name, ok := v.node.Props["name"].(string); ok {
				return name
			}
		}
		return v.node.Type
	case *starlark.Builtin:
		return v.Name()
	case *starlark.Function:
		return v.Name()
	default:
		return v.String()
	}
}

// kebabCase turns an exported icon name back into its catalog form:
// ChevronDown becomes chevron-down.
func kebabCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
