package codegen

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/registry"
	"github.com/goliatone/go-uigen/pkg/validate"
)

const indentUnit = "  "

type emitter struct {
	registry *registry.Registry
	needs    stateNeeds
	noop     bool

	errors   []string
	warnings []string
	used     map[string]struct{}
	icons    map[string]struct{}
}

// renderBody renders the component tree wrapped in the guaranteed layout
// container, which is always imported and emitted even when the AST never
// references it.
func (e *emitter) renderBody(doc ast.Document) string {
	wrapper := e.registry.Wrapper()
	e.used[wrapper.Name] = struct{}{}

	var b strings.Builder
	indent := strings.Repeat(indentUnit, 2)

	fmt.Fprintf(&b, "%s<%s layout=%q theme=%q>\n",
		indent, wrapper.Name, strings.ToLower(string(doc.Layout)), string(doc.Theme))
	for _, node := range doc.Components {
		e.renderNode(node, 3, &b)
	}
	fmt.Fprintf(&b, "%s</%s>\n", indent, wrapper.Name)

	return b.String()
}

func (e *emitter) renderNode(node ast.Node, level int, b *strings.Builder) {
	indent := strings.Repeat(indentUnit, level)

	def, ok := e.registry.Definition(node.Type)
	if !ok {
		fmt.Fprintf(b, "%s{/* unknown component: %s */}\n", indent, node.Type)
		e.errors = append(e.errors,
			fmt.Sprintf("unknown component type %q emitted as placeholder", node.Type))
		return
	}
	e.used[def.Name] = struct{}{}

	clean, errs, warnings := validate.CheckProps(def, node.Props)
	for _, message := range errs {
		e.errors = append(e.errors, fmt.Sprintf("%s: %s", def.Name, message))
	}
	e.warnings = append(e.warnings, warnings...)

	content, _ := clean["children"].(string)
	delete(clean, "children")

	attrs := e.renderAttrs(def, clean)

	open := "<" + def.Name
	if len(attrs) > 0 {
		open += " " + strings.Join(attrs, " ")
	}

	if content == "" && len(node.Children) == 0 {
		fmt.Fprintf(b, "%s%s />\n", indent, open)
		return
	}

	fmt.Fprintf(b, "%s%s>\n", indent, open)
	childIndent := strings.Repeat(indentUnit, level+1)
	if content != "" {
		fmt.Fprintf(b, "%s%s\n", childIndent, escapeText(content))
	}
	for _, child := range node.Children {
		if child.IsText() {
			if text := strings.TrimSpace(child.Text); text != "" {
				fmt.Fprintf(b, "%s%s\n", childIndent, escapeText(text))
			}
			continue
		}
		e.renderNode(*child.Node, level+1, b)
	}
	fmt.Fprintf(b, "%s</%s>\n", indent, def.Name)
}

// renderAttrs emits the sorted attribute list for a node. Modal nodes have
// their open prop force-bound to the generated modal state and always carry a
// close handler, so every generated modal is interactively closable even when
// the planning step forgot to wire one.
func (e *emitter) renderAttrs(def registry.Definition, props map[string]any) []string {
	if def.Behavior == registry.BehaviorModal {
		if props == nil {
			props = make(map[string]any, 2)
		}
		props["open"] = nil // placeholder; rendered as the state binding below
		if _, ok := props["onClose"]; !ok {
			props["onClose"] = "closeModal"
		}
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]string, 0, len(keys)+2)
	for _, key := range keys {
		attr := e.renderAttr(def, key, props[key])
		if attr != "" {
			attrs = append(attrs, attr)
		}
	}

	switch def.Behavior {
	case registry.BehaviorSidebar:
		if e.needs.sidebar && boolProp(props, "collapsible") {
			attrs = append(attrs,
				"collapsed={sidebarCollapsed}",
				"onToggle={toggleSidebar}")
		}
	case registry.BehaviorNavbar:
		if e.needs.navbar && boolProp(props, "hasDropdown") {
			attrs = append(attrs,
				"dropdownOpen={dropdownOpen}",
				"onDropdownToggle={toggleDropdown}")
		}
	}

	return attrs
}

func (e *emitter) renderAttr(def registry.Definition, key string, value any) string {
	if def.Behavior == registry.BehaviorModal {
		switch key {
		case "open":
			return "open={modalOpen}"
		case "onClose":
			return "onClose={" + e.modalCloseExpr(value) + "}"
		}
	}

	if containsName(def.HandlerProps, key) {
		name, _ := value.(string)
		if name == "" {
			return ""
		}
		return key + "={" + e.handlerExpr(name) + "}"
	}

	if containsName(def.IconProps, key) {
		name, _ := value.(string)
		if name == "" {
			return ""
		}
		if !e.registry.HasIcon(name) {
			e.warnings = append(e.warnings,
				fmt.Sprintf("unknown icon %q dropped from %s.%s", name, def.Name, key))
			return ""
		}
		e.icons[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
		return key + "={<" + e.registry.IconElement(name) + " />}"
	}

	switch v := value.(type) {
	case string:
		return key + "=" + quoteAttr(v)
	case bool:
		return key + "={" + strconv.FormatBool(v) + "}"
	case float64:
		return key + "={" + formatNumber(v) + "}"
	case int:
		return key + "={" + strconv.Itoa(v) + "}"
	case nil:
		return ""
	default:
		literal, err := json.Marshal(v)
		if err != nil {
			e.errors = append(e.errors,
				fmt.Sprintf("%s: prop %q is not serializable: %v", def.Name, key, err))
			return ""
		}
		return key + "={" + string(literal) + "}"
	}
}

// modalCloseExpr resolves the close handler for a modal. Unrecognized names
// fall back to the generated close handler rather than a no-op, preserving
// the closability guarantee.
func (e *emitter) modalCloseExpr(value any) string {
	name, _ := value.(string)
	switch name {
	case "", "closeModal":
		return "closeModal"
	case "openModal", "toggleSidebar", "toggleDropdown":
		return e.handlerExpr(name)
	default:
		e.warnings = append(e.warnings,
			fmt.Sprintf("handler %q is not recognized; modal falls back to the generated close handler", name))
		return "closeModal"
	}
}

// importLines computes the import block by reverse lookup from every used
// component to its module, grouped per module and alphabetized. Icon
// references form their own group with collision renames applied.
func (e *emitter) importLines() []string {
	groups := make(map[string][]string)
	for name := range e.used {
		def, ok := e.registry.Definition(name)
		if !ok {
			continue
		}
		groups[def.Module] = append(groups[def.Module], def.Name)
	}

	for name := range e.icons {
		exported, local := e.registry.IconBinding(name)
		if exported == "" {
			continue
		}
		binding := exported
		if local != exported {
			binding = exported + " as " + local
		}
		groups[registry.ModuleIcons] = append(groups[registry.ModuleIcons], binding)
	}

	modules := make([]string, 0, len(groups))
	for module := range groups {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	var lines []string
	if e.needs.any() {
		lines = append(lines, "import { useState } from 'react';")
	}
	for _, module := range modules {
		idents := groups[module]
		sort.Strings(idents)
		lines = append(lines, fmt.Sprintf("import { %s } from '%s';", strings.Join(idents, ", "), module))
	}
	return lines
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

func quoteAttr(value string) string {
	escaped := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "&quot;",
		"\n", " ",
	).Replace(value)
	return "\"" + escaped + "\""
}

func escapeText(text string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"{", "&#123;",
		"}", "&#125;",
	).Replace(text)
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
