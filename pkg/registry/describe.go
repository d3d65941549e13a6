package registry

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var categoryOrder = []Category{
	CategoryLayout,
	CategoryTypography,
	CategoryInput,
	CategoryDisplay,
	CategoryNavigation,
	CategoryOverlay,
	CategoryChart,
}

// Describe renders the component catalog as markdown for consumption by
// prompting layers. The text is produced from the same definitions the
// validator enforces, so the documented and enforced property sets cannot
// drift apart.
func (r *Registry) Describe() string {
	var b strings.Builder
	b.WriteString("# Component Catalog\n")

	byCategory := make(map[Category][]Definition)
	for _, name := range r.Names() {
		def, _ := r.Definition(name)
		byCategory[def.Category] = append(byCategory[def.Category], def)
	}

	for _, category := range categoryOrder {
		defs := byCategory[category]
		if len(defs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n", strings.ToUpper(string(category)[:1])+string(category)[1:])
		for _, def := range defs {
			describeComponent(&b, def)
		}
	}

	icons := r.IconNames()
	if len(icons) > 0 {
		b.WriteString("\n## Icons\n\n")
		b.WriteString(strings.Join(icons, ", "))
		b.WriteString("\n")
	}

	return b.String()
}

func describeComponent(b *strings.Builder, def Definition) {
	fmt.Fprintf(b, "\n### %s\n", def.Name)
	if def.Description != "" {
		fmt.Fprintf(b, "%s\n", def.Description)
	}
	if def.AcceptsChildren {
		b.WriteString("Accepts children.\n")
	}

	if def.Schema == nil || len(def.Schema.Properties) == 0 {
		return
	}

	names := make([]string, 0, len(def.Schema.Properties))
	for name := range def.Schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("\nProps:\n")
	for _, name := range names {
		ref := def.Schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fmt.Fprintf(b, "- `%s` (%s)%s\n", name, propKind(ref.Value), propDetail(def, name, ref.Value))
	}
}

func propKind(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return "any"
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return "any"
	}
	return strings.Join(values, ",")
}

func propDetail(def Definition, name string, schema *openapi3.Schema) string {
	var parts []string
	if len(schema.Enum) > 0 {
		options := make([]string, 0, len(schema.Enum))
		for _, value := range schema.Enum {
			options = append(options, fmt.Sprintf("%v", value))
		}
		parts = append(parts, "one of "+strings.Join(options, "|"))
	}
	if schema.Min != nil && schema.Max != nil {
		parts = append(parts, fmt.Sprintf("range %v..%v", *schema.Min, *schema.Max))
	}
	if schema.Default != nil {
		parts = append(parts, fmt.Sprintf("default %v", schema.Default))
	}
	if slices.Contains(def.HandlerProps, name) {
		parts = append(parts, "handler name")
	}
	if slices.Contains(def.IconProps, name) {
		parts = append(parts, "icon name")
	}
	if schema.Description != "" {
		parts = append(parts, schema.Description)
	}
	if len(parts) == 0 {
		return ""
	}
	return ": " + strings.Join(parts, "; ")
}
