package registry

import "github.com/getkin/kin-openapi/openapi3"

// Module identifiers components are imported from in generated code.
const (
	ModuleLayout     = "@uigen/layout"
	ModuleComponents = "@uigen/components"
	ModuleCharts     = "@uigen/charts"
	ModuleIcons      = "@uigen/icons"
)

// WrapperComponent names the layout container every generated document is
// wrapped in, whether or not the AST references it.
const WrapperComponent = "Container"

func registerBuiltins(reg *Registry) {
	reg.MustRegister(Definition{
		Name:        "Container",
		Module:      ModuleLayout,
		Category:    CategoryLayout,
		Description: "Top-level layout container. Every document renders inside one.",
		Schema: closed(map[string]*openapi3.Schema{
			"layout":   enumProp("Arrangement of direct children.", "stack", "stack", "grid", "split", "centered"),
			"theme":    enumProp("Colour scheme.", "light", "light", "dark"),
			"maxWidth": enumProp("Content width preset.", "lg", "sm", "md", "lg", "xl", "full"),
			"padding":  enumProp("Inner padding preset.", "md", "none", "sm", "md", "lg"),
			"centered": boolProp("Center content horizontally.", true),
		}),
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "Grid",
		Module:      ModuleLayout,
		Category:    CategoryLayout,
		Description: "Responsive column grid for arranging children.",
		Schema: closed(map[string]*openapi3.Schema{
			"columns": intProp("Number of columns.", 2, 1, 12),
			"gap":     enumProp("Gutter size between cells.", "md", "none", "sm", "md", "lg"),
		}),
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "Flex",
		Module:      ModuleLayout,
		Category:    CategoryLayout,
		Description: "One-dimensional flexible row or column.",
		Schema: closed(map[string]*openapi3.Schema{
			"direction": enumProp("Main axis direction.", "row", "row", "column"),
			"gap":       enumProp("Spacing between children.", "md", "none", "sm", "md", "lg"),
			"align":     enumProp("Cross-axis alignment.", "start", "start", "center", "end", "stretch"),
			"justify":   enumProp("Main-axis distribution.", "start", "start", "center", "end", "between", "around"),
			"wrap":      boolProp("Wrap children onto new lines.", false),
		}),
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "Divider",
		Module:      ModuleLayout,
		Category:    CategoryLayout,
		Description: "Horizontal rule separating content blocks.",
		Schema: closed(map[string]*openapi3.Schema{
			"label": strProp("Optional centered label."),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Spacer",
		Module:      ModuleLayout,
		Category:    CategoryLayout,
		Description: "Empty vertical gap between siblings.",
		Schema: closed(map[string]*openapi3.Schema{
			"size": enumProp("Gap height preset.", "md", "sm", "md", "lg", "xl"),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Heading",
		Module:      ModuleComponents,
		Category:    CategoryTypography,
		Description: "Section heading rendered at the given level.",
		Schema: closed(map[string]*openapi3.Schema{
			"level":    intProp("Heading level, 1 is largest.", 2, 1, 6),
			"align":    enumProp("Text alignment.", "left", "left", "center", "right"),
			"children": strProp("Heading text."),
		}),
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "Text",
		Module:      ModuleComponents,
		Category:    CategoryTypography,
		Description: "Paragraph or inline body text.",
		Schema: closed(map[string]*openapi3.Schema{
			"size":     enumProp("Font size preset.", "md", "xs", "sm", "md", "lg"),
			"color":    enumProp("Semantic text colour.", "default", "default", "muted", "primary", "success", "warning", "danger"),
			"weight":   enumProp("Font weight.", "normal", "normal", "medium", "bold"),
			"children": strProp("Text content."),
		}),
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "Badge",
		Module:      ModuleComponents,
		Category:    CategoryTypography,
		Description: "Small status label.",
		Schema: closed(map[string]*openapi3.Schema{
			"variant":  enumProp("Badge colour variant.", "default", "default", "primary", "success", "warning", "danger"),
			"children": strProp("Badge text."),
		}),
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "Button",
		Module:      ModuleComponents,
		Category:    CategoryInput,
		Description: "Clickable action button.",
		Schema: closed(map[string]*openapi3.Schema{
			"variant":   enumProp("Visual emphasis.", "primary", "primary", "secondary", "outline", "ghost", "danger"),
			"size":      enumProp("Button size.", "md", "sm", "md", "lg"),
			"disabled":  boolProp("Disable interaction.", false),
			"fullWidth": boolProp("Stretch to the container width.", false),
			"icon":      strProp("Leading icon name."),
			"onClick":   strProp("Handler name invoked on click."),
			"children":  strProp("Button label."),
		}),
		HandlerProps:    []string{"onClick"},
		IconProps:       []string{"icon"},
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "Input",
		Module:      ModuleComponents,
		Category:    CategoryInput,
		Description: "Single-line text input with optional label.",
		Schema: closed(map[string]*openapi3.Schema{
			"type":        enumProp("HTML input type.", "text", "text", "email", "password", "number", "search", "tel", "url", "date"),
			"label":       strProp("Field label."),
			"placeholder": strProp("Placeholder text."),
			"value":       strProp("Initial value."),
			"disabled":    boolProp("Disable editing.", false),
			"required":    boolProp("Mark the field required.", false),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Textarea",
		Module:      ModuleComponents,
		Category:    CategoryInput,
		Description: "Multi-line text input.",
		Schema: closed(map[string]*openapi3.Schema{
			"label":       strProp("Field label."),
			"placeholder": strProp("Placeholder text."),
			"rows":        intProp("Visible line count.", 4, 1, 40),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Select",
		Module:      ModuleComponents,
		Category:    CategoryInput,
		Description: "Dropdown choice among fixed options.",
		Schema: closed(map[string]*openapi3.Schema{
			"label":       strProp("Field label."),
			"placeholder": strProp("Placeholder shown before a choice is made."),
			"options":     strArray("Option labels in display order."),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Checkbox",
		Module:      ModuleComponents,
		Category:    CategoryInput,
		Description: "Boolean toggle with a label.",
		Schema: closed(map[string]*openapi3.Schema{
			"label":    strProp("Checkbox label."),
			"checked":  boolProp("Initial checked state.", false),
			"disabled": boolProp("Disable interaction.", false),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Card",
		Module:      ModuleComponents,
		Category:    CategoryDisplay,
		Description: "Elevated content panel with an optional title.",
		Schema: closed(map[string]*openapi3.Schema{
			"title":     strProp("Card title."),
			"elevation": intProp("Shadow depth.", 1, 0, 4),
			"padding":   enumProp("Inner padding preset.", "md", "none", "sm", "md", "lg"),
		}),
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "Image",
		Module:      ModuleComponents,
		Category:    CategoryDisplay,
		Description: "Static image with required alt text.",
		Schema: closed(map[string]*openapi3.Schema{
			"src":     strProp("Image source URL."),
			"alt":     strDefault("Accessible description.", ""),
			"rounded": boolProp("Round the image corners.", false),
			"width":   intRange("Width in pixels.", 0, 4096),
			"height":  intRange("Height in pixels.", 0, 4096),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Avatar",
		Module:      ModuleComponents,
		Category:    CategoryDisplay,
		Description: "User avatar with initials fallback.",
		Schema: closed(map[string]*openapi3.Schema{
			"name": strProp("Display name used for initials."),
			"src":  strProp("Avatar image URL."),
			"size": enumProp("Avatar size.", "md", "sm", "md", "lg"),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Alert",
		Module:      ModuleComponents,
		Category:    CategoryDisplay,
		Description: "Inline callout conveying status or guidance.",
		Schema: closed(map[string]*openapi3.Schema{
			"variant":     enumProp("Alert severity.", "info", "info", "success", "warning", "error"),
			"title":       strProp("Alert title."),
			"dismissible": boolProp("Show a dismiss control.", false),
			"children":    strProp("Alert body text."),
		}),
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "Progress",
		Module:      ModuleComponents,
		Category:    CategoryDisplay,
		Description: "Linear progress indicator.",
		Schema: closed(map[string]*openapi3.Schema{
			"value":   numProp("Completion percentage.", 0, 0, 100),
			"label":   strProp("Caption shown beside the bar."),
			"variant": enumProp("Bar colour.", "primary", "primary", "success", "warning", "danger"),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Table",
		Module:      ModuleComponents,
		Category:    CategoryDisplay,
		Description: "Static data table with string cells.",
		Schema: closed(map[string]*openapi3.Schema{
			"columns": strArray("Column headers in display order."),
			"rows":    rowsProp("Row data; each row is a list of cell strings."),
			"striped": boolProp("Alternate row backgrounds.", false),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Icon",
		Module:      ModuleComponents,
		Category:    CategoryDisplay,
		Description: "Standalone icon from the icon vocabulary.",
		Schema: closed(map[string]*openapi3.Schema{
			"name": strProp("Icon name."),
			"size": enumProp("Icon size.", "md", "sm", "md", "lg"),
		}),
		IconProps: []string{"name"},
	})

	reg.MustRegister(Definition{
		Name:        "Tabs",
		Module:      ModuleComponents,
		Category:    CategoryNavigation,
		Description: "Horizontal tab strip; children render as the active panel.",
		Schema: closed(map[string]*openapi3.Schema{
			"tabs":         strArray("Tab labels in display order."),
			"defaultIndex": intProp("Initially selected tab.", 0, 0, 32),
		}),
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "Navbar",
		Module:      ModuleComponents,
		Category:    CategoryNavigation,
		Description: "Top navigation bar with optional dropdown menu.",
		Behavior:    BehaviorNavbar,
		Schema: closed(map[string]*openapi3.Schema{
			"title":       strProp("Brand or product title."),
			"links":       linkArray("Navigation links."),
			"hasDropdown": boolProp("Render a dropdown menu toggle.", false),
			"sticky":      boolProp("Pin the bar to the top of the viewport.", false),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Sidebar",
		Module:      ModuleComponents,
		Category:    CategoryNavigation,
		Description: "Vertical navigation rail, optionally collapsible.",
		Behavior:    BehaviorSidebar,
		Schema: closed(map[string]*openapi3.Schema{
			"title":       strProp("Sidebar heading."),
			"items":       linkArray("Navigation entries."),
			"collapsible": boolProp("Allow collapsing to icons only.", false),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Footer",
		Module:      ModuleComponents,
		Category:    CategoryNavigation,
		Description: "Page footer with optional link list.",
		Schema: closed(map[string]*openapi3.Schema{
			"text":  strProp("Footer copy."),
			"links": linkArray("Footer links."),
		}),
	})

	reg.MustRegister(Definition{
		Name:        "Modal",
		Module:      ModuleComponents,
		Category:    CategoryOverlay,
		Description: "Dialog overlay. Generated code always wires open state and a close handler.",
		Behavior:    BehaviorModal,
		Schema: closed(map[string]*openapi3.Schema{
			"title":   strProp("Dialog title."),
			"open":    boolProp("Initial visibility; rebound to generated state.", false),
			"size":    enumProp("Dialog width.", "md", "sm", "md", "lg"),
			"onClose": strProp("Handler name invoked when dismissing."),
		}),
		HandlerProps:    []string{"onClose"},
		AcceptsChildren: true,
	})

	reg.MustRegister(Definition{
		Name:        "BarChart",
		Module:      ModuleCharts,
		Category:    CategoryChart,
		Description: "Vertical bar chart over a label/value series.",
		Schema:      chartSchema(),
	})

	reg.MustRegister(Definition{
		Name:        "LineChart",
		Module:      ModuleCharts,
		Category:    CategoryChart,
		Description: "Line chart over a label/value series.",
		Schema:      chartSchema(),
	})

	reg.MustRegister(Definition{
		Name:        "PieChart",
		Module:      ModuleCharts,
		Category:    CategoryChart,
		Description: "Pie chart over a label/value series.",
		Schema:      chartSchema(),
	})

	if err := reg.SetWrapper(WrapperComponent); err != nil {
		panic(err)
	}

	for _, name := range builtinIcons {
		if err := reg.RegisterIcon(name); err != nil {
			panic(err)
		}
	}
}

var builtinIcons = []string{
	"arrow-left", "arrow-right", "bell", "calendar", "chart", "check",
	"chevron-down", "chevron-up", "close", "download", "edit", "external-link",
	"eye", "file", "filter", "folder", "globe", "grid", "heart", "home",
	"image", "info", "lock", "log-out", "mail", "menu", "minus", "moon",
	"plus", "refresh", "search", "settings", "star", "sun", "table", "trash",
	"upload", "user", "warning",
}

func chartSchema() *openapi3.Schema {
	return closed(map[string]*openapi3.Schema{
		"title":      strProp("Chart title."),
		"data":       chartDataProp(),
		"height":     intProp("Chart height in pixels.", 240, 80, 1024),
		"color":      enumProp("Series colour.", "primary", "primary", "success", "warning", "danger"),
		"showLegend": boolProp("Render a legend.", false),
	})
}

func closed(props map[string]*openapi3.Schema) *openapi3.Schema {
	schema := &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: make(openapi3.Schemas, len(props)),
		AdditionalProperties: openapi3.AdditionalProperties{
			Has: boolPtr(false),
		},
	}
	for name, prop := range props {
		schema.Properties[name] = openapi3.NewSchemaRef("", prop)
	}
	return schema
}

func strProp(description string) *openapi3.Schema {
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeString},
		Description: description,
	}
}

func strDefault(description, value string) *openapi3.Schema {
	schema := strProp(description)
	schema.Default = value
	return schema
}

func enumProp(description, def string, values ...string) *openapi3.Schema {
	schema := strProp(description)
	schema.Default = def
	schema.Enum = make([]any, len(values))
	for i, value := range values {
		schema.Enum[i] = value
	}
	return schema
}

func boolProp(description string, def bool) *openapi3.Schema {
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeBoolean},
		Description: description,
		Default:     def,
	}
}

func intProp(description string, def, min, max int) *openapi3.Schema {
	minV := float64(min)
	maxV := float64(max)
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeInteger},
		Description: description,
		Default:     def,
		Min:         &minV,
		Max:         &maxV,
	}
}

func intRange(description string, min, max int) *openapi3.Schema {
	minV := float64(min)
	maxV := float64(max)
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeInteger},
		Description: description,
		Min:         &minV,
		Max:         &maxV,
	}
}

func numProp(description string, def, min, max float64) *openapi3.Schema {
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeNumber},
		Description: description,
		Default:     def,
		Min:         &min,
		Max:         &max,
	}
}

func strArray(description string) *openapi3.Schema {
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeArray},
		Description: description,
		Items:       openapi3.NewSchemaRef("", strProp("")),
	}
}

func rowsProp(description string) *openapi3.Schema {
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeArray},
		Description: description,
		Items:       openapi3.NewSchemaRef("", strArray("")),
	}
}

func linkArray(description string) *openapi3.Schema {
	item := closed(map[string]*openapi3.Schema{
		"label": strProp("Link text."),
		"href":  strDefault("Link target.", "#"),
		"icon":  strProp("Optional leading icon name."),
	})
	item.Required = []string{"label"}
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeArray},
		Description: description,
		Items:       openapi3.NewSchemaRef("", item),
	}
}

func chartDataProp() *openapi3.Schema {
	item := closed(map[string]*openapi3.Schema{
		"label": strProp("Category label."),
		"value": numProp("Data point value.", 0, -1e9, 1e9),
	})
	item.Required = []string{"label", "value"}
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeArray},
		Description: "Data series; a fixed illustrative series is used when absent.",
		Items:       openapi3.NewSchemaRef("", item),
	}
}

func boolPtr(v bool) *bool {
	return &v
}
