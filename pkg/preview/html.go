package preview

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/registry"
	"github.com/goliatone/go-uigen/pkg/sandbox"
	"github.com/goliatone/go-uigen/pkg/validate"
)

type htmlWriter struct {
	registry *registry.Registry
}

// renderNode renders one element and its subtree. Failures stay local: a bad
// node becomes an error boundary and its siblings still render.
func (w *htmlWriter) renderNode(node *ast.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == sandbox.MissingIcon {
		name, _ := node.Props["name"].(string)
		return fmt.Sprintf(`<span class="ui-icon ui-icon-missing" title="unknown icon">%s</span>`,
			html.EscapeString(name))
	}

	def, ok := w.registry.Definition(node.Type)
	if !ok {
		return errorBoundary(fmt.Sprintf("unknown component %q", node.Type))
	}

	props, errs, _ := validate.CheckProps(def, node.Props)
	if len(errs) > 0 {
		return errorBoundary(fmt.Sprintf("%s: %s", node.Type, strings.Join(errs, "; ")))
	}

	return w.renderComponent(node, props)
}

func (w *htmlWriter) renderComponent(node *ast.Node, props map[string]any) string {
	content := w.renderChildren(node, props)

	switch node.Type {
	case "Container":
		return fmt.Sprintf(`<div class="ui-container ui-container-%s">%s</div>`, str(props, "maxWidth"), content)
	case "Grid":
		return fmt.Sprintf(`<div class="ui-grid" style="--ui-grid-cols: %d">%s</div>`, integer(props, "columns", 2), content)
	case "Flex":
		classes := "ui-flex"
		if str(props, "direction") == "column" {
			classes += " ui-flex-column"
		}
		return fmt.Sprintf(`<div class="%s">%s</div>`, classes, content)
	case "Divider":
		if label := str(props, "label"); label != "" {
			return fmt.Sprintf(`<div class="ui-divider-labelled">%s</div>`, html.EscapeString(label))
		}
		return `<hr class="ui-divider">`
	case "Spacer":
		return fmt.Sprintf(`<div class="ui-spacer ui-spacer-%s"></div>`, str(props, "size"))
	case "Heading":
		level := integer(props, "level", 2)
		if level < 1 || level > 6 {
			level = 2
		}
		return fmt.Sprintf(`<h%d class="ui-heading" style="text-align: %s">%s</h%d>`,
			level, str(props, "align"), content, level)
	case "Text":
		classes := "ui-text"
		if color := str(props, "color"); color != "" && color != "default" {
			classes += " ui-text-" + color
		}
		return fmt.Sprintf(`<p class="%s">%s</p>`, classes, content)
	case "Badge":
		return fmt.Sprintf(`<span class="ui-badge ui-badge-%s">%s</span>`, str(props, "variant"), content)
	case "Button":
		return w.renderButton(props, content)
	case "Input":
		return w.renderField(props, fmt.Sprintf(`<input class="ui-input" type="%s" placeholder="%s" value="%s"%s>`,
			str(props, "type"), attrEscape(str(props, "placeholder")), attrEscape(str(props, "value")),
			flagAttr(props, "disabled", " disabled")+flagAttr(props, "required", " required")))
	case "Textarea":
		return w.renderField(props, fmt.Sprintf(`<textarea class="ui-textarea" rows="%d" placeholder="%s"></textarea>`,
			integer(props, "rows", 4), attrEscape(str(props, "placeholder"))))
	case "Select":
		return w.renderField(props, w.renderSelect(props))
	case "Checkbox":
		return fmt.Sprintf(`<label class="ui-checkbox"><input type="checkbox"%s%s> %s</label>`,
			flagAttr(props, "checked", " checked"), flagAttr(props, "disabled", " disabled"),
			html.EscapeString(str(props, "label")))
	case "Card":
		var title string
		if t := str(props, "title"); t != "" {
			title = fmt.Sprintf(`<h3 class="ui-card-title">%s</h3>`, html.EscapeString(t))
		}
		return fmt.Sprintf(`<section class="ui-card ui-card-elevation-%d">%s%s</section>`,
			integer(props, "elevation", 1), title, content)
	case "Image":
		classes := "ui-image"
		if boolean(props, "rounded") {
			classes += " ui-image-rounded"
		}
		return fmt.Sprintf(`<img class="%s" src="%s" alt="%s"%s%s>`,
			classes, attrEscape(str(props, "src")), attrEscape(str(props, "alt")),
			dimensionAttr(props, "width"), dimensionAttr(props, "height"))
	case "Avatar":
		return w.renderAvatar(props)
	case "Alert":
		var title string
		if t := str(props, "title"); t != "" {
			title = fmt.Sprintf(`<strong>%s</strong> `, html.EscapeString(t))
		}
		return fmt.Sprintf(`<div class="ui-alert ui-alert-%s" role="alert">%s%s</div>`,
			str(props, "variant"), title, content)
	case "Progress":
		var label string
		if l := str(props, "label"); l != "" {
			label = fmt.Sprintf(`<span class="ui-field-label">%s</span>`, html.EscapeString(l))
		}
		return fmt.Sprintf(`<div class="ui-field">%s<progress class="ui-progress" value="%g" max="100"></progress></div>`,
			label, number(props, "value", 0))
	case "Table":
		return w.renderTable(props)
	case "Icon":
		return iconSpan(str(props, "name"))
	case "Tabs":
		return w.renderTabs(props, content)
	case "Navbar":
		return w.renderNavbar(props)
	case "Sidebar":
		return w.renderSidebar(props)
	case "Footer":
		return w.renderFooter(props)
	case "Modal":
		var title string
		if t := str(props, "title"); t != "" {
			title = fmt.Sprintf(`<h3 class="ui-card-title">%s</h3>`, html.EscapeString(t))
		}
		return fmt.Sprintf(`<div class="ui-modal-backdrop"><div class="ui-modal ui-modal-%s" role="dialog">%s%s</div></div>`,
			str(props, "size"), title, content)
	case "BarChart", "LineChart", "PieChart":
		return w.renderChart(node.Type, props)
	default:
		// registered but without a dedicated rendering: generic block
		return fmt.Sprintf(`<div class="ui-%s">%s</div>`, strings.ToLower(node.Type), content)
	}
}

// renderChildren concatenates child content. When the node has no child list
// a string children prop serves as the content.
func (w *htmlWriter) renderChildren(node *ast.Node, props map[string]any) string {
	if len(node.Children) == 0 {
		return sanitizeText(str(props, "children"))
	}
	var b strings.Builder
	for i := range node.Children {
		child := node.Children[i]
		if child.IsText() {
			// sanitizer output is already escaped
			b.WriteString(sanitizeText(child.Text))
			continue
		}
		b.WriteString(w.renderNode(child.Node))
	}
	return b.String()
}

func (w *htmlWriter) renderButton(props map[string]any, content string) string {
	classes := "ui-button ui-button-" + str(props, "variant")
	if boolean(props, "fullWidth") {
		classes += " ui-button-full"
	}
	var icon string
	if name := str(props, "icon"); name != "" {
		icon = iconSpan(name)
	}
	return fmt.Sprintf(`<button class="%s" type="button"%s>%s%s</button>`,
		classes, flagAttr(props, "disabled", " disabled"), icon, content)
}

func (w *htmlWriter) renderField(props map[string]any, control string) string {
	label := str(props, "label")
	if label == "" {
		return control
	}
	return fmt.Sprintf(`<label class="ui-field"><span class="ui-field-label">%s</span>%s</label>`,
		html.EscapeString(label), control)
}

func (w *htmlWriter) renderSelect(props map[string]any) string {
	var b strings.Builder
	b.WriteString(`<select class="ui-select">`)
	if placeholder := str(props, "placeholder"); placeholder != "" {
		fmt.Fprintf(&b, `<option value="" disabled selected>%s</option>`, html.EscapeString(placeholder))
	}
	for _, option := range stringList(props, "options") {
		fmt.Fprintf(&b, `<option>%s</option>`, html.EscapeString(option))
	}
	b.WriteString(`</select>`)
	return b.String()
}

func (w *htmlWriter) renderAvatar(props map[string]any) string {
	size := map[string]int{"sm": 28, "md": 40, "lg": 56}[str(props, "size")]
	if size == 0 {
		size = 40
	}
	if src := str(props, "src"); src != "" {
		return fmt.Sprintf(`<img class="ui-avatar" src="%s" alt="%s" width="%d" height="%d">`,
			attrEscape(src), attrEscape(str(props, "name")), size, size)
	}
	return fmt.Sprintf(`<span class="ui-avatar ui-avatar-initials" style="width: %dpx; height: %dpx">%s</span>`,
		size, size, html.EscapeString(initials(str(props, "name"))))
}

func (w *htmlWriter) renderTable(props map[string]any) string {
	classes := "ui-table"
	if boolean(props, "striped") {
		classes += " ui-table-striped"
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<table class="%s">`, classes)

	columns := stringList(props, "columns")
	if len(columns) > 0 {
		b.WriteString("<thead><tr>")
		for _, col := range columns {
			fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(col))
		}
		b.WriteString("</tr></thead>")
	}

	rows, _ := props["rows"].([]any)
	b.WriteString("<tbody>")
	for _, raw := range rows {
		cells, _ := raw.([]any)
		b.WriteString("<tr>")
		for _, cell := range cells {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(fmt.Sprint(cell)))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func (w *htmlWriter) renderTabs(props map[string]any, content string) string {
	active := integer(props, "defaultIndex", 0)
	var b strings.Builder
	b.WriteString(`<div class="ui-tabs-wrap"><div class="ui-tabs" role="tablist">`)
	for i, tab := range stringList(props, "tabs") {
		classes := "ui-tab"
		if i == active {
			classes += " ui-tab-active"
		}
		fmt.Fprintf(&b, `<button class="%s" role="tab" type="button">%s</button>`, classes, html.EscapeString(tab))
	}
	b.WriteString(`</div>`)
	if content != "" {
		fmt.Fprintf(&b, `<div class="ui-tab-panel" role="tabpanel">%s</div>`, content)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (w *htmlWriter) renderNavbar(props map[string]any) string {
	var b strings.Builder
	b.WriteString(`<nav class="ui-navbar">`)
	if title := str(props, "title"); title != "" {
		fmt.Fprintf(&b, `<strong>%s</strong>`, html.EscapeString(title))
	}
	b.WriteString(`<div class="ui-navbar-links">`)
	w.writeLinks(&b, props, "links")
	if boolean(props, "hasDropdown") {
		b.WriteString(`<button class="ui-button ui-button-ghost" type="button">`)
		b.WriteString(iconSpan("chevron-down"))
		b.WriteString(`</button>`)
	}
	b.WriteString(`</div></nav>`)
	return b.String()
}

func (w *htmlWriter) renderSidebar(props map[string]any) string {
	var b strings.Builder
	b.WriteString(`<aside class="ui-sidebar">`)
	if title := str(props, "title"); title != "" {
		fmt.Fprintf(&b, `<strong>%s</strong>`, html.EscapeString(title))
	}
	w.writeLinks(&b, props, "items")
	b.WriteString(`</aside>`)
	return b.String()
}

func (w *htmlWriter) renderFooter(props map[string]any) string {
	var b strings.Builder
	b.WriteString(`<footer class="ui-footer">`)
	if text := str(props, "text"); text != "" {
		fmt.Fprintf(&b, `<span>%s</span>`, html.EscapeString(text))
	}
	w.writeLinks(&b, props, "links")
	b.WriteString(`</footer>`)
	return b.String()
}

func (w *htmlWriter) writeLinks(b *strings.Builder, props map[string]any, key string) {
	links, _ := props[key].([]any)
	for _, raw := range links {
		link, _ := raw.(map[string]any)
		if link == nil {
			continue
		}
		label, _ := link["label"].(string)
		href, _ := link["href"].(string)
		if href == "" {
			href = "#"
		}
		var icon string
		if name, _ := link["icon"].(string); name != "" {
			icon = iconSpan(name)
		}
		fmt.Fprintf(b, `<a href="%s">%s%s</a>`, attrEscape(href), icon, html.EscapeString(label))
	}
}

type chartPoint struct {
	label string
	value float64
}

func (w *htmlWriter) renderChart(kind string, props map[string]any) string {
	points := chartPoints(props)
	if len(points) == 0 {
		for _, p := range registry.DefaultChartSeries() {
			points = append(points, chartPoint{label: p.Label, value: p.Value})
		}
	}

	height := integer(props, "height", 240)
	var b strings.Builder
	b.WriteString(`<figure class="ui-chart">`)
	if title := str(props, "title"); title != "" {
		fmt.Fprintf(&b, `<figcaption class="ui-chart-title">%s</figcaption>`, html.EscapeString(title))
	}

	switch kind {
	case "BarChart":
		writeBarSVG(&b, points, height)
	case "LineChart":
		writeLineSVG(&b, points, height)
	case "PieChart":
		writePieSVG(&b, points)
	}
	b.WriteString(`</figure>`)
	return b.String()
}

func chartPoints(props map[string]any) []chartPoint {
	raw, _ := props["data"].([]any)
	points := make([]chartPoint, 0, len(raw))
	for _, item := range raw {
		m, _ := item.(map[string]any)
		if m == nil {
			continue
		}
		label, _ := m["label"].(string)
		value, _ := m["value"].(float64)
		points = append(points, chartPoint{label: label, value: value})
	}
	return points
}

const chartWidth = 400

func writeBarSVG(b *strings.Builder, points []chartPoint, height int) {
	maxV := maxValue(points)
	fmt.Fprintf(b, `<svg viewBox="0 0 %d %d" role="img">`, chartWidth, height)
	slot := float64(chartWidth) / float64(len(points))
	for i, p := range points {
		barH := (p.value / maxV) * float64(height-24)
		x := float64(i)*slot + slot*0.15
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="var(--ui-accent)"></rect>`,
			x, float64(height-20)-barH, slot*0.7, barH)
		fmt.Fprintf(b, `<text x="%.1f" y="%d" font-size="11" text-anchor="middle" fill="var(--ui-muted)">%s</text>`,
			float64(i)*slot+slot/2, height-6, html.EscapeString(p.label))
	}
	b.WriteString(`</svg>`)
}

func writeLineSVG(b *strings.Builder, points []chartPoint, height int) {
	maxV := maxValue(points)
	fmt.Fprintf(b, `<svg viewBox="0 0 %d %d" role="img">`, chartWidth, height)
	slot := float64(chartWidth) / float64(len(points))
	coords := make([]string, 0, len(points))
	for i, p := range points {
		x := float64(i)*slot + slot/2
		y := float64(height-20) - (p.value/maxV)*float64(height-24)
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
		fmt.Fprintf(b, `<text x="%.1f" y="%d" font-size="11" text-anchor="middle" fill="var(--ui-muted)">%s</text>`,
			x, height-6, html.EscapeString(p.label))
	}
	fmt.Fprintf(b, `<polyline points="%s" fill="none" stroke="var(--ui-accent)" stroke-width="2"></polyline>`,
		strings.Join(coords, " "))
	b.WriteString(`</svg>`)
}

func writePieSVG(b *strings.Builder, points []chartPoint) {
	var total float64
	for _, p := range points {
		total += p.value
	}
	if total <= 0 {
		total = 1
	}
	// each slice is a stroked arc on the same circle, offset by the running
	// share of the total
	const r, circ = 15.9155, 100.0
	b.WriteString(`<svg viewBox="0 0 42 42" role="img">`)
	offset := 25.0
	for i, p := range points {
		share := p.value / total * circ
		fmt.Fprintf(b, `<circle cx="21" cy="21" r="%g" fill="transparent" stroke="%s" stroke-width="8" stroke-dasharray="%.2f %.2f" stroke-dashoffset="%.2f"></circle>`,
			r, pieColor(i), share, circ-share, offset)
		offset -= share
	}
	b.WriteString(`</svg>`)
}

func pieColor(i int) string {
	colors := []string{"var(--ui-accent)", "var(--ui-success)", "var(--ui-warning)", "var(--ui-danger)", "var(--ui-muted)"}
	return colors[i%len(colors)]
}

func maxValue(points []chartPoint) float64 {
	top := 0.0
	for _, p := range points {
		if p.value > top {
			top = p.value
		}
	}
	if top <= 0 {
		return 1
	}
	return top
}

func iconSpan(name string) string {
	return fmt.Sprintf(`<span class="ui-icon" data-icon="%s" aria-hidden="true">%s</span>`,
		attrEscape(name), iconGlyph(name))
}

var iconGlyphs = map[string]string{
	"arrow-left": "←", "arrow-right": "→", "bell": "🔔", "calendar": "📅",
	"chart": "📊", "check": "✓", "chevron-down": "⌄", "chevron-up": "⌃",
	"close": "✕", "download": "⤓", "edit": "✎", "eye": "👁", "file": "📄",
	"filter": "⚟", "folder": "📁", "globe": "🌐", "heart": "♥", "home": "⌂",
	"info": "ℹ", "lock": "🔒", "mail": "✉", "menu": "☰", "minus": "−",
	"moon": "☾", "plus": "+", "refresh": "↻", "search": "🔍", "settings": "⚙",
	"star": "★", "sun": "☀", "trash": "🗑", "upload": "⤒", "user": "👤",
	"warning": "⚠",
}

func iconGlyph(name string) string {
	if glyph, ok := iconGlyphs[name]; ok {
		return glyph
	}
	return "◆"
}

func errorBoundary(message string) string {
	return fmt.Sprintf(`<div class="ui-error" role="note">%s</div>`, html.EscapeString(message))
}

func initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "?"
	}
	var b strings.Builder
	for i, field := range fields {
		if i == 2 {
			break
		}
		b.WriteString(strings.ToUpper(string([]rune(field)[0])))
	}
	return b.String()
}

func str(props map[string]any, key string) string {
	v, _ := props[key].(string)
	return v
}

func boolean(props map[string]any, key string) bool {
	v, _ := props[key].(bool)
	return v
}

func number(props map[string]any, key string, def float64) float64 {
	if v, ok := props[key].(float64); ok {
		return v
	}
	return def
}

func integer(props map[string]any, key string, def int) int {
	if v, ok := props[key].(float64); ok {
		return int(v)
	}
	return def
}

func stringList(props map[string]any, key string) []string {
	raw, _ := props[key].([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func flagAttr(props map[string]any, key, attr string) string {
	if boolean(props, key) {
		return attr
	}
	return ""
}

func dimensionAttr(props map[string]any, key string) string {
	if v, ok := props[key].(float64); ok && v > 0 {
		return fmt.Sprintf(` %s="%d"`, key, int(v))
	}
	return ""
}

func attrEscape(v string) string {
	return html.EscapeString(v)
}
