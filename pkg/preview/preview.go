// Package preview turns element trees into standalone HTML pages. Trees are
// rendered directly, component by component, so a preview never round-trips
// through generated source. Subtrees that fail render as visible error
// boundaries instead of failing the page.
package preview

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/registry"
	"github.com/goliatone/go-uigen/pkg/render/template/gotemplate"
)

// Option configures the preview renderer.
type Option func(*config)

type config struct {
	registry    *registry.Registry
	templateFS  fs.FS
	stylesheet  string
	title       string
	themeConfig *theme.RendererConfig
}

// WithRegistry sets the catalog consulted for prop defaults and icons.
func WithRegistry(reg *registry.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithTemplatesFS supplies an alternate page template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithStylesheet replaces the bundled stylesheet.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = css
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

// WithThemeConfig overrides the built-in palettes with a theme manifest
// selection.
func WithThemeConfig(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.themeConfig = cfg
	}
}

// Renderer produces HTML pages from documents.
type Renderer struct {
	registry    *registry.Registry
	templates   *gotemplate.Engine
	stylesheet  string
	title       string
	themeConfig *theme.RendererConfig
}

// New constructs a Renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		registry:   registry.Default(),
		templateFS: TemplatesFS(),
		stylesheet: defaultStylesheet(),
		title:      "Generated UI",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("preview: configure template engine: %w", err)
	}

	return &Renderer{
		registry:    cfg.registry,
		templates:   engine,
		stylesheet:  cfg.stylesheet,
		title:       cfg.title,
		themeConfig: cfg.themeConfig,
	}, nil
}

// ContentType is the media type of rendered pages.
const ContentType = "text/html; charset=utf-8"

// RenderDocument renders a full page for doc.
func (r *Renderer) RenderDocument(_ context.Context, doc *ast.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("preview: document is nil")
	}

	themeName := ast.NormalizeTheme(string(doc.Theme))
	if themeName == "" {
		themeName = ast.ThemeLight
	}
	layoutKind := ast.NormalizeLayout(string(doc.Layout))
	if layoutKind == "" {
		layoutKind = ast.LayoutStack
	}
	layout := strings.ToLower(string(layoutKind))

	w := &htmlWriter{registry: r.registry}
	var body strings.Builder
	body.WriteString(`<div class="ui-container">`)
	for i := range doc.Components {
		body.WriteString(w.renderNode(&doc.Components[i]))
	}
	body.WriteString(`</div>`)

	page, err := r.templates.RenderTemplate("templates/page.tmpl", map[string]any{
		"title":      r.title,
		"layout":     layout,
		"theme_name": string(themeName),
		"theme_css":  r.themeCSS(themeName),
		"body":       body.String(),
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("preview: render page: %w", err)
	}
	return []byte(page), nil
}

// RenderNode renders a page for a single root element, as produced by
// sandboxed execution. The node is wrapped in a document with defaults.
func (r *Renderer) RenderNode(ctx context.Context, node *ast.Node) ([]byte, error) {
	if node == nil {
		return nil, fmt.Errorf("preview: node is nil")
	}
	doc := &ast.Document{
		Layout:     ast.LayoutStack,
		Theme:      ast.ThemeLight,
		Components: []ast.Node{*node},
	}
	return r.RenderDocument(ctx, doc)
}

// themeCSS emits the CSS variable block for the selected theme. A manifest
// selection wins over the built-in palettes.
func (r *Renderer) themeCSS(name ast.Theme) string {
	if r.themeConfig != nil && len(r.themeConfig.CSSVars) > 0 {
		return cssVarsStyle(r.themeConfig.CSSVars)
	}
	if name == ast.ThemeDark {
		return cssVarsStyle(darkPalette)
	}
	return cssVarsStyle(lightPalette)
}

var lightPalette = map[string]string{
	"--ui-bg":          "#f6f7f9",
	"--ui-surface":     "#ffffff",
	"--ui-fg":          "#1b1f24",
	"--ui-muted":       "#61707f",
	"--ui-border":      "#d9dee4",
	"--ui-accent":      "#2563eb",
	"--ui-accent-soft": "#e8eefc",
	"--ui-success":     "#16a34a",
	"--ui-warning":     "#d97706",
	"--ui-danger":      "#dc2626",
	"--ui-shadow":      "rgba(15, 23, 42, 0.12)",
}

var darkPalette = map[string]string{
	"--ui-bg":          "#0f141a",
	"--ui-surface":     "#1a212b",
	"--ui-fg":          "#e6ebf1",
	"--ui-muted":       "#8b99a8",
	"--ui-border":      "#2c3540",
	"--ui-accent":      "#60a5fa",
	"--ui-accent-soft": "#1e2a3d",
	"--ui-success":     "#4ade80",
	"--ui-warning":     "#fbbf24",
	"--ui-danger":      "#f87171",
	"--ui-shadow":      "rgba(0, 0, 0, 0.5)",
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips any markup from user-influenced text content before it
// lands in the page.
func sanitizeText(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy.Sanitize(raw)
}
