package preview

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/sandbox"
)

func testDocument() *ast.Document {
	return &ast.Document{
		Layout: ast.LayoutStack,
		Theme:  ast.ThemeLight,
		Components: []ast.Node{
			{
				Type:  "Card",
				Props: map[string]any{"title": "Welcome"},
				Children: []ast.Child{
					ast.NodeChild(ast.Node{
						Type:     "Button",
						Props:    map[string]any{"variant": "primary", "icon": "search"},
						Children: []ast.Child{ast.TextChild("Click me")},
					}),
				},
			},
		},
	}
}

func TestRenderDocument(t *testing.T) {
	t.Parallel()

	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	page, err := r.RenderDocument(context.Background(), testDocument())
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	got := string(page)
	for _, want := range []string{
		`<!DOCTYPE html>`,
		`data-theme="light"`,
		`ui-layout-stack`,
		`<h3 class="ui-card-title">Welcome</h3>`,
		`ui-button-primary`,
		`data-icon="search"`,
		`Click me`,
		`--ui-accent`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderDocumentDarkTheme(t *testing.T) {
	t.Parallel()

	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	doc := testDocument()
	doc.Theme = ast.ThemeDark
	page, err := r.RenderDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if !strings.Contains(string(page), `data-theme="dark"`) {
		t.Error("page missing dark theme attribute")
	}
	if !strings.Contains(string(page), darkPalette["--ui-bg"]) {
		t.Error("page missing dark background variable")
	}
}

func TestRenderDocumentEscapesText(t *testing.T) {
	t.Parallel()

	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	doc := &ast.Document{
		Layout: ast.LayoutStack,
		Theme:  ast.ThemeLight,
		Components: []ast.Node{
			{
				Type:     "Text",
				Children: []ast.Child{ast.TextChild(`<script>alert("x")</script> & more`)},
			},
		},
	}
	page, err := r.RenderDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	got := string(page)
	if strings.Contains(got, `<script>alert`) {
		t.Error("script tag survived into the page")
	}
	if !strings.Contains(got, `&amp; more`) {
		t.Error("text content not escaped")
	}
}

func TestRenderDocumentErrorBoundary(t *testing.T) {
	t.Parallel()

	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	doc := &ast.Document{
		Layout: ast.LayoutStack,
		Theme:  ast.ThemeLight,
		Components: []ast.Node{
			{Type: "Carousel"},
			{Type: "Text", Children: []ast.Child{ast.TextChild("still here")}},
		},
	}
	page, err := r.RenderDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	got := string(page)
	if !strings.Contains(got, `class="ui-error"`) {
		t.Error("page missing error boundary for unknown component")
	}
	if !strings.Contains(got, "still here") {
		t.Error("sibling did not render after error boundary")
	}
}

func TestRenderNodeMissingIconPlaceholder(t *testing.T) {
	t.Parallel()

	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	node := &ast.Node{
		Type: "Flex",
		Children: []ast.Child{
			ast.NodeChild(ast.Node{
				Type:  sandbox.MissingIcon,
				Props: map[string]any{"name": "Sparkle"},
			}),
		},
	}
	page, err := r.RenderNode(context.Background(), node)
	if err != nil {
		t.Fatalf("RenderNode() error = %v", err)
	}
	if !strings.Contains(string(page), "ui-icon-missing") {
		t.Error("page missing icon placeholder")
	}
	if !strings.Contains(string(page), "Sparkle") {
		t.Error("placeholder does not name the icon")
	}
}

func TestRenderDocumentChartFallbackSeries(t *testing.T) {
	t.Parallel()

	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	doc := &ast.Document{
		Layout: ast.LayoutStack,
		Theme:  ast.ThemeLight,
		Components: []ast.Node{
			{Type: "BarChart", Props: map[string]any{"title": "Revenue"}},
		},
	}
	page, err := r.RenderDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	got := string(page)
	if !strings.Contains(got, "Revenue") {
		t.Error("chart title missing")
	}
	for _, label := range []string{"Jan", "Feb", "Mar", "Apr", "May"} {
		if !strings.Contains(got, label) {
			t.Errorf("fallback series label %q missing", label)
		}
	}
}

func TestRenderDocumentThemeConfigOverride(t *testing.T) {
	t.Parallel()

	r, err := New(WithThemeConfig(&theme.RendererConfig{
		Theme:   "acme",
		CSSVars: map[string]string{"--ui-accent": "#bada55"},
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	page, err := r.RenderDocument(context.Background(), testDocument())
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if !strings.Contains(string(page), "#bada55") {
		t.Error("manifest CSS vars not applied")
	}
}
