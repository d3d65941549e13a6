package codegen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uigen/pkg/ast"
)

func TestGenerateButton(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutStack,
		Theme:  ast.ThemeLight,
		Components: []ast.Node{{
			Type:     "Button",
			Props:    map[string]any{"variant": "primary"},
			Children: []ast.Child{ast.TextChild("Click me")},
		}},
	}

	result := New().Generate(doc)
	if len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Fatalf("Generate() errors = %v, warnings = %v", result.Errors, result.Warnings)
	}

	want := `import { Button } from '@uigen/components';
import { Container } from '@uigen/layout';

export default function GeneratedUI() {
  return (
    <Container layout="stack" theme="light">
      <Button disabled={false} fullWidth={false} size="md" variant="primary">
        Click me
      </Button>
    </Container>
  );
}
`
	if diff := cmp.Diff(want, result.Code); diff != "" {
		t.Fatalf("code mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Button", "Container"}, result.UsedComponents); diff != "" {
		t.Fatalf("used components mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutGrid,
		Theme:  ast.ThemeDark,
		Components: []ast.Node{
			{Type: "Card", Props: map[string]any{"title": "One"}},
			{Type: "Card", Props: map[string]any{"title": "Two"}},
			{Type: "BarChart", Props: map[string]any{"title": "Sales"}},
		},
	}

	gen := New()
	first := gen.Generate(doc)
	for i := 0; i < 5; i++ {
		if again := gen.Generate(doc); again.Code != first.Code {
			t.Fatal("Generate() output varied across runs")
		}
	}
}

func TestGenerateModalScaffolding(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutStack,
		Components: []ast.Node{{
			Type:  "Modal",
			Props: map[string]any{"title": "Confirm", "open": true},
			Children: []ast.Child{
				ast.TextChild("Are you sure?"),
			},
		}},
	}

	result := New().Generate(doc)
	if len(result.Errors) != 0 {
		t.Fatalf("Generate() errors = %v", result.Errors)
	}

	for _, want := range []string{
		"import { useState } from 'react';",
		"const [modalOpen, setModalOpen] = useState(false);",
		"const closeModal = () => setModalOpen(false);",
		"open={modalOpen}",
		"onClose={closeModal}",
	} {
		if !strings.Contains(result.Code, want) {
			t.Errorf("code missing %q:\n%s", want, result.Code)
		}
	}

	// the AST's literal open value must not survive the rebinding
	if strings.Contains(result.Code, "open={true}") {
		t.Fatal("modal open prop was not rebound to state")
	}
}

func TestGenerateNoDeadState(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutStack,
		Components: []ast.Node{{
			Type:  "Text",
			Props: map[string]any{"children": "static"},
		}},
	}

	result := New().Generate(doc)
	if strings.Contains(result.Code, "useState") {
		t.Fatalf("stateless document carries state:\n%s", result.Code)
	}
	if strings.Contains(result.Code, "noop") {
		t.Fatalf("stateless document carries a no-op handler:\n%s", result.Code)
	}
}

func TestGenerateSidebarCollapseState(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutSplit,
		Components: []ast.Node{{
			Type:  "Sidebar",
			Props: map[string]any{"title": "Menu", "collapsible": true},
		}},
	}

	result := New().Generate(doc)
	for _, want := range []string{
		"const [sidebarCollapsed, setSidebarCollapsed] = useState(false);",
		"collapsed={sidebarCollapsed}",
		"onToggle={toggleSidebar}",
	} {
		if !strings.Contains(result.Code, want) {
			t.Errorf("code missing %q:\n%s", want, result.Code)
		}
	}

	// a non-collapsible sidebar gets neither state nor toggle attrs
	plain := New().Generate(ast.Document{
		Layout: ast.LayoutSplit,
		Components: []ast.Node{{
			Type:  "Sidebar",
			Props: map[string]any{"title": "Menu"},
		}},
	})
	if strings.Contains(plain.Code, "sidebarCollapsed") {
		t.Fatalf("non-collapsible sidebar carries collapse state:\n%s", plain.Code)
	}
}

func TestGenerateIconImportAliasing(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutStack,
		Components: []ast.Node{
			{Type: "Button", Props: map[string]any{"children": "Export", "icon": "table"}},
			{Type: "Button", Props: map[string]any{"children": "Find", "icon": "search"}},
		},
	}

	result := New().Generate(doc)
	if len(result.Errors) != 0 {
		t.Fatalf("Generate() errors = %v", result.Errors)
	}

	if !strings.Contains(result.Code, "import { Search, Table as TableIcon } from '@uigen/icons';") {
		t.Fatalf("icon import group wrong:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "icon={<TableIcon />}") {
		t.Fatalf("colliding icon not renamed at use site:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "icon={<Search />}") {
		t.Fatalf("non-colliding icon renamed unnecessarily:\n%s", result.Code)
	}
	if diff := cmp.Diff([]string{"search", "table"}, result.UsedIcons); diff != "" {
		t.Fatalf("used icons mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateUnknownIconDropped(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutStack,
		Components: []ast.Node{{
			Type:  "Button",
			Props: map[string]any{"children": "Go", "icon": "sparkle"},
		}},
	}

	result := New().Generate(doc)
	if strings.Contains(result.Code, "sparkle") || strings.Contains(result.Code, "Sparkle") {
		t.Fatalf("unknown icon leaked into code:\n%s", result.Code)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, `unknown icon "sparkle"`) {
			found = true
		}
	}
	if !found {
		t.Fatalf("warnings = %v, want an unknown-icon warning", result.Warnings)
	}
}

func TestGenerateUnknownComponentPlaceholder(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutStack,
		Components: []ast.Node{
			{Type: "Widget9000"},
			{Type: "Divider"},
		},
	}

	result := New().Generate(doc)
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Widget9000") {
		t.Fatalf("errors = %v", result.Errors)
	}
	if !strings.Contains(result.Code, "{/* unknown component: Widget9000 */}") {
		t.Fatalf("placeholder missing:\n%s", result.Code)
	}
	// generation still completes for the rest of the tree
	if !strings.Contains(result.Code, "<Divider") {
		t.Fatalf("sibling dropped alongside the unknown component:\n%s", result.Code)
	}
}

func TestGenerateUnrecognizedHandlerDegrades(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutStack,
		Components: []ast.Node{{
			Type:  "Button",
			Props: map[string]any{"children": "Launch", "onClick": "launchRocket"},
		}},
	}

	result := New().Generate(doc)
	if !strings.Contains(result.Code, "onClick={noop}") {
		t.Fatalf("unrecognized handler not degraded:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "const noop = () => {};") {
		t.Fatalf("no-op declaration missing:\n%s", result.Code)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, `"launchRocket"`) {
			found = true
		}
	}
	if !found {
		t.Fatalf("warnings = %v, want a degraded-handler warning", result.Warnings)
	}
}

func TestGenerateRecognizedHandlerBinds(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutStack,
		Components: []ast.Node{
			{Type: "Button", Props: map[string]any{"children": "Open", "onClick": "openModal"}},
			{Type: "Modal", Props: map[string]any{"title": "Details"}},
		},
	}

	result := New().Generate(doc)
	if !strings.Contains(result.Code, "onClick={openModal}") {
		t.Fatalf("recognized handler not bound:\n%s", result.Code)
	}
	if strings.Contains(result.Code, "noop") {
		t.Fatalf("recognized handler degraded to no-op:\n%s", result.Code)
	}
}

func TestGenerateEscapesTextChildren(t *testing.T) {
	t.Parallel()

	doc := ast.Document{
		Layout: ast.LayoutStack,
		Components: []ast.Node{{
			Type:     "Text",
			Children: []ast.Child{ast.TextChild("a < b && {c}")},
		}},
	}

	result := New().Generate(doc)
	if strings.Contains(result.Code, "a < b") {
		t.Fatalf("raw angle bracket leaked into markup:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "a &lt; b &amp;&amp; &#123;c&#125;") {
		t.Fatalf("text child not escaped:\n%s", result.Code)
	}
}
