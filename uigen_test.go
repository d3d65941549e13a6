package uigen

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-uigen/pkg/ast"
)

func TestRunPlanEndToEnd(t *testing.T) {
	t.Parallel()

	plan := `{
		"modificationType": "new",
		"layout": "centered",
		"components": [
			{"type": "Card", "props": {"title": "Welcome"}}
		]
	}`

	result, err := RunPlan(context.Background(), nil, []byte(plan))
	if err != nil {
		t.Fatalf("RunPlan() error = %v", err)
	}
	if !result.Validation.Valid {
		t.Fatalf("plan rejected: %v", result.Validation.Errors)
	}
	if !strings.Contains(result.Code, "<Card") {
		t.Fatalf("code missing card:\n%s", result.Code)
	}
	if !strings.Contains(string(result.HTML), "Welcome") {
		t.Fatal("preview HTML missing card title")
	}
}

func TestValidateFacade(t *testing.T) {
	t.Parallel()

	doc := Document{
		Layout:     ast.LayoutStack,
		Components: []ast.Node{{Type: "Widget9000"}},
	}
	if result := Validate(doc); result.Valid {
		t.Fatal("Validate() accepted an unknown component")
	}
}

func TestCatalogMentionsEveryBuiltin(t *testing.T) {
	t.Parallel()

	catalog := Catalog()
	for _, name := range []string{"Container", "Modal", "PieChart"} {
		if !strings.Contains(catalog, name) {
			t.Errorf("Catalog() missing %q", name)
		}
	}
}

func TestEmbeddedAssets(t *testing.T) {
	t.Parallel()

	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("read page template: %v", err)
	}
	css, err := fs.ReadFile(PreviewAssetsFS(), "uigen-preview.css")
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(css), "--ui-") {
		t.Fatal("stylesheet missing theme variables")
	}
}
