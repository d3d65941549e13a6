package gotemplate

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestRenderTemplateFromFS(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"pages/greeting.tmpl": {Data: []byte("Hello {{ name }}!")},
	}

	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := engine.RenderTemplate("pages/greeting", map[string]any{"name": "dashboard"})
	if err != nil {
		t.Fatalf("RenderTemplate() error = %v", err)
	}
	if got != "Hello dashboard!" {
		t.Fatalf("RenderTemplate() = %q", got)
	}
}

func TestRenderString(t *testing.T) {
	t.Parallel()

	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := engine.RenderString("{{ items|length }} items", map[string]any{
		"items": []any{"a", "b", "c"},
	})
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if got != "3 items" {
		t.Fatalf("RenderString() = %q", got)
	}
}

func TestRenderDispatchesOnContent(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"inline.tmpl": {Data: []byte("from file")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got, err := engine.Render("{{ value }}", map[string]any{"value": "inline"}); err != nil || got != "inline" {
		t.Fatalf("Render(inline) = %q, %v", got, err)
	}
	if got, err := engine.Render("inline", nil); err != nil || got != "from file" {
		t.Fatalf("Render(file) = %q, %v", got, err)
	}
}

func TestGlobalContext(t *testing.T) {
	t.Parallel()

	engine, err := New(
		WithFS(fstest.MapFS{}),
		WithGlobalData(map[string]any{"brand": "uigen"}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := engine.RenderString("brand: {{ brand }}", nil)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if got != "brand: uigen" {
		t.Fatalf("RenderString() = %q", got)
	}
}

func TestNewRequiresSource(t *testing.T) {
	t.Parallel()

	if _, err := New(); err == nil || !strings.Contains(err.Error(), "base dir or fs.FS") {
		t.Fatalf("New() error = %v, want a missing-source error", err)
	}
}
