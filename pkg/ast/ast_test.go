package ast

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDocument(t *testing.T) {
	t.Parallel()

	payload := []byte(`{
		"layout": "Stack",
		"theme": "light",
		"components": [
			{
				"type": "Card",
				"props": {"title": "Revenue", "elevation": 2},
				"children": [
					"Quarterly numbers",
					{"type": "Badge", "props": {"text": "up"}}
				]
			}
		]
	}`)

	doc, err := ParseDocument(payload)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	want := Document{
		Layout: LayoutStack,
		Theme:  ThemeLight,
		Components: []Node{{
			Type:  "Card",
			Props: map[string]any{"title": "Revenue", "elevation": float64(2)},
			Children: []Child{
				TextChild("Quarterly numbers"),
				NodeChild(Node{Type: "Badge", Props: map[string]any{"text": "up"}}),
			},
		}},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDocumentRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseDocument([]byte(`{"components": "nope"}`)); err == nil {
		t.Fatal("ParseDocument() accepted a non-array component list")
	}
}

func TestChildJSONRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Child
	}{
		{name: "text leaf", in: `"hello"`, want: TextChild("hello")},
		{name: "node", in: `{"type": "Text"}`, want: NodeChild(Node{Type: "Text"})},
		{name: "number coerced", in: `42`, want: TextChild("42")},
		{name: "bool coerced", in: `true`, want: TextChild("true")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got Child
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("child mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChildMarshalShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal([]Child{
		TextChild("plain"),
		NodeChild(Node{Type: "Badge", Props: map[string]any{"text": "new"}}),
	})
	if err != nil {
		t.Fatalf("marshal children: %v", err)
	}

	want := `["plain",{"type":"Badge","props":{"text":"new"}}]`
	if string(data) != want {
		t.Fatalf("marshal = %s, want %s", data, want)
	}
}

func TestCloneIsolation(t *testing.T) {
	t.Parallel()

	original := Document{
		Layout: LayoutGrid,
		Theme:  ThemeDark,
		Components: []Node{{
			Type: "Card",
			Props: map[string]any{
				"title": "Stats",
				"meta":  map[string]any{"tags": []any{"a", "b"}},
			},
			Children: []Child{
				NodeChild(Node{Type: "Text", Props: map[string]any{"text": "inner"}}),
			},
		}},
	}

	clone := original.Clone()
	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("clone differs (-original +clone):\n%s", diff)
	}

	clone.Components[0].Props["title"] = "mutated"
	clone.Components[0].Props["meta"].(map[string]any)["tags"].([]any)[0] = "z"
	clone.Components[0].Children[0].Node.Props["text"] = "changed"

	if got := original.Components[0].Props["title"]; got != "Stats" {
		t.Fatalf("original title = %v after mutating clone", got)
	}
	if got := original.Components[0].Props["meta"].(map[string]any)["tags"].([]any)[0]; got != "a" {
		t.Fatalf("original nested slice = %v after mutating clone", got)
	}
	if got := original.Components[0].Children[0].Node.Props["text"]; got != "inner" {
		t.Fatalf("original child prop = %v after mutating clone", got)
	}
}

func TestNormalizeLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Layout
	}{
		{"stack", LayoutStack},
		{"  Vertical ", LayoutStack},
		{"GRID", LayoutGrid},
		{"two-column", LayoutSplit},
		{"center", LayoutCentered},
		{"masonry", ""},
	}
	for _, tt := range tests {
		if got := NormalizeLayout(tt.raw); got != tt.want {
			t.Errorf("NormalizeLayout(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeTheme(t *testing.T) {
	t.Parallel()

	if got := NormalizeTheme(" DARK "); got != ThemeDark {
		t.Fatalf("NormalizeTheme(DARK) = %q", got)
	}
	if got := NormalizeTheme("sepia"); got != "" {
		t.Fatalf("NormalizeTheme(sepia) = %q, want empty", got)
	}
}
