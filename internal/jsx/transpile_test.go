package jsx

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTranspileBasicComponent(t *testing.T) {
	t.Parallel()

	source := `import React from "react";
import { Button, Card } from "@uigen/components";

export default function GeneratedUI() {
  return (
    <Card title="Welcome">
      <Button variant="primary">Click me</Button>
    </Card>
  );
}`

	prog, err := Transpile(source)
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}

	want := `_root = Card(title="Welcome", children=[Button(variant="primary", children=["Click me"])])` + "\n"
	if diff := cmp.Diff(want, prog.Source); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
	if len(prog.IconImports) != 0 {
		t.Errorf("IconImports = %v, want none", prog.IconImports)
	}
}

func TestTranspileIconImports(t *testing.T) {
	t.Parallel()

	source := `import { Search, Table as TableIcon } from "@uigen/icons";

export default function GeneratedUI() {
  return (
    <Button icon={<Search />}>Find</Button>
  );
}`

	prog, err := Transpile(source)
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}

	want := []IconImport{
		{Exported: "Search", Local: "Search"},
		{Exported: "Table", Local: "TableIcon"},
	}
	if diff := cmp.Diff(want, prog.IconImports); diff != "" {
		t.Errorf("IconImports mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(prog.Source, `icon=Search()`) {
		t.Errorf("program = %q, want icon=Search() call", prog.Source)
	}
}

func TestTranspileUseState(t *testing.T) {
	t.Parallel()

	source := `import React, { useState } from "react";

export default function GeneratedUI() {
  const [count, setCount] = useState(0);
  const [open, setOpen] = useState(false);
  return (
    <Text>Counter</Text>
  );
}`

	prog, err := Transpile(source)
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}

	for _, line := range []string{
		"count = 0",
		"setCount = " + NoopBinding,
		"open = False",
		"setOpen = " + NoopBinding,
	} {
		if !strings.Contains(prog.Source, line+"\n") {
			t.Errorf("program missing %q:\n%s", line, prog.Source)
		}
	}
}

func TestTranspileHandlersBecomeNoops(t *testing.T) {
	t.Parallel()

	source := `export default function GeneratedUI() {
  const handleClick = () => {
    setOpen(true);
    console.log("clicked");
  };
  return (
    <Button onClick={handleClick}>Go</Button>
  );
}`

	prog, err := Transpile(source)
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}

	if !strings.Contains(prog.Source, "handleClick = "+NoopBinding+"\n") {
		t.Errorf("program missing handler binding:\n%s", prog.Source)
	}
	if strings.Contains(prog.Source, "console") {
		t.Errorf("handler body leaked into program:\n%s", prog.Source)
	}
	if !strings.Contains(prog.Source, "onClick=handleClick") {
		t.Errorf("program missing onClick attribute:\n%s", prog.Source)
	}
}

func TestTranspileControlFlow(t *testing.T) {
	t.Parallel()

	source := `export default function GeneratedUI() {
  let n = 0;
  while (n < 5) {
    n++;
  }
  if (n === 5) {
    n = 0;
  }
  return (
    <Text>done</Text>
  );
}`

	prog, err := Transpile(source)
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}

	for _, line := range []string{
		"n = 0",
		"while n < 5:",
		"    n = n + 1",
		"if n == 5:",
	} {
		if !strings.Contains(prog.Source, line+"\n") {
			t.Errorf("program missing %q:\n%s", line, prog.Source)
		}
	}
}

func TestTranspileExpressionChildren(t *testing.T) {
	t.Parallel()

	source := `export default function GeneratedUI() {
  const label = "Hello";
  return (
    <Container layout="stack">
      <Heading level={2}>{label}</Heading>
      {/* decorative spacer */}
      <Text muted>plain text</Text>
    </Container>
  );
}`

	prog, err := Transpile(source)
	if err != nil {
		t.Fatalf("Transpile() error = %v", err)
	}

	if !strings.Contains(prog.Source, `label = "Hello"`) {
		t.Errorf("program missing const binding:\n%s", prog.Source)
	}
	if !strings.Contains(prog.Source, "Heading(level=2, children=[label])") {
		t.Errorf("program missing expression child:\n%s", prog.Source)
	}
	if !strings.Contains(prog.Source, "Text(muted=True") {
		t.Errorf("bare attribute not truthy:\n%s", prog.Source)
	}
	if strings.Contains(prog.Source, "decorative") {
		t.Errorf("comment leaked into program:\n%s", prog.Source)
	}
}

func TestTranspileRejectsUnsupported(t *testing.T) {
	t.Parallel()

	source := `export default function GeneratedUI() {
  throw new Error("boom");
  return (
    <Text>x</Text>
  );
}`

	if _, err := Transpile(source); err == nil {
		t.Fatal("Transpile() error = nil, want unsupported statement error")
	}
}

func TestParseElementErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		markup string
	}{
		{"mismatched close", "<Card><Button></Card></Button>"},
		{"unterminated", "<Card><Text>hi</Text>"},
		{"bad attr value", "<Card title=oops>x</Card>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := &parser{src: []rune(tc.markup)}
			if _, err := p.parseElement(); err == nil {
				t.Fatalf("parseElement(%q) error = nil, want error", tc.markup)
			}
		})
	}
}

func TestConvertExpr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"a === b", "a == b"},
		{"a !== b", "a != b"},
		{"a && !b", "a and not b"},
		{"x || true", "x or True"},
		{"null", "None"},
		{`status === "active" && count > 0`, `status == "active" and count > 0`},
		{`"a && b"`, `"a && b"`},
	}

	for _, tc := range cases {
		if got := convertExpr(tc.in); got != tc.want {
			t.Errorf("convertExpr(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
