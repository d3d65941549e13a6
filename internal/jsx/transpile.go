package jsx

import (
	"fmt"
	"strconv"
	"strings"
)

// RootBinding is the Starlark global the transpiled program assigns its
// rendered element tree to.
const RootBinding = "_root"

// NoopBinding is the name the execution scope binds an inert callable to.
// State setters and event handlers degrade to it.
const NoopBinding = "_noop"

// IconImport records one icon binding requested by the source module.
type IconImport struct {
	Exported string
	Local    string
}

// Program is the result of transpiling a component module.
type Program struct {
	Source      string
	IconImports []IconImport
}

const iconsModule = "@uigen/icons"

// Transpile converts a React-style component module into a Starlark program.
// Imports are stripped (icon imports are surfaced for scope resolution),
// useState pairs become plain bindings with inert setters, event handler
// bodies are discarded, and the returned markup is parsed and re-emitted as
// nested constructor calls bound to RootBinding.
func Transpile(source string) (Program, error) {
	t := &transpiler{}
	lines := strings.Split(source, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if t.skipping > 0 {
			t.skipping += strings.Count(line, "{") - strings.Count(line, "}")
			continue
		}

		switch {
		case line == "" || strings.HasPrefix(line, "//"):
			continue
		case strings.HasPrefix(line, "import "):
			t.recordImport(line)
		case strings.HasPrefix(line, "export default function"),
			strings.HasPrefix(line, "function "):
			continue
		case strings.HasPrefix(line, "return ("):
			end, err := t.captureReturn(lines, i)
			if err != nil {
				return Program{}, err
			}
			i = end
		case strings.HasPrefix(line, "return ") && strings.HasSuffix(line, ";"):
			expr := strings.TrimSuffix(strings.TrimPrefix(line, "return "), ";")
			t.emit("%s = %s", RootBinding, convertExpr(expr))
		default:
			if err := t.statement(line); err != nil {
				return Program{}, err
			}
		}
	}

	t.closeBlocks(0)
	return Program{Source: t.out.String(), IconImports: t.icons}, nil
}

type transpiler struct {
	out      strings.Builder
	icons    []IconImport
	depth    int
	pending  []int // depths whose blocks have not emitted a body line yet
	skipping int   // brace depth of a discarded function body
}

func (t *transpiler) recordImport(line string) {
	if !strings.Contains(line, iconsModule) {
		return
	}
	open := strings.Index(line, "{")
	end := strings.Index(line, "}")
	if open < 0 || end < open {
		return
	}
	for _, part := range strings.Split(line[open+1:end], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		exported, local, found := strings.Cut(part, " as ")
		exported = strings.TrimSpace(exported)
		if !found {
			local = exported
		}
		t.icons = append(t.icons, IconImport{Exported: exported, Local: strings.TrimSpace(local)})
	}
}

// statement translates a single body statement. Unsupported constructs are
// an error so the caller rejects the source instead of running something
// that means the wrong thing.
func (t *transpiler) statement(line string) error {
	switch {
	case line == "}" || line == "};":
		t.closeBlocks(t.depth - 1)
		return nil
	case line == "} else {":
		t.closeBlocks(t.depth - 1)
		t.emit("else:")
		t.openBlock()
		return nil
	case strings.HasPrefix(line, "} else if ") || strings.HasPrefix(line, "} else if("):
		cond, ok := headCondition(strings.TrimPrefix(line, "} else "))
		if !ok {
			return fmt.Errorf("jsx: malformed else-if: %q", line)
		}
		t.closeBlocks(t.depth - 1)
		t.emit("elif %s:", convertExpr(cond))
		t.openBlock()
		return nil
	case strings.HasPrefix(line, "while ") || strings.HasPrefix(line, "while("):
		cond, ok := headCondition(line)
		if !ok {
			return fmt.Errorf("jsx: malformed while: %q", line)
		}
		t.emit("while %s:", convertExpr(cond))
		t.openBlock()
		return nil
	case strings.HasPrefix(line, "if ") || strings.HasPrefix(line, "if("):
		cond, ok := headCondition(line)
		if !ok {
			return fmt.Errorf("jsx: malformed if: %q", line)
		}
		t.emit("if %s:", convertExpr(cond))
		t.openBlock()
		return nil
	}

	stmt := strings.TrimSuffix(line, ";")

	if pair, init, ok := useStateBinding(stmt); ok {
		t.emit("%s = %s", pair.value, convertExpr(init))
		t.emit("%s = %s", pair.setter, NoopBinding)
		return nil
	}

	if name, multiline, ok := arrowBinding(stmt); ok {
		t.emit("%s = %s", name, NoopBinding)
		if multiline {
			t.skipping = 1
		}
		return nil
	}

	for _, prefix := range []string{"const ", "let ", "var "} {
		if strings.HasPrefix(stmt, prefix) {
			stmt = strings.TrimPrefix(stmt, prefix)
			break
		}
	}

	if name, ok := strings.CutSuffix(stmt, "++"); ok {
		name = strings.TrimSpace(name)
		t.emit("%s = %s + 1", name, name)
		return nil
	}
	if name, ok := strings.CutSuffix(stmt, "--"); ok {
		name = strings.TrimSpace(name)
		t.emit("%s = %s - 1", name, name)
		return nil
	}

	if isCall(stmt) {
		t.emit("%s", convertExpr(stmt))
		return nil
	}

	if lhs, rhs, found := strings.Cut(stmt, "="); found {
		lhs = strings.TrimSpace(lhs)
		if lhs == "" || strings.ContainsAny(lhs, "<>!") {
			return fmt.Errorf("jsx: unsupported statement: %q", line)
		}
		if op := lhs[len(lhs)-1]; op == '+' || op == '-' || op == '*' {
			base := strings.TrimSpace(lhs[:len(lhs)-1])
			t.emit("%s = %s %c %s", base, base, op, convertExpr(strings.TrimSpace(rhs)))
			return nil
		}
		t.emit("%s = %s", lhs, convertExpr(strings.TrimSpace(rhs)))
		return nil
	}

	return fmt.Errorf("jsx: unsupported statement: %q", line)
}

// captureReturn collects the balanced return ( ... ) block starting at line
// index start, parses the markup inside, and emits the root assignment.
// It returns the last line index consumed.
func (t *transpiler) captureReturn(lines []string, start int) (int, error) {
	var block strings.Builder
	depth := 0
	opened := false
	end := start
	for i := start; i < len(lines); i++ {
		for _, r := range lines[i] {
			switch r {
			case '(':
				depth++
				opened = true
			case ')':
				depth--
			}
		}
		block.WriteString(lines[i])
		block.WriteString("\n")
		end = i
		if opened && depth <= 0 {
			break
		}
	}
	if !opened || depth > 0 {
		return end, fmt.Errorf("jsx: unbalanced return block")
	}

	text := strings.TrimSpace(block.String())
	open := strings.Index(text, "(")
	last := strings.LastIndex(text, ")")
	if open < 0 || last <= open {
		return end, fmt.Errorf("jsx: malformed return block")
	}
	markup := strings.TrimSpace(text[open+1 : last])

	p := &parser{src: []rune(markup)}
	el, err := p.parseElement()
	if err != nil {
		return end, err
	}
	t.emit("%s = %s", RootBinding, emitElement(el))
	return end, nil
}

// emitElement renders a parsed element as a Starlark constructor call.
func emitElement(el *element) string {
	var b strings.Builder
	b.WriteString(el.name)
	b.WriteString("(")
	first := true
	for _, a := range el.attrs {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(a.name)
		b.WriteString("=")
		switch a.value.kind {
		case attrBare:
			b.WriteString("True")
		case attrString:
			b.WriteString(strconv.Quote(a.value.text))
		case attrExpr:
			b.WriteString(exprOrElement(a.value.text))
		}
	}
	if len(el.children) > 0 {
		if !first {
			b.WriteString(", ")
		}
		b.WriteString("children=[")
		for i, c := range el.children {
			if i > 0 {
				b.WriteString(", ")
			}
			switch c.kind {
			case childText:
				b.WriteString(strconv.Quote(c.text))
			case childExpr:
				b.WriteString(exprOrElement(c.text))
			case childElement:
				b.WriteString(emitElement(c.elem))
			}
		}
		b.WriteString("]")
	}
	b.WriteString(")")
	return b.String()
}

// exprOrElement handles embedded markup inside expression positions, such
// as icon={<Search />}. Anything else goes through expression conversion.
func exprOrElement(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "<") {
		p := &parser{src: []rune(trimmed)}
		el, err := p.parseElement()
		if err == nil {
			return emitElement(el)
		}
	}
	return convertExpr(trimmed)
}

func (t *transpiler) emit(format string, args ...any) {
	// any emitted line gives every open block a body
	t.pending = t.pending[:0]
	t.out.WriteString(strings.Repeat("    ", t.depth))
	t.out.WriteString(fmt.Sprintf(format, args...))
	t.out.WriteString("\n")
}

func (t *transpiler) openBlock() {
	t.depth++
	t.pending = append(t.pending, t.depth)
}

// closeBlocks unwinds nesting down to target, inserting pass for any block
// that never emitted a body line.
func (t *transpiler) closeBlocks(target int) {
	if target < 0 {
		target = 0
	}
	for t.depth > target {
		if len(t.pending) > 0 && t.pending[len(t.pending)-1] == t.depth {
			t.out.WriteString(strings.Repeat("    ", t.depth))
			t.out.WriteString("pass\n")
			t.pending = t.pending[:len(t.pending)-1]
		}
		t.depth--
	}
}

// headCondition extracts the parenthesised condition from a statement such
// as "while (x < 3) {".
func headCondition(line string) (string, bool) {
	open := strings.Index(line, "(")
	if open < 0 {
		return "", false
	}
	depth := 0
	for i := open; i < len(line); i++ {
		switch line[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return strings.TrimSpace(line[open+1 : i]), true
			}
		}
	}
	return "", false
}

type statePair struct {
	value  string
	setter string
}

// useStateBinding matches `const [count, setCount] = useState(0)`.
func useStateBinding(stmt string) (statePair, string, bool) {
	rest, ok := strings.CutPrefix(stmt, "const [")
	if !ok {
		return statePair{}, "", false
	}
	names, rest, ok := strings.Cut(rest, "]")
	if !ok {
		return statePair{}, "", false
	}
	rest = strings.TrimSpace(rest)
	rest, ok = strings.CutPrefix(rest, "=")
	if !ok {
		return statePair{}, "", false
	}
	rest = strings.TrimSpace(rest)
	rest, ok = strings.CutPrefix(rest, "useState(")
	if !ok || !strings.HasSuffix(rest, ")") {
		return statePair{}, "", false
	}
	init := strings.TrimSuffix(rest, ")")
	if init == "" {
		init = "None"
	}

	value, setter, ok := strings.Cut(names, ",")
	if !ok {
		return statePair{}, "", false
	}
	return statePair{value: strings.TrimSpace(value), setter: strings.TrimSpace(setter)}, init, true
}

// arrowBinding matches `const handleX = (...) => ...` and function values
// assigned to consts. The body is discarded; multiline reports whether the
// body continues on following lines.
func arrowBinding(stmt string) (name string, multiline, ok bool) {
	rest, found := strings.CutPrefix(stmt, "const ")
	if !found {
		return "", false, false
	}
	name, rhs, found := strings.Cut(rest, "=")
	if !found {
		return "", false, false
	}
	rhs = strings.TrimSpace(rhs)
	if !strings.Contains(rhs, "=>") && !strings.HasPrefix(rhs, "function") {
		return "", false, false
	}
	open := strings.Count(rhs, "{") - strings.Count(rhs, "}")
	return strings.TrimSpace(name), open > 0, true
}

// isCall reports whether stmt is a bare call expression such as
// `setOpen(true)`.
func isCall(stmt string) bool {
	open := strings.Index(stmt, "(")
	if open <= 0 || !strings.HasSuffix(stmt, ")") {
		return false
	}
	for _, r := range stmt[:open] {
		if !isWordRune(r) && r != '.' {
			return false
		}
	}
	return true
}
