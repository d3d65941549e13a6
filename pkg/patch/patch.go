// Package patch applies ordered structural edits to a UI document by
// child-index path, preserving untouched subtrees. The engine never mutates
// the caller's document: every application works on a deep copy, and failures
// are per-patch rather than batch-fatal so one bad address does not discard
// the rest of an edit plan.
package patch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-uigen/pkg/ast"
)

// Action enumerates the supported edits.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionRemove Action = "remove"
)

// Patch is a single structural edit addressed by TargetPath. Component
// carries the payload for add and whole-node update; Props carries a partial
// mapping for merge-style update.
type Patch struct {
	Action     Action         `json:"action"`
	TargetPath string         `json:"targetPath"`
	Component  *ast.Node      `json:"component,omitempty"`
	Props      map[string]any `json:"props,omitempty"`
}

// Result reports the outcome of a batch application. Success is true only
// when every patch applied; Document always holds the accumulated state,
// including the effects of the patches that did succeed.
type Result struct {
	Success  bool         `json:"success"`
	Document ast.Document `json:"document"`
	Applied  int          `json:"appliedPatches"`
	Errors   []string     `json:"errors,omitempty"`
}

// RootPath addresses the document's top-level component list.
const RootPath = "root"

// Apply runs the patches sequentially against an accumulating working copy,
// so a patch may target a node added by an earlier patch in the same batch.
func Apply(doc ast.Document, patches []Patch) Result {
	result := Result{Document: doc.Clone()}

	for i, p := range patches {
		if err := applyOne(&result.Document, p); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("patch %d (%s %s): %v", i, p.Action, p.TargetPath, err))
			continue
		}
		result.Applied++
	}

	result.Success = len(result.Errors) == 0
	return result
}

func applyOne(doc *ast.Document, p Patch) error {
	steps, err := ParsePath(p.TargetPath)
	if err != nil {
		return err
	}

	switch p.Action {
	case ActionAdd:
		return applyAdd(doc, steps, p)
	case ActionUpdate:
		return applyUpdate(doc, steps, p)
	case ActionRemove:
		return applyRemove(doc, steps)
	default:
		return fmt.Errorf("unsupported action %q", p.Action)
	}
}

func applyAdd(doc *ast.Document, steps []int, p Patch) error {
	if p.Component == nil {
		return fmt.Errorf("add requires a component payload")
	}
	node := p.Component.Clone()

	if len(steps) == 0 {
		doc.Components = append(doc.Components, node)
		return nil
	}

	parent, err := resolveParent(doc, steps)
	if err != nil {
		return err
	}
	parent.insertAfter(steps[len(steps)-1], node)
	return nil
}

func applyUpdate(doc *ast.Document, steps []int, p Patch) error {
	if len(steps) == 0 {
		return fmt.Errorf("update cannot target the root")
	}

	parent, err := resolveParent(doc, steps)
	if err != nil {
		return err
	}
	index := steps[len(steps)-1]
	target, err := parent.nodeAt(index)
	if err != nil {
		return err
	}

	switch {
	case p.Component != nil:
		parent.replace(index, p.Component.Clone())
		return nil
	case p.Props != nil:
		if target.Props == nil {
			target.Props = make(map[string]any, len(p.Props))
		}
		for key, value := range p.Props {
			target.Props[key] = value
		}
		return nil
	default:
		return fmt.Errorf("update requires a component or props payload")
	}
}

func applyRemove(doc *ast.Document, steps []int) error {
	if len(steps) == 0 {
		return fmt.Errorf("remove cannot target the root")
	}

	parent, err := resolveParent(doc, steps)
	if err != nil {
		return err
	}
	return parent.remove(steps[len(steps)-1])
}

// ParsePath parses the wire-level addressing grammar: the literal "root" or a
// dotted chain of children[<non-negative integer>] segments. Any other syntax
// is rejected as malformed.
func ParsePath(raw string) ([]int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == RootPath {
		return nil, nil
	}

	segments := strings.Split(trimmed, ".")
	steps := make([]int, 0, len(segments))
	for _, segment := range segments {
		rest, ok := strings.CutPrefix(segment, "children[")
		if !ok {
			return nil, fmt.Errorf("malformed path segment %q", segment)
		}
		digits, ok := strings.CutSuffix(rest, "]")
		if !ok {
			return nil, fmt.Errorf("malformed path segment %q", segment)
		}
		index, err := strconv.Atoi(digits)
		if err != nil || index < 0 {
			return nil, fmt.Errorf("invalid child index %q", digits)
		}
		steps = append(steps, index)
	}
	return steps, nil
}

// parentRef abstracts the two container shapes a path can land in: the
// document's top-level component list or a node's mixed children list.
type parentRef struct {
	doc  *ast.Document
	node *ast.Node
}

// resolveParent walks every step except the last, which names the position
// acted upon. Passing through a text leaf or an out-of-bounds index is an
// addressing error.
func resolveParent(doc *ast.Document, steps []int) (parentRef, error) {
	parent := parentRef{doc: doc}
	for depth := 0; depth < len(steps)-1; depth++ {
		node, err := parent.nodeAt(steps[depth])
		if err != nil {
			return parentRef{}, err
		}
		parent = parentRef{node: node}
	}
	return parent, nil
}

func (p parentRef) length() int {
	if p.doc != nil {
		return len(p.doc.Components)
	}
	return len(p.node.Children)
}

func (p parentRef) nodeAt(index int) (*ast.Node, error) {
	if index < 0 || index >= p.length() {
		return nil, fmt.Errorf("index %d out of bounds (have %d children)", index, p.length())
	}
	if p.doc != nil {
		return &p.doc.Components[index], nil
	}
	child := &p.node.Children[index]
	if child.IsText() {
		return nil, fmt.Errorf("index %d addresses a text node", index)
	}
	return child.Node, nil
}

// insertAfter places node immediately after index, or appends when index is
// at or beyond the current length.
func (p parentRef) insertAfter(index int, node ast.Node) {
	if p.doc != nil {
		if index >= len(p.doc.Components) {
			p.doc.Components = append(p.doc.Components, node)
			return
		}
		pos := index + 1
		p.doc.Components = append(p.doc.Components[:pos],
			append([]ast.Node{node}, p.doc.Components[pos:]...)...)
		return
	}

	child := ast.NodeChild(node)
	if index >= len(p.node.Children) {
		p.node.Children = append(p.node.Children, child)
		return
	}
	pos := index + 1
	p.node.Children = append(p.node.Children[:pos],
		append([]ast.Child{child}, p.node.Children[pos:]...)...)
}

func (p parentRef) replace(index int, node ast.Node) {
	if p.doc != nil {
		p.doc.Components[index] = node
		return
	}
	p.node.Children[index] = ast.NodeChild(node)
}

func (p parentRef) remove(index int) error {
	if index < 0 || index >= p.length() {
		return fmt.Errorf("index %d out of bounds (have %d children)", index, p.length())
	}
	if p.doc != nil {
		p.doc.Components = append(p.doc.Components[:index], p.doc.Components[index+1:]...)
		return nil
	}
	if p.node.Children[index].IsText() {
		return fmt.Errorf("index %d addresses a text node", index)
	}
	p.node.Children = append(p.node.Children[:index], p.node.Children[index+1:]...)
	return nil
}
