package orchestrator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/patch"
)

// Modification kinds a plan can carry.
const (
	ModificationNew   = "new"
	ModificationPatch = "patch"
)

// Plan is the structured output of an upstream model describing either a
// fresh interface or a set of edits to an existing one.
type Plan struct {
	ModificationType string        `json:"modificationType"`
	Layout           string        `json:"layout"`
	Theme            string        `json:"theme"`
	Components       []ast.Node    `json:"components"`
	Structure        []ast.Node    `json:"structure"`
	Patches          []patch.Patch `json:"patches"`
	Reasoning        string        `json:"reasoning"`
}

// ParsePlan decodes a plan payload. Decoding is deliberately lenient about
// recoverable shape drift: a plan that put its component list under
// "structure", or omitted the modification type, is salvaged and the repairs
// are reported so callers can surface them.
func ParsePlan(payload []byte) (Plan, []string, error) {
	var plan Plan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return Plan{}, nil, fmt.Errorf("orchestrator: decode plan: %w", err)
	}

	var repairs []string

	plan.ModificationType = strings.ToLower(strings.TrimSpace(plan.ModificationType))
	switch plan.ModificationType {
	case ModificationNew, ModificationPatch:
	case "":
		if len(plan.Patches) > 0 {
			plan.ModificationType = ModificationPatch
		} else {
			plan.ModificationType = ModificationNew
		}
		repairs = append(repairs, fmt.Sprintf("missing modificationType, assumed %q", plan.ModificationType))
	default:
		return Plan{}, nil, fmt.Errorf("orchestrator: unknown modificationType %q", plan.ModificationType)
	}

	if plan.ModificationType == ModificationNew && len(plan.Components) == 0 && len(plan.Structure) > 0 {
		plan.Components = plan.Structure
		plan.Structure = nil
		repairs = append(repairs, "component list found under structure, salvaged")
	}

	if plan.ModificationType == ModificationPatch && len(plan.Patches) == 0 {
		return Plan{}, nil, fmt.Errorf("orchestrator: patch plan carries no patches")
	}

	return plan, repairs, nil
}

// document materialises a new-interface plan into an AST document.
func (p Plan) document() *ast.Document {
	return &ast.Document{
		Layout:     ast.Layout(p.Layout),
		Theme:      ast.Theme(p.Theme),
		Components: p.Components,
	}
}
