package uigen

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/orchestrator"
	"github.com/goliatone/go-uigen/pkg/preview"
	"github.com/goliatone/go-uigen/pkg/registry"
	"github.com/goliatone/go-uigen/pkg/validate"
)

// Plan mirrors the structured plan contract; alias exported via the root
// package for convenience.
type Plan = orchestrator.Plan

// Result is the full pipeline outcome for a plan.
type Result = orchestrator.Result

// Document aliases the AST root for callers holding state between turns.
type Document = ast.Document

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module. It is the intended entry point for most callers.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RunPlan decodes and runs a plan payload against current state in one call.
// Pass a nil current document for a fresh interface.
func RunPlan(ctx context.Context, current *Document, payload []byte) (*Result, error) {
	return orchestrator.New().Run(ctx, current, payload)
}

// Validate checks a document against the built-in catalog.
func Validate(doc Document) validate.Result {
	return validate.New().Validate(doc)
}

// Catalog returns the markdown description of the built-in component
// vocabulary, suitable for inclusion in an upstream prompt.
func Catalog() string {
	return registry.Default().Describe()
}

// EmbeddedTemplates exposes the built-in preview page templates so callers
// can reuse or extend them without importing the preview package directly.
func EmbeddedTemplates() fs.FS {
	return preview.TemplatesFS()
}

// PreviewAssetsFS exposes the bundled preview stylesheet so applications can
// serve it without an asset build step.
func PreviewAssetsFS() fs.FS {
	return preview.AssetsFS()
}
