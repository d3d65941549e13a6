// Package orchestrator coordinates the full pipeline from a structured plan
// to validated AST, generated source, and preview HTML. It applies sensible
// defaults (built-in catalog, embedded preview templates) while remaining
// open to dependency injection for advanced callers.
package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/codegen"
	"github.com/goliatone/go-uigen/pkg/patch"
	"github.com/goliatone/go-uigen/pkg/preview"
	"github.com/goliatone/go-uigen/pkg/registry"
	"github.com/goliatone/go-uigen/pkg/sandbox"
	"github.com/goliatone/go-uigen/pkg/validate"
)

const defaultCacheSize = 128

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry uses a custom component catalog across all pipeline stages.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *Orchestrator) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithPreviewRenderer injects a custom preview renderer.
func WithPreviewRenderer(r *preview.Renderer) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.previewer = r
		}
	}
}

// WithSandbox injects a custom sandbox for rendering user-edited source.
func WithSandbox(s *sandbox.Sandbox) Option {
	return func(o *Orchestrator) {
		if s != nil {
			o.sandbox = s
		}
	}
}

// WithCacheSize bounds the render cache. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(o *Orchestrator) {
		o.cacheSize = n
	}
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator runs plans through validation, code generation, and preview.
type Orchestrator struct {
	registry  *registry.Registry
	validator *validate.Validator
	generator *codegen.Generator
	previewer *preview.Renderer
	sandbox   *sandbox.Sandbox
	cache     *lru.Cache[string, cachedRender]
	cacheSize int
	initErr   error
	logger    zerolog.Logger
}

type cachedRender struct {
	code     string
	warnings []string
	html     []byte
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:  registry.Default(),
		cacheSize: defaultCacheSize,
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	o.validator = validate.New(validate.WithRegistry(o.registry))
	o.generator = codegen.New(codegen.WithRegistry(o.registry))

	if o.previewer == nil {
		previewer, err := preview.New(preview.WithRegistry(o.registry))
		if err != nil {
			o.initErr = fmt.Errorf("orchestrator: initialise preview renderer: %w", err)
			return
		}
		o.previewer = previewer
	}
	if o.sandbox == nil {
		o.sandbox = sandbox.New(sandbox.WithRegistry(o.registry))
	}
	if o.cacheSize > 0 {
		cache, err := lru.New[string, cachedRender](o.cacheSize)
		if err != nil {
			o.initErr = fmt.Errorf("orchestrator: initialise cache: %w", err)
			return
		}
		o.cache = cache
	}
}

// Result is the outcome of running a plan through the pipeline.
type Result struct {
	// Document is the validated, sanitized AST. Nil when validation failed.
	Document *ast.Document

	// Validation always reflects the document the plan produced, valid or not.
	Validation validate.Result

	// Code and HTML are populated only for valid documents.
	Code string
	HTML []byte

	// Warnings aggregates plan repairs, validation warnings, and code
	// generation warnings.
	Warnings []string

	// PatchApplied and PatchErrors report patch-plan outcomes.
	PatchApplied int
	PatchErrors  []string

	// Salvaged is set when the plan needed shape repairs to be usable.
	Salvaged bool

	// Reasoning carries the plan's own explanation through to callers.
	Reasoning string

	// CacheHit reports that code and HTML came from the render cache.
	CacheHit bool
}

// Run decodes a plan, applies it to current (which may be nil for a fresh
// document), validates the outcome, and renders code and preview HTML.
func (o *Orchestrator) Run(ctx context.Context, current *ast.Document, planPayload []byte) (*Result, error) {
	if o.initErr != nil {
		return nil, o.initErr
	}

	plan, repairs, err := ParsePlan(planPayload)
	if err != nil {
		return nil, err
	}
	return o.RunPlan(ctx, current, plan, repairs)
}

// RunPlan is Run for callers that already hold a decoded plan.
func (o *Orchestrator) RunPlan(ctx context.Context, current *ast.Document, plan Plan, repairs []string) (*Result, error) {
	if o.initErr != nil {
		return nil, o.initErr
	}

	result := &Result{
		Warnings:  repairs,
		Salvaged:  len(repairs) > 0,
		Reasoning: plan.Reasoning,
	}

	var doc ast.Document
	switch plan.ModificationType {
	case ModificationPatch:
		if current == nil {
			return nil, fmt.Errorf("orchestrator: patch plan needs a current document")
		}
		patched := patch.Apply(*current, plan.Patches)
		doc = patched.Document
		result.PatchApplied = patched.Applied
		result.PatchErrors = patched.Errors
		o.logger.Debug().
			Int("applied", patched.Applied).
			Int("failed", len(patched.Errors)).
			Msg("patch plan applied")
	default:
		doc = *plan.document()
	}

	result.Validation = o.validator.Validate(doc)
	result.Warnings = append(result.Warnings, result.Validation.Warnings...)
	if !result.Validation.Valid {
		o.logger.Debug().
			Strs("errors", result.Validation.Errors).
			Msg("plan produced an invalid document")
		return result, nil
	}
	result.Document = result.Validation.Sanitized

	code, html, warnings, hit, err := o.render(ctx, result.Document)
	if err != nil {
		return nil, err
	}
	result.Code = code
	result.HTML = html
	result.Warnings = append(result.Warnings, warnings...)
	result.CacheHit = hit
	return result, nil
}

// Generate renders generated source for an already validated document.
func (o *Orchestrator) Generate(doc ast.Document) codegen.Result {
	return o.generator.Generate(doc)
}

// Preview renders preview HTML for an already validated document.
func (o *Orchestrator) Preview(ctx context.Context, doc *ast.Document) ([]byte, error) {
	if o.initErr != nil {
		return nil, o.initErr
	}
	return o.previewer.RenderDocument(ctx, doc)
}

// RenderEdited executes user-edited source in the sandbox and renders the
// resulting element tree. This is the only path that runs source as code.
func (o *Orchestrator) RenderEdited(ctx context.Context, source string) ([]byte, *ast.Node, error) {
	if o.initErr != nil {
		return nil, nil, o.initErr
	}
	node, err := o.sandbox.Render(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	html, err := o.previewer.RenderNode(ctx, node)
	if err != nil {
		return nil, nil, err
	}
	return html, node, nil
}

// Registry exposes the catalog the orchestrator was built with.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.registry
}

func (o *Orchestrator) render(ctx context.Context, doc *ast.Document) (string, []byte, []string, bool, error) {
	key := ""
	if o.cache != nil {
		key = documentKey(doc)
		if cached, ok := o.cache.Get(key); ok {
			return cached.code, cached.html, cached.warnings, true, nil
		}
	}

	generated := o.generator.Generate(*doc)
	if len(generated.Errors) > 0 {
		// validation ran first, so generation errors indicate a stage bug
		return "", nil, nil, false, fmt.Errorf("orchestrator: generate code: %v", generated.Errors)
	}

	html, err := o.previewer.RenderDocument(ctx, doc)
	if err != nil {
		return "", nil, nil, false, err
	}

	if o.cache != nil {
		o.cache.Add(key, cachedRender{code: generated.Code, warnings: generated.Warnings, html: html})
	}
	return generated.Code, html, generated.Warnings, false, nil
}

// documentKey derives a stable cache key from the canonical JSON encoding of
// a sanitized document.
func documentKey(doc *ast.Document) string {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Sprintf("unkeyed:%p", doc)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
