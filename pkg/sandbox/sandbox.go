// Package sandbox executes user-edited component source in an embedded
// Starlark interpreter with no ambient authority. Source goes through four
// stages: sanitize strips markup-level injection, a static deny-list pass
// rejects hostile shapes, the module is converted to a Starlark program, and
// execution runs under a wall-clock deadline and a step budget. The output
// is an element tree, never executable text.
package sandbox

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/goliatone/go-uigen/internal/jsx"
	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/registry"
)

const (
	// DefaultDeadline bounds wall-clock execution time.
	DefaultDeadline = 5 * time.Second
	// DefaultMaxSteps bounds interpreter work independently of the clock.
	DefaultMaxSteps = 500_000
)

// fileOptions enables the statement forms the converted source relies on.
// Recursion stays off.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Sandbox renders untrusted component source into element trees.
type Sandbox struct {
	registry *registry.Registry
	deadline time.Duration
	maxSteps uint64
}

// Option configures a Sandbox.
type Option func(*Sandbox)

// WithRegistry sets the component catalog used to build the execution scope.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Sandbox) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithDeadline overrides the wall-clock execution budget.
func WithDeadline(d time.Duration) Option {
	return func(s *Sandbox) {
		if d > 0 {
			s.deadline = d
		}
	}
}

// WithMaxSteps overrides the interpreter step budget.
func WithMaxSteps(n uint64) Option {
	return func(s *Sandbox) {
		if n > 0 {
			s.maxSteps = n
		}
	}
}

// New returns a Sandbox backed by the default catalog unless one is given.
func New(opts ...Option) *Sandbox {
	s := &Sandbox{
		registry: registry.Default(),
		deadline: DefaultDeadline,
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render runs the full pipeline over source and returns the root of the
// rendered element tree. Failures are always *RenderError.
func (s *Sandbox) Render(ctx context.Context, source string) (*ast.Node, error) {
	clean := Sanitize(source)

	analysis := Analyze(clean)
	if !analysis.Safe {
		return nil, &RenderError{
			Stage:   StageAnalyze,
			Message: "source rejected by static analysis",
			Issues:  analysis.Issues,
		}
	}

	prog, err := jsx.Transpile(clean)
	if err != nil {
		return nil, stageError(StageTranspile, "%v", err)
	}

	scope := buildScope(s.registry, prog.IconImports)
	return s.execute(ctx, prog, scope)
}

func (s *Sandbox) execute(ctx context.Context, prog jsx.Program, scope starlark.StringDict) (*ast.Node, error) {
	ctx, cancel := context.WithTimeout(ctx, s.deadline)
	defer cancel()

	thread := &starlark.Thread{Name: "render"}
	thread.SetMaxExecutionSteps(s.maxSteps)
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel("execution deadline exceeded")
	})
	defer stop()

	globals, err := starlark.ExecFileOptions(fileOptions, thread, "component.star", prog.Source, scope)
	if err != nil {
		renderErr := &RenderError{Stage: StageExecute, Message: evalMessage(err)}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || strings.Contains(err.Error(), "too many steps") {
			renderErr.Timeout = true
			renderErr.Message = "execution budget exhausted"
		}
		return nil, renderErr
	}

	root, ok := globals[jsx.RootBinding]
	if !ok {
		return nil, stageError(StageResult, "program produced no element tree")
	}
	el, ok := root.(*elementValue)
	if !ok {
		return nil, stageError(StageResult, "program result is %s, not an element", root.Type())
	}
	return el.node, nil
}

// evalMessage prefers the interpreter's own message over the wrapped
// backtrace form.
func evalMessage(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Msg
	}
	return err.Error()
}
