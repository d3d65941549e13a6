package sandbox

import (
	"fmt"
	"strings"
)

// Pipeline stages, used to report where a render failed.
const (
	StageAnalyze   = "analyze"
	StageTranspile = "transpile"
	StageExecute   = "execute"
	StageResult    = "result"
)

// RenderError reports a failed render with the stage that rejected the
// source. Timeout is set when execution was cancelled by the deadline or the
// step budget rather than by a program fault.
type RenderError struct {
	Stage   string
	Message string
	Issues  []string
	Timeout bool
}

func (e *RenderError) Error() string {
	if len(e.Issues) > 0 {
		return fmt.Sprintf("sandbox: %s: %s (%s)", e.Stage, e.Message, strings.Join(e.Issues, "; "))
	}
	return fmt.Sprintf("sandbox: %s: %s", e.Stage, e.Message)
}

func stageError(stage, format string, args ...any) *RenderError {
	return &RenderError{Stage: stage, Message: fmt.Sprintf(format, args...)}
}
