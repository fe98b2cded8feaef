// Package interp is the boundary to the sandboxed scripting language.
// The rest of the bridge consumes interpretation only through the
// Evaluator capability; everything starlark-specific stays behind it.
package interp

import (
	"context"
	"time"

	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/exercise"
	"github.com/jikirun/jikirun/pkg/object"
)

// DefaultMaxSteps bounds how many interpreter steps one run may take
// before it is classified as a runaway loop.
const DefaultMaxSteps = 1_000_000

// DefaultTimeout bounds the wall-clock time of one run.
const DefaultTimeout = 10 * time.Second

// RunContext bundles everything one interpreted run may reach: the
// run-scoped execution context, the exercise's exposed functions and
// classes, and the interpreter limits. Created at run start, discarded
// at run end; never shared across runs.
type RunContext struct {
	// Exec is the run's execution context.
	Exec *exec.Context

	// Functions are the host functions exposed to the script.
	Functions []exercise.HostFunction

	// Classes are the class definitions exposed to the script.
	Classes []*object.ClassDefinition

	// MaxSteps caps interpreter steps; 0 means DefaultMaxSteps.
	MaxSteps uint64

	// Timeout caps wall-clock execution; 0 means DefaultTimeout.
	Timeout time.Duration
}

// Evaluator is the narrow capability surface consumed from the
// interpreter subsystem. All three entry points finish the run's
// execution context with a terminal status and return a classified
// *exec.RunError on script failure.
type Evaluator interface {
	// Interpret evaluates the whole program.
	Interpret(ctx context.Context, rc *RunContext, source string) (object.JikiObject, error)

	// EvaluateFunction evaluates the program, then calls the named
	// top-level function with the given arguments and returns its
	// result.
	EvaluateFunction(ctx context.Context, rc *RunContext, source, name string, args []object.JikiObject) (object.JikiObject, error)

	// EvaluateExpression evaluates the program, then evaluates the
	// expression in the program's global environment.
	EvaluateExpression(ctx context.Context, rc *RunContext, source, expr string) (object.JikiObject, error)
}
