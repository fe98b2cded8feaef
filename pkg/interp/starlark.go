package interp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/object"
)

const scriptFilename = "exercise.star"

func init() {
	// Student scripts are plain top-to-bottom programs, so top-level
	// control flow and reassignment must work. Recursion stays off;
	// unbounded recursion is classified instead.
	resolve.AllowGlobalReassign = true
	resolve.AllowSet = true
}

// StarlarkEvaluator executes student scripts in a starlark sandbox. One
// evaluator may serve many runs; all per-run state lives in the
// RunContext.
type StarlarkEvaluator struct{}

// NewStarlarkEvaluator creates a starlark-backed evaluator.
func NewStarlarkEvaluator() *StarlarkEvaluator {
	return &StarlarkEvaluator{}
}

// Interpret evaluates the whole program.
func (se *StarlarkEvaluator) Interpret(ctx context.Context, rc *RunContext, source string) (object.JikiObject, error) {
	_, _, err := se.execProgram(ctx, rc, source)
	if err != nil {
		return nil, err
	}
	rc.Exec.Finish(exec.StatusSuccess)
	return nil, nil
}

// EvaluateFunction evaluates the program, then calls the named top-level
// function with the given arguments.
func (se *StarlarkEvaluator) EvaluateFunction(ctx context.Context, rc *RunContext, source, name string, args []object.JikiObject) (object.JikiObject, error) {
	thread, globals, err := se.execProgram(ctx, rc, source)
	if err != nil {
		return nil, err
	}

	target, ok := globals[name]
	if !ok {
		return nil, se.fail(rc, exec.StatusRuntimeError,
			exec.NewRuntimeError(fmt.Sprintf("the script does not define a function named %q", name), nil))
	}

	slArgs := make(starlark.Tuple, len(args))
	for i, arg := range args {
		sv, convErr := toStarlark(rc, arg)
		if convErr != nil {
			return nil, se.fail(rc, exec.StatusRuntimeError, exec.NewRuntimeError(convErr.Error(), convErr))
		}
		slArgs[i] = sv
	}

	value, err := se.withLimits(ctx, rc, thread, func() (starlark.Value, error) {
		return starlark.Call(thread, target, slArgs, nil)
	})
	if err != nil {
		return nil, se.classifyDynamic(rc, err)
	}

	result, convErr := fromStarlark(value)
	if convErr != nil {
		return nil, se.fail(rc, exec.StatusRuntimeError, exec.NewRuntimeError(convErr.Error(), convErr))
	}
	rc.Exec.Finish(exec.StatusSuccess)
	return result, nil
}

// EvaluateExpression evaluates the program, then the expression in the
// program's global environment.
func (se *StarlarkEvaluator) EvaluateExpression(ctx context.Context, rc *RunContext, source, expr string) (object.JikiObject, error) {
	if _, err := syntax.ParseExpr(scriptFilename, expr, 0); err != nil {
		return nil, se.classifyStatic(rc, err)
	}

	thread, globals, err := se.execProgram(ctx, rc, source)
	if err != nil {
		return nil, err
	}

	value, err := se.withLimits(ctx, rc, thread, func() (starlark.Value, error) {
		return starlark.Eval(thread, scriptFilename, expr, globals)
	})
	if err != nil {
		return nil, se.classifyDynamic(rc, err)
	}

	result, convErr := fromStarlark(value)
	if convErr != nil {
		return nil, se.fail(rc, exec.StatusRuntimeError, exec.NewRuntimeError(convErr.Error(), convErr))
	}
	rc.Exec.Finish(exec.StatusSuccess)
	return result, nil
}

// execProgram statically pre-parses the source, builds the predeclared
// environment, and executes the program's top level. The pre-parse
// exists so syntax errors carry a line and column; dynamic evaluation
// failures lose that precision.
func (se *StarlarkEvaluator) execProgram(ctx context.Context, rc *RunContext, source string) (*starlark.Thread, starlark.StringDict, error) {
	if _, err := syntax.Parse(scriptFilename, source, 0); err != nil {
		return nil, nil, se.classifyStatic(rc, err)
	}

	thread := &starlark.Thread{
		Name: "jikirun",
		Print: func(_ *starlark.Thread, msg string) {
			rc.Exec.Log(msg)
		},
	}

	predeclared := starlark.StringDict{}
	for _, fn := range rc.Functions {
		predeclared[fn.Name] = hostBuiltin(rc, fn)
	}
	for _, cd := range rc.Classes {
		predeclared[cd.Name()] = classBuiltin(rc, cd)
	}
	predeclared["log"] = logBuiltin(rc)

	// withLimits joins its goroutine before returning, so the closure
	// write is safe to read afterwards.
	var globals starlark.StringDict
	_, err := se.withLimits(ctx, rc, thread, func() (starlark.Value, error) {
		g, execErr := starlark.ExecFile(thread, scriptFilename, source, predeclared)
		if execErr != nil {
			return nil, execErr
		}
		globals = g
		return starlark.None, nil
	})
	if err != nil {
		return nil, nil, se.classifyDynamic(rc, err)
	}
	return thread, globals, nil
}

// withLimits runs fn on its own goroutine with the step budget applied,
// cancelling the thread when the context deadline passes. The goroutine
// is always joined so no run state is touched after return.
func (se *StarlarkEvaluator) withLimits(ctx context.Context, rc *RunContext, thread *starlark.Thread, fn func() (starlark.Value, error)) (starlark.Value, error) {
	maxSteps := rc.MaxSteps
	if maxSteps == 0 {
		maxSteps = DefaultMaxSteps
	}
	thread.SetMaxExecutionSteps(maxSteps)

	timeout := rc.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	evalCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value starlark.Value
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := fn()
		done <- outcome{value, err}
	}()

	for {
		select {
		case <-evalCtx.Done():
			thread.Cancel("execution timeout")
			evalCtx = context.Background() // wait for the goroutine to observe the cancel
		case out := <-done:
			return out.value, out.err
		}
	}
}

// classifyStatic maps a pre-parse failure to a syntax-classified error
// with a source position.
func (se *StarlarkEvaluator) classifyStatic(rc *RunContext, err error) error {
	runErr := exec.NewSyntaxError(err.Error(), err)

	var serr syntax.Error
	if errors.As(err, &serr) {
		runErr = exec.NewSyntaxError(serr.Msg, err).WithPosition(int(serr.Pos.Line), int(serr.Pos.Col))
	}
	return se.fail(rc, exec.StatusSyntaxError, runErr)
}

// classifyDynamic maps a dynamic evaluation failure to a classified
// error, distinguishing runaway loops and unbounded recursion from
// ordinary runtime errors so the timeline compiler can apply its
// suppression policy.
func (se *StarlarkEvaluator) classifyDynamic(rc *RunContext, err error) error {
	var resolveErrs resolve.ErrorList
	if errors.As(err, &resolveErrs) && len(resolveErrs) > 0 {
		first := resolveErrs[0]
		return se.fail(rc, exec.StatusSyntaxError,
			exec.NewSyntaxError(first.Msg, err).WithPosition(int(first.Pos.Line), int(first.Pos.Col)))
	}

	msg := err.Error()
	status := exec.StatusRuntimeError
	switch {
	case strings.Contains(msg, "too many steps"):
		status = exec.StatusMaxIterations
		msg = "the script ran for too long and looks like an infinite loop"
	case strings.Contains(msg, "called recursively"):
		status = exec.StatusInfiniteRecursion
		msg = "the script recursed without bound"
	}

	runErr := exec.NewRuntimeError(msg, err)
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) && len(evalErr.CallStack) > 0 {
		pos := evalErr.CallStack[len(evalErr.CallStack)-1].Pos
		runErr.WithPosition(int(pos.Line), int(pos.Col))
	}
	return se.fail(rc, status, runErr)
}

func (se *StarlarkEvaluator) fail(rc *RunContext, status exec.RunStatus, err *exec.RunError) error {
	rc.Exec.Finish(status)
	return err
}

// logBuiltin exposes log(...) to scripts, appending to the run's log
// capture.
func logBuiltin(rc *RunContext) *starlark.Builtin {
	return starlark.NewBuiltin("log", func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			if s, ok := arg.(starlark.String); ok {
				parts[i] = string(s)
			} else {
				parts[i] = arg.String()
			}
		}
		rc.Exec.Log(strings.Join(parts, " "))
		return starlark.None, nil
	})
}
