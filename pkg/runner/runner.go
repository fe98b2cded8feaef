package runner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/exercise"
	"github.com/jikirun/jikirun/pkg/interp"
	"github.com/jikirun/jikirun/pkg/object"
	"github.com/jikirun/jikirun/pkg/telemetry"
	"github.com/jikirun/jikirun/pkg/timeline"
)

// Runner executes declared test cases against registered exercises.
type Runner struct {
	registry *exercise.Registry
	eval     interp.Evaluator
	logger   *telemetry.Logger
	metrics  *telemetry.Metrics
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the logger.
func WithLogger(l *telemetry.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// New creates a runner over the given exercise registry and interpreter
// capability.
func New(registry *exercise.Registry, eval interp.Evaluator, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		eval:     eval,
		logger:   telemetry.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		m, _ := telemetry.NewMetrics(telemetry.DefaultMetricsConfig())
		r.metrics = m
	}
	return r
}

// RunSuite runs every test of a suite against the same source, one
// fresh run per test.
func (r *Runner) RunSuite(ctx context.Context, exerciseSlug, source string, tests []TaskTest) (*SuiteReport, error) {
	suite := &SuiteReport{Exercise: exerciseSlug}
	for i := range tests {
		report, err := r.RunTest(ctx, exerciseSlug, source, &tests[i])
		if err != nil {
			return nil, err
		}
		suite.Reports = append(suite.Reports, report)
		if report.Status == "pass" {
			suite.Passed++
		} else {
			suite.Failed++
		}
	}
	return suite, nil
}

// RunTest drives one test case through Setup, Run, ResolveActual,
// Evaluate, and Report. The returned error covers only declaration
// problems (unknown exercise, unknown matcher, malformed literals);
// script failures of any origin land inside the report as one synthetic
// failing check so the report shape stays uniform.
func (r *Runner) RunTest(ctx context.Context, exerciseSlug, source string, test *TaskTest) (*Report, error) {
	runID := uuid.NewString()
	logger := r.logger.WithRunID(runID).WithExercise(exerciseSlug)
	r.metrics.RecordRunStarted(exerciseSlug)

	// Setup: fresh run-scoped state, exercise construction, declared
	// setup calls.
	execCtx := exec.NewContext()
	recorder := timeline.NewRecorder(execCtx)

	ex, err := r.registry.New(exerciseSlug, execCtx, recorder)
	if err != nil {
		return nil, err
	}
	functions := ex.AvailableFunctions()
	if err := r.runSetup(execCtx, functions, test.Setup); err != nil {
		return nil, err
	}

	rc := &interp.RunContext{
		Exec:      execCtx,
		Functions: functions,
		Classes:   ex.AvailableClasses(),
		MaxSteps:  test.MaxSteps,
	}

	// Run: dispatch on the declared invocation shape.
	var (
		returnValue object.JikiObject
		scriptErr   error
		runType     string
	)
	switch test.invocation() {
	case invokeFunction:
		args, convErr := literalArgs(test.Args)
		if convErr != nil {
			return nil, convErr
		}
		runType = "function"
		returnValue, scriptErr = r.eval.EvaluateFunction(ctx, rc, source, test.Function, args)
	case invokeExpression:
		runType = "expression"
		returnValue, scriptErr = r.eval.EvaluateExpression(ctx, rc, source, test.Expression)
	default:
		runType = "program"
		returnValue, scriptErr = r.eval.Interpret(ctx, rc, source)
	}

	// A run-level error becomes one additional always-failing check;
	// declared checks still run against whatever actual value is
	// available.
	var expects []ExpectResult
	if scriptErr != nil {
		expects = append(expects, ExpectResult{
			Name:      "error",
			Matcher:   "toBeNil",
			Actual:    scriptErr.Error(),
			ErrorHTML: scriptErr.Error(),
		})
	} else if logicErr := execCtx.LogicError(); logicErr != nil {
		expects = append(expects, ExpectResult{
			Name:      "error",
			Matcher:   "toBeNil",
			Actual:    logicErr.Message,
			ErrorHTML: logicErr.Message,
		})
	}

	// ResolveActual + Evaluate for each declared check.
	for i := range test.Checks {
		check := &test.Checks[i]
		result, checkErr := r.evaluateCheck(execCtx, ex, functions, check, returnValue)
		if checkErr != nil {
			return nil, checkErr
		}
		r.metrics.RecordCheck(result.Pass)
		expects = append(expects, result)
	}

	// Report: fold in the compiled timeline.
	tl := timeline.Compile(recorder.Effects(), ex.WholeRunEffects(), execCtx.Status(), ex.AnimateInfiniteLoops(), execCtx.Now())
	if tl.Suppressed {
		r.metrics.RecordSuppressedTimeline()
	}

	status := "pass"
	for _, e := range expects {
		if !e.Pass {
			status = "fail"
			break
		}
	}

	report := &Report{
		RunID:             runID,
		Slug:              test.Slug,
		CodeRun:           test.CodeRun(),
		Type:              runType,
		Status:            status,
		Expects:           expects,
		Frames:            execCtx.Frames(),
		AnimationTimeline: tl,
		LogMessages:       execCtx.LogMessages(),
		ImageSlug:         test.ImageSlug,
		View:              test.View,
	}

	logger.WithField("status", status).Debugf("test %s completed in %dms of virtual time", test.Slug, execCtx.Now())
	r.metrics.RecordRunCompleted(exerciseSlug, string(execCtx.Status()))
	return report, nil
}

// runSetup invokes the declared setup calls, in order, against the
// exercise's own function table.
func (r *Runner) runSetup(execCtx *exec.Context, functions []exercise.HostFunction, setup []SetupCall) error {
	for _, call := range setup {
		fn, ok := findFunction(functions, call.Function)
		if !ok {
			return fmt.Errorf("setup function %q is not provided by the exercise", call.Function)
		}
		args, err := literalArgs(call.Args)
		if err != nil {
			return err
		}
		fn.Func(execCtx, args)
	}
	return nil
}

// evaluateCheck resolves the check's actual value through its single
// declared strategy and applies the matcher.
func (r *Runner) evaluateCheck(execCtx *exec.Context, ex exercise.Exercise, functions []exercise.HostFunction, check *ExpectCheck, returnValue object.JikiObject) (ExpectResult, error) {
	var actual object.JikiObject
	switch check.source() {
	case actualFromFunction:
		fn, ok := findFunction(functions, check.Function)
		if !ok {
			return ExpectResult{}, fmt.Errorf("check function %q is not provided by the exercise", check.Function)
		}
		args, err := literalArgs(check.Args)
		if err != nil {
			return ExpectResult{}, err
		}
		actual = fn.Func(execCtx, args)
	case actualFromProperty:
		actual = ex.GetState()[check.Property]
	default:
		actual = returnValue
	}

	expected, err := object.FromGo(check.Expected)
	if err != nil {
		return ExpectResult{}, fmt.Errorf("check %q: %w", check.label(), err)
	}

	matcher := check.Matcher
	if matcher == "" {
		matcher = "toEqual"
	}
	pass, err := Match(matcher, actual, expected)
	if err != nil {
		return ExpectResult{}, fmt.Errorf("check %q: %w", check.label(), err)
	}

	result := ExpectResult{
		Name:     check.label(),
		Matcher:  matcher,
		Actual:   inspectOrNothing(actual),
		Expected: inspectOrNothing(expected),
		Pass:     pass,
	}
	if !pass {
		result.ErrorHTML = failureMessage(check, actual, expected)
	}
	return result, nil
}

func findFunction(functions []exercise.HostFunction, name string) (exercise.HostFunction, bool) {
	for _, fn := range functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return exercise.HostFunction{}, false
}

func literalArgs(literals []interface{}) ([]object.JikiObject, error) {
	args := make([]object.JikiObject, len(literals))
	for i, lit := range literals {
		obj, err := object.FromGo(lit)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		args[i] = obj
	}
	return args, nil
}
