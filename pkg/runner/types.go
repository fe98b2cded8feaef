// Package runner drives one interpreted run per declared test case:
// exercise setup, script execution through the interpreter capability,
// actual-value resolution, matcher evaluation, and report assembly with
// the compiled animation timeline folded in.
package runner

import (
	"fmt"
	"strings"

	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/object"
	"github.com/jikirun/jikirun/pkg/timeline"
)

// SetupCall names an exercise function run before the scripted part of a
// test, with its literal arguments.
type SetupCall struct {
	Function string        `json:"function"`
	Args     []interface{} `json:"args,omitempty"`
}

// TaskTest is one declarative test case. Exactly one invocation shape
// applies: a target function name with argument literals, a target
// expression string, or neither, which means "evaluate the whole program
// and compare final state".
type TaskTest struct {
	// Slug identifies the test.
	Slug string `json:"slug"`

	// Name is the human-readable test name.
	Name string `json:"name"`

	// Function is the top-level function to call, if any.
	Function string `json:"function,omitempty"`

	// Args are the literal arguments for Function.
	Args []interface{} `json:"args,omitempty"`

	// Expression is the expression to evaluate, if any.
	Expression string `json:"expression,omitempty"`

	// Setup lists exercise functions to run before the script.
	Setup []SetupCall `json:"setup,omitempty"`

	// Checks are the assertions for this test.
	Checks []ExpectCheck `json:"checks"`

	// ImageSlug and View are UI passthroughs carried into the report.
	ImageSlug string `json:"imageSlug,omitempty"`
	View      string `json:"view,omitempty"`

	// MaxSteps overrides the interpreter step budget; 0 keeps the
	// default.
	MaxSteps uint64 `json:"maxSteps,omitempty"`
}

// invocationKind tags the test's invocation shape.
type invocationKind int

const (
	invokeFunction invocationKind = iota
	invokeExpression
	invokeProgram
)

func (t *TaskTest) invocation() invocationKind {
	switch {
	case t.Function != "":
		return invokeFunction
	case t.Expression != "":
		return invokeExpression
	default:
		return invokeProgram
	}
}

// CodeRun renders the human-readable invocation string for the report.
func (t *TaskTest) CodeRun() string {
	switch t.invocation() {
	case invokeFunction:
		parts := make([]string, len(t.Args))
		for i, arg := range t.Args {
			parts[i] = formatLiteral(arg)
		}
		return fmt.Sprintf("%s(%s)", t.Function, strings.Join(parts, ", "))
	case invokeExpression:
		return t.Expression
	default:
		return "run"
	}
}

// ExpectCheck is one declarative assertion. Its "actual" value resolves
// through exactly one of three strategies, selected by which field is
// present: Function (call and capture), Property (read from exercise
// state), or neither (reuse the run's primary return value).
type ExpectCheck struct {
	// Name labels the check in the report; defaults to a description
	// of the resolution target.
	Name string `json:"name,omitempty"`

	// Function names an exercise function to call for the actual
	// value.
	Function string `json:"function,omitempty"`

	// Args are the literal arguments for Function.
	Args []interface{} `json:"args,omitempty"`

	// Property names a key of the exercise state to read.
	Property string `json:"property,omitempty"`

	// Matcher names the comparison; defaults to toEqual.
	Matcher string `json:"matcher,omitempty"`

	// Expected is the literal expected value.
	Expected interface{} `json:"expected"`

	// ErrorHTML is the failure message template; %actual% and
	// %expected% are substituted.
	ErrorHTML string `json:"errorHtml,omitempty"`
}

// actualSource tags the check's resolution strategy, decided once per
// check.
type actualSource int

const (
	actualFromFunction actualSource = iota
	actualFromProperty
	actualFromReturn
)

func (c *ExpectCheck) source() actualSource {
	switch {
	case c.Function != "":
		return actualFromFunction
	case c.Property != "":
		return actualFromProperty
	default:
		return actualFromReturn
	}
}

func (c *ExpectCheck) label() string {
	if c.Name != "" {
		return c.Name
	}
	switch c.source() {
	case actualFromFunction:
		return c.Function
	case actualFromProperty:
		return c.Property
	default:
		return "return value"
	}
}

// ExpectResult is the outcome of one check.
type ExpectResult struct {
	Name      string `json:"name"`
	Matcher   string `json:"matcher"`
	Actual    string `json:"actual"`
	Expected  string `json:"expected"`
	Pass      bool   `json:"pass"`
	ErrorHTML string `json:"errorHtml,omitempty"`
}

// Report is the uniform result shape of one test run, whatever the
// error origin.
type Report struct {
	RunID             string            `json:"runId"`
	Slug              string            `json:"slug"`
	CodeRun           string            `json:"codeRun"`
	Type              string            `json:"type"`
	Status            string            `json:"status"`
	Expects           []ExpectResult    `json:"expects"`
	Frames            []exec.Frame      `json:"frames"`
	AnimationTimeline timeline.Timeline `json:"animationTimeline"`
	LogMessages       []string          `json:"logMessages"`
	ImageSlug         string            `json:"imageSlug,omitempty"`
	View              string            `json:"view,omitempty"`
}

// SuiteReport aggregates the reports of one suite run.
type SuiteReport struct {
	Exercise string    `json:"exercise"`
	Reports  []*Report `json:"reports"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
}

// formatLiteral renders a literal argument the way a student would have
// typed it.
func formatLiteral(v interface{}) string {
	obj, err := object.FromGo(v)
	if err != nil || obj == nil {
		return fmt.Sprintf("%v", v)
	}
	return obj.Inspect()
}
