package object

import (
	"fmt"

	"github.com/jikirun/jikirun/pkg/exec"
)

// The Require helpers are the validation vocabulary class authors use in
// constructors and setters. Each asserts the runtime variant of one
// argument and reports a validation error with a student-facing message
// on mismatch. The runtime itself never enforces field types beyond what
// each class chooses to check here.

// RequireNumber asserts v is a Number and returns its value.
func RequireNumber(ctx *exec.Context, v JikiObject, what string) (float64, bool) {
	n, ok := v.(*Number)
	if !ok {
		ctx.ReportValidationError(fmt.Sprintf("%s must be a number, got %s", what, kindOf(v)))
		return 0, false
	}
	return n.Val, true
}

// RequireString asserts v is a String and returns its value.
func RequireString(ctx *exec.Context, v JikiObject, what string) (string, bool) {
	s, ok := v.(*String)
	if !ok {
		ctx.ReportValidationError(fmt.Sprintf("%s must be a string, got %s", what, kindOf(v)))
		return "", false
	}
	return s.Val, true
}

// RequireBoolean asserts v is a Boolean and returns its value.
func RequireBoolean(ctx *exec.Context, v JikiObject, what string) (bool, bool) {
	b, ok := v.(*Boolean)
	if !ok {
		ctx.ReportValidationError(fmt.Sprintf("%s must be a boolean, got %s", what, kindOf(v)))
		return false, false
	}
	return b.Val, true
}

// RequireArity asserts the call received exactly want arguments.
func RequireArity(ctx *exec.Context, args []JikiObject, want int, what string) bool {
	if len(args) != want {
		ctx.ReportValidationError(fmt.Sprintf("%s expects %d argument(s), got %d", what, want, len(args)))
		return false
	}
	return true
}

func kindOf(v JikiObject) string {
	if v == nil {
		return "nothing"
	}
	return string(v.Kind())
}
