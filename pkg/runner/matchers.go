package runner

import (
	"fmt"
	"strings"

	"github.com/jikirun/jikirun/pkg/object"
)

// Match applies the named matcher to (actual, expected). It is a pure
// function: the same inputs always yield the same verdict. An unknown
// matcher is a declaration error, not a failing check.
func Match(name string, actual, expected object.JikiObject) (bool, error) {
	if name == "" {
		name = "toEqual"
	}

	switch name {
	case "toEqual":
		return actual != nil && actual.Equal(expected), nil

	case "toBe":
		return strictEqual(actual, expected), nil

	case "toBeTrue":
		b, ok := actual.(*object.Boolean)
		return ok && b.Val, nil

	case "toBeFalse":
		b, ok := actual.(*object.Boolean)
		return ok && !b.Val, nil

	case "toBeGreaterThan":
		a, b, ok := bothNumbers(actual, expected)
		return ok && a > b, nil

	case "toBeLessThan":
		a, b, ok := bothNumbers(actual, expected)
		return ok && a < b, nil

	default:
		return false, fmt.Errorf("unknown matcher %q", name)
	}
}

// strictEqual is toBe: identical variant and exact value, no numeric
// tolerance.
func strictEqual(actual, expected object.JikiObject) bool {
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}
	if actual.Kind() != expected.Kind() {
		return false
	}
	if a, ok := actual.(*object.Number); ok {
		return a.Val == expected.(*object.Number).Val
	}
	return actual.Equal(expected)
}

func bothNumbers(actual, expected object.JikiObject) (float64, float64, bool) {
	a, aok := actual.(*object.Number)
	b, bok := expected.(*object.Number)
	if !aok || !bok {
		return 0, 0, false
	}
	return a.Val, b.Val, true
}

// failureMessage renders the check's failure text, substituting
// %actual% and %expected% in the declared template, or falling back to
// a generic message.
func failureMessage(check *ExpectCheck, actual, expected object.JikiObject) string {
	actualText := inspectOrNothing(actual)
	expectedText := inspectOrNothing(expected)

	if check.ErrorHTML != "" {
		msg := strings.ReplaceAll(check.ErrorHTML, "%actual%", actualText)
		return strings.ReplaceAll(msg, "%expected%", expectedText)
	}
	return fmt.Sprintf("expected %s to be %s, but it was %s", check.label(), expectedText, actualText)
}

func inspectOrNothing(obj object.JikiObject) string {
	if obj == nil {
		return "nothing"
	}
	return obj.Inspect()
}
