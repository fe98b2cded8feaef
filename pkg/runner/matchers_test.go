package runner

import (
	"testing"

	"github.com/jikirun/jikirun/pkg/object"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		matcher  string
		actual   object.JikiObject
		expected object.JikiObject
		want     bool
	}{
		{"equal numbers", "toEqual", object.NewNumber(3), object.NewNumber(3), true},
		{"near numbers within tolerance", "toEqual", object.NewNumber(0.1 + 0.2), object.NewNumber(0.3), true},
		{"unequal numbers", "toEqual", object.NewNumber(3), object.NewNumber(4), false},
		{"equal strings", "toEqual", object.NewString("hi"), object.NewString("hi"), true},
		{"nil actual never equals", "toEqual", nil, object.NewNumber(0), false},
		{"default matcher is toEqual", "", object.NewNumber(1), object.NewNumber(1), true},

		{"toBe exact number", "toBe", object.NewNumber(2), object.NewNumber(2), true},
		{"toBe rejects tolerance", "toBe", object.NewNumber(0.1 + 0.2), object.NewNumber(0.3), false},
		{"toBe rejects kind mismatch", "toBe", object.NewNumber(1), object.NewString("1"), false},
		{"toBe nil both", "toBe", nil, nil, true},

		{"toBeTrue on true", "toBeTrue", object.NewBoolean(true), nil, true},
		{"toBeTrue on false", "toBeTrue", object.NewBoolean(false), nil, false},
		{"toBeTrue on non-boolean", "toBeTrue", object.NewNumber(1), nil, false},
		{"toBeFalse on false", "toBeFalse", object.NewBoolean(false), nil, true},
		{"toBeFalse on true", "toBeFalse", object.NewBoolean(true), nil, false},

		{"greater than", "toBeGreaterThan", object.NewNumber(5), object.NewNumber(3), true},
		{"not greater than", "toBeGreaterThan", object.NewNumber(3), object.NewNumber(5), false},
		{"greater than non-number", "toBeGreaterThan", object.NewString("a"), object.NewNumber(1), false},
		{"less than", "toBeLessThan", object.NewNumber(3), object.NewNumber(5), true},
		{"not less than", "toBeLessThan", object.NewNumber(5), object.NewNumber(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.matcher, tt.actual, tt.expected)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%q, %v, %v) = %v, want %v", tt.matcher, tt.actual, tt.expected, got, tt.want)
			}
		})
	}
}

func TestMatchUnknownMatcher(t *testing.T) {
	if _, err := Match("toExplode", object.NewNumber(1), object.NewNumber(1)); err == nil {
		t.Error("an unknown matcher must be a declaration error, not a verdict")
	}
}

func TestMatchIsPure(t *testing.T) {
	a, b := object.NewNumber(7), object.NewNumber(7)
	for i := 0; i < 3; i++ {
		got, err := Match("toEqual", a, b)
		if err != nil || !got {
			t.Fatalf("call %d: got %v, %v", i, got, err)
		}
	}
}

func TestFailureMessage(t *testing.T) {
	check := &ExpectCheck{
		Property:  "count",
		ErrorHTML: "wanted %expected% but the counter held %actual%",
	}
	msg := failureMessage(check, object.NewNumber(2), object.NewNumber(5))
	if msg != "wanted 5 but the counter held 2" {
		t.Errorf("message = %q", msg)
	}
}

func TestFailureMessageFallback(t *testing.T) {
	check := &ExpectCheck{Property: "count"}
	msg := failureMessage(check, nil, object.NewNumber(5))
	if msg != "expected count to be 5, but it was nothing" {
		t.Errorf("message = %q", msg)
	}
}
