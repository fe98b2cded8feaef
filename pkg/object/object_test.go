package object

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b JikiObject
		want bool
	}{
		{"equal numbers", NewNumber(3), NewNumber(3), true},
		{"numbers within tolerance", NewNumber(0.1 + 0.2), NewNumber(0.3), true},
		{"different numbers", NewNumber(3), NewNumber(4), false},
		{"number vs string", NewNumber(3), NewString("3"), false},
		{"equal strings", NewString("hi"), NewString("hi"), true},
		{"equal booleans", NewBoolean(true), NewBoolean(true), true},
		{"boolean vs number", NewBoolean(true), NewNumber(1), false},
		{"equal lists", NewList(NewNumber(1), NewString("a")), NewList(NewNumber(1), NewString("a")), true},
		{"lists differ in order", NewList(NewNumber(1), NewNumber(2)), NewList(NewNumber(2), NewNumber(1)), false},
		{"lists differ in length", NewList(NewNumber(1)), NewList(NewNumber(1), NewNumber(2)), false},
		{
			"equal dictionaries",
			NewDictionary(map[string]JikiObject{"a": NewNumber(1), "b": NewString("x")}),
			NewDictionary(map[string]JikiObject{"b": NewString("x"), "a": NewNumber(1)}),
			true,
		},
		{
			"dictionaries differ in value",
			NewDictionary(map[string]JikiObject{"a": NewNumber(1)}),
			NewDictionary(map[string]JikiObject{"a": NewNumber(2)}),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%s.Equal(%s) = %v, want %v", tt.a.Inspect(), tt.b.Inspect(), got, tt.want)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		obj  JikiObject
		want string
	}{
		{NewNumber(3), "3"},
		{NewNumber(3.5), "3.5"},
		{NewString("hi"), `"hi"`},
		{NewBoolean(false), "false"},
		{NewList(NewNumber(1), NewString("a")), `[1, "a"]`},
		{NewDictionary(map[string]JikiObject{"b": NewNumber(2), "a": NewNumber(1)}), `{"a": 1, "b": 2}`},
	}

	for _, tt := range tests {
		if got := tt.obj.Inspect(); got != tt.want {
			t.Errorf("Inspect() = %q, want %q", got, tt.want)
		}
	}
}

func TestFromGoRoundTrip(t *testing.T) {
	literal := map[string]interface{}{
		"count": 3,
		"name":  "robot",
		"tags":  []interface{}{"a", "b"},
		"live":  true,
	}

	obj, err := FromGo(literal)
	if err != nil {
		t.Fatalf("FromGo: %v", err)
	}
	dict, ok := obj.(*Dictionary)
	if !ok {
		t.Fatalf("FromGo returned %T, want *Dictionary", obj)
	}
	if !dict.Entries["count"].Equal(NewNumber(3)) {
		t.Errorf("count = %s, want 3", dict.Entries["count"].Inspect())
	}

	back := ToGo(dict)
	backMap, ok := back.(map[string]interface{})
	if !ok {
		t.Fatalf("ToGo returned %T, want map", back)
	}
	if backMap["name"] != "robot" {
		t.Errorf("name = %v, want robot", backMap["name"])
	}
}

func TestFromGoRejectsUnsupported(t *testing.T) {
	if _, err := FromGo(struct{}{}); err == nil {
		t.Error("FromGo(struct{}{}) should fail")
	}
}
