package object

import (
	"strings"
	"testing"

	"github.com/jikirun/jikirun/pkg/exec"
)

// newCounterClass is the shared fixture: a Counter whose increment
// setter validates its argument is a number.
func newCounterClass() *ClassDefinition {
	return DefineClass("Counter").
		AddConstructor(func(ctx *exec.Context, inst *Instance, args []JikiObject) {
			inst.SetField("count", NewNumber(0))
		}).
		AddGetter("count", Public, nil).
		AddSetter("increment", Public, func(ctx *exec.Context, inst *Instance, value JikiObject) {
			amount, ok := RequireNumber(ctx, value, "the amount to increment by")
			if !ok {
				return
			}
			current := inst.GetField("count").(*Number)
			inst.SetField("count", NewNumber(current.Val+amount))
		}).
		Build()
}

func TestInstantiateRunsConstructor(t *testing.T) {
	ctx := exec.NewContext()
	inst := newCounterClass().Instantiate(ctx, nil)

	if !ctx.OK() {
		t.Fatalf("constructor reported error: %v", ctx.LogicError())
	}
	count := inst.GetField("count")
	if !count.Equal(NewNumber(0)) {
		t.Errorf("count = %s, want 0", count.Inspect())
	}
}

func TestSetterValidatesVariant(t *testing.T) {
	ctx := exec.NewContext()
	cd := newCounterClass()
	inst := cd.Instantiate(ctx, nil)

	setter, ok := cd.Setter("increment")
	if !ok {
		t.Fatal("increment setter not found")
	}
	setter.Fn(ctx, inst, NewString("five"))

	logicErr := ctx.LogicError()
	if logicErr == nil {
		t.Fatal("wrong-variant argument should report exactly one logic error")
	}
	if logicErr.Class != exec.ErrorClassValidation {
		t.Errorf("error class = %s, want validation", logicErr.Class)
	}
	if !strings.Contains(logicErr.Message, "number") {
		t.Errorf("message %q should mention the required type", logicErr.Message)
	}
	// No partially-applied side effects from the rejected call.
	if !inst.GetField("count").Equal(NewNumber(0)) {
		t.Errorf("count mutated by rejected setter: %s", inst.GetField("count").Inspect())
	}
}

func TestConstructorErrorStillReturnsInstance(t *testing.T) {
	cd := DefineClass("Strict").
		AddConstructor(func(ctx *exec.Context, inst *Instance, args []JikiObject) {
			if !RequireArity(ctx, args, 1, "Strict") {
				return
			}
			inst.SetField("value", args[0])
		}).
		Build()

	ctx := exec.NewContext()
	inst := cd.Instantiate(ctx, nil)
	if inst == nil {
		t.Fatal("Instantiate should return the partially initialized instance")
	}
	if ctx.OK() {
		t.Fatal("constructor should have reported an arity error")
	}
}

func TestSetGetFieldRoundTrip(t *testing.T) {
	cd := DefineClass("Holder").Build()
	ctx := exec.NewContext()
	inst := cd.Instantiate(ctx, nil)

	values := []JikiObject{
		NewNumber(42.5),
		NewString("hello"),
		NewBoolean(true),
		NewList(NewNumber(1), NewNumber(2)),
		NewDictionary(map[string]JikiObject{"a": NewNumber(1)}),
		cd.Instantiate(ctx, nil),
	}
	for _, v := range values {
		inst.SetField("x", v)
		got := inst.GetField("x")
		if got != v && !got.Equal(v) {
			t.Errorf("round trip lost %s, got %s", v.Inspect(), got.Inspect())
		}
	}
}

func TestDefaultGetterReadsSameNamedField(t *testing.T) {
	cd := DefineClass("Point").
		AddGetter("x", Public, nil).
		Build()

	ctx := exec.NewContext()
	inst := cd.Instantiate(ctx, nil)
	inst.SetField("x", NewNumber(7))

	getter, _ := cd.Getter("x")
	if got := getter.Fn(ctx, inst); !got.Equal(NewNumber(7)) {
		t.Errorf("default getter returned %s, want 7", got.Inspect())
	}
}

func TestMemberNamesSkipPrivate(t *testing.T) {
	cd := DefineClass("Mixed").
		AddGetter("shown", Public, nil).
		AddGetter("hidden", Private, nil).
		AddMethod("act", "acted", Public, func(ctx *exec.Context, inst *Instance, args []JikiObject) JikiObject { return nil }).
		AddMethod("internal", "did internals", Private, func(ctx *exec.Context, inst *Instance, args []JikiObject) JikiObject { return nil }).
		Build()

	names := cd.MemberNames()
	if len(names) != 2 {
		t.Fatalf("MemberNames() = %v, want 2 public members", names)
	}
	for _, name := range names {
		if name == "hidden" || name == "internal" {
			t.Errorf("private member %q leaked into MemberNames()", name)
		}
	}
}

func TestInstanceEqualityIsIdentity(t *testing.T) {
	cd := DefineClass("Thing").Build()
	ctx := exec.NewContext()
	a := cd.Instantiate(ctx, nil)
	b := cd.Instantiate(ctx, nil)

	if !a.Equal(a) {
		t.Error("instance should equal itself")
	}
	if a.Equal(b) {
		t.Error("distinct instances should not be equal")
	}
}
