package object

import (
	"fmt"

	"github.com/jikirun/jikirun/pkg/exec"
)

// Visibility tags whether interpreted code may reach a getter, setter, or
// method. Private members are host-only.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// ConstructorFn initializes a freshly allocated instance. It validates
// its arguments and reports logic errors through ctx; it never unwinds.
type ConstructorFn func(ctx *exec.Context, inst *Instance, args []JikiObject)

// GetterFn computes a readable property of an instance.
type GetterFn func(ctx *exec.Context, inst *Instance) JikiObject

// SetterFn validates and applies a writable property of an instance.
type SetterFn func(ctx *exec.Context, inst *Instance, value JikiObject)

// MethodFn runs a named behavior on an instance and returns its result,
// which may be nil for methods with no meaningful value.
type MethodFn func(ctx *exec.Context, inst *Instance, args []JikiObject) JikiObject

// Getter is a named readable property with a visibility tag.
type Getter struct {
	Name       string
	Visibility Visibility
	Fn         GetterFn
}

// Setter is a named writable property with a visibility tag.
type Setter struct {
	Name       string
	Visibility Visibility
	Fn         SetterFn
}

// Method is a named behavior. Description is the past-tense narration
// used for generated "what happened" frames; ${argN} placeholders are
// substituted with the call's arguments.
type Method struct {
	Name        string
	Description string
	Visibility  Visibility
	Fn          MethodFn
}

// ClassDefinition is a runtime class: a name plus three name-keyed
// member tables. It is built once per exercise construction through a
// ClassBuilder, immutable thereafter, and shared read-only across all
// instances created from it. There is no inheritance chain; composition
// (an instance holding another instance as a field) is the only
// relationship mechanism.
type ClassDefinition struct {
	name        string
	constructor ConstructorFn
	getters     map[string]Getter
	setters     map[string]Setter
	methods     map[string]Method
}

// Name returns the class name, unique per exercise.
func (cd *ClassDefinition) Name() string { return cd.name }

// Getter looks up a getter by name.
func (cd *ClassDefinition) Getter(name string) (Getter, bool) {
	g, ok := cd.getters[name]
	return g, ok
}

// Setter looks up a setter by name.
func (cd *ClassDefinition) Setter(name string) (Setter, bool) {
	s, ok := cd.setters[name]
	return s, ok
}

// Method looks up a method by name.
func (cd *ClassDefinition) Method(name string) (Method, bool) {
	m, ok := cd.methods[name]
	return m, ok
}

// MemberNames returns the names of all public getters and methods, used
// by the interpreter boundary for attribute listing.
func (cd *ClassDefinition) MemberNames() []string {
	names := make([]string, 0, len(cd.getters)+len(cd.methods))
	for name, g := range cd.getters {
		if g.Visibility == Public {
			names = append(names, name)
		}
	}
	for name, m := range cd.methods {
		if m.Visibility == Public {
			names = append(names, name)
		}
	}
	return names
}

// Instantiate allocates an instance and invokes the constructor. If the
// constructor reports a logic error the partially initialized instance
// is still returned: the run is marked failed through ctx, but the
// caller decides whether to keep using the instance.
func (cd *ClassDefinition) Instantiate(ctx *exec.Context, args []JikiObject) *Instance {
	inst := &Instance{class: cd, fields: make(map[string]JikiObject)}
	if cd.constructor != nil {
		cd.constructor(ctx, inst, args)
	}
	return inst
}

// ClassBuilder assembles a ClassDefinition. Build order does not matter;
// the definition is immutable once handed out.
type ClassBuilder struct {
	def *ClassDefinition
}

// DefineClass starts building a class with the given name.
func DefineClass(name string) *ClassBuilder {
	return &ClassBuilder{def: &ClassDefinition{
		name:    name,
		getters: make(map[string]Getter),
		setters: make(map[string]Setter),
		methods: make(map[string]Method),
	}}
}

// AddConstructor sets the constructor.
func (b *ClassBuilder) AddConstructor(fn ConstructorFn) *ClassBuilder {
	b.def.constructor = fn
	return b
}

// AddGetter declares a readable property. A nil fn defaults to reading
// the field of the same name.
func (b *ClassBuilder) AddGetter(name string, visibility Visibility, fn GetterFn) *ClassBuilder {
	if fn == nil {
		field := name
		fn = func(_ *exec.Context, inst *Instance) JikiObject {
			return inst.GetField(field)
		}
	}
	b.def.getters[name] = Getter{Name: name, Visibility: visibility, Fn: fn}
	return b
}

// AddSetter declares a writable property.
func (b *ClassBuilder) AddSetter(name string, visibility Visibility, fn SetterFn) *ClassBuilder {
	b.def.setters[name] = Setter{Name: name, Visibility: visibility, Fn: fn}
	return b
}

// AddMethod declares a named behavior with its past-tense narration.
func (b *ClassBuilder) AddMethod(name, description string, visibility Visibility, fn MethodFn) *ClassBuilder {
	b.def.methods[name] = Method{Name: name, Description: description, Visibility: visibility, Fn: fn}
	return b
}

// Build returns the finished definition.
func (b *ClassBuilder) Build() *ClassDefinition {
	return b.def
}

// Instance is a runtime value created from a ClassDefinition. Fields are
// mutated only through declared setters or the host-only SetField; the
// interpreted script never reaches into the field map directly.
type Instance struct {
	class  *ClassDefinition
	fields map[string]JikiObject
}

// Class returns the definition this instance was created from.
func (i *Instance) Class() *ClassDefinition { return i.class }

// GetField reads a field. Host-only; returns nil when the field is
// unset.
func (i *Instance) GetField(name string) JikiObject {
	return i.fields[name]
}

// SetField writes a field. Host-only; validation lives in the class's
// own setters, not here.
func (i *Instance) SetField(name string, value JikiObject) {
	i.fields[name] = value
}

func (i *Instance) Kind() Kind { return KindInstance }

func (i *Instance) Inspect() string {
	return fmt.Sprintf("a %s", i.class.name)
}

// Equal compares instances by identity. Two distinct instances are never
// equal, whatever their fields hold.
func (i *Instance) Equal(other JikiObject) bool {
	o, ok := other.(*Instance)
	return ok && i == o
}
