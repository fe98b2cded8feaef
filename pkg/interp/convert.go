package interp

import (
	"fmt"
	"sort"
	"strings"

	"go.starlark.net/starlark"

	"github.com/jikirun/jikirun/pkg/exec"
	"github.com/jikirun/jikirun/pkg/exercise"
	"github.com/jikirun/jikirun/pkg/object"
)

// toStarlark converts a bridge value to a starlark value.
func toStarlark(rc *RunContext, obj object.JikiObject) (starlark.Value, error) {
	switch val := obj.(type) {
	case nil:
		return starlark.None, nil
	case *object.Number:
		return starlark.Float(val.Val), nil
	case *object.String:
		return starlark.String(val.Val), nil
	case *object.Boolean:
		return starlark.Bool(val.Val), nil
	case *object.List:
		items := make([]starlark.Value, len(val.Items))
		for i, item := range val.Items {
			sv, err := toStarlark(rc, item)
			if err != nil {
				return nil, err
			}
			items[i] = sv
		}
		return starlark.NewList(items), nil
	case *object.Dictionary:
		dict := starlark.NewDict(len(val.Entries))
		for k, item := range val.Entries {
			sv, err := toStarlark(rc, item)
			if err != nil {
				return nil, err
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, err
			}
		}
		return dict, nil
	case *object.Instance:
		return &starlarkInstance{inst: val, rc: rc}, nil
	default:
		return nil, fmt.Errorf("unsupported value kind: %s", obj.Kind())
	}
}

// fromStarlark converts a starlark value back to a bridge value.
func fromStarlark(v starlark.Value) (object.JikiObject, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return object.NewBoolean(bool(val)), nil
	case starlark.Int:
		f, ok := starlark.AsFloat(val)
		if !ok {
			return nil, fmt.Errorf("integer too large")
		}
		return object.NewNumber(f), nil
	case starlark.Float:
		return object.NewNumber(float64(val)), nil
	case starlark.String:
		return object.NewString(string(val)), nil
	case *starlark.List:
		items := make([]object.JikiObject, val.Len())
		for i := 0; i < val.Len(); i++ {
			item, err := fromStarlark(val.Index(i))
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return object.NewList(items...), nil
	case starlark.Tuple:
		items := make([]object.JikiObject, len(val))
		for i, elem := range val {
			item, err := fromStarlark(elem)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return object.NewList(items...), nil
	case *starlark.Dict:
		entries := make(map[string]object.JikiObject, val.Len())
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dictionary keys must be strings")
			}
			value, err := fromStarlark(item[1])
			if err != nil {
				return nil, err
			}
			entries[string(key)] = value
		}
		return object.NewDictionary(entries), nil
	case *starlarkInstance:
		return val.inst, nil
	default:
		return nil, fmt.Errorf("unsupported starlark type: %s", v.Type())
	}
}

// narrate substitutes ${argN} placeholders in a narration template with
// the call's argument displays.
func narrate(description string, args []object.JikiObject) string {
	out := description
	for i, arg := range args {
		placeholder := fmt.Sprintf("${arg%d}", i+1)
		display := "nothing"
		if arg != nil {
			display = arg.Inspect()
		}
		out = strings.ReplaceAll(out, placeholder, display)
	}
	return out
}

// recordCall stamps a narrated frame for one host-visible operation,
// marking it failed if the call newly raised a logic error.
func recordCall(rc *RunContext, hadError bool, description string) {
	status := exec.FrameSuccess
	if !hadError && rc.Exec.LogicError() != nil {
		status = exec.FrameError
	}
	rc.Exec.AddFrame(description, status)
}

// hostBuiltin wraps an exercise host function as a starlark builtin.
func hostBuiltin(rc *RunContext, fn exercise.HostFunction) *starlark.Builtin {
	return starlark.NewBuiltin(fn.Name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: keyword arguments are not supported", b.Name())
		}
		jikiArgs, err := convertArgs(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}

		hadError := rc.Exec.LogicError() != nil
		result := fn.Func(rc.Exec, jikiArgs)
		recordCall(rc, hadError, narrate(fn.Description, jikiArgs))

		return toStarlark(rc, result)
	})
}

// classBuiltin wraps a class definition as a constructible starlark
// value.
func classBuiltin(rc *RunContext, cd *object.ClassDefinition) *starlark.Builtin {
	return starlark.NewBuiltin(cd.Name(), func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: keyword arguments are not supported", b.Name())
		}
		jikiArgs, err := convertArgs(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}

		hadError := rc.Exec.LogicError() != nil
		inst := cd.Instantiate(rc.Exec, jikiArgs)
		recordCall(rc, hadError, fmt.Sprintf("created a new %s", cd.Name()))

		return &starlarkInstance{inst: inst, rc: rc}, nil
	})
}

func convertArgs(args starlark.Tuple) ([]object.JikiObject, error) {
	jikiArgs := make([]object.JikiObject, len(args))
	for i, arg := range args {
		converted, err := fromStarlark(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		jikiArgs[i] = converted
	}
	return jikiArgs, nil
}

// starlarkInstance surfaces a bridge instance to scripts. Attribute
// reads dispatch to public getters and methods; attribute writes
// dispatch to public setters. Private members and the raw field map are
// unreachable from interpreted code.
type starlarkInstance struct {
	inst *object.Instance
	rc   *RunContext
}

var (
	_ starlark.Value       = (*starlarkInstance)(nil)
	_ starlark.HasAttrs    = (*starlarkInstance)(nil)
	_ starlark.HasSetField = (*starlarkInstance)(nil)
)

func (si *starlarkInstance) String() string        { return si.inst.Inspect() }
func (si *starlarkInstance) Type() string          { return si.inst.Class().Name() }
func (si *starlarkInstance) Freeze()               {}
func (si *starlarkInstance) Truth() starlark.Bool  { return starlark.True }
func (si *starlarkInstance) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", si.Type())
}

func (si *starlarkInstance) Attr(name string) (starlark.Value, error) {
	cd := si.inst.Class()

	if getter, ok := cd.Getter(name); ok {
		if getter.Visibility != object.Public {
			return nil, starlark.NoSuchAttrError(fmt.Sprintf("%s.%s is private", cd.Name(), name))
		}
		return toStarlark(si.rc, getter.Fn(si.rc.Exec, si.inst))
	}

	if method, ok := cd.Method(name); ok {
		if method.Visibility != object.Public {
			return nil, starlark.NoSuchAttrError(fmt.Sprintf("%s.%s is private", cd.Name(), name))
		}
		return si.boundMethod(method), nil
	}

	// (nil, nil) means attribute not found.
	return nil, nil
}

func (si *starlarkInstance) AttrNames() []string {
	names := si.inst.Class().MemberNames()
	sort.Strings(names)
	return names
}

func (si *starlarkInstance) SetField(name string, val starlark.Value) error {
	cd := si.inst.Class()
	setter, ok := cd.Setter(name)
	if !ok || setter.Visibility != object.Public {
		return starlark.NoSuchAttrError(fmt.Sprintf("%s has no settable field %q", cd.Name(), name))
	}

	converted, err := fromStarlark(val)
	if err != nil {
		return err
	}

	hadError := si.rc.Exec.LogicError() != nil
	setter.Fn(si.rc.Exec, si.inst, converted)
	recordCall(si.rc, hadError, narrate(fmt.Sprintf("set the %s's %s to ${arg1}", strings.ToLower(cd.Name()), name), []object.JikiObject{converted}))
	return nil
}

func (si *starlarkInstance) boundMethod(method object.Method) *starlark.Builtin {
	return starlark.NewBuiltin(method.Name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: keyword arguments are not supported", b.Name())
		}
		jikiArgs, err := convertArgs(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}

		hadError := si.rc.Exec.LogicError() != nil
		result := method.Fn(si.rc.Exec, si.inst, jikiArgs)
		recordCall(si.rc, hadError, narrate(method.Description, jikiArgs))

		return toStarlark(si.rc, result)
	})
}
