package object

import "fmt"

// FromGo converts a plain Go value (as decoded from YAML or JSON
// literals) into a JikiObject. Unsupported types return an error rather
// than a panic so malformed suite files surface as validation failures.
func FromGo(v interface{}) (JikiObject, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return NewBoolean(val), nil
	case int:
		return NewNumber(float64(val)), nil
	case int64:
		return NewNumber(float64(val)), nil
	case float64:
		return NewNumber(val), nil
	case string:
		return NewString(val), nil
	case []interface{}:
		items := make([]JikiObject, len(val))
		for i, item := range val {
			obj, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			items[i] = obj
		}
		return NewList(items...), nil
	case map[string]interface{}:
		entries := make(map[string]JikiObject, len(val))
		for k, item := range val {
			obj, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			entries[k] = obj
		}
		return NewDictionary(entries), nil
	default:
		return nil, fmt.Errorf("unsupported literal type: %T", v)
	}
}

// ToGo converts a JikiObject back to a plain Go value. Instances are
// rendered as their display form since they have no literal equivalent.
func ToGo(obj JikiObject) interface{} {
	switch val := obj.(type) {
	case nil:
		return nil
	case *Number:
		return val.Val
	case *String:
		return val.Val
	case *Boolean:
		return val.Val
	case *List:
		items := make([]interface{}, len(val.Items))
		for i, item := range val.Items {
			items[i] = ToGo(item)
		}
		return items
	case *Dictionary:
		entries := make(map[string]interface{}, len(val.Entries))
		for k, item := range val.Entries {
			entries[k] = ToGo(item)
		}
		return entries
	default:
		return obj.Inspect()
	}
}
