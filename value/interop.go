package value

// FromAny converts a tree produced by a generic JSON decoder (as
// decoded into interface{}/map[string]interface{}/[]interface{}, such as
// the YAML-sourced documents the CLI decodes with github.com/goccy/go-yaml)
// into a Value tree. Object member order follows
// whatever order the source map iterates in, which for Go maps is
// unspecified; callers that need to preserve source order should parse
// with this module's own parser instead.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return NewNull()
	case bool:
		return NewBool(t)
	case string:
		return NewString(t)
	case float64:
		return NewNumber(NewNumberFromFloat64(t))
	case int:
		return NewNumber(NewNumberFromInt64(int64(t)))
	case int64:
		return NewNumber(NewNumberFromInt64(t))
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = FromAny(e)
		}
		return NewArray(out...)
	case map[string]any:
		obj := NewObj()
		for k, e := range t {
			obj.Append(k, FromAny(e))
		}
		return NewObjectFrom(obj)
	default:
		return NewInvalid()
	}
}

// ToAny converts a Value tree into plain Go values (bool, string,
// float64, []any, map[string]any, nil) suitable for handing to a generic
// encoder. Duplicate object members collapse to get-by-name semantics,
// since map[string]any cannot represent duplicates.
func ToAny(v Value) any {
	switch v.Kind() {
	case Null:
		return nil
	case Boolean:
		return v.Bool()
	case String:
		return v.Str()
	case Number:
		return v.Num().Float64()
	case Array:
		arr := v.Arr()
		out := make([]any, len(arr))
		for i, e := range arr {
			out[i] = ToAny(e)
		}
		return out
	case Object:
		out := make(map[string]any)
		v.ObjVal().Range(func(key string, val Value) bool {
			out[key] = ToAny(val)
			return true
		})
		return out
	default:
		return nil
	}
}
