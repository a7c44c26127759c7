package vars

import "reflect"

// Truthy reports whether v counts as true for chain control instructions.
// nil, false, zero numbers, empty strings and empty collections are false.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0 && v == v
	case []any:
		return len(v) > 0
	case interface{ IsNull() bool }:
		return !v.IsNull()
	}
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return value.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := value.Float()
		return f != 0 && f == f
	case reflect.Slice, reflect.Map, reflect.Array:
		return value.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !value.IsNil()
	}
	return true
}
