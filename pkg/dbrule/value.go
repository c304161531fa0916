package dbrule

import (
	"math"
	"reflect"
)

func isString[T Value]() bool {
	return reflect.TypeFor[T]().Kind() == reflect.String
}

// coerce converts a field value into T. Values of type T pass as they are.
// For a numeric T any Go number is accepted as long as the conversion is
// lossless: 1.5 never becomes 1 and -1 never becomes a large unsigned value.
func coerce[T Value](v any) (T, bool) {
	if t, ok := v.(T); ok {
		return t, true
	}

	var zero T
	src := reflect.ValueOf(v)
	dst := reflect.TypeFor[T]()
	if !isNumber(src.Kind()) || !isNumber(dst.Kind()) {
		return zero, false
	}
	if src.CanFloat() && (math.IsNaN(src.Float()) || math.IsInf(src.Float(), 0)) {
		return zero, false
	}

	out := src.Convert(dst)
	if negative(out) != negative(src) || !out.Convert(src.Type()).Equal(src) {
		return zero, false
	}
	return out.Interface().(T), true
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func negative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	default:
		return false
	}
}
