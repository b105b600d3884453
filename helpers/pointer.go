package helpers

import "reflect"

// StrPanic panics with panicMessage if p is empty (no TrimSpace, only p == "" is checked); otherwise returns p.
// Used for fail-fast validation of required constructor strings (base URL, key prefix, store path).
//
// Called from service.NewAPIClient, adapters/myredis.NewKVStore and adapters/filestore.NewKVStore.
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage if v is nil (nil interface, pointer, slice, map, chan, func; uses reflect
// for typed nils); otherwise returns v unchanged.
//
// Called from every constructor in service, ui and handlers when validating required dependencies.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// isNil returns true if v is nil or a nil pointer/slice/map/chan/func/interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Deref returns *p, or the zero value of T when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
