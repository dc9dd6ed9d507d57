package match

import (
	"reflect"
	"sort"
)

// Lookup resolves header against item and returns the member's value.
//
// item may be a struct, a pointer to a struct, or a map with string keys
// (the shape YAML, JSON and SQL rows decode into). Map keys are tried in
// sorted order so the first-match rule stays deterministic.
//
// ok is false when no member matches. A member that matches but holds nil
// (nil pointer, nil interface, nil embedded pointer on the path) returns
// nil, true.
func Lookup(item any, header string) (value any, ok bool) {
	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		m, found := IndexFor(rv.Type()).Find(header)
		if !found {
			return nil, false
		}
		return fieldValue(rv, m)
	case reflect.Map:
		return mapValue(rv, header)
	default:
		return nil, false
	}
}

func fieldValue(rv reflect.Value, m Member) (any, bool) {
	fv, err := rv.FieldByIndexErr(m.index)
	if err != nil {
		// nil embedded pointer on the path
		return nil, true
	}
	if !fv.CanInterface() {
		return nil, false
	}
	return derefNil(fv), true
}

func mapValue(rv reflect.Value, header string) (any, bool) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	want := Normalize(header)

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		if Normalize(k.String()) == want {
			return derefNil(rv.MapIndex(k)), true
		}
	}
	return nil, false
}

// derefNil unwraps interface values and collapses typed nils to untyped nil.
func derefNil(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}
