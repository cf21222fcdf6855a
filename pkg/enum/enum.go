package enum

import (
	"fmt"
	"reflect"
)

var enumManager = map[string]any{}

type enum[T comparable] struct {
	toEnum   map[string]T
	toString map[T]string
}

// New registers value under name. Values of the same named type form one
// enum, which ToEnum and ToString look up.
func New[T comparable](value T, name string) T {
	typeName := reflect.TypeOf(value).String()
	if _, ok := enumManager[typeName]; !ok {
		enumManager[typeName] = enum[T]{
			toEnum:   make(map[string]T),
			toString: make(map[T]string),
		}
	}

	e := enumManager[typeName].(enum[T])
	e.toEnum[name] = value
	e.toString[value] = name
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT).String()]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

// ToString returns the registered name of v, or an empty string if v was
// never registered.
func ToString[T comparable](v T) string {
	e, ok := enumManager[reflect.TypeOf(v).String()]
	if !ok {
		return ""
	}

	return e.(enum[T]).toString[v]
}
