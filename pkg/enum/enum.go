package enum

import (
	"fmt"
	"reflect"
)

// registry maps an enum type to the set of values registered with New.
// Registration happens in package var blocks, before any lookup.
var registry = map[reflect.Type]any{}

func New[T comparable](value T) T {
	t := reflect.TypeOf(value)
	values, ok := registry[t].(map[string]T)
	if !ok {
		values = make(map[string]T)
		registry[t] = values
	}

	values[reflect.ValueOf(value).String()] = value
	return value
}

// ToEnum resolves a wire string to a registered value of T. Unregistered
// strings are an error, not a zero value.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	values, ok := registry[reflect.TypeOf(zero)].(map[string]T)
	if !ok {
		return zero, fmt.Errorf("no registered enum type %T", zero)
	}

	value, ok := values[s]
	if !ok {
		return zero, fmt.Errorf("invalid value %s for enum %T", s, zero)
	}

	return value, nil
}
