package visitor

import (
	"fmt"
	"reflect"
)

// MapVisitorOf creates a visitor for a typed map.
func MapVisitorOf[K comparable, E any](aMap map[K]E) Visitor[K, E] {
	return func(f func(key K, element E) (bool, error)) error {
		for k, e := range aMap {
			continueVisit, err := f(k, e)
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}

// AnyMapVisitorOf dynamically creates a visitor from any map value.
func AnyMapVisitorOf(value interface{}) (Visitor[any, any], error) {
	switch actual := value.(type) {
	case map[string]interface{}:
		return AnyTypedMapVisitorOf[string, interface{}](actual), nil
	case map[string]string:
		return AnyTypedMapVisitorOf[string, string](actual), nil
	case map[string]bool:
		return AnyTypedMapVisitorOf[string, bool](actual), nil
	case map[string]int:
		return AnyTypedMapVisitorOf[string, int](actual), nil
	case map[string]float64:
		return AnyTypedMapVisitorOf[string, float64](actual), nil
	case map[int]interface{}:
		return AnyTypedMapVisitorOf[int, interface{}](actual), nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Map {
		return nil, fmt.Errorf("expected map, got %T", value)
	}
	return func(f func(key any, element any) (bool, error)) error {
		iter := val.MapRange()
		for iter.Next() {
			continueVisit, err := f(iter.Key().Interface(), iter.Value().Interface())
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}, nil
}

// AnyTypedMapVisitorOf returns an untyped visitor over a typed map
func AnyTypedMapVisitorOf[K comparable, V any](aMap map[K]V) Visitor[any, any] {
	return func(f func(key any, element any) (bool, error)) error {
		for k, e := range aMap {
			continueVisit, err := f(k, e)
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}

// StringMapVisitorOf creates a visitor over a map with string keys, including named string key types.
func StringMapVisitorOf(value interface{}) (Visitor[string, any], error) {
	if aMap, ok := value.(map[string]interface{}); ok {
		return MapVisitorOf[string, interface{}](aMap), nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Map || val.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("expected map with string keys, got %T", value)
	}
	return func(f func(key string, element any) (bool, error)) error {
		iter := val.MapRange()
		for iter.Next() {
			continueVisit, err := f(iter.Key().String(), iter.Value().Interface())
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}, nil
}
