package visitor

import (
	"fmt"
	"reflect"
)

// SliceVisitorOf creates a visitor for []E
func SliceVisitorOf[E any](value interface{}) (Visitor[int, E], error) {
	slice, ok := value.([]E)
	if !ok {
		return nil, fmt.Errorf("expected %T, got %T", slice, value)
	}
	return TypedSliceVisitorOf[E](slice), nil
}

// TypedSliceVisitorOf creates a visitor over a typed slice, the key is the slice index.
func TypedSliceVisitorOf[E any](slice []E) Visitor[int, E] {
	return func(f func(key int, element E) (bool, error)) error {
		for i, elem := range slice {
			continueVisit, err := f(i, elem)
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

// AnySliceVisitorOf dynamically creates a visitor from any slice or array value.
func AnySliceVisitorOf(value interface{}) (Visitor[int, any], error) {
	switch actual := value.(type) {
	case []interface{}:
		return AnyTypedSliceVisitorOf[interface{}](actual), nil
	case []string:
		return AnyTypedSliceVisitorOf[string](actual), nil
	case []bool:
		return AnyTypedSliceVisitorOf[bool](actual), nil
	case []int:
		return AnyTypedSliceVisitorOf[int](actual), nil
	case []int64:
		return AnyTypedSliceVisitorOf[int64](actual), nil
	case []float64:
		return AnyTypedSliceVisitorOf[float64](actual), nil
	case []map[string]interface{}:
		return AnyTypedSliceVisitorOf[map[string]interface{}](actual), nil
	}
	val := reflect.ValueOf(value)
	if kind := val.Kind(); kind != reflect.Slice && kind != reflect.Array {
		return nil, fmt.Errorf("expected slice, got %T", value)
	}
	return func(f func(key int, element any) (bool, error)) error {
		for i := 0; i < val.Len(); i++ {
			continueVisit, err := f(i, val.Index(i).Interface())
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

// AnyTypedSliceVisitorOf returns an untyped visitor over a typed slice
func AnyTypedSliceVisitorOf[E any](slice []E) Visitor[int, any] {
	return func(f func(key int, element any) (bool, error)) error {
		for i, e := range slice {
			continueVisit, err := f(i, e)
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
