package mapology

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnresolvableType is returned when a target type cannot be constructed or reflected
	ErrUnresolvableType = errors.New("unresolvable type")
	// ErrUnsupportedType is returned by the resolver for types without stored fields
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrShapeMismatch is returned when the top level raw value is not a dictionary
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidConfig is returned for configuration that cannot be applied
	ErrInvalidConfig = errors.New("invalid config")
)

// TypeError reports a whole call failure for a model type
type TypeError struct {
	Type reflect.Type
	Err  error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("mapology: %v: %v", e.Type, e.Err)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// SkipReason describes why a field was left untouched, it is only ever logged
type SkipReason string

const (
	SkipNoKey            SkipReason = "no_key"
	SkipConversion       SkipReason = "conversion"
	SkipExcluded         SkipReason = "excluded"
	SkipVetoed           SkipReason = "vetoed"
	SkipTransient        SkipReason = "transient"
	SkipNotTransformable SkipReason = "not_transformable"
)
