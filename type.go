package mapology

import (
	"encoding"
	"reflect"
	"time"
)

var (
	timeType            = reflect.TypeOf(time.Time{})
	interfaceType       = reflect.TypeOf((*interface{})(nil)).Elem()
	unmarshalerType     = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	marshalerType       = reflect.TypeOf((*Marshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	keyValueCoderType   = reflect.TypeOf((*KeyValueCoder)(nil)).Elem()
)

type (
	// Mappable is implemented by models registering field rules, Mapping is called once per mapping call before any field is touched
	Mappable interface {
		Mapping(mapper *Mapper)
	}

	// Initializer is implemented by models setting defaults right after allocation
	Initializer interface {
		Init()
	}

	// Unmarshaler is implemented by types building themselves from a raw value
	Unmarshaler interface {
		UnmarshalRaw(raw interface{}) error
	}

	// Marshaler is implemented by types producing their own raw value
	Marshaler interface {
		MarshalRaw() (interface{}, error)
	}

	// KeyValueCoder is implemented by models whose listed keys are accessed through dynamic key value methods instead of direct field writes
	KeyValueCoder interface {
		KeyValueFields() []string
		SetValueForKey(key string, value interface{}) error
		ValueForKey(key string) (interface{}, bool)
	}
)

func ensureStruct(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}
