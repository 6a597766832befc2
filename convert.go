package mapology

import (
	"encoding"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/viant/mapology/conv"
	"github.com/viant/mapology/visitor"
)

// read converts raw value for a field, registered read transform takes precedence over built-in conversion
func (s *session) read(field *Field, rule *Rule, raw interface{}) (reflect.Value, error) {
	if rule == nil || rule.Read == nil {
		return s.convert(raw, field.Type, field.TimeLayout)
	}
	result, ok := rule.Read(raw)
	if !ok || result == nil {
		return reflect.Value{}, errVetoed
	}
	value := reflect.ValueOf(result)
	if value.Type().AssignableTo(field.Type) {
		ret := reflect.New(field.Type).Elem()
		ret.Set(value)
		return ret, nil
	}
	return s.convert(result, field.Type, field.TimeLayout)
}

// convert converts raw value into t, it never panics on shape mismatch
func (s *session) convert(raw interface{}, t reflect.Type, layout string) (reflect.Value, error) {
	if raw == nil {
		return reflect.Value{}, errNull
	}
	if t == timeType {
		return s.converter(layout).ConvertTo(raw, t)
	}
	ptrType := reflect.PointerTo(t)
	if ptrType.Implements(unmarshalerType) {
		ret := reflect.New(t)
		if err := ret.Interface().(Unmarshaler).UnmarshalRaw(raw); err != nil {
			return reflect.Value{}, err
		}
		return ret.Elem(), nil
	}
	if codec := lookupCodec(t); codec != nil && codec.Decode != nil {
		return s.converter(layout).ConvertTo(raw, t)
	}
	if text, ok := raw.(string); ok && ptrType.Implements(textUnmarshalerType) {
		ret := reflect.New(t)
		if err := ret.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return reflect.Value{}, err
		}
		return ret.Elem(), nil
	}
	switch t.Kind() {
	case reflect.Ptr:
		elem, err := s.convert(raw, t.Elem(), layout)
		if err != nil {
			return reflect.Value{}, err
		}
		ret := reflect.New(t.Elem())
		ret.Elem().Set(elem)
		return ret, nil
	case reflect.Interface:
		return assignable(raw, t)
	case reflect.Struct:
		return s.convertStruct(raw, t)
	case reflect.Slice:
		return s.convertSlice(raw, t, layout)
	case reflect.Array:
		return s.convertArray(raw, t, layout)
	case reflect.Map:
		return s.convertMap(raw, t, layout)
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return reflect.Value{}, fmt.Errorf("%w: %v", errNotTransformable, t)
	}
	return s.converter(layout).ConvertTo(raw, t)
}

func assignable(value interface{}, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Value{}, errNull
	}
	rValue := reflect.ValueOf(value)
	if rValue.Type().AssignableTo(t) {
		ret := reflect.New(t).Elem()
		ret.Set(rValue)
		return ret, nil
	}
	if t.Kind() != reflect.Interface && rValue.Type().ConvertibleTo(t) && rValue.Kind() == t.Kind() {
		return rValue.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %T is not assignable to %v", ErrShapeMismatch, value, t)
}

func (s *session) convertStruct(raw interface{}, t reflect.Type) (reflect.Value, error) {
	dict, err := asDictionary(raw)
	if err != nil {
		return reflect.Value{}, err
	}
	ret, err := s.deserialize(t, dict)
	if err != nil {
		return reflect.Value{}, err
	}
	return ret.Elem(), nil
}

// asDictionary returns raw value as dictionary, maps with string keys are copied
func asDictionary(raw interface{}) (map[string]interface{}, error) {
	if dict, ok := raw.(map[string]interface{}); ok {
		return dict, nil
	}
	visit, err := visitor.StringMapVisitorOf(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: expected dictionary, got %T", ErrShapeMismatch, raw)
	}
	dict := map[string]interface{}{}
	err = visit(func(key string, element any) (bool, error) {
		dict[key] = element
		return true, nil
	})
	return dict, err
}

// convertSlice converts elements best effort, elements failing conversion are dropped preserving order
func (s *session) convertSlice(raw interface{}, t reflect.Type, layout string) (reflect.Value, error) {
	if text, ok := raw.(string); ok && t.Elem().Kind() == reflect.Uint8 {
		return reflect.ValueOf([]byte(text)).Convert(t), nil
	}
	visit, err := visitor.AnySliceVisitorOf(raw)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: expected sequence, got %T", ErrShapeMismatch, raw)
	}
	ret := reflect.MakeSlice(t, 0, reflect.ValueOf(raw).Len())
	err = visit(func(index int, element any) (bool, error) {
		value, err := s.convert(element, t.Elem(), layout)
		if err != nil {
			s.dropElement(t, index, err)
			return true, nil
		}
		ret = reflect.Append(ret, value)
		return true, nil
	})
	return ret, err
}

// convertArray fills array sequentially with converted elements, remaining items stay zero
func (s *session) convertArray(raw interface{}, t reflect.Type, layout string) (reflect.Value, error) {
	visit, err := visitor.AnySliceVisitorOf(raw)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: expected sequence, got %T", ErrShapeMismatch, raw)
	}
	ret := reflect.New(t).Elem()
	pos := 0
	err = visit(func(index int, element any) (bool, error) {
		value, err := s.convert(element, t.Elem(), layout)
		if err != nil {
			s.dropElement(t, index, err)
			return true, nil
		}
		ret.Index(pos).Set(value)
		pos++
		return pos < t.Len(), nil
	})
	return ret, err
}

// convertMap converts keys with scalar rules and values recursively, failing entries are dropped
func (s *session) convertMap(raw interface{}, t reflect.Type, layout string) (reflect.Value, error) {
	visit, err := visitor.StringMapVisitorOf(raw)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: expected dictionary, got %T", ErrShapeMismatch, raw)
	}
	ret := reflect.MakeMap(t)
	keyConverter := s.converter(layout)
	err = visit(func(key string, element any) (bool, error) {
		mapKey, err := s.mapKey(keyConverter, key, t.Key())
		if err != nil {
			s.log(slog.LevelDebug, "entry dropped", slog.String("type", t.String()), slog.String("key", key), slog.String("error", err.Error()))
			return true, nil
		}
		value, err := s.convert(element, t.Elem(), layout)
		if err != nil {
			s.log(slog.LevelDebug, "entry dropped", slog.String("type", t.String()), slog.String("key", key), slog.String("error", err.Error()))
			return true, nil
		}
		ret.SetMapIndex(mapKey, value)
		return true, nil
	})
	return ret, err
}

func (s *session) mapKey(converter *conv.Converter, key string, t reflect.Type) (reflect.Value, error) {
	if t.Kind() == reflect.Interface {
		return assignable(key, t)
	}
	return converter.ConvertTo(key, t)
}

func (s *session) dropElement(t reflect.Type, index int, err error) {
	s.log(slog.LevelDebug, "element dropped", slog.String("type", t.String()), slog.Int("index", index), slog.String("error", err.Error()))
}
