package mapology

import (
	"encoding"
	"fmt"
	"log/slog"
	"reflect"
)

// serialize returns dictionary for struct or pointer to struct value
func (s *session) serialize(value reflect.Value) (map[string]interface{}, error) {
	for value.IsValid() && (value.Kind() == reflect.Interface || (value.Kind() == reflect.Ptr && value.Elem().Kind() == reflect.Ptr)) {
		if value.IsNil() {
			break
		}
		value = value.Elem()
	}
	if !value.IsValid() || (value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface) && value.IsNil() {
		var t reflect.Type
		if value.IsValid() {
			t = value.Type()
		}
		return nil, s.unresolvable(t, errNull)
	}
	model := value
	if value.Kind() != reflect.Ptr {
		model = reflect.New(value.Type())
		model.Elem().Set(value)
	}
	if model.Elem().Kind() != reflect.Struct {
		return nil, s.unresolvable(value.Type(), ErrUnsupportedType)
	}
	aStruct, err := resolveStruct(model.Type(), s.options)
	if err != nil {
		return nil, s.unresolvable(value.Type(), err)
	}
	if err = s.enter(aStruct.Type); err != nil {
		return nil, err
	}
	defer s.leave()

	base := model.UnsafePointer()
	mapper := newMapper(s.ctx, s.logger, aStruct, base)
	if mappable, ok := model.Interface().(Mappable); ok {
		mappable.Mapping(mapper)
	}
	var coder KeyValueCoder
	if aStruct.keyValue {
		coder = model.Interface().(KeyValueCoder)
	}
	result := make(map[string]interface{}, len(aStruct.Fields))
	for _, field := range aStruct.Fields {
		rule := mapper.Rule(field)
		if rule != nil && rule.Excluded {
			s.skip(aStruct.Type, field, SkipExcluded, nil)
			continue
		}
		key := field.Key
		if rule != nil && len(rule.Aliases) > 0 {
			key = rule.Aliases[0]
		}
		var fieldValue reflect.Value
		if field.Access == KeyValueAccess {
			if v, ok := coder.ValueForKey(field.keyValueName); ok && v != nil {
				fieldValue = reflect.ValueOf(v)
			}
		} else {
			fieldValue = field.Value(base)
		}
		if !fieldValue.IsValid() {
			s.skip(aStruct.Type, field, SkipNoKey, nil)
			continue
		}
		if rule != nil && rule.Write != nil {
			out, ok := rule.Write(fieldValue.Interface())
			if !ok || out == nil {
				s.skip(aStruct.Type, field, SkipVetoed, nil)
				continue
			}
			fieldValue = reflect.ValueOf(out)
		}
		raw, err := s.toRaw(fieldValue, field.TimeLayout)
		if err != nil {
			s.skip(aStruct.Type, field, skipReason(err), err)
			continue
		}
		result[key] = raw
	}
	return result, nil
}

// toRaw returns raw representation of a value, nil pointers, interfaces, slices and maps are reported as null
func (s *session) toRaw(value reflect.Value, layout string) (interface{}, error) {
	if !value.IsValid() {
		return nil, errNull
	}
	t := value.Type()
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		if value.IsNil() {
			return nil, errNull
		}
	}
	if receiver := methodReceiver(value, marshalerType); receiver.IsValid() {
		out, err := receiver.Interface().(Marshaler).MarshalRaw()
		if err != nil || out == nil {
			return out, err
		}
		if outValue := reflect.ValueOf(out); outValue.Type() != t {
			return s.toRaw(outValue, layout)
		}
		return out, nil
	}
	if t == timeType {
		raw, _ := s.converter(layout).Raw(value)
		return raw, nil
	}
	if codec := lookupCodec(t); codec != nil && codec.Encode != nil {
		return codec.Encode(value.Interface())
	}
	if receiver := methodReceiver(value, textMarshalerType); receiver.IsValid() {
		text, err := receiver.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, err
		}
		return string(text), nil
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface:
		return s.toRaw(value.Elem(), layout)
	case reflect.Struct:
		return s.serialize(value)
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return string(value.Bytes()), nil
		}
		return s.sequence(value, layout), nil
	case reflect.Array:
		return s.sequence(value, layout), nil
	case reflect.Map:
		return s.dictionary(value, layout), nil
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return nil, fmt.Errorf("%w: %v", errNotTransformable, t)
	}
	raw, ok := s.converter(layout).Raw(value)
	if !ok {
		return nil, fmt.Errorf("%w: %v", errNotTransformable, t)
	}
	return raw, nil
}

// sequence serializes slice or array items, items that cannot be serialized are dropped
func (s *session) sequence(value reflect.Value, layout string) []interface{} {
	ret := make([]interface{}, 0, value.Len())
	for i := 0; i < value.Len(); i++ {
		item, err := s.toRaw(value.Index(i), layout)
		if err != nil {
			s.dropElement(value.Type(), i, err)
			continue
		}
		ret = append(ret, item)
	}
	return ret
}

// dictionary serializes map entries with keys formatted as text, failing entries are dropped
func (s *session) dictionary(value reflect.Value, layout string) map[string]interface{} {
	ret := make(map[string]interface{}, value.Len())
	converter := s.converter(layout)
	iter := value.MapRange()
	for iter.Next() {
		key, err := converter.FormatKey(iter.Key())
		if err != nil {
			s.log(slog.LevelDebug, "entry dropped", slog.String("type", value.Type().String()), slog.String("error", err.Error()))
			continue
		}
		item, err := s.toRaw(iter.Value(), layout)
		if err != nil {
			s.log(slog.LevelDebug, "entry dropped", slog.String("type", value.Type().String()), slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		ret[key] = item
	}
	return ret
}

// methodReceiver returns value or its address implementing iface, invalid value otherwise
func methodReceiver(value reflect.Value, iface reflect.Type) reflect.Value {
	t := value.Type()
	if t.Kind() == reflect.Interface {
		return reflect.Value{}
	}
	if t.Implements(iface) {
		if t.Kind() == reflect.Ptr && value.IsNil() {
			return reflect.Value{}
		}
		return value
	}
	if t.Kind() == reflect.Ptr || !reflect.PointerTo(t).Implements(iface) {
		return reflect.Value{}
	}
	if value.CanAddr() {
		return value.Addr()
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(value)
	return ptr
}
