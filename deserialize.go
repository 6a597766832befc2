package mapology

import (
	"log/slog"
	"reflect"
)

// deserialize builds a new instance of t populated from dict, it returns pointer value
func (s *session) deserialize(t reflect.Type, dict map[string]interface{}) (reflect.Value, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.Value{}, s.unresolvable(t, ErrUnsupportedType)
	}
	aStruct, err := resolveStruct(t, s.options)
	if err != nil {
		return reflect.Value{}, s.unresolvable(t, err)
	}
	ret := reflect.New(aStruct.Type)
	if initializer, ok := ret.Interface().(Initializer); ok {
		initializer.Init()
	}
	if err = s.populate(aStruct, ret, dict); err != nil {
		return reflect.Value{}, err
	}
	return ret, nil
}

// populate writes matched and converted dictionary values into model fields
func (s *session) populate(aStruct *Struct, model reflect.Value, dict map[string]interface{}) error {
	if err := s.enter(aStruct.Type); err != nil {
		return err
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
	if aStruct.marker != nil {
		aStruct.marker.SetAll(base, false)
	}
	values := newDictionary(dict)
	for _, field := range aStruct.Fields {
		rule := mapper.Rule(field)
		if rule != nil && rule.Excluded {
			s.skip(aStruct.Type, field, SkipExcluded, nil)
			continue
		}
		raw, ok := values.match(field, rule)
		if !ok {
			s.skip(aStruct.Type, field, SkipNoKey, nil)
			continue
		}
		value, err := s.read(field, rule, raw)
		if err != nil {
			s.skip(aStruct.Type, field, skipReason(err), err)
			continue
		}
		if field.Access == KeyValueAccess {
			if err = coder.SetValueForKey(field.keyValueName, value.Interface()); err != nil {
				s.skip(aStruct.Type, field, SkipConversion, err)
				continue
			}
		} else {
			field.Set(base, value)
		}
		if marker := aStruct.marker; marker != nil {
			if index := marker.Index(field.Name); index != -1 {
				_ = marker.Set(base, index, true)
			}
		}
		s.log(LevelVerbose, "field mapped", slog.String("type", aStruct.Type.String()), slog.String("field", field.Name))
	}
	return nil
}
