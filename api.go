package mapology

import (
	"context"
	"fmt"
	"reflect"
)

// Deserialize returns new T populated from dict, fields without matching key or convertible value keep their defaults
func Deserialize[T any](dict map[string]interface{}, opts ...Option) (*T, error) {
	return DeserializeContext[T](context.Background(), dict, opts...)
}

// DeserializeContext returns new T populated from dict, logger is taken from context unless WithLogger is used
func DeserializeContext[T any](ctx context.Context, dict map[string]interface{}, opts ...Option) (*T, error) {
	ret, err := defaultEngine.Deserialize(ctx, reflect.TypeOf((*T)(nil)).Elem(), dict, opts...)
	if err != nil {
		return nil, err
	}
	return ret.(*T), nil
}

// DeserializeRaw returns new T populated from raw value, raw has to be a dictionary
func DeserializeRaw[T any](raw interface{}, opts ...Option) (*T, error) {
	dict, ok := raw.(map[string]interface{})
	if !ok {
		return nil, &TypeError{Type: reflect.TypeOf((*T)(nil)).Elem(), Err: fmt.Errorf("%w: expected dictionary, got %T", ErrShapeMismatch, raw)}
	}
	return Deserialize[T](dict, opts...)
}

// DeserializeInto populates existing model from dict
func DeserializeInto(dict map[string]interface{}, dest interface{}, opts ...Option) error {
	return defaultEngine.DeserializeInto(context.Background(), dict, dest, opts...)
}

// DeserializeArray returns new T for each dictionary item, items that are not dictionaries yield nil entries
func DeserializeArray[T any](items []interface{}, opts ...Option) ([]*T, error) {
	aSession := defaultEngine.session(context.Background(), opts)
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, err := resolveStruct(t, aSession.options); err != nil || t.Kind() != reflect.Struct {
		if err == nil {
			err = ErrUnsupportedType
		}
		return nil, aSession.unresolvable(t, err)
	}
	ret := make([]*T, len(items))
	for i, item := range items {
		dict, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		value, err := aSession.deserialize(t, dict)
		if err != nil {
			continue
		}
		ret[i] = value.Interface().(*T)
	}
	return ret, nil
}

// DeserializeJSON returns new T populated from JSON object text, WithDesignatedPath selects nested object
func DeserializeJSON[T any](text string, opts ...Option) (*T, error) {
	raw, err := decodeJSON(newOptions(opts), text)
	if err != nil {
		return nil, err
	}
	return DeserializeRaw[T](raw, opts...)
}

// DeserializeJSONArray returns new T for each object of JSON array text
func DeserializeJSONArray[T any](text string, opts ...Option) ([]*T, error) {
	raw, err := decodeJSON(newOptions(opts), text)
	if err != nil {
		return nil, err
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, &TypeError{Type: reflect.TypeOf([]*T{}), Err: fmt.Errorf("%w: expected array, got %T", ErrShapeMismatch, raw)}
	}
	return DeserializeArray[T](items, opts...)
}

// Serialize returns dictionary for struct or pointer to struct model
func Serialize(model interface{}, opts ...Option) (map[string]interface{}, error) {
	return defaultEngine.Serialize(context.Background(), model, opts...)
}

// SerializeContext returns dictionary for model, logger is taken from context unless WithLogger is used
func SerializeContext(ctx context.Context, model interface{}, opts ...Option) (map[string]interface{}, error) {
	return defaultEngine.Serialize(ctx, model, opts...)
}

// SerializeArray returns dictionaries for slice or array of models
func SerializeArray(models interface{}, opts ...Option) ([]interface{}, error) {
	return defaultEngine.SerializeArray(context.Background(), models, opts...)
}

// SerializeJSON returns JSON text for model, WithPrettyPrint indents output
func SerializeJSON(model interface{}, opts ...Option) (string, error) {
	return defaultEngine.SerializeJSON(context.Background(), model, opts...)
}
