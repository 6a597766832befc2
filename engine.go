package mapology

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/mapology/jsontext"
	"github.com/viant/mapology/visitor"
)

// Engine represents reusable mapping configuration, it is safe for concurrent use
type Engine struct {
	options []Option
}

// NewEngine creates an engine with supplied options, per call options are applied after them
func NewEngine(opts ...Option) *Engine {
	return &Engine{options: append([]Option{}, opts...)}
}

var defaultEngine = NewEngine()

func (e *Engine) session(ctx context.Context, opts []Option) *session {
	all := make([]Option, 0, len(e.options)+len(opts))
	all = append(append(all, e.options...), opts...)
	return newSession(ctx, newOptions(all))
}

// Deserialize returns a new instance of struct type t populated from dict, the result is a pointer
func (e *Engine) Deserialize(ctx context.Context, t reflect.Type, dict map[string]interface{}, opts ...Option) (interface{}, error) {
	aSession := e.session(ctx, opts)
	if dict == nil {
		return nil, &TypeError{Type: t, Err: fmt.Errorf("%w: nil dictionary", ErrShapeMismatch)}
	}
	ret, err := aSession.deserialize(t, dict)
	if err != nil {
		return nil, err
	}
	return ret.Interface(), nil
}

// DeserializeInto populates existing model from dict, dest has to be a non nil pointer to struct
func (e *Engine) DeserializeInto(ctx context.Context, dict map[string]interface{}, dest interface{}, opts ...Option) error {
	aSession := e.session(ctx, opts)
	value := reflect.ValueOf(dest)
	if value.Kind() != reflect.Ptr || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return aSession.unresolvable(reflect.TypeOf(dest), fmt.Errorf("expected non nil pointer to struct"))
	}
	if dict == nil {
		return &TypeError{Type: value.Type(), Err: fmt.Errorf("%w: nil dictionary", ErrShapeMismatch)}
	}
	aStruct, err := resolveStruct(value.Type(), aSession.options)
	if err != nil {
		return aSession.unresolvable(value.Type(), err)
	}
	return aSession.populate(aStruct, value, dict)
}

// DeserializeJSONInto populates existing model from JSON text
func (e *Engine) DeserializeJSONInto(ctx context.Context, text string, dest interface{}, opts ...Option) error {
	aSession := e.session(ctx, opts)
	raw, err := decodeJSON(aSession.options, text)
	if err != nil {
		return err
	}
	dict, ok := raw.(map[string]interface{})
	if !ok {
		return &TypeError{Type: reflect.TypeOf(dest), Err: fmt.Errorf("%w: expected object, got %T", ErrShapeMismatch, raw)}
	}
	return e.DeserializeInto(ctx, dict, dest, opts...)
}

// Serialize returns dictionary for supplied struct or pointer to struct
func (e *Engine) Serialize(ctx context.Context, model interface{}, opts ...Option) (map[string]interface{}, error) {
	return e.session(ctx, opts).serialize(reflect.ValueOf(model))
}

// SerializeArray serializes slice or array of models, nil or failing items are reported as nil entries
func (e *Engine) SerializeArray(ctx context.Context, models interface{}, opts ...Option) ([]interface{}, error) {
	aSession := e.session(ctx, opts)
	visit, err := visitor.AnySliceVisitorOf(models)
	if err != nil {
		return nil, &TypeError{Type: reflect.TypeOf(models), Err: fmt.Errorf("%w: %v", ErrShapeMismatch, err)}
	}
	var ret = make([]interface{}, 0)
	err = visit(func(index int, item any) (bool, error) {
		dict, err := aSession.serialize(reflect.ValueOf(item))
		if err != nil {
			ret = append(ret, nil)
			return true, nil
		}
		ret = append(ret, dict)
		return true, nil
	})
	return ret, err
}

// SerializeJSON returns JSON text for supplied model
func (e *Engine) SerializeJSON(ctx context.Context, model interface{}, opts ...Option) (string, error) {
	aSession := e.session(ctx, opts)
	dict, err := aSession.serialize(reflect.ValueOf(model))
	if err != nil {
		return "", err
	}
	return encodeJSON(aSession.options, dict)
}

func decodeJSON(options *Options, text string) (interface{}, error) {
	raw, err := jsontext.Decode([]byte(text), options.comments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}
	if raw, err = jsontext.Select(raw, options.designatedPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}
	return raw, nil
}

func encodeJSON(options *Options, raw interface{}) (string, error) {
	data, err := jsontext.Encode(raw)
	if err != nil {
		return "", err
	}
	if options.prettyPrint {
		if data, err = jsontext.Indent(data); err != nil {
			return "", err
		}
	}
	return string(data), nil
}
