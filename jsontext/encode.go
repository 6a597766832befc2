package jsontext

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/francoispqt/gojay"
)

// ErrUnsupported is returned for values outside raw value tree
var ErrUnsupported = errors.New("unsupported value")

// Encode encodes raw value tree as JSON text
func Encode(value interface{}) ([]byte, error) {
	var err error
	switch actual := value.(type) {
	case map[string]interface{}:
		data, mErr := gojay.MarshalJSONObject(objectEncoder(actual, &err))
		if err != nil {
			return nil, err
		}
		return data, mErr
	case []interface{}:
		data, mErr := gojay.MarshalJSONArray(arrayEncoder(actual, &err))
		if err != nil {
			return nil, err
		}
		return data, mErr
	}
	// scalars are encoded as a single element array with brackets trimmed
	data, mErr := gojay.MarshalJSONArray(arrayEncoder([]interface{}{value}, &err))
	if err != nil {
		return nil, err
	}
	if mErr != nil {
		return nil, mErr
	}
	return data[1 : len(data)-1], nil
}

// Indent indents JSON text with two spaces
func Indent(data []byte) ([]byte, error) {
	buf := bytes.Buffer{}
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func objectEncoder(values map[string]interface{}, errPtr *error) gojay.EncodeObjectFunc {
	return func(enc *gojay.Encoder) {
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			encodeKey(enc, key, values[key], errPtr)
		}
	}
}

func arrayEncoder(values []interface{}, errPtr *error) gojay.EncodeArrayFunc {
	return func(enc *gojay.Encoder) {
		for _, value := range values {
			encodeElement(enc, value, errPtr)
		}
	}
}

func encodeKey(enc *gojay.Encoder, key string, value interface{}, errPtr *error) {
	switch actual := value.(type) {
	case nil:
		enc.NullKey(key)
	case string:
		enc.StringKey(key, actual)
	case bool:
		enc.BoolKey(key, actual)
	case int:
		enc.IntKey(key, actual)
	case int8:
		enc.Int64Key(key, int64(actual))
	case int16:
		enc.Int64Key(key, int64(actual))
	case int32:
		enc.Int64Key(key, int64(actual))
	case int64:
		enc.Int64Key(key, actual)
	case uint:
		enc.Uint64Key(key, uint64(actual))
	case uint8:
		enc.Uint64Key(key, uint64(actual))
	case uint16:
		enc.Uint64Key(key, uint64(actual))
	case uint32:
		enc.Uint64Key(key, uint64(actual))
	case uint64:
		enc.Uint64Key(key, actual)
	case float32:
		if checkFloat(float64(actual), errPtr) {
			enc.Float32Key(key, actual)
		}
	case float64:
		if checkFloat(actual, errPtr) {
			enc.Float64Key(key, actual)
		}
	case map[string]interface{}:
		enc.ObjectKey(key, objectEncoder(actual, errPtr))
	case []interface{}:
		enc.ArrayKey(key, arrayEncoder(actual, errPtr))
	default:
		setErr(errPtr, fmt.Errorf("%w: %v: %T", ErrUnsupported, key, value))
	}
}

func encodeElement(enc *gojay.Encoder, value interface{}, errPtr *error) {
	switch actual := value.(type) {
	case nil:
		enc.Null()
	case string:
		enc.String(actual)
	case bool:
		enc.Bool(actual)
	case int:
		enc.Int(actual)
	case int8:
		enc.Int64(int64(actual))
	case int16:
		enc.Int64(int64(actual))
	case int32:
		enc.Int64(int64(actual))
	case int64:
		enc.Int64(actual)
	case uint:
		enc.Uint64(uint64(actual))
	case uint8:
		enc.Uint64(uint64(actual))
	case uint16:
		enc.Uint64(uint64(actual))
	case uint32:
		enc.Uint64(uint64(actual))
	case uint64:
		enc.Uint64(actual)
	case float32:
		if checkFloat(float64(actual), errPtr) {
			enc.Float32(actual)
		}
	case float64:
		if checkFloat(actual, errPtr) {
			enc.Float64(actual)
		}
	case map[string]interface{}:
		enc.Object(objectEncoder(actual, errPtr))
	case []interface{}:
		enc.Array(arrayEncoder(actual, errPtr))
	default:
		setErr(errPtr, fmt.Errorf("%w: %T", ErrUnsupported, value))
	}
}

func checkFloat(f float64, errPtr *error) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		setErr(errPtr, fmt.Errorf("%w: %v", ErrUnsupported, f))
		return false
	}
	return true
}

func setErr(errPtr *error, err error) {
	if *errPtr == nil {
		*errPtr = err
	}
}
