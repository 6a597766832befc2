package jsontext

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/francoispqt/gojay"
	"github.com/tidwall/jsonc"
)

// ErrPathNotFound is returned when designated path does not resolve
var ErrPathNotFound = errors.New("path not found")

// Decode decodes JSON text into raw value, comments and trailing commas are accepted when comments is set.
// Numbers decode as float64, integers above 2^53 are rounded to the nearest representable value.
func Decode(data []byte, comments bool) (interface{}, error) {
	if comments {
		data = jsonc.ToJSON(data)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty JSON input")
	}
	dec := gojay.BorrowDecoder(bytes.NewReader(data))
	defer dec.Release()
	var ret interface{}
	if err := dec.DecodeInterface(&ret); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return ret, nil
}

// Select returns node at dot separated path (i.e. data.user or data.items.0), empty path returns raw
func Select(raw interface{}, path string) (interface{}, error) {
	if path == "" {
		return raw, nil
	}
	node := raw
	for _, segment := range strings.Split(path, ".") {
		switch actual := node.(type) {
		case map[string]interface{}:
			next, ok := actual[segment]
			if !ok {
				return nil, fmt.Errorf("%w: %v", ErrPathNotFound, path)
			}
			node = next
		case []interface{}:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(actual) {
				return nil, fmt.Errorf("%w: %v", ErrPathNotFound, path)
			}
			node = actual[index]
		default:
			return nil, fmt.Errorf("%w: %v", ErrPathNotFound, path)
		}
	}
	return node, nil
}
