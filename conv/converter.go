package conv

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultTimeLayout is the layout used to format and parse time values when none is specified
const DefaultTimeLayout = time.RFC3339Nano

var (
	// ErrUnsupported indicates that no conversion exists between the source and destination types
	ErrUnsupported = errors.New("unsupported conversion")
	// ErrOverflow indicates that the source value does not fit into the destination type
	ErrOverflow = errors.New("value out of range")
)

var timeType = reflect.TypeOf(time.Time{})

// fallbackLayouts are tried after the configured layout
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Options contains configuration for the converter
type Options struct {
	// TimeLayout specifies the layout used for time parsing and formatting
	TimeLayout string
}

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{TimeLayout: DefaultTimeLayout}
}

// ConversionFunc converts a raw value into a destination type value
type ConversionFunc func(src interface{}, opts Options) (interface{}, error)

// Converter converts raw scalars into Go primitives
type Converter struct {
	options       Options
	customConvMap sync.Map // map[reflect.Type]ConversionFunc
}

// NewConverter creates a new scalar converter with the provided options
func NewConverter(options Options) *Converter {
	if options.TimeLayout == "" {
		options.TimeLayout = DefaultTimeLayout
	}
	return &Converter{options: options}
}

// RegisterConversion registers a custom conversion function for a destination type
func (c *Converter) RegisterConversion(destType reflect.Type, fn ConversionFunc) {
	c.customConvMap.Store(destType, fn)
}

// ConvertTo returns the source value converted into destType
func (c *Converter) ConvertTo(src interface{}, destType reflect.Type) (reflect.Value, error) {
	if src == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil to %v", ErrUnsupported, destType)
	}
	if v, ok := c.customConvMap.Load(destType); ok {
		converted, err := v.(ConversionFunc)(src, c.options)
		if err != nil {
			return reflect.Value{}, err
		}
		return asType(converted, destType)
	}

	srcValue := reflect.ValueOf(src)
	if srcValue.Type() == destType {
		return srcValue, nil
	}
	result := reflect.New(destType).Elem()
	var err error
	switch destType.Kind() {
	case reflect.String:
		err = c.convertToString(result, srcValue)
	case reflect.Bool:
		err = c.convertToBool(result, srcValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		err = c.convertToInt(result, srcValue)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		err = c.convertToUint(result, srcValue)
	case reflect.Float32, reflect.Float64:
		err = c.convertToFloat(result, srcValue)
	case reflect.Struct:
		if destType != timeType {
			return reflect.Value{}, fmt.Errorf("%w: %v to %v", ErrUnsupported, srcValue.Type(), destType)
		}
		err = c.convertToTime(result, srcValue)
	default:
		return reflect.Value{}, fmt.Errorf("%w: %v to %v", ErrUnsupported, srcValue.Type(), destType)
	}
	if err != nil {
		return reflect.Value{}, err
	}
	return result, nil
}

func asType(value interface{}, destType reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil to %v", ErrUnsupported, destType)
	}
	rValue := reflect.ValueOf(value)
	if rValue.Type().AssignableTo(destType) {
		return rValue, nil
	}
	if rValue.Type().ConvertibleTo(destType) {
		return rValue.Convert(destType), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %T to %v", ErrUnsupported, value, destType)
}

// convertToString accepts textual sources only; numbers and booleans are not coerced into text
func (c *Converter) convertToString(destValue, srcValue reflect.Value) error {
	var result string

	switch srcValue.Kind() {
	case reflect.String:
		result = srcValue.String()
	case reflect.Slice:
		if srcValue.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("%w: %v to string", ErrUnsupported, srcValue.Type())
		}
		result = string(srcValue.Bytes())
	case reflect.Struct:
		if srcValue.Type() != timeType {
			return fmt.Errorf("%w: %v to string", ErrUnsupported, srcValue.Type())
		}
		result = srcValue.Interface().(time.Time).Format(c.options.TimeLayout)
	default:
		return fmt.Errorf("%w: %v to string", ErrUnsupported, srcValue.Type())
	}

	destValue.SetString(result)
	return nil
}

func (c *Converter) convertToBool(destValue, srcValue reflect.Value) error {
	var result bool

	switch srcValue.Kind() {
	case reflect.Bool:
		result = srcValue.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint() != 0
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float() != 0
	case reflect.String:
		text := strings.TrimSpace(srcValue.String())
		var err error
		if result, err = strconv.ParseBool(text); err != nil {
			f, fErr := strconv.ParseFloat(text, 64)
			if fErr != nil {
				return fmt.Errorf("%w: %q to bool: %v", ErrUnsupported, text, err)
			}
			result = f != 0
		}
	default:
		return fmt.Errorf("%w: %v to bool", ErrUnsupported, srcValue.Type())
	}

	destValue.SetBool(result)
	return nil
}

// convertToInt truncates floats toward zero; NaN, Inf and out of range values fail
func (c *Converter) convertToInt(destValue, srcValue reflect.Value) error {
	var result int64

	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := srcValue.Uint()
		if v > math.MaxInt64 {
			return fmt.Errorf("%w: %d to %v", ErrOverflow, v, destValue.Type())
		}
		result = int64(v)
	case reflect.Float32, reflect.Float64:
		f := srcValue.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v to %v", ErrOverflow, f, destValue.Type())
		}
		f = math.Trunc(f)
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return fmt.Errorf("%w: %v to %v", ErrOverflow, f, destValue.Type())
		}
		result = int64(f)
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		text := strings.TrimSpace(srcValue.String())
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			f, fErr := strconv.ParseFloat(text, 64)
			if fErr != nil {
				return fmt.Errorf("%w: %q to %v: %v", ErrUnsupported, text, destValue.Type(), err)
			}
			return c.convertToInt(destValue, reflect.ValueOf(f))
		}
		result = v
	default:
		return fmt.Errorf("%w: %v to %v", ErrUnsupported, srcValue.Type(), destValue.Type())
	}

	if destValue.OverflowInt(result) {
		return fmt.Errorf("%w: %d to %v", ErrOverflow, result, destValue.Type())
	}
	destValue.SetInt(result)
	return nil
}

func (c *Converter) convertToUint(destValue, srcValue reflect.Value) error {
	var result uint64

	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := srcValue.Int()
		if v < 0 {
			return fmt.Errorf("%w: negative value %d to %v", ErrOverflow, v, destValue.Type())
		}
		result = uint64(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint()
	case reflect.Float32, reflect.Float64:
		f := srcValue.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v to %v", ErrOverflow, f, destValue.Type())
		}
		f = math.Trunc(f)
		if f < 0 || f >= math.MaxUint64 {
			return fmt.Errorf("%w: %v to %v", ErrOverflow, f, destValue.Type())
		}
		result = uint64(f)
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		text := strings.TrimSpace(srcValue.String())
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			f, fErr := strconv.ParseFloat(text, 64)
			if fErr != nil {
				return fmt.Errorf("%w: %q to %v: %v", ErrUnsupported, text, destValue.Type(), err)
			}
			return c.convertToUint(destValue, reflect.ValueOf(f))
		}
		result = v
	default:
		return fmt.Errorf("%w: %v to %v", ErrUnsupported, srcValue.Type(), destValue.Type())
	}

	if destValue.OverflowUint(result) {
		return fmt.Errorf("%w: %d to %v", ErrOverflow, result, destValue.Type())
	}
	destValue.SetUint(result)
	return nil
}

func (c *Converter) convertToFloat(destValue, srcValue reflect.Value) error {
	var result float64

	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = float64(srcValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = float64(srcValue.Uint())
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float()
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		text := strings.TrimSpace(srcValue.String())
		var err error
		if result, err = strconv.ParseFloat(text, 64); err != nil {
			return fmt.Errorf("%w: %q to %v: %v", ErrUnsupported, text, destValue.Type(), err)
		}
	default:
		return fmt.Errorf("%w: %v to %v", ErrUnsupported, srcValue.Type(), destValue.Type())
	}

	if !math.IsInf(result, 0) && destValue.OverflowFloat(result) {
		return fmt.Errorf("%w: %v to %v", ErrOverflow, result, destValue.Type())
	}
	destValue.SetFloat(result)
	return nil
}

func (c *Converter) convertToTime(destValue, srcValue reflect.Value) error {
	var t time.Time
	var err error

	switch srcValue.Kind() {
	case reflect.String:
		if t, err = ParseTime(c.options.TimeLayout, srcValue.String()); err != nil {
			return err
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		t = time.Unix(srcValue.Int(), 0).UTC()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		t = time.Unix(int64(srcValue.Uint()), 0).UTC()
	case reflect.Float32, reflect.Float64:
		f := srcValue.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v to time.Time", ErrOverflow, f)
		}
		seconds, fraction := math.Modf(f)
		t = time.Unix(int64(seconds), int64(fraction*1e9)).UTC()
	default:
		return fmt.Errorf("%w: %v to time.Time", ErrUnsupported, srcValue.Type())
	}

	destValue.Set(reflect.ValueOf(t))
	return nil
}

// ParseTime parses value with the supplied layout, falling back to common layouts
func ParseTime(layout, value string) (time.Time, error) {
	if layout != "" {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	var err error
	for _, candidate := range fallbackLayouts {
		var t time.Time
		if t, err = time.Parse(candidate, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse time %q: %v", ErrUnsupported, value, err)
}

// Raw returns a primitive value as its base kind, time values are formatted with the converter layout
func (c *Converter) Raw(value reflect.Value) (interface{}, bool) {
	if value.Type() == timeType {
		return value.Interface().(time.Time).Format(c.options.TimeLayout), true
	}
	baseType, ok := baseTypes[value.Kind()]
	if !ok {
		return nil, false
	}
	if value.Type() != baseType {
		value = value.Convert(baseType)
	}
	return value.Interface(), true
}

// FormatKey formats a map key value as string
func (c *Converter) FormatKey(value reflect.Value) (string, error) {
	switch value.Kind() {
	case reflect.String:
		return value.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(value.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(value.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(value.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(value.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(value.Float(), 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: %v as key", ErrUnsupported, value.Type())
}

var baseTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeOf(false),
	reflect.String:  reflect.TypeOf(""),
	reflect.Int:     reflect.TypeOf(int(0)),
	reflect.Int8:    reflect.TypeOf(int8(0)),
	reflect.Int16:   reflect.TypeOf(int16(0)),
	reflect.Int32:   reflect.TypeOf(int32(0)),
	reflect.Int64:   reflect.TypeOf(int64(0)),
	reflect.Uint:    reflect.TypeOf(uint(0)),
	reflect.Uint8:   reflect.TypeOf(uint8(0)),
	reflect.Uint16:  reflect.TypeOf(uint16(0)),
	reflect.Uint32:  reflect.TypeOf(uint32(0)),
	reflect.Uint64:  reflect.TypeOf(uint64(0)),
	reflect.Float32: reflect.TypeOf(float32(0)),
	reflect.Float64: reflect.TypeOf(float64(0)),
}
