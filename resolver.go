package mapology

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/mapology/tags"
	"github.com/viant/mapology/visitor"
	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

type (
	// Struct represents resolved model type
	Struct struct {
		Type     reflect.Type
		Fields   []*Field
		byName   map[string]*Field
		byKey    map[string]*Field
		marker   *Marker
		keyValue bool
	}

	resolverKey struct {
		t          reflect.Type
		tagName    string
		caseFormat text.CaseFormat
		unexported bool
	}
)

var structs = visitor.NewSyncMap[resolverKey, *Struct]()

// ResolveFields returns ordered model fields: own fields in declaration order followed by embedded struct fields
func ResolveFields(t reflect.Type, opts ...Option) ([]*Field, error) {
	aStruct, err := resolveStruct(t, newOptions(opts))
	if err != nil {
		return nil, err
	}
	return aStruct.Fields, nil
}

// Lookup returns field by Go name or key
func (s *Struct) Lookup(name string) *Field {
	if field, ok := s.byName[name]; ok {
		return field
	}
	return s.byKey[name]
}

func resolveStruct(t reflect.Type, options *Options) (*Struct, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedType)
	}
	structType := ensureStruct(t)
	if structType == nil || structType == timeType {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
	}
	key := options.resolverKey()
	key.t = structType
	return structs.GetOrCreate(key, func() (*Struct, error) {
		return newStruct(structType, options)
	})
}

func newStruct(t reflect.Type, options *Options) (*Struct, error) {
	ret := &Struct{Type: t, byName: map[string]*Field{}, byKey: map[string]*Field{}}
	if err := ret.collect(t, options); err != nil {
		return nil, err
	}
	if HasSetMarker(t) {
		marker, err := NewMarker(t)
		if err != nil {
			return nil, err
		}
		ret.marker = marker
	}
	if reflect.PointerTo(t).Implements(keyValueCoderType) {
		ret.keyValue = true
		coder := reflect.New(t).Interface().(KeyValueCoder)
		for _, name := range coder.KeyValueFields() {
			if field := ret.Lookup(name); field != nil {
				field.Access = KeyValueAccess
				field.keyValueName = name
				continue
			}
			ret.add(&Field{ID: FieldID{Owner: t, Name: name}, Name: name, Key: name, Type: interfaceType, Access: KeyValueAccess, keyValueName: name})
		}
	}
	return ret, nil
}

func (s *Struct) add(field *Field) {
	s.Fields = append(s.Fields, field)
	s.byName[field.Name] = field
	if _, ok := s.byKey[field.Key]; !ok {
		s.byKey[field.Key] = field
	}
}

// pending represents a struct type waiting to be collected at the next embedding depth
type pending struct {
	t    reflect.Type
	path []*hop
}

// collect walks embedded structs level by level, a name taken at a shallower depth shadows deeper fields,
// at the same depth the first declared field wins
func (s *Struct) collect(t reflect.Type, options *Options) error {
	seen := map[string]bool{}
	expanded := map[reflect.Type]bool{t: true}
	current := []*pending{{t: t}}
	for depth := 0; len(current) > 0; depth++ {
		var next []*pending
		for _, item := range current {
			embedded, err := s.collectOwn(item, depth, options, seen)
			if err != nil {
				return err
			}
			for _, aHop := range embedded {
				if expanded[aHop.elem] {
					continue
				}
				expanded[aHop.elem] = true
				hops := make([]*hop, len(item.path), len(item.path)+1)
				copy(hops, item.path)
				next = append(next, &pending{t: aHop.elem, path: append(hops, aHop)})
			}
		}
		current = next
	}
	return nil
}

// collectOwn adds fields declared directly on item type and returns its embedded structs
func (s *Struct) collectOwn(item *pending, depth int, options *Options, seen map[string]bool) ([]*hop, error) {
	t := item.t
	xStruct := xunsafe.NewStruct(t)
	var embedded []*hop
	for i := range xStruct.Fields {
		structField := t.Field(i)
		if IsSetMarker(structField.Tag) {
			continue
		}
		if isEmbeddedStruct(structField, options.tagName) {
			aHop := &hop{field: &xStruct.Fields[i], elem: structField.Type}
			if structField.Type.Kind() == reflect.Ptr {
				aHop.isPtr = true
				aHop.elem = structField.Type.Elem()
			}
			embedded = append(embedded, aHop)
			continue
		}
		if seen[structField.Name] {
			continue
		}
		seen[structField.Name] = true
		if !structField.IsExported() && !options.accessUnexported {
			continue
		}
		key, transient := keyName(structField, options)
		if transient {
			continue
		}
		field := &Field{
			ID:    FieldID{Owner: t, Name: structField.Name},
			Name:  structField.Name,
			Key:   key,
			Type:  structField.Type,
			Depth: depth,
			path:  item.path,
			leaf:  &xStruct.Fields[i],
		}
		ignored, err := field.applyTags(structField.Tag)
		if err != nil {
			return nil, fmt.Errorf("invalid tag %v.%v: %w", t.Name(), structField.Name, err)
		}
		if ignored {
			continue
		}
		s.add(field)
	}
	return embedded, nil
}

// applyTags applies mapper rule and format tags, it returns true for fields ignored by format tag
func (f *Field) applyTags(tag reflect.StructTag) (bool, error) {
	rule, err := tags.Parse(tag)
	if err != nil {
		return false, err
	}
	if !rule.IsEmpty() {
		f.Aliases = rule.Aliases
		f.Excluded = rule.Exclude
	}
	if _, ok := tag.Lookup(format.TagName); !ok {
		return false, nil
	}
	formatTag, err := format.Parse(tag)
	if err != nil {
		return false, err
	}
	f.TimeLayout = formatTag.TimeLayout
	return formatTag.Ignore, nil
}

func isEmbeddedStruct(field reflect.StructField, tagName string) bool {
	if !field.Anonymous {
		return false
	}
	if name, _, _ := strings.Cut(field.Tag.Get(tagName), ","); name != "" {
		return false
	}
	candidate := field.Type
	if candidate.Kind() == reflect.Ptr {
		candidate = candidate.Elem()
	}
	return candidate.Kind() == reflect.Struct && candidate != timeType
}

// keyName returns dictionary key for a field and transient flag
func keyName(field reflect.StructField, options *Options) (string, bool) {
	tagValue := field.Tag.Get(options.tagName)
	if tagValue == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tagValue, ","); name != "" {
		return name, false
	}
	return formatName(field.Name, options.caseFormat), false
}

func formatName(fieldName string, caseFormat text.CaseFormat) string {
	if caseFormat == "" {
		return fieldName
	}
	if fieldName == "ID" {
		switch caseFormat {
		case text.CaseFormatLower, text.CaseFormatLowerCamel, text.CaseFormatLowerUnderscore:
			return "id"
		}
	}
	src := text.DetectCaseFormat(fieldName)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(fieldName, caseFormat)
}
