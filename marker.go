package mapology

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// SetMarkerTag defines presence marker tag, i.e. `setMarker:"true"`
const SetMarkerTag = "setMarker"

// IsSetMarker returns true if tag defines presence marker holder
func IsSetMarker(tag reflect.StructTag) bool {
	value, ok := tag.Lookup(SetMarkerTag)
	return ok && value != "false"
}

// HasSetMarker returns true if struct type declares presence marker holder
func HasSetMarker(t reflect.Type) bool {
	if t = ensureStruct(t); t == nil {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if IsSetMarker(t.Field(i).Tag) {
			return true
		}
	}
	return false
}

//Marker field set marker
type Marker struct {
	t          reflect.Type
	holder     *xunsafe.Field
	holderType reflect.Type
	isPtr      bool
	fields     []*xunsafe.Field
	index      map[string]int //marker field pos
}

//Index returns marker field index or -1
func (p *Marker) Index(name string) int {
	pos, ok := p.index[name]
	if !ok {
		return -1
	}
	return pos
}

// holderPointer returns pointer to marker struct, nil pointer holder is allocated if alloc is set
func (p *Marker) holderPointer(ptr unsafe.Pointer, alloc bool) unsafe.Pointer {
	fieldPtr := p.holder.Pointer(ptr)
	if !p.isPtr {
		return fieldPtr
	}
	markerPtr := *(*unsafe.Pointer)(fieldPtr)
	if markerPtr == nil && alloc {
		value := reflect.New(p.holderType)
		reflect.NewAt(p.holder.Type, fieldPtr).Elem().Set(value)
		markerPtr = value.UnsafePointer()
	}
	return markerPtr
}

//SetAll sets all marker field with supplied flag
func (p *Marker) SetAll(ptr unsafe.Pointer, flag bool) {
	markerPtr := p.holderPointer(ptr, true)
	for _, field := range p.fields {
		field.SetBool(markerPtr, flag)
	}
}

//Set sets field marker, holder is allocated when nil
func (p *Marker) Set(ptr unsafe.Pointer, index int, flag bool) error {
	if index < 0 || index >= len(p.fields) {
		return fmt.Errorf("field at index %v was missing in set marker", index)
	}
	p.fields[index].SetBool(p.holderPointer(ptr, true), flag)
	return nil
}

//IsSet returns true if field has been set, nil marker holder means nothing was set
func (p *Marker) IsSet(ptr unsafe.Pointer, index int) bool {
	markerPtr := p.holderPointer(ptr, false)
	if markerPtr == nil {
		return false
	}
	if index < 0 || index >= len(p.fields) {
		return false
	}
	return p.fields[index].Bool(markerPtr)
}

//NewMarker returns new struct field set marker
func NewMarker(t reflect.Type) (*Marker, error) {
	if t = ensureStruct(t); t == nil {
		return nil, fmt.Errorf("supplied type is not struct")
	}
	var result = &Marker{t: t, index: map[string]int{}}
	xStruct := xunsafe.NewStruct(t)
	for i := range xStruct.Fields {
		if IsSetMarker(t.Field(i).Tag) {
			result.holder = &xStruct.Fields[i]
			break
		}
	}
	if result.holder == nil {
		return nil, fmt.Errorf("holder was empty for %s", t.String())
	}
	result.isPtr = result.holder.Type.Kind() == reflect.Ptr
	if result.holderType = ensureStruct(result.holder.Type); result.holderType == nil {
		return nil, fmt.Errorf("marker holder %v.%v is not a struct", t.Name(), result.holder.Name)
	}
	markerStruct := xunsafe.NewStruct(result.holderType)
	for i := range markerStruct.Fields {
		markerField := &markerStruct.Fields[i]
		if markerField.Type.Kind() != reflect.Bool {
			return nil, fmt.Errorf("marker field: '%v' is not bool", markerField.Name)
		}
		result.index[markerField.Name] = len(result.fields)
		result.fields = append(result.fields, markerField)
	}
	return result, nil
}

// WasSet returns true if the named field was written by deserialization,
// models without presence marker report every field as set
func WasSet(model interface{}, name string) bool {
	value := reflect.ValueOf(model)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return false
	}
	aStruct, err := resolveStruct(value.Type(), newOptions(nil))
	if err != nil || aStruct.marker == nil {
		return err == nil
	}
	index := aStruct.marker.Index(name)
	if index == -1 {
		return false
	}
	return aStruct.marker.IsSet(value.UnsafePointer(), index)
}
