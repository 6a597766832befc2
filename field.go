package mapology

import (
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// AccessKind defines how a field value is read and written
type AccessKind int

const (
	// DirectAccess reads and writes field memory at its offset
	DirectAccess AccessKind = iota
	// KeyValueAccess goes through KeyValueCoder methods
	KeyValueAccess
)

type (
	// FieldID identifies a field within its owner type
	FieldID struct {
		Owner reflect.Type
		Name  string
	}

	// Field represents a resolved model field
	Field struct {
		ID           FieldID
		Name         string
		Key          string
		Type         reflect.Type
		Access       AccessKind
		Aliases      []string
		Excluded     bool
		TimeLayout   string
		Depth        int
		path         []*hop
		leaf         *xunsafe.Field
		keyValueName string // name listed by KeyValueFields
	}

	// hop represents an embedded struct on the way to the leaf field
	hop struct {
		field *xunsafe.Field
		isPtr bool
		elem  reflect.Type
	}
)

// IsVirtual returns true for dynamic keys without a backing struct field
func (f *Field) IsVirtual() bool {
	return f.leaf == nil
}

// holder returns pointer to struct holding leaf field, nil embedded pointers are allocated if alloc is set, otherwise nil is returned
func (f *Field) holder(ptr unsafe.Pointer, alloc bool) unsafe.Pointer {
	for _, aHop := range f.path {
		ptr = aHop.field.Pointer(ptr)
		if !aHop.isPtr {
			continue
		}
		next := *(*unsafe.Pointer)(ptr)
		if next == nil {
			if !alloc {
				return nil
			}
			value := reflect.New(aHop.elem)
			reflect.NewAt(aHop.field.Type, ptr).Elem().Set(value)
			next = value.UnsafePointer()
		}
		ptr = next
	}
	return ptr
}

// Addr returns field address or nil if unreachable
func (f *Field) Addr(ptr unsafe.Pointer) unsafe.Pointer {
	if f.leaf == nil {
		return nil
	}
	holder := f.holder(ptr, false)
	if holder == nil {
		return nil
	}
	return f.leaf.Pointer(holder)
}

// Value returns field value, invalid value is returned if field is unreachable
func (f *Field) Value(ptr unsafe.Pointer) reflect.Value {
	addr := f.Addr(ptr)
	if addr == nil {
		return reflect.Value{}
	}
	return reflect.NewAt(f.Type, addr).Elem()
}

// Set writes value directly into field memory
func (f *Field) Set(ptr unsafe.Pointer, value reflect.Value) {
	holder := f.holder(ptr, true)
	reflect.NewAt(f.Type, f.leaf.Pointer(holder)).Elem().Set(value)
}
