package mapology

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"unsafe"
)

type (
	// ReadTransform converts raw value into field value, returning false vetoes the write
	ReadTransform func(raw interface{}) (interface{}, bool)

	// WriteTransform converts field value into raw value, returning false vetoes the output
	WriteTransform func(value interface{}) (interface{}, bool)

	// Rule represents field level override
	Rule struct {
		Excluded bool
		Aliases  []string
		Read     ReadTransform
		Write    WriteTransform
	}

	// Mapper collects field rules for one mapping call, it is not safe for concurrent use.
	// Fields are referenced by pointer to the model field (i.e. &m.ID) or by Go field name or key.
	Mapper struct {
		owner  *Struct
		base   unsafe.Pointer
		rules  map[FieldID]*Rule
		ctx    context.Context
		logger *slog.Logger
	}
)

func newMapper(ctx context.Context, logger *slog.Logger, owner *Struct, base unsafe.Pointer) *Mapper {
	ret := &Mapper{owner: owner, base: base, rules: map[FieldID]*Rule{}, ctx: ctx, logger: logger}
	for _, field := range owner.Fields {
		if !field.Excluded && len(field.Aliases) == 0 {
			continue
		}
		ret.rules[field.ID] = &Rule{Excluded: field.Excluded, Aliases: field.Aliases}
	}
	return ret
}

// Exclude excludes fields from mapping in both directions
func (m *Mapper) Exclude(fields ...interface{}) {
	for _, ref := range fields {
		if rule := m.ensureRule(ref); rule != nil {
			rule.Excluded = true
		}
	}
}

// Alias replaces field keys with supplied names, the first matching name wins on read, the first name is used on write
func (m *Mapper) Alias(field interface{}, names ...string) {
	if len(names) == 0 {
		return
	}
	if rule := m.ensureRule(field); rule != nil {
		rule.Aliases = append([]string{}, names...)
	}
}

// TransformRead registers custom raw to field value conversion
func (m *Mapper) TransformRead(field interface{}, fn ReadTransform) {
	if rule := m.ensureRule(field); rule != nil {
		rule.Read = fn
	}
}

// TransformWrite registers custom field value to raw conversion
func (m *Mapper) TransformWrite(field interface{}, fn WriteTransform) {
	if rule := m.ensureRule(field); rule != nil {
		rule.Write = fn
	}
}

// Rule returns field rule or nil
func (m *Mapper) Rule(field *Field) *Rule {
	if m == nil || field == nil {
		return nil
	}
	return m.rules[field.ID]
}

// Field returns field referenced by pointer or name, nil if the reference does not belong to the model
func (m *Mapper) Field(ref interface{}) *Field {
	switch actual := ref.(type) {
	case nil:
		return nil
	case string:
		return m.owner.Lookup(actual)
	case *Field:
		if m.owner.byName[actual.Name] == actual {
			return actual
		}
		return nil
	}
	value := reflect.ValueOf(ref)
	if value.Kind() != reflect.Ptr || value.IsNil() || m.base == nil {
		return nil
	}
	addr := value.UnsafePointer()
	elemType := value.Type().Elem()
	for _, field := range m.owner.Fields {
		if field.Type == elemType && field.Addr(m.base) == addr {
			return field
		}
	}
	return nil
}

func (m *Mapper) ensureRule(ref interface{}) *Rule {
	field := m.Field(ref)
	if field == nil {
		if m.logger != nil && enabled(LevelVerbose) {
			m.logger.Log(m.ctx, LevelVerbose, "rule for unknown field ignored", slog.String("type", m.owner.Type.String()), slog.String("ref", fmt.Sprintf("%T", ref)))
		}
		return nil
	}
	rule, ok := m.rules[field.ID]
	if !ok {
		rule = &Rule{}
		m.rules[field.ID] = rule
	}
	return rule
}
