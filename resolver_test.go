package mapology

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tagly/format/text"
)

func TestResolveFields(t *testing.T) {
	var testCases = []struct {
		description string
		rType       reflect.Type
		options     []Option
		expectNames []string
		expectKeys  []string
	}{
		{
			description: "declaration order",
			rType:       reflect.TypeOf(User{}),
			expectNames: []string{"ID", "Name"},
			expectKeys:  []string{"id", "name"},
		},
		{
			description: "pointer type",
			rType:       reflect.TypeOf(&User{}),
			expectNames: []string{"ID", "Name"},
			expectKeys:  []string{"id", "name"},
		},
		{
			description: "own fields before embedded, derived shadows base",
			rType:       reflect.TypeOf(Derived{}),
			expectNames: []string{"Name", "ID", "Created"},
			expectKeys:  []string{"name", "id", "created"},
		},
		{
			description: "embedded pointer",
			rType:       reflect.TypeOf(Deep{}),
			expectNames: []string{"Extra", "Name", "ID", "Created"},
			expectKeys:  []string{"extra", "name", "id", "created"},
		},
		{
			description: "transient and unexported fields",
			rType:       reflect.TypeOf(Transient{}),
			expectNames: []string{"Name"},
			expectKeys:  []string{"name"},
		},
		{
			description: "unexported access",
			rType:       reflect.TypeOf(Private{}),
			options:     []Option{WithAccessUnexported(true)},
			expectNames: []string{"Name", "secret"},
			expectKeys:  []string{"name", "secret"},
		},
		{
			description: "case format for untagged fields",
			rType:       reflect.TypeOf(Formatted{}),
			options:     []Option{WithCaseFormat(text.CaseFormatLowerUnderscore)},
			expectNames: []string{"UserName", "ID", "Tagged"},
			expectKeys:  []string{"user_name", "id", "TAG"},
		},
		{
			description: "custom tag name",
			rType:       reflect.TypeOf(Formatted{}),
			options:     []Option{WithTagName("yaml")},
			expectNames: []string{"UserName", "ID", "Tagged"},
			expectKeys:  []string{"UserName", "ID", "Tagged"},
		},
		{
			description: "presence marker is not mapped",
			rType:       reflect.TypeOf(Tracked{}),
			expectNames: []string{"ID", "Name"},
			expectKeys:  []string{"id", "name"},
		},
		{
			description: "shallower embedded sibling shadows deeper field",
			rType:       reflect.TypeOf(Layered{}),
			expectNames: []string{"X"},
			expectKeys:  []string{"X"},
		},
		{
			description: "same depth first declared wins",
			rType:       reflect.TypeOf(Twin{}),
			expectNames: []string{"X"},
			expectKeys:  []string{"X"},
		},
		{
			description: "empty struct",
			rType:       reflect.TypeOf(struct{}{}),
		},
		{
			description: "key value field listed by key",
			rType:       reflect.TypeOf(Bridged{}),
			expectNames: []string{"UserName"},
			expectKeys:  []string{"user_name"},
		},
		{
			description: "virtual key value field",
			rType:       reflect.TypeOf(Dynamic{}),
			expectNames: []string{"Name", "Size", "color"},
			expectKeys:  []string{"name", "size", "color"},
		},
	}
	for _, testCase := range testCases {
		fields, err := ResolveFields(testCase.rType, testCase.options...)
		require.NoError(t, err, testCase.description)
		var names, keys []string
		for _, field := range fields {
			names = append(names, field.Name)
			keys = append(keys, field.Key)
		}
		assert.EqualValues(t, testCase.expectNames, names, testCase.description)
		assert.EqualValues(t, testCase.expectKeys, keys, testCase.description)
	}
}

func TestResolveFields_Descriptor(t *testing.T) {
	fields, err := ResolveFields(reflect.TypeOf(Derived{}))
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), fields[1].Type)
	assert.Equal(t, FieldID{Owner: reflect.TypeOf(Derived{}), Name: "ID"}, fields[1].ID)
	assert.Equal(t, FieldID{Owner: reflect.TypeOf(Base{}), Name: "Created"}, fields[2].ID)
	assert.Equal(t, 0, fields[1].Depth)
	assert.Equal(t, 1, fields[2].Depth)

	fields, err = ResolveFields(reflect.TypeOf(Layered{}))
	require.NoError(t, err)
	assert.Equal(t, FieldID{Owner: reflect.TypeOf(LayerB{}), Name: "X"}, fields[0].ID)
	assert.Equal(t, 1, fields[0].Depth)

	fields, err = ResolveFields(reflect.TypeOf(Twin{}))
	require.NoError(t, err)
	assert.Equal(t, FieldID{Owner: reflect.TypeOf(LayerB{}), Name: "X"}, fields[0].ID)

	fields, err = ResolveFields(reflect.TypeOf(Ruled{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"user_id", "uid"}, fields[0].Aliases)
	assert.True(t, fields[1].Excluded)

	fields, err = ResolveFields(reflect.TypeOf(Custom{}))
	require.NoError(t, err)
	assert.Equal(t, "2006-01-02", fields[4].TimeLayout)

	fields, err = ResolveFields(reflect.TypeOf(Dynamic{}))
	require.NoError(t, err)
	assert.Equal(t, KeyValueAccess, fields[0].Access)
	assert.Equal(t, DirectAccess, fields[1].Access)
	assert.True(t, fields[2].IsVirtual())
	assert.Equal(t, "Name", fields[0].keyValueName)
	assert.Equal(t, "color", fields[2].keyValueName)

	fields, err = ResolveFields(reflect.TypeOf(Bridged{}))
	require.NoError(t, err)
	assert.Equal(t, "user_name", fields[0].keyValueName)
}

func TestResolveFields_Cache(t *testing.T) {
	first, err := ResolveFields(reflect.TypeOf(User{}))
	require.NoError(t, err)
	second, err := ResolveFields(reflect.TypeOf(&User{}))
	require.NoError(t, err)
	assert.Same(t, first[0], second[0])

	formatted, err := ResolveFields(reflect.TypeOf(User{}), WithCaseFormat(text.CaseFormatUpper))
	require.NoError(t, err)
	assert.NotSame(t, first[0], formatted[0])
}

func TestResolveFields_Unsupported(t *testing.T) {
	var testCases = []struct {
		description string
		rType       reflect.Type
	}{
		{description: "int", rType: reflect.TypeOf(0)},
		{description: "slice", rType: reflect.TypeOf([]User{})},
		{description: "time", rType: reflect.TypeOf(time.Time{})},
		{description: "nil", rType: nil},
	}
	for _, testCase := range testCases {
		_, err := ResolveFields(testCase.rType)
		assert.ErrorIs(t, err, ErrUnsupportedType, testCase.description)
	}
}

func TestResolveFields_InvalidTag(t *testing.T) {
	type invalid struct {
		ID int `mapper:"rename=x"`
	}
	_, err := ResolveFields(reflect.TypeOf(invalid{}))
	assert.NotNil(t, err)
}

func TestField_Access(t *testing.T) {
	fields, err := ResolveFields(reflect.TypeOf(Deep{}))
	require.NoError(t, err)
	deep := &Deep{}
	ptr := reflect.ValueOf(deep).UnsafePointer()
	id := fields[2]
	assert.False(t, id.Value(ptr).IsValid())
	assert.Nil(t, id.Addr(ptr))

	id.Set(ptr, reflect.ValueOf(7))
	require.NotNil(t, deep.Base)
	assert.Equal(t, 7, deep.ID)
	assert.Equal(t, 7, id.Value(ptr).Interface())
	assert.Equal(t, reflect.ValueOf(&deep.Base.ID).UnsafePointer(), id.Addr(ptr))
}
