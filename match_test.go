package mapology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictionary_Match(t *testing.T) {
	field := &Field{Name: "Name", Key: "name"}

	var testCases = []struct {
		description     string
		dict            map[string]interface{}
		rule            *Rule
		caseInsensitive bool
		expect          interface{}
		expectOk        bool
	}{
		{
			description: "exact key",
			dict:        map[string]interface{}{"name": "a"},
			expect:      "a",
			expectOk:    true,
		},
		{
			description: "exact key with case insensitive",
			dict:        map[string]interface{}{"name": "a"},
			expect:      "a",
			expectOk:    true,
		},
		{
			description: "case mismatch",
			dict:        map[string]interface{}{"Name": "a"},
		},
		{
			description:     "case insensitive",
			dict:            map[string]interface{}{"NAME": "a"},
			caseInsensitive: true,
			expect:          "a",
			expectOk:        true,
		},
		{
			description:     "case insensitive collision picks smallest key",
			dict:            map[string]interface{}{"nAme": "b", "NAME": "a"},
			caseInsensitive: true,
			expect:          "a",
			expectOk:        true,
		},
		{
			description: "first alias wins",
			dict:        map[string]interface{}{"a": 1, "b": 2, "name": 3},
			rule:        &Rule{Aliases: []string{"b", "a"}},
			expect:      2,
			expectOk:    true,
		},
		{
			description: "aliases are exclusive",
			dict:        map[string]interface{}{"name": 3},
			rule:        &Rule{Aliases: []string{"b", "a"}},
		},
		{
			description:     "aliases ignore case insensitive",
			dict:            map[string]interface{}{"B": 3},
			rule:            &Rule{Aliases: []string{"b"}},
			caseInsensitive: true,
		},
		{
			description: "null value is matched",
			dict:        map[string]interface{}{"name": nil},
			expectOk:    true,
		},
	}
	for _, testCase := range testCases {
		dict := newDictionary(testCase.dict)
		dict.caseInsensitive = testCase.caseInsensitive
		actual, ok := dict.match(field, testCase.rule)
		assert.Equal(t, testCase.expectOk, ok, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestNewDictionary_Snapshot(t *testing.T) {
	defer SetCaseInsensitive(CaseInsensitive())
	SetCaseInsensitive(true)
	dict := newDictionary(map[string]interface{}{"NAME": "a"})
	SetCaseInsensitive(false)
	actual, ok := dict.match(&Field{Name: "Name", Key: "name"}, nil)
	assert.True(t, ok)
	assert.Equal(t, "a", actual)
}
