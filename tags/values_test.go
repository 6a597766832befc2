package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues_MatchPairs(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      map[string]string
	}{

		{

			description: "mixed",
			input:       ",omitempty,path=@exclude-ids",
			expect: map[string]string{
				"omitempty": "",
				"path":      "@exclude-ids",
			},
		},
		{
			description: "block value",
			input:       "alias={a,b},exclude",
			expect: map[string]string{
				"alias":   "{a,b}",
				"exclude": "",
			},
		},
	}
	for _, testCase := range testCases {
		values := Values(testCase.input)
		actual := map[string]string{}
		err := values.MatchPairs(func(key, value string) error {
			actual[key] = value
			return nil
		})
		assert.Nil(t, err)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestValues_Elements(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      []string
	}{
		{description: "single", input: "uid", expect: []string{"uid"}},
		{description: "block", input: "{user_id,uid}", expect: []string{"user_id", "uid"}},
		{description: "quoted", input: "{'a,b',c}", expect: []string{"a,b", "c"}},
		{description: "spaces", input: "{a, b}", expect: []string{"a", "b"}},
		{description: "empty", input: "", expect: nil},
	}
	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.expect, Values(testCase.input).Elements(), testCase.description)
	}
}
