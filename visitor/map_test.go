package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type key string

func TestNewMapVisitor(t *testing.T) {
	var aMap = map[string]bool{
		"abc": true,
		"def": true}

	{
		cloned := make(map[string]bool)
		visit := MapVisitorOf[string, bool](aMap)
		err := visit(func(key string, element bool) (bool, error) {
			cloned[key] = element
			return true, nil
		})
		assert.Nil(t, err)
		assert.EqualValues(t, aMap, cloned)
	}
	{
		visit, err := AnyMapVisitorOf(aMap)
		assert.Nil(t, err)
		cloned := make(map[string]bool)
		_ = visit(func(key any, element any) (bool, error) {
			cloned[key.(string)] = element.(bool)
			return true, nil
		})
		assert.EqualValues(t, aMap, cloned)
	}
	{
		fMap := map[float64]float64{
			1: 1,
		}
		visit, err := AnyMapVisitorOf(fMap)
		assert.Nil(t, err)
		cloned := make(map[float64]float64)
		_ = visit(func(key any, element any) (bool, error) {
			cloned[key.(float64)] = element.(float64)
			return true, nil
		})
		assert.EqualValues(t, fMap, cloned)
	}
	{
		_, err := AnyMapVisitorOf([]int{1})
		assert.NotNil(t, err)
	}
}

func TestStringMapVisitorOf(t *testing.T) {
	var testCases = []struct {
		description string
		input       interface{}
		expect      map[string]interface{}
		expectErr   bool
	}{
		{
			description: "raw dictionary",
			input:       map[string]interface{}{"a": 1.0, "b": "x"},
			expect:      map[string]interface{}{"a": 1.0, "b": "x"},
		},
		{
			description: "named string keys",
			input:       map[key]int{"k": 3},
			expect:      map[string]interface{}{"k": 3},
		},
		{
			description: "int keys",
			input:       map[int]int{1: 3},
			expectErr:   true,
		},
	}
	for _, testCase := range testCases {
		visit, err := StringMapVisitorOf(testCase.input)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		actual := map[string]interface{}{}
		err = visit(func(key string, element any) (bool, error) {
			actual[key] = element
			return true, nil
		})
		assert.Nil(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}
