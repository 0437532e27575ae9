package util

import (
	"runtime"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	var testCases = []struct {
		slice          []string
		element        string
		expectedResult bool
	}{
		{[]string{"a", "b", "c"}, "b", true},
		{[]string{"a", "b", "c"}, "e", false},
		{nil, "b", false},
	}

	for _, testCase := range testCases {
		actualResult := Contains(testCase.slice, testCase.element)
		assert.Equal(t, testCase.expectedResult, actualResult)
	}
}

func TestHasAnySuffix(t *testing.T) {
	var testCases = []struct {
		s              string
		suffixes       []string
		expectedResult bool
	}{
		{"App.vue", []string{".js", ".ts", ".vue"}, true},
		{"main.ts", []string{".js", ".ts", ".vue"}, true},
		{"style.css", []string{".js", ".ts", ".vue"}, false},
		{"main.js", nil, false},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expectedResult, HasAnySuffix(testCase.s, testCase.suffixes...), testCase.s)
	}
}

func TestNameOfFunction(t *testing.T) {
	callPtr, _, _, _ := runtime.Caller(0)
	assert.Equal(t, "TestNameOfFunction", NameOfFunction(callPtr))
	assert.Equal(t, "", NameOfFunction(0))
}

func TestApplyWithBackoffFailure(t *testing.T) {
	origTimeout := timeout
	defer func() {
		timeout = origTimeout
	}()
	timeout = 1 * time.Second

	var callCount = 0
	f := func() error {
		callCount++
		return errors.New("bang")
	}
	err := ApplyWithBackoff(f)

	assert.Error(t, err)
	assert.True(t, callCount > 1)
}

func TestApplyWithBackoffSuccess(t *testing.T) {
	origTimeout := timeout
	defer func() {
		timeout = origTimeout
	}()
	timeout = 10 * time.Second

	var callCount = 0
	f := func() error {
		if callCount == 3 {
			return nil
		}
		callCount++
		return errors.New("bang")
	}
	err := ApplyWithBackoff(f)

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
}

func TestMultiError(t *testing.T) {
	var multiError MultiError
	assert.True(t, multiError.Empty())

	multiError.Collect(nil)
	assert.True(t, multiError.Empty())

	multiError.Collect(errors.New("first"))
	multiError.Collect(errors.New("second"))
	assert.False(t, multiError.Empty())
	assert.Len(t, multiError.Errors, 2)
	assert.Equal(t, "first\nsecond", multiError.Error())
}
