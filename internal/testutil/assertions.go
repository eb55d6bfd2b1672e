// Package testutil provides common test utilities and assertions for smithybuild tests.
package testutil

import (
	"encoding/json"
	stdErrors "errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
// and member order.
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// RequireErrorAs asserts that err matches target, in the manner of errors.As,
// and returns the matched error.
func RequireErrorAs[T error](t *testing.T, err error, msgAndArgs ...interface{}) T {
	t.Helper()
	require.Error(t, err, msgAndArgs...)

	var target T
	require.True(t, stdErrors.As(err, &target), "error %q is not a %T", err, target)
	return target
}

// AssertFileContent asserts that the file at path holds exactly want.
func AssertFileContent(t *testing.T, path, want string, msgAndArgs ...interface{}) {
	t.Helper()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(got), msgAndArgs...)
}

// AssertNoFile asserts that nothing exists at path.
func AssertNoFile(t *testing.T, path string, msgAndArgs ...interface{}) {
	t.Helper()

	_, err := os.Stat(path)
	assert.True(t, stdErrors.Is(err, os.ErrNotExist), msgAndArgs...)
}
