package validation_test

import (
	"testing"

	"github.com/sdkgen-dev/smithybuild/application/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validManifest = `{
    "version": "1.0",
    "projections": {
        "mq.v1": {
            "imports": ["/models/mq.v1.json"],
            "plugins": {
                "go-codegen": {
                    "service": "com.amazonaws.mq#mq",
                    "module": "github.com/aws/aws-sdk-go-v2/service/mq",
                    "moduleVersion": "1.0"
                }
            }
        }
    }
}`

func newManifestValidator(t *testing.T) *validation.ManifestValidator {
	t.Helper()
	v, err := validation.NewManifestValidator()
	require.NoError(t, err)
	return v
}

func TestManifestValidator_Valid(t *testing.T) {
	v := newManifestValidator(t)

	for _, data := range []string{validManifest, `{"version": "1.0", "projections": {}}`} {
		result, err := v.Validate([]byte(data))
		require.NoError(t, err)
		assert.True(t, result.Valid, "%v", result.Errors)
		assert.Empty(t, result.Errors)
	}
}

func TestManifestValidator_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"wrong version", `{"version": "2.0", "projections": {}}`, "/version"},
		{"missing projections", `{"version": "1.0"}`, "/"},
		{"unknown root member", `{"version": "1.0", "projections": {}, "extra": true}`, "/"},
		{"entry not an object", `{"version": "1.0", "projections": {"a.b": []}}`, "/projections/a.b"},
		{
			name:  "missing module",
			data:  `{"version": "1.0", "projections": {"a.b": {"imports": ["x"], "plugins": {"go-codegen": {"service": "a#B", "moduleVersion": "1.0"}}}}}`,
			field: "/projections/a.b/plugins/go-codegen",
		},
		{
			name:  "imports not strings",
			data:  `{"version": "1.0", "projections": {"a.b": {"imports": [1], "plugins": {}}}}`,
			field: "/projections/a.b/imports/0",
		},
	}

	v := newManifestValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.Validate([]byte(tt.data))
			require.NoError(t, err)
			assert.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)

			var fields []string
			for _, e := range result.Errors {
				assert.NotEmpty(t, e.Message)
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestManifestValidator_MalformedJSON(t *testing.T) {
	_, err := newManifestValidator(t).Validate([]byte(`{"version":`))
	require.Error(t, err)
}

func TestNewManifestValidatorFromSchema_InvalidSchema(t *testing.T) {
	_, err := validation.NewManifestValidatorFromSchema("https://example.com/bad.json", []byte(`{"type": 12}`))
	require.Error(t, err)
}
