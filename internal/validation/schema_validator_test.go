package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidator_Catalog(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{
			name:      "valid catalog",
			data:      `{"prizes":[{"label":"Try Again","category":"TRY_AGAIN"}]}`,
			wantError: false,
		},
		{
			name:      "valid with config and rewards",
			data:      `{"config":{"max_retries":3,"odds":{"grand":12,"try_again":70,"droplets":18}},"prizes":[{"label":"Car Wash","category":"GRAND"}],"rewards":[{"id":"petrol","label":"1 Litre Petrol","cost":100}]}`,
			wantError: false,
		},
		{
			name:      "missing prizes",
			data:      `{"config":{"max_retries":3}}`,
			wantError: true,
			errorMsg:  "required",
		},
		{
			name:      "empty prizes",
			data:      `{"prizes":[]}`,
			wantError: true,
			errorMsg:  "minItems",
		},
		{
			name:      "unknown category",
			data:      `{"prizes":[{"label":"x","category":"JACKPOT"}]}`,
			wantError: true,
			errorMsg:  "/prizes/0/category",
		},
		{
			name:      "zero max retries",
			data:      `{"config":{"max_retries":0},"prizes":[{"label":"x","category":"GRAND"}]}`,
			wantError: true,
			errorMsg:  "minimum",
		},
		{
			name:      "invalid JSON",
			data:      `{"prizes":`,
			wantError: true,
			errorMsg:  "failed to parse JSON data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), CatalogSchema)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	err := NewSchemaValidator().ValidateBytes([]byte(`{}`), "missing.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}
