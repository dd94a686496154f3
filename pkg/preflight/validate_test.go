package preflight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systemstart/mldeploy/pkg/config"
)

func TestValidate_AllPresent(t *testing.T) {
	ctx := config.New(map[string]string{
		config.ClientID:     "id",
		config.ClientSecret: "secret",
		config.TenantID:     "tenant",
	})

	require.NoError(t, Validate(ctx, []string{config.ClientID, config.ClientSecret, config.TenantID}))
}

func TestValidate_EmptyContextNamesEveryMissingValue(t *testing.T) {
	required := []string{config.ClientID, config.ClientSecret, config.TenantID}

	err := Validate(config.New(nil), required)
	require.Error(t, err)

	var missing *MissingConfigurationError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, required, missing.Names())
	assert.Equal(t, "missing configuration: clientId, clientSecret, tenantId", err.Error())
}

func TestValidate_NamesExactlyTheMissingValues(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]string
		required []string
		want     []string
	}{
		{
			name:     "one of three",
			values:   map[string]string{"a": "1", "c": "3"},
			required: []string{"a", "b", "c"},
			want:     []string{"b"},
		},
		{
			name:     "empty value counts as missing",
			values:   map[string]string{"a": "", "b": "2"},
			required: []string{"a", "b"},
			want:     []string{"a"},
		},
		{
			name:     "duplicates reported once",
			values:   nil,
			required: []string{"a", "a", "b"},
			want:     []string{"a", "b"},
		},
		{
			name:     "values outside the required list are ignored",
			values:   map[string]string{"x": ""},
			required: []string{"y"},
			want:     []string{"y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(config.New(tt.values), tt.required)

			var missing *MissingConfigurationError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.want, missing.Names())
		})
	}
}

func TestValidate_EmptyIsDistinguishedInMessage(t *testing.T) {
	err := Validate(config.New(map[string]string{"a": ""}), []string{"a", "b"})
	require.Error(t, err)
	assert.Equal(t, "missing configuration: a (empty), b", err.Error())
}

func TestValidate_NoRequiredNames(t *testing.T) {
	require.NoError(t, Validate(config.New(nil), nil))
}
