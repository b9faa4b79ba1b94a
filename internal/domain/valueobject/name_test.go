package valueobject_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/domainerr"
	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/valueobject"
)

// requireValidation asserts err is a validation failure of the given type
// and returns its details.
func requireValidation(t *testing.T, err error, field string, vt domainerr.ValidationType) map[string]any {
	t.Helper()
	de, ok := domainerr.As(err)
	require.True(t, ok, "expected domain error, got %v", err)
	require.Equal(t, domainerr.KindValidation, de.Kind())
	d := de.Details()
	require.Equal(t, field, d["field"])
	require.Equal(t, string(vt), d["validationType"])
	return d
}

func TestNewName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		errType domainerr.ValidationType
	}{
		{name: "valid", input: "Maria Silva", want: "Maria Silva"},
		{name: "trimmed", input: "  Maria Silva  ", want: "Maria Silva"},
		{name: "exactly min", input: "Maria", want: "Maria"},
		{name: "exactly max", input: strings.Repeat("a", 100), want: strings.Repeat("a", 100)},
		{name: "empty", input: "", errType: domainerr.EmptyCheck},
		{name: "blank", input: "   ", errType: domainerr.EmptyCheck},
		{name: "too short after trim", input: "  Ana  ", errType: domainerr.MinLength},
		{name: "too long", input: strings.Repeat("a", 101), errType: domainerr.MaxLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := valueobject.NewName(tt.input)
			if tt.errType != "" {
				requireValidation(t, err, "name", tt.errType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Value())
		})
	}
}

func TestNameLengthDetails(t *testing.T) {
	_, err := valueobject.NewName("Ana")
	d := requireValidation(t, err, "name", domainerr.MinLength)
	assert.Equal(t, 5, d["minLength"])
	assert.Equal(t, 3, d["actualLength"])
}

func TestNameEquality(t *testing.T) {
	a, err := valueobject.NewName("Maria Silva")
	require.NoError(t, err)
	b, err := valueobject.NewName(" Maria Silva ")
	require.NoError(t, err)
	c, err := valueobject.NewName("Joana Souza")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.Equal(t, a, b)
	assert.False(t, a.Equals(c))
}
