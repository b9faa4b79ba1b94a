package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listQuery struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
	Size  int    `form:"size" validate:"gte=0,lte=100"`
	Dir   string `json:"direction" validate:"omitempty,oneof=ASC DESC"`
}

func TestToDetailsUsesTagNames(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(tagName)

	err := v.Struct(listQuery{Email: "nope", Size: 101, Dir: "UP"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be less than or equal to 100", details["size"])
	assert.Equal(t, "must be one of: ASC, DESC", details["direction"])
}

func TestToDetailsInvalidJSON(t *testing.T) {
	var p listQuery
	err := json.Unmarshal([]byte(`{"email":`), &p)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"email": 5}`), &p)
	assert.Equal(t, map[string]string{"email": "must be a string"}, ToDetails(err))

	assert.Nil(t, ToDetails(nil))
}
