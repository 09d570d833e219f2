package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	type input struct {
		Name  string `json:"name" validate:"required,notblank"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	assert.NoError(t, v.Struct(input{Name: "Jane"}))

	err := v.Struct(input{})
	require.True(t, IsValidation(err))
	assert.Equal(t, []FieldError{{Field: "name", Error: "name is required"}}, err.(*ValidationError).Fields)

	err = v.Struct(input{Name: "  ", Email: "nope"})
	require.True(t, IsValidation(err))
	assert.ElementsMatch(t, []FieldError{
		{Field: "name", Error: "name cannot be blank"},
		{Field: "email", Error: "email must be a valid email address"},
	}, err.(*ValidationError).Fields)
}

func TestErrors(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("goal")))
	assert.Equal(t, "goal not found", NewNotFoundError("goal").Error())
	assert.True(t, IsAuthorization(NewAuthorizationError("not authorized")))
	assert.True(t, IsSelfDeletion(ErrSelfDeletion))
	assert.False(t, IsNotFound(ErrSelfDeletion))
	assert.True(t, IsShutdown(NewShutdownError("bye")))
}

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{in: "", want: nil},
		{in: "abc", want: nil},
		{in: "1.5", want: nil},
		{in: " 7 ", want: intPtr(7)},
		{in: "2024", want: intPtr(2024)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseOptionalInt(tt.in), "ParseOptionalInt(%q)", tt.in)
	}
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Jane Doe", CleanString("  Jane Doe\n"))
	assert.Equal(t, "jane@test.cd", CleanString(" JANE@test.cd ", true))
}

func intPtr(i int) *int { return &i }
