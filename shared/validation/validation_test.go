package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	messages := v.Struct(testPayload{Email: "a@x.com", Password: "secret"})
	assert.Nil(t, messages)
}

func TestStruct_TranslatedMessages(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	messages := v.Struct(testPayload{Email: "not-an-email"})

	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "Email")
	assert.Contains(t, messages[1], "Password")
}
