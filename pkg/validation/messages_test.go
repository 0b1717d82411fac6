package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentialsForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	About    string `validate:"max=5"`
}

func TestMessagesFromError_FieldMessages(t *testing.T) {
	v := validator.New()

	err := v.Struct(credentialsForm{Email: "not-an-email", About: "toolongvalue"})
	require.Error(t, err)

	messages := MessagesFromError(err)
	assert.Contains(t, messages, "некорректный email")
	assert.Contains(t, messages, "пароль не может быть пустым")
	assert.Contains(t, messages, "поле about превышает максимальную длину")

	// Validator internals never leak through.
	for _, msg := range messages {
		assert.NotContains(t, msg, "Field validation")
		assert.NotContains(t, msg, "Key:")
	}
}

func TestMessagesFromError_NonValidatorError(t *testing.T) {
	messages := MessagesFromError(errors.New("unexpected EOF"))
	assert.Equal(t, []string{"некорректное тело запроса"}, messages)
}

func TestDefaultMessage(t *testing.T) {
	tests := []struct {
		field string
		tag   string
		want  string
	}{
		{field: "Email", tag: "required", want: "поле email не может быть пустым"},
		{field: "BirthDate", tag: "birthdate", want: "поле birthdate должно быть датой в формате ГГГГ-ММ-ДД"},
		{field: "Avatar", tag: "startswith", want: "поле avatar заполнено некорректно"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.tag, func(t *testing.T) {
			got := DefaultMessage(tt.field, tt.tag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToLower(got), got)
		})
	}
}

func TestCustomMessage_UnknownFieldFallsThrough(t *testing.T) {
	assert.Nil(t, CustomMessage("Nonexistent"))
}
