package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// MessagesFromError turns a binding error into user-facing messages.
// Validator failures map field by field through the custom and default
// message tables; anything else (malformed JSON, wrong types) collapses
// to a single generic message so internals never reach the client.
func MessagesFromError(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{"некорректное тело запроса"}
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		if custom, ok := CustomMessage(fieldErr.Field())[fieldErr.Tag()]; ok {
			messages = append(messages, custom)
			continue
		}
		messages = append(messages, DefaultMessage(fieldErr.Field(), fieldErr.Tag()))
	}
	return messages
}
