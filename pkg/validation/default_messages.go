// Package validation translates binding failures into the user-facing
// messages returned in error response details.
package validation

import (
	"fmt"
	"strings"
)

// DefaultMessage maps a validation tag to a readable message for fields
// without a custom one.
func DefaultMessage(field, tag string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("поле %s не может быть пустым", field)
	case "email":
		return fmt.Sprintf("поле %s должно быть корректным email-адресом", field)
	case "min":
		return fmt.Sprintf("поле %s короче минимальной длины", field)
	case "max":
		return fmt.Sprintf("поле %s превышает максимальную длину", field)
	case "numeric":
		return fmt.Sprintf("поле %s должно быть числом", field)
	case "url":
		return fmt.Sprintf("поле %s должно быть корректным URL", field)
	case "datetime", "birthdate":
		return fmt.Sprintf("поле %s должно быть датой в формате ГГГГ-ММ-ДД", field)
	case "oneof":
		return fmt.Sprintf("поле %s содержит недопустимое значение", field)
	default:
		return fmt.Sprintf("поле %s заполнено некорректно", field)
	}
}
