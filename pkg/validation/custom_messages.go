package validation

// CustomMessage returns the per-field message overrides, keyed by
// validation tag.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"Email": {
			"required": "email не может быть пустым",
			"email":    "некорректный email",
		},
		"Password": {
			"required": "пароль не может быть пустым",
			"min":      "пароль слишком короткий",
		},
		"Text": {
			"required": "текст поста не может быть пустым",
		},
		"BirthDate": {
			"birthdate": "дата рождения должна быть в формате ГГГГ-ММ-ДД",
		},
		"Phone": {
			"numeric": "номер телефона должен состоять из цифр",
		},
	}
	return customValidationMessages[field]
}
