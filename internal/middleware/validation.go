package middleware

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/wallfeed/wallfeed/internal/dto"
)

// RegisterValidators installs custom binding rules on gin's validator
// engine. Called once during router setup.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// birthdate: the profile date wire format, YYYY-MM-DD.
	_ = v.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dto.BirthDateFormat, fl.Field().String())
		return err == nil
	})
}
