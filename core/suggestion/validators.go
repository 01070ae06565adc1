package suggestion

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ewanblake/aihub/core"
)

var (
	priorityTag  = "priority"
	priorityText = "priority must be one of Low, Medium or High"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(priorityTag, priorityValidation)
	core.RegisterCustomTranslation(validate, translator, priorityTag, priorityText)
}

// priorityValidation only allows the fixed enumerated priority levels.
func priorityValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, p := range Priorities {
		if val == p {
			return true
		}
	}
	return false
}
