package content

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ewanblake/aihub/core"
)

var (
	categoryTag  = "category"
	categoryText = "invalid paper category"

	kindTag  = "resourcekind"
	kindText = "kind must be one of video, article or course"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(categoryTag, categoryValidation)
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)

	_ = validate.RegisterValidation(kindTag, kindValidation)
	core.RegisterCustomTranslation(validate, translator, kindTag, kindText)
}

func categoryValidation(fl validator.FieldLevel) bool {
	return contains(Categories, fl.Field().String())
}

func kindValidation(fl validator.FieldLevel) bool {
	return contains(Kinds, fl.Field().String())
}

func contains(vals []string, s string) bool {
	for _, v := range vals {
		if v == s {
			return true
		}
	}
	return false
}
