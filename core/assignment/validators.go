package assignment

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studysync/core"
)

var (
	priorityTag  = "priority"
	priorityText = "priority must be one of low, medium or high"
)

// InitValidators registers the assignment validators & their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(priorityTag, priorityValidation)
	core.RegisterCustomTranslation(validate, translator, priorityTag, priorityText)
}

// Custom Validators

func priorityValidation(fl validator.FieldLevel) bool {
	if p, ok := fl.Field().Interface().(Priority); ok {
		return p.IsValid()
	}
	return Priority(fl.Field().String()).IsValid()
}
