package core

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	weekdaysTag  = "weekdays"
	weekdaysText = "{0} must only contain weekday names (e.g. Monday)"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	weekdayNames = make(map[string]bool, 7)
)

func init() {
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekdayNames[d.String()] = true
	}
}

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// NewValidator returns a validator with the global validators and translations registered.
func NewValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	InitValidators(validate, translator)
	return validate
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// validate Dates as their string form, a zero Date is empty
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(Date); ok && !d.IsZero() {
			return d.String()
		}
		return ""
	}, Date{})

	// register custom validators
	_ = validate.RegisterValidation(weekdaysTag, weekdaysValidation)
	RegisterCustomTranslation(validate, translator, weekdaysTag, weekdaysText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// IsWeekday reports whether name is an english weekday name, e.g. "Monday".
func IsWeekday(name string) bool {
	return weekdayNames[name]
}

// Custom Global Validators

// weekdaysValidation only allows slices of weekday names.
func weekdaysValidation(fl validator.FieldLevel) bool {
	days, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	for _, day := range days {
		if !IsWeekday(day) {
			return false
		}
	}
	return true
}
