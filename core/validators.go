package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")

	InitValidators(Validate, Translator)
}

// Weekdays as the backend spells them.
var Weekdays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

var (
	// custom validation tags & texts
	horaTag   = "hora"
	horaText  = "must be a time in HH:MM or HH:MM:SS format"
	horaRegex = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)

	weekdayTag  = "weekday_es"
	weekdayText = "must be a weekday (Lunes..Domingo)"

	rideDaysTag  = "dias_ruta"
	rideDaysText = "must be a comma-separated list of weekdays"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

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

	// register custom validators
	_ = validate.RegisterValidation(horaTag, horaValidation)
	RegisterCustomTranslation(validate, translator, horaTag, horaText)

	_ = validate.RegisterValidation(weekdayTag, weekdayValidation)
	RegisterCustomTranslation(validate, translator, weekdayTag, weekdayText)

	_ = validate.RegisterValidation(rideDaysTag, rideDaysValidation)
	RegisterCustomTranslation(validate, translator, rideDaysTag, rideDaysText)

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

// Custom Global Validators

func horaValidation(fl validator.FieldLevel) bool {
	return horaRegex.MatchString(fl.Field().String())
}

func IsWeekday(s string) bool {
	for _, d := range Weekdays {
		if s == d {
			return true
		}
	}
	return false
}

func weekdayValidation(fl validator.FieldLevel) bool {
	return IsWeekday(fl.Field().String())
}

// rideDaysValidation accepts "Lunes,Martes,Viernes" style day lists.
func rideDaysValidation(fl validator.FieldLevel) bool {
	days := strings.Split(fl.Field().String(), ",")
	if len(days) == 0 {
		return false
	}
	for _, d := range days {
		if !IsWeekday(strings.TrimSpace(d)) {
			return false
		}
	}
	return true
}
