package core

import (
	"reflect"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	classCodeTag   = "classcode"
	classCodeText  = "must be one of nursery, lkg, ukg or 1-10"
	classCodeRegex = regexp.MustCompile(`^(nursery|lkg|ukg|0?[1-9]|10)$`)

	answerKeyTag   = "answerkey"
	answerKeyText  = "answers must be one of a, b, c or d"
	answerKeyRegex = regexp.MustCompile(`^[abcd]$`)

	acadMonthTag   = "acadmonth"
	acadMonthText  = "must be a month in YYYY-MM format"
	acadMonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

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
	_ = validate.RegisterValidation(classCodeTag, regexValidation(classCodeRegex))
	RegisterCustomTranslation(validate, translator, classCodeTag, classCodeText)

	_ = validate.RegisterValidation(answerKeyTag, regexValidation(answerKeyRegex))
	RegisterCustomTranslation(validate, translator, answerKeyTag, answerKeyText)

	_ = validate.RegisterValidation(acadMonthTag, regexValidation(acadMonthRegex))
	RegisterCustomTranslation(validate, translator, acadMonthTag, acadMonthText)

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

func regexValidation(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(strings.ToLower(fl.Field().String()))
	}
}
