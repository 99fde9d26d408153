package core

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	InitValidators(validate, translator)
	return validate, translator
}

func TestInitValidators_customTags(t *testing.T) {
	validate, translator := newTestValidator()

	type form struct {
		Class  string `json:"classCode" validate:"omitempty,classcode"`
		Answer string `json:"answer" validate:"omitempty,answerkey"`
		Month  string `json:"month" validate:"omitempty,acadmonth"`
	}

	tests := []struct {
		name     string
		data     form
		wantFail string // empty = valid
	}{
		{name: "empty ok", data: form{}},
		{name: "nursery", data: form{Class: "nursery"}},
		{name: "grade", data: form{Class: "5"}},
		{name: "zero-padded grade", data: form{Class: "05"}},
		{name: "grade 10", data: form{Class: "10"}},
		{name: "mixed case class", data: form{Class: "Nursery"}},
		{name: "bad class", data: form{Class: "11"}, wantFail: "classCode"},
		{name: "answer", data: form{Answer: "c"}},
		{name: "bad answer", data: form{Answer: "e"}, wantFail: "answer"},
		{name: "month", data: form{Month: "2025-06"}},
		{name: "bad month", data: form{Month: "2025-13"}, wantFail: "month"},
		{name: "month without day format", data: form{Month: "2025-06-01"}, wantFail: "month"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.data)
			if tt.wantFail == "" {
				assert.NoError(t, err)
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "want ValidationErrors, got %v", err)
			require.Len(t, vErrs, 1)
			assert.Equal(t, tt.wantFail, vErrs[0].Field(), "errors keyed by json tag name")
			assert.NotEmpty(t, vErrs[0].Translate(translator))
		})
	}
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Hello", CleanString("  Hello\t"))
	assert.Equal(t, "hello", CleanString("  Hello ", true))
	assert.Equal(t, "", CleanString("   "))
}
