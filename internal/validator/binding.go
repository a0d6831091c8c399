package validator

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
)

// FromBinding converts the field errors of a failed `binding` tag check
// into a ValidationError. Other errors report false.
func FromBinding(err error) (*ValidationError, bool) {
	var errs playground.ValidationErrors
	if !errors.As(err, &errs) {
		return nil, false
	}

	verr := &ValidationError{}
	for _, fe := range errs {
		verr.add(fieldName(fe.Field()), bindingMessage(fe))
	}
	return verr, true
}

func bindingMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}

// fieldName maps the Go field name to its form/json name.
func fieldName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
