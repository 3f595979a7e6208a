// Package validation translates request-payload validation failures into
// the labeled, human-readable messages the API returns. Multi-field
// failures produce one message per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mile-mijatovic/address-book/internal/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Prefer the json tag as the field label so messages match the
	// payload the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// Struct validates s and returns an apperror.ValidationErrors carrying
// one labeled message per failed field, or nil.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewValidation(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, message(fe))
	}

	return &apperror.ValidationErrors{Messages: messages}
}

func message(fe validator.FieldError) string {
	label := label(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is a required field", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid identifier", label)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", label)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", label, label+" confirmation")
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// label turns a json field name into a readable label, e.g.
// "firstName" -> "First name", "email" -> "Email".
func label(field string) string {
	if field == "" {
		return field
	}

	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(toUpper(r))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(r - 'A' + 'a')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
