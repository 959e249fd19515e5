package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError reports every failing field, not just the first.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		fields := make([]FieldError, 0, len(errs))
		for _, e := range errs {
			name := e.Field()
			label := formatFieldName(name)
			var fe FieldError
			switch e.Tag() {
			case "required":
				fe = RequiredField(label)
			default:
				fe = InvalidField(label)
			}
			fe.Field = name
			fields = append(fields, fe)
		}
		return Validation(fields...)
	}

	return Wrap(err, CodeInvalidInput, "Invalid input", ErrInvalidInput.HTTPStatus)
}

// ValidateStruct runs the shared validator and maps its result.
func ValidateStruct(v any) error {
	if err := Validator().Struct(v); err != nil {
		return MapValidationError(err)
	}
	return nil
}
