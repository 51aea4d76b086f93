package handlers

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// fieldErrors flattens gin's binding errors into per-field messages
// keyed by the form field name, for the templates to show next to
// each input.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid form data."
		return out
	}

	for _, fe := range verrs {
		field := snakeCase(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "max":
			out[field] = "Must be " + fe.Param() + " characters or fewer."
		case "min":
			out[field] = "Must be at least " + fe.Param() + " characters."
		case "email":
			out[field] = "Enter a valid email address."
		case "oneof":
			out[field] = "Choose one of: " + fe.Param() + "."
		default:
			out[field] = "Invalid value."
		}
	}
	return out
}

// snakeCase turns a struct field name into its form field name
// (SussexID -> sussex_id).
func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
