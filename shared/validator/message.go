package validator

import (
	"errors"
	"strings"
	"unicode"

	val "github.com/go-playground/validator/v10"
)

// fieldParams lists the tags whose param names another struct field rather than a value.
var fieldParams = map[string]bool{
	"after":    true,
	"eqfield":  true,
	"nefield":  true,
	"gtfield":  true,
	"gtefield": true,
}

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"email":    "{field} must be a valid email address",
	"date":     "{field} must be a date in YYYY-MM-DD format",
	"after":    "{field} must be after {param}",
	"empty":    "{field} must not be set",
	"len":      "{field} must be exactly {param} characters long",
}

// onlyDateOrder reports whether every failed rule is an `after` ordering rule.
func onlyDateOrder(err error) bool {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return false
	}

	for _, valErr := range valErrors {
		if valErr.Tag() != "after" {
			return false
		}
	}

	return true
}

// message renders every failed rule, one clause per field, in struct order.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	clauses := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		clauses = append(clauses, clause(valErr))
	}

	return strings.Join(clauses, "; ")
}

func clause(valErr val.FieldError) string {
	template, ok := messages[valErr.Tag()]
	if !ok {
		return valErr.Field() + " failed on " + valErr.Tag()
	}

	param := valErr.Param()
	if fieldParams[valErr.Tag()] {
		param = snakeCase(param)
	}

	return strings.NewReplacer("{field}", valErr.Field(), "{param}", param).Replace(template)
}

// snakeCase turns a Go field name like CheckIn into its wire form check_in.
func snakeCase(name string) string {
	var b strings.Builder

	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}

			r = unicode.ToLower(r)
		}

		b.WriteRune(r)
	}

	return b.String()
}
