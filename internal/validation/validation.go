// Package validation holds the shared go-playground/validator instance and
// the catalog specific rules registered on it.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// TagReleaseYear validates a movie year: four digits from 1900 on, or the
// literal "unknown" in any case.
const TagReleaseYear = "releaseyear"

var yearPattern = regexp.MustCompile(`(?i)^((19\d{2}|[2-9]\d{3})|unknown)$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidYear reports whether year satisfies the release year rule.
func ValidYear(year string) bool {
	return yearPattern.MatchString(year)
}

// Validator returns the process wide validator with custom tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		err := validate.RegisterValidation(TagReleaseYear, func(fl validator.FieldLevel) bool {
			return ValidYear(fl.Field().String())
		})
		if err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", TagReleaseYear, err))
		}
	})
	return validate
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Error collects every field that failed validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Struct validates s and returns *Error when any rule fails.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &Error{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		out.Fields = append(out.Fields, FieldError{
			Field:   field,
			Tag:     fe.Tag(),
			Message: message(field, fe),
		})
	}
	return out
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case TagReleaseYear:
		return fmt.Sprintf("%s must be a four digit year from 1900 on or \"unknown\"", field)
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
