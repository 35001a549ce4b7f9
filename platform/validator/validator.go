// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"fixserve_backend/platform/phone"
)

// clockTimeRe matches 24-hour wall clock times like "09:30" or "23:05".
var clockTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the application's custom rules
// registered: "clocktime" for HH:MM 24-hour times and "mobile" for phone numbers.
func New() *Validator {
	v := validator.New()

	// Registration on a fresh instance cannot fail for non-empty tags.
	_ = v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		return clockTimeRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return phone.IsValid(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
