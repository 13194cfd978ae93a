package validator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validator validates request structs using `validate` tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// date: calendar day in 2006-01-02 form
	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	// timeofday: zero-padded 24h HH:MM; zero-padding keeps
	// lexicographic and chronological order identical
	v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		return timeOfDayRe.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

func (val *Validator) Validate(obj interface{}) error {
	return val.v.Struct(obj)
}
