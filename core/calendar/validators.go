package calendar

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/ratiba/core"
)

var (
	levelTag  = "level"
	levelText = "invalid education level"

	errMissingStart = errors.New("a start date is required")
	errMissingEnd   = errors.New("an end date is required")
	errBadRange     = errors.New("the end date cannot be before the start date")
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(levelTag, levelValidation)
	core.RegisterCustomTranslation(validate, translator, levelTag, levelText)
}

// levelValidation checks that the provided level is one of AllLevels.
func levelValidation(fl validator.FieldLevel) bool {
	return Level(fl.Field().String()).Valid()
}

// validateDateRange enforces the start <= end invariant before any write.
func validateDateRange(start, end core.Date) error {
	switch {
	case start.IsZero():
		return core.NewValidationError(errMissingStart, core.FieldError{Field: "start", Error: errMissingStart.Error()})
	case end.IsZero():
		return core.NewValidationError(errMissingEnd, core.FieldError{Field: "end", Error: errMissingEnd.Error()})
	case end.Before(start.Time):
		return core.NewValidationError(errBadRange, core.FieldError{Field: "end", Error: errBadRange.Error()})
	}
	return nil
}
