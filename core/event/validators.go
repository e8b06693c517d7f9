package event

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/ratiba/core"
)

var (
	typeTag  = "eventtype"
	typeText = "invalid event type"

	errMissingStart = errors.New("a start date is required")
	errBadRange     = errors.New("the end date cannot be before the start date")
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(typeTag, typeValidation)
	core.RegisterCustomTranslation(validate, translator, typeTag, typeText)
}

// typeValidation checks that the provided type is one of AllTypes.
func typeValidation(fl validator.FieldLevel) bool {
	return Type(fl.Field().String()).Valid()
}

// validateDateRange enforces the start <= end invariant before any write.
func validateDateRange(start, end core.Date) error {
	switch {
	case start.IsZero():
		return core.NewValidationError(errMissingStart, core.FieldError{Field: "start", Error: errMissingStart.Error()})
	case end.Before(start.Time):
		return core.NewValidationError(errBadRange, core.FieldError{Field: "end", Error: errBadRange.Error()})
	}
	return nil
}
