package quote

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateRequest maps validator failures onto the two validation messages,
// a missing product or year always wins over a bad condition.
func validateRequest(r Request) *Error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Kind: ValidationError, Message: MessageRequired, Cause: err}
	}
	for _, fe := range fieldErrs {
		if fe.Field() != "Condition" {
			return &Error{Kind: ValidationError, Message: MessageRequired}
		}
	}
	return &Error{Kind: ValidationError, Message: MessageInvalidCondition}
}
