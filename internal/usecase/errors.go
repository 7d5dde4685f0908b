package usecase

import (
	"errors"

	"prebook/pkg/utils"
)

var (
	// ErrValidation is the parent of every input error, mapped to 400.
	ErrValidation = errors.New("validation failed")

	ErrTermsNotAgreed = errors.New("terms must be agreed before submitting")
	ErrInvalidPhoto   = errors.New("front and closed photos must be image files")
	ErrSlotNotDesired = errors.New("selected slot is not one of the desired slots")

	ErrPendingReservationExists = errors.New("a pending reservation already exists for this phone number")
	ErrSlotUnavailable          = errors.New("one of the desired slots is no longer available")
	ErrSubmissionInProgress     = errors.New("a reservation for this phone number is already being submitted")

	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidTransition   = errors.New("reservation is no longer pending")
	ErrInvalidCredentials  = errors.New("invalid staff credentials")
	ErrTemplateNotFound    = errors.New("template not found")
)

// ValidationError carries per-field messages from the struct validator.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validate(data any) error {
	if errs := utils.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
