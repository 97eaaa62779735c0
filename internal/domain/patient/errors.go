package patient

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrEmailInUse      = errors.New("a patient with this email already exists")
	ErrInvalidGender   = errors.New("invalid gender value")
)
