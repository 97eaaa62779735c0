package doctor

import "errors"

var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrEmailInUse         = errors.New("a doctor with this email already exists")
)
