package schedule

import "errors"

var (
	ErrMalformedSlot = errors.New("malformed slot identifier")
)
