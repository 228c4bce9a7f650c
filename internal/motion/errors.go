package motion

import "errors"

var (
	ErrInvalidJoint = errors.New("motion: invalid joint index")
	ErrDisabled     = errors.New("motion: motors disabled")
	ErrOutOfLimits  = errors.New("motion: position out of limits")
)
