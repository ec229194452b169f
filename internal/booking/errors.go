package booking

import "github.com/pkg/errors"

// ErrInvalidForm is returned when a submission fails field validation.
// Nothing is written to any destination in that case.
var ErrInvalidForm = errors.New("invalid booking form")
