package gosiedecal

import "errors"

var (
	// ErrInvalidArgument reports a precondition violation in the caller's
	// parameters or input mesh.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSingularTransform reports a projector matrix that cannot be
	// inverted.
	ErrSingularTransform = errors.New("singular transform")
)
