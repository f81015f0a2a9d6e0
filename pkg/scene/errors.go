package scene

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned for malformed construction parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a selected element is not a child of
	// the group it was expected to live in.
	ErrNotFound = errors.New("element not found")

	// ErrCycle is the panic value (wrapped) raised when adding a group
	// would make it reachable from itself.
	ErrCycle = errors.New("group cycle")
)
