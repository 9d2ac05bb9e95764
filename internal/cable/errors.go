package cable

import "errors"

var (
	// ErrSealed is returned when structural mutation is attempted after Seal.
	ErrSealed = errors.New("cable: registry is sealed")
	// ErrNotSealed is returned when an operation requires a sealed registry.
	ErrNotSealed = errors.New("cable: registry is not sealed")
	// ErrDuplicate is returned when a cable name is registered twice.
	ErrDuplicate = errors.New("cable: already registered")
	// ErrUnknownCable is returned for an ID the registry never issued.
	ErrUnknownCable = errors.New("cable: unknown cable id")
)
