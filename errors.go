package cmdkit

import (
	"errors"
)

// Sentinel errors for CmdKit operations.
var (
	// ErrInvalidCooldown is returned when a cooldown descriptor is
	// constructed with a bad amount, period or duration unit.
	ErrInvalidCooldown = errors.New("cmdkit: invalid cooldown")

	// ErrInvalidAlias is returned when a module or command is declared
	// with an unusable alias list.
	ErrInvalidAlias = errors.New("cmdkit: invalid alias")

	// ErrUnknownCommand is returned when no registered alias matches the
	// dispatched input.
	ErrUnknownCommand = errors.New("cmdkit: unknown command")

	// ErrCommandDisabled is returned when the resolved command, or its
	// owning module, is currently disabled.
	ErrCommandDisabled = errors.New("cmdkit: command disabled")

	// ErrNoHandler is returned when a resolved command has no handler
	// attached.
	ErrNoHandler = errors.New("cmdkit: no handler")
)

// IsInvalidCooldown checks if an error is a cooldown construction error.
func IsInvalidCooldown(err error) bool {
	return errors.Is(err, ErrInvalidCooldown)
}

// IsUnknownCommand checks if an error is due to an unresolvable input.
func IsUnknownCommand(err error) bool {
	return errors.Is(err, ErrUnknownCommand)
}

// IsCommandDisabled checks if an error is due to a disabled command or
// module.
func IsCommandDisabled(err error) bool {
	return errors.Is(err, ErrCommandDisabled)
}

