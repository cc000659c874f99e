package model

import "errors"

var (
	// ErrShipOutOfBounds is returned when a ship placement goes out of the board bounds.
	ErrShipOutOfBounds = errors.New("ship placement out of bounds")
	// ErrShipOverlap is returned when a ship placement overlaps with another ship.
	ErrShipOverlap = errors.New("ship placement overlaps with another ship")
	// ErrShipTypeDepleted is returned when a side has no remaining ship of the requested type.
	ErrShipTypeDepleted = errors.New("no remaining ship of this type")
	// ErrUnknownShip is returned when an operation references a ship id that does not exist on the board.
	ErrUnknownShip = errors.New("unknown ship id")
	// ErrInconsistentState indicates a programmer error: a ship's sunk flag disagrees with its segment
	// health. The engine aborts rather than silently continuing, per the core's error-handling policy.
	ErrInconsistentState = errors.New("inconsistent ship state")
)
