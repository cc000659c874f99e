package match

import "errors"

var (
	// ErrSeatTaken is returned when a second player tries to join a match
	// that already has two seats filled.
	ErrSeatTaken = errors.New("match: second seat already filled")
	// ErrUnknownPlayer is returned when an action names a player id seated
	// in neither slot of the match.
	ErrUnknownPlayer = errors.New("match: unknown player")
	// ErrAlreadyStarted is returned when a placement is attempted after
	// both seats have deployed and play has begun.
	ErrAlreadyStarted = errors.New("match: fleet deployment is closed")
	// ErrFleetAlreadyDeployed is returned when a seat that already placed
	// its full roster attempts to place another ship.
	ErrFleetAlreadyDeployed = errors.New("match: fleet already fully deployed")
	// ErrNotPlaying is returned when an attack is attempted outside the
	// playing phase.
	ErrNotPlaying = errors.New("match: not currently playing")
	// ErrNotYourTurn is returned when a player attacks out of turn.
	ErrNotYourTurn = errors.New("match: not your turn")
)
