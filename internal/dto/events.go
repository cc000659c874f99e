package dto

import (
	"github.com/nullwave/flotilla/internal/events"
	"github.com/nullwave/flotilla/internal/weapon"
)

// GameEvent is the pub/sub envelope the notification service fans out to
// subscribed observers (the same shape as events.GameEvent, re-exported here
// so controller/service consumers only need to import dto).
type GameEvent = events.GameEvent

// Event type constants, re-exported from internal/events so bot/server/tui
// code only needs to import dto.
const (
	EventPlayerJoined = events.EventPlayerJoined
	EventShipPlaced   = events.EventShipPlaced
	EventAttackMade   = events.EventAttackMade
	EventGameStarted  = events.EventGameStarted
	EventGameOver     = events.EventGameOver
	EventTurnChanged  = events.EventTurnChanged
)

// ShipPlacedEventData and GameOverEventData are re-exported for the same
// reason. EventAttackMade's Data is a FireResponse, not a separate type.
type (
	ShipPlacedEventData = events.ShipPlacedEventData
	GameOverEventData   = events.GameOverEventData
)

// FromWeaponEvents flattens a resolver's event stream into wire form for a
// single Attack response.
func FromWeaponEvents(evs []weapon.Event) []WeaponEvent {
	out := make([]WeaponEvent, 0, len(evs))
	for _, e := range evs {
		switch {
		case e.Cell != nil:
			out = append(out, WeaponEvent{Kind: "cell", R: e.Cell.R, C: e.Cell.C, State: e.Cell.State.String()})
		case e.Ship != nil:
			out = append(out, WeaponEvent{
				Kind:    "ship",
				ShipID:  e.Ship.ShipID,
				Segment: e.Ship.Segment,
				NewHP:   e.Ship.NewHP,
				Sunk:    e.Ship.Sunk,
			})
		case e.Log != nil:
			out = append(out, WeaponEvent{Kind: "log", Message: e.Log.Message})
		}
	}
	return out
}
