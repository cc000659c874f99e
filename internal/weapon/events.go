// Package weapon implements the three weapon resolvers (main gun, air
// strike, sonar) as pure, event-emitting mutators over a model.Board. They
// touch no global state and perform no I/O; the only side effects are the
// mutations made to the board passed in and the events returned to the
// caller.
package weapon

import "github.com/nullwave/flotilla/internal/model"

// ID names one of the three weapons. The set is closed, so a string-typed
// tagged union plus a static dispatch table (Registry, in weapon.go) is a better fit
// than dynamic-dispatch lookup.
type ID string

// The three weapon identifiers.
const (
	MainGun   ID = "AP"
	AirStrike ID = "HE"
	SonarPing ID = "SONAR"
)

// Event is one entry in the ordered stream a resolver emits. Exactly one of
// Cell, Ship, Log, or Effect is populated, mirroring the host layer's
// events.GameEvent{Type, Data any} shape.
type Event struct {
	Cell   *CellUpdate
	Ship   *ShipUpdate
	Log    *LogEntry
	Effect *Effect
}

// CellUpdate reports that a cell's fog-of-war view state changed.
type CellUpdate struct {
	R, C      int
	State     model.ViewState
	MarkClass string // optional side-channel tag consumed by rendering; ignored by the core
}

// ShipUpdate reports that a single segment's health changed.
type ShipUpdate struct {
	ShipID  string
	Segment int
	NewHP   int
	Sunk    bool
}

// LogEntry is a human-readable line for the match log.
type LogEntry struct {
	Message string
	Class   string
}

// Effect is reserved for animations; the core never populates or inspects it,
// but the type exists so observers have a place to plug presentational hooks.
type Effect struct {
	Name string
}

func cellEvent(r, c int, state model.ViewState) Event {
	return Event{Cell: &CellUpdate{R: r, C: c, State: state}}
}

func shipEvent(shipID string, segment, newHP int, sunk bool) Event {
	return Event{Ship: &ShipUpdate{ShipID: shipID, Segment: segment, NewHP: newHP, Sunk: sunk}}
}

func logEvent(message, class string) Event {
	return Event{Log: &LogEntry{Message: message, Class: class}}
}

// Result is everything a Resolve call produces.
type Result struct {
	Events []Event
	Sunk   []string // ship ids that transitioned to sunk during this call
}
