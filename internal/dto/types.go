package dto

import "github.com/nullwave/flotilla/internal/model"

// GameInfo contains the current status of the game.
type GameInfo struct {
	ID          string   `json:"id"`
	Phase       string   `json:"phase"`
	PlayerIDs   []string `json:"playerIds"`
	CurrentTurn string   `json:"currentTurn"`
	Winner      string   `json:"winner,omitempty"`
}

// PlaceShipRequest represents the payload for placing a ship.
type PlaceShipRequest struct {
	ShipType    string `json:"shipType"` // hull code: CV, BB, CL, SS, DD
	X           int    `json:"x"`        // row
	Y           int    `json:"y"`        // column
	Orientation string `json:"orientation"`
}

// FireRequest represents the payload for firing a shot. Weapon names AP
// (main gun), HE (air strike), or SONAR; empty defaults to AP.
type FireRequest struct {
	Weapon string `json:"weapon"`
	X      int    `json:"x"` // row
	Y      int    `json:"y"` // column
}

// FireResponse represents the result of a shot: the event stream the
// resolver produced, already in wire form.
type FireResponse struct {
	Events []WeaponEvent `json:"events"`
}

// WeaponEvent is the wire form of a weapon.Event, flattened for JSON
// transport to the API/bot/TUI clients. This is distinct from GameEvent
// (the pub/sub envelope) — a single Attack call returns a slice of these
// directly in its HTTP response, while GameEvent is what the notification
// service fans out to other subscribed observers.
type WeaponEvent struct {
	Kind    string `json:"kind"` // cell | ship | log
	R       int    `json:"r,omitempty"`
	C       int    `json:"c,omitempty"`
	State   string `json:"state,omitempty"`
	ShipID  string `json:"shipId,omitempty"`
	Segment int    `json:"segment,omitempty"`
	NewHP   int    `json:"newHp,omitempty"`
	Sunk    bool   `json:"sunk,omitempty"`
	Message string `json:"message,omitempty"`
}

// Coordinate represents a simple X,Y pair for DTO usage if needed.
type Coordinate struct {
	X int `json:"x"` // row
	Y int `json:"y"` // column
}

// ToModel converts a dto.Coordinate to a model.Coordinate.
func (c Coordinate) ToModel() model.Coordinate {
	return model.Coordinate{R: c.X, C: c.Y}
}
