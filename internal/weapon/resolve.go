package weapon

import (
	"fmt"

	"github.com/nullwave/flotilla/internal/model"
)

// IsValidTarget reports whether a cell may legally be the target of a
// damage-dealing strike: in bounds, not a confirmed miss, not an
// already-destroyed segment.
func IsValidTarget(b *model.Board, c model.Coordinate) bool {
	return b.InBounds(c) && !b.IsConfirmedMiss(c) && !b.IsDestroyedSegment(c)
}

// resolveHit implements the atomic semantics every damage-dealing weapon
// shares (spec §4.2). It mutates board in place and returns the ordered
// events produced, plus the id of a ship that just transitioned to sunk
// (empty string if none).
func resolveHit(board *model.Board, c model.Coordinate, dmg int, isPlayer bool) ([]Event, string) {
	if !board.InBounds(c) {
		return nil, ""
	}
	if board.IsConfirmedMiss(c) {
		return nil, ""
	}

	board.MarkHit(c)

	ship, segment, ok := board.ShipAt(c)
	if !ok {
		return []Event{cellEvent(c.R, c.C, model.Miss)}, ""
	}

	if ship.Segments[segment] <= 0 {
		// Already-destroyed segment: idempotent no-op, no duplicate event.
		return nil, ""
	}

	ship.Segments[segment] -= dmg

	var events []Event
	if ship.Segments[segment] <= 0 {
		events = append(events, cellEvent(c.R, c.C, model.Destroyed))
	} else {
		events = append(events, cellEvent(c.R, c.C, model.Hit))
	}
	events = append(events, shipEvent(ship.ID, segment, ship.Segments[segment], false))

	sunkID := ""
	if !ship.Sunk && ship.AllSegmentsDestroyed() {
		ship.Sunk = true
		sunkID = ship.ID

		// Terminal update: not tied to a single segment, so segment is reported as -1.
		events = append(events, shipEvent(ship.ID, -1, 0, true))

		class := "enemy"
		if isPlayer {
			class = "player"
		}
		events = append(events, logEvent(fmt.Sprintf("%s sunk!", ship.Type.Name()), class))
	}

	return events, sunkID
}

// resolveMultiHit iterates resolveHit across a cell list, concatenating
// events in order and aggregating the ids of any ships sunk during the call.
func resolveMultiHit(board *model.Board, cells []model.Coordinate, dmg int, isPlayer bool) ([]Event, []string) {
	var events []Event
	var sunk []string

	for _, c := range cells {
		evs, sunkID := resolveHit(board, c, dmg, isPlayer)
		events = append(events, evs...)
		if sunkID != "" {
			sunk = append(sunk, sunkID)
		}
	}

	return events, sunk
}

// clipToBoard filters out-of-bounds coordinates from a candidate list.
func clipToBoard(cells []model.Coordinate) []model.Coordinate {
	out := cells[:0:0]
	for _, c := range cells {
		if inBounds(c) {
			out = append(out, c)
		}
	}
	return out
}

func inBounds(c model.Coordinate) bool {
	return c.R >= 0 && c.R < model.GridSize && c.C >= 0 && c.C < model.GridSize
}
