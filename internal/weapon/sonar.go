package weapon

import "github.com/nullwave/flotilla/internal/model"

// Sonar is the non-lethal scanner: requires a surviving sensor-bearing
// hull (destroyers by default), scans a 3x3 area, and either reports "no
// contact" (marking the scanned unknowns as misses) or "contact" (revealing
// the center and flagging its neighbors as suspect).
type Sonar struct {
	// Sensors lists the hull types that can operate sonar. Treated as a
	// configuration value rather than a hardcoded {DD}; one source branch
	// also allows submarines to ping, the documentation says only
	// destroyers — this implementation defaults to destroyers only.
	Sensors []model.ShipType
}

// ID implements Weapon.
func (Sonar) ID() ID { return SonarPing }

// Name implements Weapon.
func (Sonar) Name() string { return "Sonar" }

// Available implements Weapon.
func (s Sonar) Available(attacker []*model.Ship) bool {
	for _, ship := range attacker {
		if ship.Sunk {
			continue
		}
		for _, sensor := range s.Sensors {
			if ship.Type == sensor {
				return true
			}
		}
	}
	return false
}

// Preview implements Weapon: the 3x3 square centered at center, clipped to the board.
func (Sonar) Preview(center model.Coordinate) []model.Coordinate {
	cells := make([]model.Coordinate, 0, 9)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			cells = append(cells, model.Coordinate{R: center.R + dr, C: center.C + dc})
		}
	}
	return clipToBoard(cells)
}

// Resolve implements Weapon.
func (s Sonar) Resolve(ctx Context) Result {
	area := s.Preview(ctx.Center)

	signal := 0
	for _, c := range area {
		if !isUndetermined(ctx.Defender, c) {
			continue
		}
		if ship, seg, ok := ctx.Defender.ShipAt(c); ok && !ship.Sunk && ship.Segments[seg] > 0 {
			signal++
		}
	}

	if signal == 0 {
		var events []Event
		for _, c := range area {
			if !isUndetermined(ctx.Defender, c) {
				continue
			}
			evs, _ := resolveHit(ctx.Defender, c, 0, ctx.IsPlayer)
			events = append(events, evs...)
		}
		events = append(events, logEvent("Sonar scan: no contact", "sonar"))
		return Result{Events: events}
	}

	events, _ := resolveHit(ctx.Defender, ctx.Center, 0, ctx.IsPlayer)

	for _, c := range area {
		if c == ctx.Center {
			continue
		}
		if ctx.Defender.ViewState(c) == model.Unknown {
			ctx.Defender.MarkSuspect(c)
			events = append(events, cellEvent(c.R, c.C, model.Suspect))
		}
	}

	events = append(events, logEvent("Sonar scan: contact", "sonar"))

	return Result{Events: events}
}

func isUndetermined(b *model.Board, c model.Coordinate) bool {
	state := b.ViewState(c)
	return state == model.Unknown || state == model.Suspect
}
