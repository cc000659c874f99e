package weapon

import "github.com/nullwave/flotilla/internal/model"

// HEDamage is the fixed per-cell damage an air strike deals.
const HEDamage = 1

// HE is the air strike: requires a surviving carrier, hits five cells in an
// X pattern (center plus its four diagonal neighbors).
type HE struct{}

// ID implements Weapon.
func (HE) ID() ID { return AirStrike }

// Name implements Weapon.
func (HE) Name() string { return "Air strike" }

// Available implements Weapon: requires at least one surviving CV.
func (HE) Available(attacker []*model.Ship) bool {
	for _, s := range attacker {
		if s.Type == model.CV && !s.Sunk {
			return true
		}
	}
	return false
}

// Preview implements Weapon: the center and its four diagonal neighbors,
// clipped to the board.
func (HE) Preview(center model.Coordinate) []model.Coordinate {
	candidates := []model.Coordinate{
		center,
		{R: center.R - 1, C: center.C - 1},
		{R: center.R - 1, C: center.C + 1},
		{R: center.R + 1, C: center.C - 1},
		{R: center.R + 1, C: center.C + 1},
	}
	return clipToBoard(candidates)
}

// Resolve implements Weapon. Each covered cell that is not already a
// confirmed miss and not an already-destroyed segment is struck
// independently; invalid cells are silently skipped rather than aborting
// the whole strike.
func (h HE) Resolve(ctx Context) Result {
	var events []Event
	var sunk []string

	for _, c := range h.Preview(ctx.Center) {
		if !IsValidTarget(ctx.Defender, c) {
			continue
		}

		evs, sunkID := resolveHit(ctx.Defender, c, HEDamage, ctx.IsPlayer)
		events = append(events, evs...)
		if sunkID != "" {
			sunk = append(sunk, sunkID)
		}
	}

	return Result{Events: events, Sunk: sunk}
}
