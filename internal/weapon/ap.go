package weapon

import "github.com/nullwave/flotilla/internal/model"

// AP is the main gun: always available, single-cell, damage scales with the
// attacker's surviving fleet.
type AP struct{}

// ID implements Weapon.
func (AP) ID() ID { return MainGun }

// Name implements Weapon.
func (AP) Name() string { return "Main gun" }

// Available implements Weapon. The main gun never depletes.
func (AP) Available([]*model.Ship) bool { return true }

// Preview implements Weapon: a single cell.
func (AP) Preview(center model.Coordinate) []model.Coordinate {
	return []model.Coordinate{center}
}

// Resolve implements Weapon.
func (AP) Resolve(ctx Context) Result {
	if !IsValidTarget(ctx.Defender, ctx.Center) {
		return Result{}
	}

	events, sunkID := resolveHit(ctx.Defender, ctx.Center, Damage(ctx.Attacker), ctx.IsPlayer)

	var sunk []string
	if sunkID != "" {
		sunk = []string{sunkID}
	}

	return Result{Events: events, Sunk: sunk}
}

// Damage returns the main gun's current damage, which depends on which of
// the attacker's hull types are still alive.
//
// Two damage tables exist in the source material for the submarine's
// contribution: one where SS grants 3, the other where it grants 2 like the
// cruiser. This implementation adopts the latter (BB alive ⇒ 3; else SS or
// CL alive ⇒ 2; otherwise 1) per the resolved open question.
func Damage(attacker []*model.Ship) int {
	hasAlive := func(t model.ShipType) bool {
		for _, s := range attacker {
			if s.Type == t && !s.Sunk {
				return true
			}
		}
		return false
	}

	switch {
	case hasAlive(model.BB):
		return 3
	case hasAlive(model.SS), hasAlive(model.CL):
		return 2
	default:
		return 1
	}
}
