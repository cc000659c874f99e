// Package risk implements the bounded symmetric self-roll-out: it estimates
// how close the attacker's own ships are to being sunk in the near future
// by simulating the opponent running the same evaluator against them, and
// converts that into a normalized bonus the decider can fold into its
// final action score.
package risk

import (
	"math/rand/v2"

	"github.com/nullwave/flotilla/internal/belief"
	"github.com/nullwave/flotilla/internal/evaluator"
	"github.com/nullwave/flotilla/internal/model"
	"github.com/nullwave/flotilla/internal/weapon"
)

// Defaults per spec §4.5/§6.
const (
	DefaultDepth       = 5
	DefaultSampleCount = belief.DefaultRolloutSamples

	// EndangeredThreshold is the sinkProbability at or above which a ship
	// counts toward the risk bonus.
	EndangeredThreshold = 0.2
)

// RollOut simulates depth future turns of an opponent attacking ownBoard,
// using the opponent's own fleet and the weapon registry both sides share.
// It returns, for each of ownBoard's still-alive ships, the accumulated
// expected damage the roll-out predicts it will take.
func RollOut(rng *rand.Rand, ownBoard *model.Board, opponentFleet []*model.Ship, registry weapon.Registry, alpha float64, depth, sampleCount int) map[string]float64 {
	view := ownBoard.Snapshot()
	opponentAbilities := evaluator.ComputeAbilities(opponentFleet, registry)
	totalExpectedDamage := map[string]float64{}
	var damageGrid model.DamageGrid

	for step := 0; step < depth; step++ {
		aliveTypes := ownBoard.AliveTypes()
		if len(aliveTypes) == 0 {
			break
		}

		bs, err := belief.Build(rng, view, aliveTypes, sampleCount)
		if err != nil {
			continue
		}

		candidates := evaluator.Candidates(view, opponentAbilities)
		if len(candidates) == 0 {
			break
		}

		maxAliveMaxHP := model.MaxHP(aliveTypes)
		chosen, _ := evaluator.Best(rng, candidates, bs, damageGrid, opponentAbilities, maxAliveMaxHP, alpha)

		perCellDamage := evaluator.PerCellDamage(chosen, opponentAbilities)
		for _, c := range evaluator.Coverage(chosen) {
			p := bs.Marginal[c.R][c.C]
			if ship, seg, ok := ownBoard.ShipAt(c); ok && !ship.Sunk && ship.Segments[seg] > 0 {
				totalExpectedDamage[ship.ID] += p * float64(perCellDamage)
			}

			if view[c.R][c.C] == model.Unknown || view[c.R][c.C] == model.Suspect {
				if p > 0.5 {
					view[c.R][c.C] = model.Hit
				} else {
					view[c.R][c.C] = model.Miss
				}
			}
		}

		evaluator.Commit(&damageGrid, chosen, opponentAbilities)
	}

	return totalExpectedDamage
}

// SinkProbabilities converts a roll-out's accumulated threat into a
// per-ship sink probability, clamped to 1.
func SinkProbabilities(ownBoard *model.Board, totalExpectedDamage map[string]float64) map[string]float64 {
	out := map[string]float64{}
	for _, s := range ownBoard.Ships() {
		currentHP := 0
		for _, hp := range s.Segments {
			if hp > 0 {
				currentHP += hp
			}
		}
		if currentHP == 0 {
			out[s.ID] = 1
			continue
		}

		p := totalExpectedDamage[s.ID] / float64(currentHP)
		if p > 1 {
			p = 1
		}
		out[s.ID] = p
	}
	return out
}

// Bonus computes normRiskBonus(a) per spec §4.5: averaged, sinkProbability-
// weighted utility loss across every endangered ship, were that ship to be
// lost.
func Bonus(
	a evaluator.Action,
	bs belief.BeliefState,
	damageGrid model.DamageGrid,
	abilities evaluator.Abilities,
	maxAliveMaxHP int,
	alpha float64,
	sinkProbability map[string]float64,
	ownShips []*model.Ship,
	registry weapon.Registry,
) float64 {
	var endangered []*model.Ship
	for _, s := range ownShips {
		if !s.Sunk && sinkProbability[s.ID] >= EndangeredThreshold {
			endangered = append(endangered, s)
		}
	}
	if len(endangered) == 0 {
		return 0
	}

	uBefore := evaluator.Utility(a, bs, damageGrid, abilities, maxAliveMaxHP, alpha)

	sum := 0.0
	for _, s := range endangered {
		afterAbilities := evaluator.ComputeAbilities(fleetWithoutShip(ownShips, s.ID), registry)

		var loss float64
		if !stillAvailable(a, afterAbilities) {
			loss = uBefore
		} else {
			uAfter := evaluator.Utility(a, bs, damageGrid, afterAbilities, maxAliveMaxHP, alpha)
			loss = uBefore - uAfter
		}

		sum += sinkProbability[s.ID] * loss
	}

	return sum / float64(len(endangered))
}

func stillAvailable(a evaluator.Action, abilities evaluator.Abilities) bool {
	switch a.Weapon {
	case weapon.AirStrike:
		return abilities.CanUseAir
	case weapon.SonarPing:
		return abilities.CanUseSonar
	default:
		return true
	}
}

// fleetWithoutShip returns a copy of ships with the given id's ship
// replaced by a sunk clone, simulating its loss without mutating the real
// roster.
func fleetWithoutShip(ships []*model.Ship, id string) []*model.Ship {
	out := make([]*model.Ship, len(ships))
	for i, s := range ships {
		if s.ID == id {
			clone := *s
			clone.Sunk = true
			out[i] = &clone
			continue
		}
		out[i] = s
	}
	return out
}

// FinalScore combines a candidate's base utility with its risk bonus, per
// spec §4.5: finalScore(a) = U(a) * (1 + riskAwareness * normRiskBonus(a)).
func FinalScore(utility, riskAwareness, bonus float64) float64 {
	return utility * (1 + riskAwareness*bonus)
}
