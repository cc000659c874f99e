// Package evaluator scores candidate actions against a belief state: it
// enumerates legal (weapon, cell) pairs, estimates their expected damage and
// information gain, and combines the two into a single utility figure.
package evaluator

import (
	"math/rand/v2"

	"github.com/nullwave/flotilla/internal/belief"
	"github.com/nullwave/flotilla/internal/model"
	"github.com/nullwave/flotilla/internal/weapon"
)

const epsilon = 1e-9

// heMaxDamage is the weaponMaxDamage used to normalize HE's expected damage,
// per spec: "5 for HE" (its five-cell coverage at 1 damage each).
const heMaxDamage = 5

// Abilities is a snapshot of what an attacker's surviving fleet can do,
// taken before evaluating a turn.
type Abilities struct {
	CanUseAir   bool
	CanUseSonar bool
	APDamage    int
}

// ComputeAbilities derives an Abilities snapshot from an attacker's roster
// and the weapon registry in play.
func ComputeAbilities(attacker []*model.Ship, registry weapon.Registry) Abilities {
	return Abilities{
		CanUseAir:   registry[weapon.AirStrike].Available(attacker),
		CanUseSonar: registry[weapon.SonarPing].Available(attacker),
		APDamage:    weapon.Damage(attacker),
	}
}

// Action is a candidate (weapon, target) pair under consideration.
type Action struct {
	Weapon weapon.ID
	Center model.Coordinate
}

// Candidates enumerates every legal action for the current view and
// abilities, per spec §4.4: MISS/SUNK cells are skipped; DESTROYED cells
// yield only an HE candidate (when available); every other cell yields AP
// unconditionally, plus HE when available, plus SONAR when available and
// the cell is still UNKNOWN or SUSPECT.
func Candidates(view model.ViewGrid, abilities Abilities) []Action {
	var out []Action

	for r := range model.GridSize {
		for c := range model.GridSize {
			coord := model.Coordinate{R: r, C: c}
			state := view[r][c]

			switch state {
			case model.Miss, model.Sunk:
				continue
			case model.Destroyed:
				if abilities.CanUseAir {
					out = append(out, Action{Weapon: weapon.AirStrike, Center: coord})
				}
				continue
			}

			out = append(out, Action{Weapon: weapon.MainGun, Center: coord})
			if abilities.CanUseAir {
				out = append(out, Action{Weapon: weapon.AirStrike, Center: coord})
			}
			if abilities.CanUseSonar && (state == model.Unknown || state == model.Suspect) {
				out = append(out, Action{Weapon: weapon.SonarPing, Center: coord})
			}
		}
	}

	return out
}

// Coverage returns the cells an action's weapon would strike, using the
// weapon's own Preview (clipped to the board) so coverage never diverges
// from what Resolve would actually touch.
func Coverage(a Action) []model.Coordinate {
	return coverage(a)
}

func coverage(a Action) []model.Coordinate {
	switch a.Weapon {
	case weapon.AirStrike:
		return weapon.HE{}.Preview(a.Center)
	default:
		return []model.Coordinate{a.Center}
	}
}

// effectiveDamage estimates the damage a hit would deal, bounding the
// weapon's nominal damage by the largest alive target ship's estimated
// remaining health at that cell — deliberately information-poor, since it
// only consults attacker-observed damage, never the defender's true state.
func effectiveDamage(weaponDamage, maxAliveMaxHP, damageDealt int) int {
	remaining := maxAliveMaxHP - damageDealt
	if remaining < 0 {
		remaining = 0
	}
	if weaponDamage < remaining {
		return weaponDamage
	}
	return remaining
}

// PerCellDamage returns the nominal damage an action deals to each of its
// covered cells (before any effective-damage clamping): the attacker's
// current AP damage for the main gun, HEDamage for air strikes, zero for
// sonar.
func PerCellDamage(a Action, abilities Abilities) int {
	switch a.Weapon {
	case weapon.AirStrike:
		return weapon.HEDamage
	case weapon.SonarPing:
		return 0
	default:
		return abilities.APDamage
	}
}

// ExpectedDamage sums p(r,c) * effectiveDamage(r,c) over an action's
// coverage. Sonar deals no damage and always returns zero.
func ExpectedDamage(a Action, bs belief.BeliefState, damageGrid model.DamageGrid, abilities Abilities, maxAliveMaxHP int) float64 {
	if a.Weapon == weapon.SonarPing {
		return 0
	}

	perCellDamage := PerCellDamage(a, abilities)

	total := 0.0
	for _, c := range coverage(a) {
		dmg := effectiveDamage(perCellDamage, maxAliveMaxHP, damageGrid.At(c))
		total += bs.Marginal[c.R][c.C] * float64(dmg)
	}

	return total
}

// ConditionalEntropy estimates the belief entropy remaining after an action
// resolves, per spec §4.3.
func ConditionalEntropy(a Action, bs belief.BeliefState) float64 {
	current := bs.Entropy

	if a.Weapon != weapon.SonarPing {
		sum := 0.0
		for _, c := range coverage(a) {
			sum += belief.H2(bs.Marginal[c.R][c.C])
		}
		conditional := current - sum
		if conditional < 0 {
			conditional = 0
		}
		return conditional
	}

	pStar := bs.Marginal[a.Center.R][a.Center.C]
	aSum := 0.0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := a.Center.R+dr, a.Center.C+dc
			if r < 0 || r >= model.GridSize || c < 0 || c >= model.GridSize {
				continue
			}
			aSum += belief.H2(bs.Marginal[r][c])
		}
	}

	e := pStar*(current-belief.H2(pStar)) + (1-pStar)*(current-aSum)
	inner := current - e
	if inner < 0 {
		inner = 0
	}
	result := current - inner
	if result < 0 {
		result = 0
	}
	return result
}

// Utility computes the unified score for an action under parameter alpha,
// per spec §4.4. When the current entropy is zero there is no information
// left to gain, so every non-sonar action scores its normalized damage alone,
// whatever alpha is.
func Utility(a Action, bs belief.BeliefState, damageGrid model.DamageGrid, abilities Abilities, maxAliveMaxHP int, alpha float64) float64 {
	current := bs.Entropy
	conditional := ConditionalEntropy(a, bs)
	infoGain := current - conditional

	normInfoGain := 0.0
	if current > epsilon {
		normInfoGain = infoGain / current
	}

	if a.Weapon == weapon.SonarPing {
		return alpha * normInfoGain
	}

	weaponMaxDamage := float64(abilities.APDamage)
	if a.Weapon == weapon.AirStrike {
		weaponMaxDamage = heMaxDamage
	}

	normDamage := 0.0
	if weaponMaxDamage > epsilon {
		normDamage = ExpectedDamage(a, bs, damageGrid, abilities, maxAliveMaxHP) / weaponMaxDamage
	}

	if current <= epsilon {
		return normDamage
	}

	return alpha*normInfoGain + (1-alpha)*normDamage
}

// Best scans every candidate, keeps those within epsilon of the top score,
// and picks uniformly among the retained set.
func Best(rng *rand.Rand, candidates []Action, bs belief.BeliefState, damageGrid model.DamageGrid, abilities Abilities, maxAliveMaxHP int, alpha float64) (Action, float64) {
	type scored struct {
		action Action
		score  float64
	}

	var best []scored
	bestScore := -1.0

	for _, a := range candidates {
		score := Utility(a, bs, damageGrid, abilities, maxAliveMaxHP, alpha)
		switch {
		case score > bestScore+epsilon:
			bestScore = score
			best = []scored{{a, score}}
		case score >= bestScore-epsilon:
			best = append(best, scored{a, score})
		}
	}

	chosen := best[rng.IntN(len(best))]
	return chosen.action, chosen.score
}

// RandomAction implements the random-play fallback of spec §4.4: a random
// non-MISS/DESTROYED/SUNK cell, weighted toward HE (10%) then SONAR (10%)
// when available, otherwise AP.
func RandomAction(rng *rand.Rand, view model.ViewGrid, abilities Abilities) Action {
	coord := randomTargetableCell(rng, view)

	roll := rng.Float64()
	switch {
	case roll < 0.1 && abilities.CanUseAir:
		return Action{Weapon: weapon.AirStrike, Center: coord}
	case roll < 0.2 && abilities.CanUseSonar:
		return Action{Weapon: weapon.SonarPing, Center: coord}
	default:
		return Action{Weapon: weapon.MainGun, Center: coord}
	}
}

const randomCellAttempts = 50

func randomTargetableCell(rng *rand.Rand, view model.ViewGrid) model.Coordinate {
	for range randomCellAttempts {
		c := model.Coordinate{R: rng.IntN(model.GridSize), C: rng.IntN(model.GridSize)}
		switch view[c.R][c.C] {
		case model.Miss, model.Destroyed, model.Sunk:
			continue
		default:
			return c
		}
	}

	for r := range model.GridSize {
		for c := range model.GridSize {
			if view[r][c] != model.Miss {
				return model.Coordinate{R: r, C: c}
			}
		}
	}

	return model.Coordinate{}
}

// Commit updates the attacker's damage-dealt grid after an action is
// chosen, per spec §4.4: AP adds its damage at the target, HE adds 1 at
// each of its (clipped) five cells, SONAR adds nothing.
func Commit(damageGrid *model.DamageGrid, a Action, abilities Abilities) {
	switch a.Weapon {
	case weapon.MainGun:
		damageGrid.Add([]model.Coordinate{a.Center}, abilities.APDamage)
	case weapon.AirStrike:
		damageGrid.Add(weapon.HE{}.Preview(a.Center), weapon.HEDamage)
	}
}
