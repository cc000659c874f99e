// Package decider glues the belief engine, action evaluator, and risk
// roll-out into the single decision function a match loop calls once per
// AI turn.
package decider

import (
	"errors"
	"math/rand/v2"

	"github.com/nullwave/flotilla/internal/belief"
	"github.com/nullwave/flotilla/internal/evaluator"
	"github.com/nullwave/flotilla/internal/model"
	"github.com/nullwave/flotilla/internal/risk"
	"github.com/nullwave/flotilla/internal/weapon"
)

// ErrNoCandidates is returned when the view grid offers no legal action at
// all — the match loop should have already detected the game's end before
// reaching this point.
var ErrNoCandidates = errors.New("decider: no legal candidate actions")

const epsilon = 1e-9

// Input bundles every piece of state a single decision needs.
type Input struct {
	Rng *rand.Rand

	// View is the attacker's current fog-of-war view of the defender.
	View model.ViewGrid
	// Attacker is the attacking side's own roster (read-only).
	Attacker []*model.Ship
	// DefenderAliveTypes is the set of hull types known still alive on the
	// defending side, derived from which ships have not yet shown SUNK.
	DefenderAliveTypes []model.ShipType
	// DamageGrid is the attacker's cumulative damage-dealt grid against the
	// defender; Decide updates it in place once an action is chosen.
	DamageGrid *model.DamageGrid

	Difficulty Difficulty
	Registry   weapon.Registry
	// SampleCount overrides the belief engine's live sample count; zero
	// selects belief.DefaultLiveSamples.
	SampleCount int

	// OwnBoard, when non-nil, enables the risk roll-out: the attacker's own
	// board truth, used only to map rolled-out cells back to its own ship
	// ids and to read their current health — never the defender's.
	OwnBoard *model.Board
	// DefenderFleet is the defending side's roster, used as the simulated
	// opponent in the risk roll-out.
	DefenderFleet []*model.Ship
}

// Decision is the action Decide chose, along with its final score.
type Decision struct {
	Action evaluator.Action
	Score  float64
}

// Decide runs the random-play fallback, belief construction, candidate
// evaluation, and (when enabled) risk roll-out, returning a single action
// and committing its effect to the attacker's damage-dealt grid.
func Decide(in Input) (Decision, error) {
	abilities := evaluator.ComputeAbilities(in.Attacker, in.Registry)

	if in.Rng.Float64() < in.Difficulty.Randomness {
		action := evaluator.RandomAction(in.Rng, in.View, abilities)
		evaluator.Commit(in.DamageGrid, action, abilities)
		return Decision{Action: action}, nil
	}

	sampleCount := in.SampleCount
	if sampleCount == 0 {
		sampleCount = belief.DefaultLiveSamples
	}

	bs, err := belief.Build(in.Rng, in.View, in.DefenderAliveTypes, sampleCount)
	if err != nil {
		// Exhausted sampler: degrade to the random-play branch for this turn.
		action := evaluator.RandomAction(in.Rng, in.View, abilities)
		evaluator.Commit(in.DamageGrid, action, abilities)
		return Decision{Action: action}, nil
	}

	candidates := evaluator.Candidates(in.View, abilities)
	if len(candidates) == 0 {
		return Decision{}, ErrNoCandidates
	}

	maxAliveMaxHP := model.MaxHP(in.DefenderAliveTypes)

	var chosen evaluator.Action
	var score float64

	if in.Difficulty.RiskAwareness > 0 && in.OwnBoard != nil {
		chosen, score = bestWithRisk(in, bs, abilities, maxAliveMaxHP, candidates)
	} else {
		chosen, score = evaluator.Best(in.Rng, candidates, bs, *in.DamageGrid, abilities, maxAliveMaxHP, in.Difficulty.Alpha)
	}

	evaluator.Commit(in.DamageGrid, chosen, abilities)

	return Decision{Action: chosen, Score: score}, nil
}

func bestWithRisk(in Input, bs belief.BeliefState, abilities evaluator.Abilities, maxAliveMaxHP int, candidates []evaluator.Action) (evaluator.Action, float64) {
	threat := risk.RollOut(in.Rng, in.OwnBoard, in.DefenderFleet, in.Registry, in.Difficulty.Alpha, risk.DefaultDepth, risk.DefaultSampleCount)
	sinkProb := risk.SinkProbabilities(in.OwnBoard, threat)
	ownShips := in.OwnBoard.Ships()

	type scored struct {
		action evaluator.Action
		score  float64
	}

	var best []scored
	bestScore := -1.0

	for _, a := range candidates {
		u := evaluator.Utility(a, bs, *in.DamageGrid, abilities, maxAliveMaxHP, in.Difficulty.Alpha)
		bonus := risk.Bonus(a, bs, *in.DamageGrid, abilities, maxAliveMaxHP, in.Difficulty.Alpha, sinkProb, ownShips, in.Registry)
		final := risk.FinalScore(u, in.Difficulty.RiskAwareness, bonus)

		switch {
		case final > bestScore+epsilon:
			bestScore = final
			best = []scored{{a, final}}
		case final >= bestScore-epsilon:
			best = append(best, scored{a, final})
		}
	}

	pick := best[in.Rng.IntN(len(best))]
	return pick.action, pick.score
}
