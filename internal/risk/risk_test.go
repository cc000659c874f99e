package risk_test

import (
	"math/rand/v2"
	"testing"

	"github.com/nullwave/flotilla/internal/belief"
	"github.com/nullwave/flotilla/internal/evaluator"
	"github.com/nullwave/flotilla/internal/model"
	"github.com/nullwave/flotilla/internal/risk"
	"github.com/nullwave/flotilla/internal/weapon"
)

func newFleet(types ...model.ShipType) []*model.Ship {
	ships := make([]*model.Ship, 0, len(types))
	for i, t := range types {
		ships = append(ships, model.NewShip(string(rune('a'+i)), t, model.Coordinate{R: i, C: 0}, model.Horizontal))
	}
	return ships
}

func TestRollOutAccumulatesThreatOnlyForAliveShips(t *testing.T) {
	t.Parallel()

	board := model.NewBoard()
	dd := model.NewShip("dd", model.DD, model.Coordinate{R: 5, C: 5}, model.Horizontal)
	if err := board.PlaceShip(dd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opponentFleet := newFleet(model.BB)
	registry := weapon.DefaultRegistry()

	rng := rand.New(rand.NewPCG(1, 1))
	threat := risk.RollOut(rng, board, opponentFleet, registry, 0.4, risk.DefaultDepth, 40)

	sinkProb := risk.SinkProbabilities(board, threat)
	if len(sinkProb) != 1 {
		t.Fatalf("expected one tracked ship, got %d", len(sinkProb))
	}
	if p := sinkProb["dd"]; p < 0 || p > 1 {
		t.Errorf("sinkProbability out of range: %v", p)
	}
}

func TestSinkProbabilityIsOneForAlreadySunkShip(t *testing.T) {
	t.Parallel()

	board := model.NewBoard()
	ss := model.NewShip("ss", model.SS, model.Coordinate{R: 0, C: 0}, model.Horizontal)
	ss.Segments[0] = 0
	ss.Sunk = true
	if err := board.PlaceShip(ss); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := risk.SinkProbabilities(board, map[string]float64{})
	if p["ss"] != 1 {
		t.Errorf("expected sink probability 1 for a ship with zero current hp, got %v", p["ss"])
	}
}

func TestBonusZeroWhenNoShipEndangered(t *testing.T) {
	t.Parallel()

	ships := newFleet(model.BB, model.DD)
	registry := weapon.DefaultRegistry()
	abilities := evaluator.ComputeAbilities(ships, registry)

	bonus := risk.Bonus(
		evaluator.Action{Weapon: weapon.MainGun, Center: model.Coordinate{R: 1, C: 1}},
		belief.BeliefState{},
		model.DamageGrid{},
		abilities,
		3,
		0.5,
		map[string]float64{"a": 0.05, "b": 0.1},
		ships,
		registry,
	)
	if bonus != 0 {
		t.Errorf("expected zero bonus when no ship meets the endangered threshold, got %v", bonus)
	}
}

func TestBonusFullLossWhenActionBecomesUnavailable(t *testing.T) {
	t.Parallel()

	// A single carrier: losing it makes HE unavailable entirely.
	ships := newFleet(model.CV)
	registry := weapon.DefaultRegistry()
	abilities := evaluator.ComputeAbilities(ships, registry)

	bs := belief.BeliefState{Entropy: 1}
	bs.Marginal[2][2] = 0.8

	action := evaluator.Action{Weapon: weapon.AirStrike, Center: model.Coordinate{R: 2, C: 2}}
	uBefore := evaluator.Utility(action, bs, model.DamageGrid{}, abilities, 3, 0.5)

	bonus := risk.Bonus(
		action, bs, model.DamageGrid{}, abilities, 3, 0.5,
		map[string]float64{"a": 0.9},
		ships, registry,
	)

	if uBefore <= 0 {
		t.Fatalf("expected positive baseline utility for HE, got %v", uBefore)
	}
	if bonus != uBefore*0.9 {
		t.Errorf("expected full utility loss weighted by sink probability, got %v want %v", bonus, uBefore*0.9)
	}
}

func TestFinalScoreScalesWithRiskAwareness(t *testing.T) {
	t.Parallel()

	if got := risk.FinalScore(2, 0, 0.5); got != 2 {
		t.Errorf("riskAwareness=0 should leave utility unchanged, got %v", got)
	}
	if got := risk.FinalScore(2, 1, 0.5); got != 3 {
		t.Errorf("expected 2*(1+1*0.5)=3, got %v", got)
	}
}
