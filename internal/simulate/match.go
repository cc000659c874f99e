// Package simulate drives a full, headless two-sided match: deployment,
// alternating decider-driven turns, win/draw detection, and per-side
// statistics. It is the substrate both the self-play tournament harness and
// game-ending verification tests run against.
package simulate

import (
	"fmt"
	"math/rand/v2"

	"github.com/nullwave/flotilla/internal/decider"
	"github.com/nullwave/flotilla/internal/model"
	"github.com/nullwave/flotilla/internal/weapon"
)

// Winner identifies the outcome of a match.
type Winner string

// Possible Winner values.
const (
	WinnerA Winner = "A"
	WinnerB Winner = "B"
	Draw    Winner = "DRAW"
)

// DefaultTurnCap bounds divergent matches, per spec §4.6/§6.
const DefaultTurnCap = 200

// SideStats accumulates a single side's in-match counters.
type SideStats struct {
	Turns  int
	Hits   int
	Damage int
}

// Result is the outcome of a single headless match.
type Result struct {
	Winner Winner
	Turns  int
	StatsA SideStats
	StatsB SideStats
}

type side struct {
	board      *model.Board
	fleet      []*model.Ship
	difficulty decider.Difficulty
	damageGrid model.DamageGrid
	stats      SideStats
}

func newSide(rng *rand.Rand, difficulty decider.Difficulty) (*side, error) {
	board := model.NewBoard()
	if err := Deploy(rng, board, model.Roster()); err != nil {
		return nil, err
	}
	return &side{board: board, fleet: board.Ships(), difficulty: difficulty}, nil
}

// RunMatch plays a full match between two difficulties to completion (or
// until turnCap is reached, which yields a DRAW). firstMover is WinnerA or
// WinnerB and names which side's board moves first.
func RunMatch(rng *rand.Rand, difficultyA, difficultyB decider.Difficulty, registry weapon.Registry, firstMover Winner, turnCap int) (Result, error) {
	if turnCap <= 0 {
		turnCap = DefaultTurnCap
	}
	if firstMover != WinnerA && firstMover != WinnerB {
		return Result{}, fmt.Errorf("simulate: invalid first mover %q", firstMover)
	}

	a, err := newSide(rng, difficultyA)
	if err != nil {
		return Result{}, err
	}
	b, err := newSide(rng, difficultyB)
	if err != nil {
		return Result{}, err
	}

	sides := map[Winner]*side{WinnerA: a, WinnerB: b}
	other := map[Winner]Winner{WinnerA: WinnerB, WinnerB: WinnerA}

	current := firstMover
	turn := 0

	for ; turn < turnCap; turn++ {
		attacker := sides[current]
		defenderSide := other[current]
		defender := sides[defenderSide]

		view := defender.board.Snapshot()
		in := decider.Input{
			Rng:                rng,
			View:               view,
			Attacker:           attacker.fleet,
			DefenderAliveTypes: defender.board.AliveTypes(),
			DamageGrid:         &attacker.damageGrid,
			Difficulty:         attacker.difficulty,
			Registry:           registry,
			OwnBoard:           attacker.board,
			DefenderFleet:      defender.fleet,
		}

		d, err := decider.Decide(in)
		if err != nil {
			return Result{}, err
		}

		beforeHP := totalHP(defender.board)

		w, ok := registry[d.Action.Weapon]
		if !ok {
			return Result{}, fmt.Errorf("simulate: unknown weapon %q in registry", d.Action.Weapon)
		}
		res := w.Resolve(weapon.Context{
			Attacker: attacker.fleet,
			Defender: defender.board,
			Center:   d.Action.Center,
			IsPlayer: false,
		})

		attacker.stats.Turns++
		attacker.stats.Damage += beforeHP - totalHP(defender.board)
		for _, ev := range res.Events {
			if ev.Cell != nil && (ev.Cell.State == model.Hit || ev.Cell.State == model.Destroyed) {
				attacker.stats.Hits++
			}
		}

		if defender.board.AllSunk() {
			winner := current
			return Result{Winner: winner, Turns: turn + 1, StatsA: a.stats, StatsB: b.stats}, nil
		}

		current = defenderSide
	}

	return Result{Winner: Draw, Turns: turnCap, StatsA: a.stats, StatsB: b.stats}, nil
}

func totalHP(board *model.Board) int {
	total := 0
	for _, s := range board.Ships() {
		for _, hp := range s.Segments {
			if hp > 0 {
				total += hp
			}
		}
	}
	return total
}
