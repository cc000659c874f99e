// Package match is the two-sided orchestration layer the host surfaces
// (HTTP API, Discord bot, TUI) drive: it owns one live game's two boards,
// enforces turn order, and — when the second seat is the decision core
// instead of a human — auto-plays the AI's replies through internal/decider
// until control returns to a human or the match ends.
package match

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/nullwave/flotilla/internal/decider"
	"github.com/nullwave/flotilla/internal/evaluator"
	"github.com/nullwave/flotilla/internal/model"
	"github.com/nullwave/flotilla/internal/simulate"
	"github.com/nullwave/flotilla/internal/weapon"
)

// AIPlayerID is the fixed seat id the decision core occupies in a solo match.
const AIPlayerID = "ai"

// Phase is the lifecycle state of a Match.
type Phase string

// The three phases a Match passes through, in order.
const (
	PhaseSetup    Phase = "SETUP"
	PhasePlaying  Phase = "PLAYING"
	PhaseFinished Phase = "FINISHED"
)

type seat struct {
	playerID   string
	board      *model.Board
	damageGrid model.DamageGrid
	ready      bool
}

// Match is a single live game between two seats: the host and a guest, the
// latter either a second human or the decision core at a fixed difficulty.
type Match struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	registry weapon.Registry
	rng      *rand.Rand

	host  *seat
	guest *seat

	isAI         bool
	aiDifficulty decider.Difficulty

	phase  Phase
	turn   string
	winner string
}

// New creates a match in the setup phase, seated by hostID, waiting for a
// second seat to join.
func New(id, hostID string, rng *rand.Rand, registry weapon.Registry) *Match {
	now := time.Now()
	return &Match{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		registry:  registry,
		rng:       rng,
		host:      &seat{playerID: hostID, board: model.NewBoard()},
		phase:     PhaseSetup,
	}
}

// JoinHuman seats a second human player.
func (m *Match) JoinHuman(playerID string) error {
	if m.guest != nil {
		return ErrSeatTaken
	}
	m.guest = &seat{playerID: playerID, board: model.NewBoard()}
	m.UpdatedAt = time.Now()
	return nil
}

// JoinAI seats the decision core as the second player, deploying its fleet
// immediately via the same headless policy internal/simulate uses.
func (m *Match) JoinAI(difficulty decider.Difficulty) error {
	if m.guest != nil {
		return ErrSeatTaken
	}

	board := model.NewBoard()
	if err := simulate.Deploy(m.rng, board, model.Roster()); err != nil {
		return fmt.Errorf("match: deploying AI fleet: %w", err)
	}

	m.isAI = true
	m.aiDifficulty = difficulty
	m.guest = &seat{playerID: AIPlayerID, board: board, ready: true}
	m.UpdatedAt = time.Now()
	return nil
}

// IsAI reports whether the guest seat is the decision core.
func (m *Match) IsAI() bool { return m.isAI }

// Phase returns the match's current lifecycle phase.
func (m *Match) Phase() Phase { return m.phase }

// Winner returns the winning player id, or "" if the match has no winner yet.
func (m *Match) Winner() string { return m.winner }

// Turn returns the id of the player to move. Only meaningful once playing.
func (m *Match) Turn() string { return m.turn }

func (m *Match) seatFor(playerID string) (self, opponent *seat, err error) {
	switch {
	case m.host != nil && m.host.playerID == playerID:
		return m.host, m.guest, nil
	case m.guest != nil && m.guest.playerID == playerID:
		return m.guest, m.host, nil
	default:
		return nil, nil, ErrUnknownPlayer
	}
}

// PlaceShip deploys one ship on a human seat's own board. Once a seat has
// placed a full roster it is marked ready, and the match starts as soon as
// both seats are ready.
func (m *Match) PlaceShip(playerID string, t model.ShipType, start model.Coordinate, o model.Orientation) error {
	if m.phase != PhaseSetup {
		return ErrAlreadyStarted
	}

	self, _, err := m.seatFor(playerID)
	if err != nil {
		return err
	}
	if self.ready {
		return ErrFleetAlreadyDeployed
	}

	ship := model.NewShip(string(t), t, start, o)
	if err := self.board.PlaceShip(ship); err != nil {
		return err
	}

	if len(self.board.Ships()) == len(model.Roster()) {
		self.ready = true
	}

	m.tryStart()
	m.UpdatedAt = time.Now()
	return nil
}

func (m *Match) tryStart() {
	if m.phase == PhaseSetup && m.host != nil && m.guest != nil && m.host.ready && m.guest.ready {
		m.phase = PhasePlaying
		m.turn = m.host.playerID
	}
}

// Attack resolves a weapon strike by playerID against the opponent's board.
// When the opponent seat is the decision core, it immediately auto-plays
// every consecutive AI turn until the match ends or control returns to a
// human, returning the combined event stream in order.
func (m *Match) Attack(playerID string, weaponID weapon.ID, target model.Coordinate) ([]weapon.Event, error) {
	if m.phase != PhasePlaying {
		return nil, ErrNotPlaying
	}
	if playerID != m.turn {
		return nil, ErrNotYourTurn
	}

	self, opponent, err := m.seatFor(playerID)
	if err != nil {
		return nil, err
	}

	events, err := m.strike(self, opponent, weaponID, target, playerID != AIPlayerID)
	if err != nil {
		return nil, err
	}

	if opponent.board.AllSunk() {
		m.finish(playerID)
		return events, nil
	}

	m.turn = opponent.playerID

	for m.phase == PhasePlaying && m.isAI && m.turn == AIPlayerID {
		aiEvents, err := m.playAITurn()
		if err != nil {
			return events, err
		}
		events = append(events, aiEvents...)
	}

	return events, nil
}

func (m *Match) strike(attacker, defender *seat, weaponID weapon.ID, target model.Coordinate, isPlayer bool) ([]weapon.Event, error) {
	w, ok := m.registry[weaponID]
	if !ok {
		return nil, fmt.Errorf("match: unknown weapon %q", weaponID)
	}
	if !w.Available(attacker.board.Ships()) {
		return nil, fmt.Errorf("match: %s is unavailable to %s", w.Name(), attacker.playerID)
	}

	abilities := evaluator.ComputeAbilities(attacker.board.Ships(), m.registry)
	res := w.Resolve(weapon.Context{
		Attacker: attacker.board.Ships(),
		Defender: defender.board,
		Center:   target,
		IsPlayer: isPlayer,
	})

	evaluator.Commit(&attacker.damageGrid, evaluator.Action{Weapon: weaponID, Center: target}, abilities)
	m.UpdatedAt = time.Now()

	return res.Events, nil
}

func (m *Match) playAITurn() ([]weapon.Event, error) {
	self, opponent, err := m.seatFor(AIPlayerID)
	if err != nil {
		return nil, err
	}

	in := decider.Input{
		Rng:                m.rng,
		View:               opponent.board.Snapshot(),
		Attacker:           self.board.Ships(),
		DefenderAliveTypes: opponent.board.AliveTypes(),
		DamageGrid:         &self.damageGrid,
		Difficulty:         m.aiDifficulty,
		Registry:           m.registry,
		OwnBoard:           self.board,
		DefenderFleet:      opponent.board.Ships(),
	}

	d, err := decider.Decide(in)
	if err != nil {
		return nil, fmt.Errorf("match: AI turn: %w", err)
	}

	w := m.registry[d.Action.Weapon]
	res := w.Resolve(weapon.Context{
		Attacker: self.board.Ships(),
		Defender: opponent.board,
		Center:   d.Action.Center,
		IsPlayer: false,
	})
	m.UpdatedAt = time.Now()

	if opponent.board.AllSunk() {
		m.finish(AIPlayerID)
		return res.Events, nil
	}

	m.turn = opponent.playerID
	return res.Events, nil
}

func (m *Match) finish(winnerID string) {
	m.phase = PhaseFinished
	m.winner = winnerID
	m.turn = ""
}
