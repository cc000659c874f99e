package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nullwave/flotilla/internal/dto"
	"github.com/nullwave/flotilla/internal/events"
	"github.com/nullwave/flotilla/internal/match"
	"github.com/nullwave/flotilla/internal/model"
	"github.com/nullwave/flotilla/internal/weapon"
)

// PlaceShip handles the setup phase, bridging the wire-level shipType/x/y/
// vertical inputs into model types.
func (s *MemoryService) PlaceShip(
	_ context.Context,
	matchID, playerID, shipType string,
	x, y int,
	vertical bool,
) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	t, err := parseShipType(shipType)
	if err != nil {
		return dto.GameView{}, err
	}

	orientation := model.Horizontal
	if vertical {
		orientation = model.Vertical
	}

	if err := sg.m.PlaceShip(playerID, t, model.Coordinate{R: x, C: y}, orientation); err != nil {
		return dto.GameView{}, err
	}

	sg.updatedAt = time.Now()

	s.publish(matchID, events.EventShipPlaced, playerID, s.opponentOf(sg, playerID),
		events.ShipPlacedEventData{Size: t.Size(), X: x, Y: y, Vertical: vertical})

	if sg.m.Phase() == match.PhasePlaying {
		s.publish(matchID, events.EventGameStarted, playerID, "", nil)
	}

	return sg.m.View(playerID)
}

// Attack handles the playing phase: resolves the named weapon at (x, y),
// and — against the decision core — lets the match auto-play every reply
// turn until control returns to the human or the game ends.
func (s *MemoryService) Attack(
	_ context.Context,
	matchID, playerID, weaponID string,
	x, y int,
) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	w, err := parseWeaponID(weaponID)
	if err != nil {
		return dto.GameView{}, err
	}

	evs, err := sg.m.Attack(playerID, w, model.Coordinate{R: x, C: y})
	if err != nil {
		return dto.GameView{}, err
	}

	sg.updatedAt = time.Now()

	s.publish(matchID, events.EventAttackMade, playerID, s.opponentOf(sg, playerID),
		dto.FireResponse{Events: dto.FromWeaponEvents(evs)})

	if sg.m.Phase() == match.PhaseFinished {
		s.publish(matchID, events.EventGameOver, sg.m.Winner(), "", events.GameOverEventData{Winner: sg.m.Winner()})
	} else {
		s.publish(matchID, events.EventTurnChanged, sg.m.Turn(), "", nil)
	}

	return sg.m.View(playerID)
}

// GetState retrieves the current game state for a player.
func (s *MemoryService) GetState(
	_ context.Context,
	matchID, playerID string,
) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	return sg.m.View(playerID)
}

func (s *MemoryService) opponentOf(sg *safeGame, playerID string) string {
	if sg.host == playerID {
		return sg.guest
	}
	return sg.host
}

func parseShipType(name string) (model.ShipType, error) {
	switch model.ShipType(name) {
	case model.CV, model.BB, model.CL, model.SS, model.DD:
		return model.ShipType(name), nil
	default:
		return "", fmt.Errorf("service: unknown ship type %q", name)
	}
}

func parseWeaponID(name string) (weapon.ID, error) {
	if name == "" {
		return weapon.MainGun, nil
	}
	switch weapon.ID(name) {
	case weapon.MainGun, weapon.AirStrike, weapon.SonarPing:
		return weapon.ID(name), nil
	default:
		return "", fmt.Errorf("service: unknown weapon %q", name)
	}
}
