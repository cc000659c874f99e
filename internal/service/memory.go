package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nullwave/flotilla/internal/controller"
	"github.com/nullwave/flotilla/internal/decider"
	"github.com/nullwave/flotilla/internal/dto"
	"github.com/nullwave/flotilla/internal/events"
	"github.com/nullwave/flotilla/internal/match"
	"github.com/nullwave/flotilla/internal/weapon"
)

const maxGamesPerUser = 5

var (
	_ controller.LobbyService = (*MemoryService)(nil)
	_ controller.GameService  = (*MemoryService)(nil)
)

// MemoryService is an in-memory implementation of the lobby and game service.
// Gameplay itself — turn order, weapon resolution, AI auto-play — is owned
// by match.Match; this service only tracks the table of live matches and
// bridges them to the wire DTOs and event bus.
type MemoryService struct {
	registry weapon.Registry
	eventBus events.EventBus

	games   map[string]*safeGame
	gamesMu sync.RWMutex
}

type safeGame struct {
	id        string
	m         *match.Match
	host      string
	guest     string
	createdAt time.Time
	updatedAt time.Time
	mu        sync.Mutex
}

// NewMemoryService creates a new in-memory lobby and game service.
func NewMemoryService(registry weapon.Registry, bus events.EventBus) *MemoryService {
	if registry == nil {
		registry = weapon.DefaultRegistry()
	}
	s := &MemoryService{
		registry: registry,
		eventBus: bus,
		games:    make(map[string]*safeGame),
	}
	go s.cleanupLoop()
	return s
}

func (s *MemoryService) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.gc()
	}
}

func (s *MemoryService) gc() {
	s.gamesMu.Lock()
	defer s.gamesMu.Unlock()

	now := time.Now()
	for id, g := range s.games {
		g.mu.Lock()
		isFinished := g.m.Phase() == match.PhaseFinished
		lastUpdate := g.updatedAt
		g.mu.Unlock()

		if isFinished {
			if now.Sub(lastUpdate) > 10*time.Minute {
				delete(s.games, id)
			}
		} else if now.Sub(lastUpdate) > 24*time.Hour {
			delete(s.games, id)
		}
	}
}

func newMatchRNG() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// CreateMatch initializes a new game with the host player joined, waiting
// for a second human to join the lobby.
func (s *MemoryService) CreateMatch(_ context.Context, hostID string) (string, error) {
	if count := s.countActiveGamesByHost(hostID); count >= maxGamesPerUser {
		return "", errors.New("max active games limit reached")
	}

	gameID := fmt.Sprintf("game-%s", uuid.NewString())
	sg := &safeGame{
		id:        gameID,
		m:         match.New(gameID, hostID, newMatchRNG(), s.registry),
		host:      hostID,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}

	s.gamesMu.Lock()
	s.games[gameID] = sg
	s.gamesMu.Unlock()

	return gameID, nil
}

// CreateSoloMatch initializes a game against the decision core, seated
// immediately so the host can start placing ships right away.
func (s *MemoryService) CreateSoloMatch(_ context.Context, hostID, difficultyName string) (string, error) {
	difficulty, err := decider.Preset(difficultyName)
	if err != nil {
		return "", err
	}

	if count := s.countActiveGamesByHost(hostID); count >= maxGamesPerUser {
		return "", errors.New("max active games limit reached")
	}

	gameID := fmt.Sprintf("solo-%s", uuid.NewString())
	m := match.New(gameID, hostID, newMatchRNG(), s.registry)
	if err := m.JoinAI(difficulty); err != nil {
		return "", err
	}

	sg := &safeGame{
		id:        gameID,
		m:         m,
		host:      hostID,
		guest:     match.AIPlayerID,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}

	s.gamesMu.Lock()
	s.games[gameID] = sg
	s.gamesMu.Unlock()

	return gameID, nil
}

// ListMatches returns all games and their summaries.
func (s *MemoryService) ListMatches(_ context.Context) ([]dto.MatchSummary, error) {
	s.gamesMu.RLock()
	defer s.gamesMu.RUnlock()

	matches := make([]dto.MatchSummary, 0, len(s.games))
	for matchID, sg := range s.games {
		sg.mu.Lock()
		matches = append(matches, dto.MatchSummary{
			ID:          matchID,
			CreatedAt:   sg.createdAt,
			HostName:    sg.host,
			PlayerCount: playerCountUnsafe(sg),
		})
		sg.mu.Unlock()
	}

	return matches, nil
}

// JoinMatch adds a human player to an existing lobby match.
func (s *MemoryService) JoinMatch(
	_ context.Context,
	matchID, playerID string,
) (dto.GameView, error) {
	sg, err := s.getSafeGame(matchID)
	if err != nil {
		return dto.GameView{}, err
	}

	sg.mu.Lock()
	defer sg.mu.Unlock()

	if err := sg.m.JoinHuman(playerID); err != nil {
		return dto.GameView{}, err
	}

	sg.guest = playerID
	sg.updatedAt = time.Now()

	s.publish(matchID, events.EventPlayerJoined, playerID, sg.host, nil)

	return sg.m.View(playerID)
}

func (s *MemoryService) getSafeGame(matchID string) (*safeGame, error) {
	s.gamesMu.RLock()
	defer s.gamesMu.RUnlock()

	sg, exists := s.games[matchID]
	if !exists {
		return nil, errors.New("match not found")
	}

	return sg, nil
}

func (s *MemoryService) publish(matchID string, eventType events.EventType, playerID, targetID string, data any) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(&events.GameEvent{
		Type:      eventType,
		MatchID:   matchID,
		PlayerID:  playerID,
		TargetID:  targetID,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func playerCountUnsafe(sg *safeGame) (count int) {
	if sg.host != "" {
		count++
	}
	if sg.guest != "" {
		count++
	}
	return count
}

func (s *MemoryService) countActiveGamesByHost(hostID string) int {
	s.gamesMu.RLock()
	defer s.gamesMu.RUnlock()

	count := 0
	for _, g := range s.games {
		g.mu.Lock()
		isHost := g.host == hostID
		isGameOver := g.m.Phase() == match.PhaseFinished
		g.mu.Unlock()

		if isHost && !isGameOver {
			count++
		}
	}
	return count
}
