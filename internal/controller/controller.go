// Package controller contains the main application controller orchestrating the flow.
package controller

import (
	"context"

	"github.com/nullwave/flotilla/internal/dto"
)

// NotificationService handles event publishing and subscription.
type NotificationService interface {
	Subscribe(matchID string) (Subscription, <-chan *dto.GameEvent)
	Publish(event *dto.GameEvent)
}

// Subscription represents a subscription to events.
type Subscription interface {
	Unsubscribe()
}

// IdentityService handles user registration and login.
type IdentityService interface {
	// LoginOrRegister finds an existing user or creates a new one.
	// source: "web", "discord", "cli"
	// extID: The unique ID from the platform (e.g. Discord User ID, or just the username for Web)
	LoginOrRegister(ctx context.Context, username, source, extID string) (dto.AuthResponse, error)
}

// LobbyService handles finding and creating matches.
type LobbyService interface {
	// CreateMatch initializes a game in the SETUP phase with the host seated;
	// the second seat stays empty until JoinMatch.
	CreateMatch(ctx context.Context, hostID string) (string, error)
	// CreateSoloMatch initializes a game against the decision core at the
	// named difficulty preset (easy|normal|hard), skipping the lobby wait.
	CreateSoloMatch(ctx context.Context, hostID, difficulty string) (string, error)
	// ListMatches returns every game the service holds, whatever its phase.
	ListMatches(ctx context.Context) ([]dto.MatchSummary, error)
	// JoinMatch adds the player to the game's second seat. The game stays in
	// the SETUP phase until both players have placed their fleets.
	JoinMatch(ctx context.Context, matchID, playerID string) (dto.GameView, error)
}

// GameService handles the actual gameplay (Setup -> Playing -> GameOver).
type GameService interface {
	// PlaceShip handles the setup phase. shipType is a hull code: CV, BB, CL, SS, DD.
	PlaceShip(
		ctx context.Context,
		matchID, playerID, shipType string,
		x, y int,
		vertical bool,
	) (dto.GameView, error)
	// Attack handles the playing phase. weaponID is AP, HE, or SONAR.
	Attack(ctx context.Context, matchID, playerID, weaponID string, x, y int) (dto.GameView, error)
	// GetState is used for refreshing the UI.
	GetState(ctx context.Context, matchID, playerID string) (dto.GameView, error)
}

// AppController is the main controller orchestrating the application flow.
type AppController struct {
	auth     IdentityService
	lobby    LobbyService
	game     GameService
	notifier NotificationService
}

// NewAppController wires everything together.
func NewAppController(
	a IdentityService,
	l LobbyService,
	g GameService,
	n NotificationService,
) *AppController {
	return &AppController{auth: a, lobby: l, game: g, notifier: n}
}

// Login handles user authentication and registration.
func (c *AppController) Login(
	ctx context.Context,
	username, source, platformID string,
) (dto.AuthResponse, error) {
	return c.auth.LoginOrRegister(ctx, username, source, platformID)
}

// HostGameAction handles a player's request to host a new game.
func (c *AppController) HostGameAction(ctx context.Context, playerID string) (string, error) {
	return c.lobby.CreateMatch(ctx, playerID)
}

// HostSoloGameAction handles a player's request to play against the decision
// core directly, at the named difficulty preset.
func (c *AppController) HostSoloGameAction(ctx context.Context, playerID, difficulty string) (string, error) {
	return c.lobby.CreateSoloMatch(ctx, playerID, difficulty)
}

// ListGamesAction retrieves the list of current games in the lobby.
func (c *AppController) ListGamesAction(ctx context.Context) ([]dto.MatchSummary, error) {
	return c.lobby.ListMatches(ctx)
}

// JoinGameAction handles a player's request to join an existing game.
func (c *AppController) JoinGameAction(
	ctx context.Context,
	matchID, playerID string,
) (dto.GameView, error) {
	return c.lobby.JoinMatch(ctx, matchID, playerID)
}

// PlaceShipAction handles a ship placement action from a player.
func (c *AppController) PlaceShipAction(
	ctx context.Context,
	matchID, playerID, shipType string,
	x, y int,
	vertical bool,
) (dto.GameView, error) {
	return c.game.PlaceShip(ctx, matchID, playerID, shipType, x, y, vertical)
}

// AttackAction handles an attack action from a player.
func (c *AppController) AttackAction(
	ctx context.Context,
	matchID, playerID, weaponID string,
	x, y int,
) (dto.GameView, error) {
	return c.game.Attack(ctx, matchID, playerID, weaponID, x, y)
}

// GetGameStateAction retrieves the current state of the game for a player.
func (c *AppController) GetGameStateAction(
	ctx context.Context,
	matchID, playerID string,
) (dto.GameView, error) {
	return c.game.GetState(ctx, matchID, playerID)
}

// SubscribeToMatch allows the handler to subscribe to match events.
func (c *AppController) SubscribeToMatch(
	matchID string,
) (sub Subscription, eventChan <-chan *dto.GameEvent) {
	return c.notifier.Subscribe(matchID)
}
