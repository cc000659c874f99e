package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/nullwave/flotilla/internal/dto"
	"github.com/stretchr/testify/assert"
)

// --- Hand-written fakes ---
//
// No mockery-generated mocks exist anywhere in the pack, so these tests
// exercise AppController against small fakes implementing its own
// IdentityService/LobbyService/GameService/NotificationService interfaces
// directly.

type fakeIdentityService struct {
	resp dto.AuthResponse
	err  error
}

func (f *fakeIdentityService) LoginOrRegister(
	_ context.Context, _, _, _ string,
) (dto.AuthResponse, error) {
	return f.resp, f.err
}

type fakeLobbyService struct {
	createMatchID string
	createErr     error
	soloMatchID   string
	soloErr       error
	matches       []dto.MatchSummary
	matchesErr    error
	joinView      dto.GameView
	joinErr       error
}

func (f *fakeLobbyService) CreateMatch(_ context.Context, _ string) (string, error) {
	return f.createMatchID, f.createErr
}

func (f *fakeLobbyService) CreateSoloMatch(_ context.Context, _, _ string) (string, error) {
	return f.soloMatchID, f.soloErr
}

func (f *fakeLobbyService) ListMatches(_ context.Context) ([]dto.MatchSummary, error) {
	return f.matches, f.matchesErr
}

func (f *fakeLobbyService) JoinMatch(_ context.Context, _, _ string) (dto.GameView, error) {
	return f.joinView, f.joinErr
}

type fakeGameService struct {
	view    dto.GameView
	viewErr error

	lastShipType, lastWeaponID string
}

func (f *fakeGameService) PlaceShip(
	_ context.Context, _, _, shipType string, _, _ int, _ bool,
) (dto.GameView, error) {
	f.lastShipType = shipType
	return f.view, f.viewErr
}

func (f *fakeGameService) Attack(
	_ context.Context, _, _, weaponID string, _, _ int,
) (dto.GameView, error) {
	f.lastWeaponID = weaponID
	return f.view, f.viewErr
}

func (f *fakeGameService) GetState(_ context.Context, _, _ string) (dto.GameView, error) {
	return f.view, f.viewErr
}

type fakeSubscription struct{ unsubscribed bool }

func (s *fakeSubscription) Unsubscribe() { s.unsubscribed = true }

type fakeNotificationService struct {
	sub  Subscription
	ch   <-chan *dto.GameEvent
	last *dto.GameEvent
}

func (f *fakeNotificationService) Subscribe(_ string) (Subscription, <-chan *dto.GameEvent) {
	return f.sub, f.ch
}

func (f *fakeNotificationService) Publish(event *dto.GameEvent) { f.last = event }

func newTestController(
	auth *fakeIdentityService, lobby *fakeLobbyService, game *fakeGameService, notifier *fakeNotificationService,
) *AppController {
	return NewAppController(auth, lobby, game, notifier)
}

func TestLogin(t *testing.T) {
	auth := &fakeIdentityService{resp: dto.AuthResponse{Token: "tok", User: dto.User{ID: "u1"}}}
	c := newTestController(auth, &fakeLobbyService{}, &fakeGameService{}, &fakeNotificationService{})

	resp, err := c.Login(context.Background(), "alice", "web", "alice")
	assert.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestLogin_Error(t *testing.T) {
	auth := &fakeIdentityService{err: errors.New("boom")}
	c := newTestController(auth, &fakeLobbyService{}, &fakeGameService{}, &fakeNotificationService{})

	_, err := c.Login(context.Background(), "alice", "web", "alice")
	assert.Error(t, err)
}

func TestHostGameAction(t *testing.T) {
	lobby := &fakeLobbyService{createMatchID: "m1"}
	c := newTestController(&fakeIdentityService{}, lobby, &fakeGameService{}, &fakeNotificationService{})

	id, err := c.HostGameAction(context.Background(), "p1")
	assert.NoError(t, err)
	assert.Equal(t, "m1", id)
}

func TestHostSoloGameAction(t *testing.T) {
	lobby := &fakeLobbyService{soloMatchID: "m2"}
	c := newTestController(&fakeIdentityService{}, lobby, &fakeGameService{}, &fakeNotificationService{})

	id, err := c.HostSoloGameAction(context.Background(), "p1", "hard")
	assert.NoError(t, err)
	assert.Equal(t, "m2", id)
}

func TestListGamesAction(t *testing.T) {
	lobby := &fakeLobbyService{matches: []dto.MatchSummary{{ID: "m1"}, {ID: "m2"}}}
	c := newTestController(&fakeIdentityService{}, lobby, &fakeGameService{}, &fakeNotificationService{})

	matches, err := c.ListGamesAction(context.Background())
	assert.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestJoinGameAction(t *testing.T) {
	lobby := &fakeLobbyService{joinView: dto.GameView{State: dto.StateSetup}}
	c := newTestController(&fakeIdentityService{}, lobby, &fakeGameService{}, &fakeNotificationService{})

	view, err := c.JoinGameAction(context.Background(), "m1", "p2")
	assert.NoError(t, err)
	assert.Equal(t, dto.StateSetup, view.State)
}

func TestPlaceShipAction(t *testing.T) {
	game := &fakeGameService{view: dto.GameView{State: dto.StateSetup}}
	c := newTestController(&fakeIdentityService{}, &fakeLobbyService{}, game, &fakeNotificationService{})

	view, err := c.PlaceShipAction(context.Background(), "m1", "p1", "BB", 0, 0, false)
	assert.NoError(t, err)
	assert.Equal(t, "BB", game.lastShipType)
	assert.Equal(t, dto.StateSetup, view.State)
}

func TestAttackAction(t *testing.T) {
	game := &fakeGameService{view: dto.GameView{State: dto.StatePlaying}}
	c := newTestController(&fakeIdentityService{}, &fakeLobbyService{}, game, &fakeNotificationService{})

	view, err := c.AttackAction(context.Background(), "m1", "p1", "HE", 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, "HE", game.lastWeaponID)
	assert.Equal(t, dto.StatePlaying, view.State)
}

func TestGetGameStateAction(t *testing.T) {
	game := &fakeGameService{view: dto.GameView{State: dto.StateFinished, Winner: "p1"}}
	c := newTestController(&fakeIdentityService{}, &fakeLobbyService{}, game, &fakeNotificationService{})

	view, err := c.GetGameStateAction(context.Background(), "m1", "p1")
	assert.NoError(t, err)
	assert.Equal(t, "p1", view.Winner)
}

func TestSubscribeToMatch(t *testing.T) {
	sub := &fakeSubscription{}
	ch := make(chan *dto.GameEvent)
	notifier := &fakeNotificationService{sub: sub, ch: ch}
	c := newTestController(&fakeIdentityService{}, &fakeLobbyService{}, &fakeGameService{}, notifier)

	gotSub, gotCh := c.SubscribeToMatch("m1")
	assert.Same(t, sub, gotSub)
	assert.NotNil(t, gotCh)

	gotSub.Unsubscribe()
	assert.True(t, sub.unsubscribed)
}
