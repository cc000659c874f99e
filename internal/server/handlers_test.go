package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nullwave/flotilla/internal/controller"
	"github.com/nullwave/flotilla/internal/dto"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Hand-written fakes ---
//
// The pack carries no mockery-generated mock package for these interfaces,
// so tests exercise the real controller.AppController against small fakes
// implementing controller's IdentityService/LobbyService/GameService/
// NotificationService directly.

type fakeIdentityService struct {
	resp dto.AuthResponse
	err  error
}

func (f *fakeIdentityService) LoginOrRegister(_ context.Context, _, _, _ string) (dto.AuthResponse, error) {
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
}

func (f *fakeGameService) PlaceShip(
	_ context.Context, _, _, _ string, _, _ int, _ bool,
) (dto.GameView, error) {
	return f.view, f.viewErr
}

func (f *fakeGameService) Attack(_ context.Context, _, _, _ string, _, _ int) (dto.GameView, error) {
	return f.view, f.viewErr
}

func (f *fakeGameService) GetState(_ context.Context, _, _ string) (dto.GameView, error) {
	return f.view, f.viewErr
}

type fakeSubscription struct{}

func (fakeSubscription) Unsubscribe() {}

type fakeNotificationService struct {
	ch chan *dto.GameEvent
}

func (f *fakeNotificationService) Subscribe(_ string) (controller.Subscription, <-chan *dto.GameEvent) {
	return fakeSubscription{}, f.ch
}

func (f *fakeNotificationService) Publish(_ *dto.GameEvent) {}

// --- Test helpers ---

func setupTest(
	t *testing.T,
) (*echo.Echo, *EchoHandler, *fakeIdentityService, *fakeLobbyService, *fakeGameService, *fakeNotificationService) {
	t.Helper()
	e := echo.New()
	auth := &fakeIdentityService{}
	lobby := &fakeLobbyService{}
	game := &fakeGameService{}
	notifier := &fakeNotificationService{ch: make(chan *dto.GameEvent, 1)}
	ctrl := controller.NewAppController(auth, lobby, game, notifier)
	h := NewEchoHandler(ctrl)
	return e, h, auth, lobby, game, notifier
}

func makeRequest(
	method, path string,
	body any,
	headers map[string]string,
) (*http.Request, *httptest.ResponseRecorder) {
	var bodyReader *bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			bodyReader = bytes.NewBufferString(s)
		} else {
			jsonBytes, _ := json.Marshal(body)
			bodyReader = bytes.NewBuffer(jsonBytes)
		}
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func httpErr(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	he := &echo.HTTPError{}
	ok := errors.As(err, &he)
	assert.True(t, ok)
	return he
}

// --- Tests ---

func TestLogin(t *testing.T) {
	t.Parallel()

	e, h, auth, _, _, _ := setupTest(t)
	auth.resp = dto.AuthResponse{Token: "t1", User: dto.User{ID: "user-123", Username: "Alice"}}

	req, rec := makeRequest(http.MethodPost, "/login", map[string]string{"username": "Alice"}, nil)
	c := e.NewContext(req, rec)

	err := h.Login(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user-123")
}

func TestLogin_InvalidJSON(t *testing.T) {
	t.Parallel()

	e, h, _, _, _, _ := setupTest(t)
	req, rec := makeRequest(http.MethodPost, "/login", "{invalid-json", nil)
	c := e.NewContext(req, rec)

	err := h.Login(c)
	he := httpErr(t, err)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestLogin_ServiceError(t *testing.T) {
	t.Parallel()

	e, h, auth, _, _, _ := setupTest(t)
	auth.err = errors.New("db down")

	req, rec := makeRequest(http.MethodPost, "/login", map[string]string{"username": "ErrorUser"}, nil)
	c := e.NewContext(req, rec)

	err := h.Login(c)
	he := httpErr(t, err)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	assert.Contains(t, he.Message, "db down")
}

func TestListMatches(t *testing.T) {
	t.Parallel()

	e, h, _, lobby, _, _ := setupTest(t)
	lobby.matches = []dto.MatchSummary{{ID: "m1", HostName: "H1", PlayerCount: 1, CreatedAt: time.Now()}}

	req, rec := makeRequest(http.MethodGet, "/matches", nil, nil)
	c := e.NewContext(req, rec)

	err := h.ListMatches(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "m1")
}

func TestHostMatch(t *testing.T) {
	t.Parallel()

	e, h, _, lobby, _, _ := setupTest(t)
	lobby.createMatchID = "match-new-id"

	req, rec := makeRequest(http.MethodPost, "/matches", nil, nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "user-123")

	err := h.HostMatch(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "match-new-id")
}

func TestHostSoloMatch(t *testing.T) {
	t.Parallel()

	e, h, _, lobby, _, _ := setupTest(t)
	lobby.soloMatchID = "solo-id"

	req, rec := makeRequest(http.MethodPost, "/matches/solo", map[string]string{"difficulty": "hard"}, nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "user-123")

	err := h.HostSoloMatch(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "solo-id")
}

func TestJoinMatch(t *testing.T) {
	t.Parallel()

	e, h, _, lobby, _, _ := setupTest(t)
	lobby.joinView = dto.GameView{State: dto.StateSetup}

	req, rec := makeRequest(http.MethodPost, "/matches/m1/join", nil, nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "p2")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	err := h.JoinMatch(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SETUP")
}

func TestJoinMatch_ServiceError(t *testing.T) {
	t.Parallel()

	e, h, _, lobby, _, _ := setupTest(t)
	lobby.joinErr = errors.New("match full")

	req, rec := makeRequest(http.MethodPost, "/matches/m1/join", nil, nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "p2")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	err := h.JoinMatch(c)
	he := httpErr(t, err)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetState(t *testing.T) {
	t.Parallel()

	e, h, _, _, game, _ := setupTest(t)
	game.view = dto.GameView{State: dto.StatePlaying}

	req, rec := makeRequest(http.MethodGet, "/matches/m1", nil, nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "p1")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	err := h.GetState(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PLAYING")
}

func TestPlaceShip(t *testing.T) {
	t.Parallel()

	e, h, _, _, game, _ := setupTest(t)
	game.view = dto.GameView{State: dto.StateSetup}

	req, rec := makeRequest(http.MethodPost, "/matches/m1/place",
		dto.PlaceShipRequest{ShipType: "CL", X: 0, Y: 0, Orientation: "horizontal"}, nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "p1")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	err := h.PlaceShip(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlaceShip_InvalidJSON(t *testing.T) {
	t.Parallel()

	e, h, _, _, _, _ := setupTest(t)
	req, rec := makeRequest(http.MethodPost, "/matches/m1/place", "{bad-json", nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "p1")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	err := h.PlaceShip(c)
	he := httpErr(t, err)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPlaceShip_ServiceError(t *testing.T) {
	t.Parallel()

	e, h, _, _, game, _ := setupTest(t)
	game.viewErr = errors.New("overlap")

	req, rec := makeRequest(http.MethodPost, "/matches/m1/place",
		dto.PlaceShipRequest{ShipType: "CL", X: 0, Y: 0, Orientation: "horizontal"}, nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "p1")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	err := h.PlaceShip(c)
	he := httpErr(t, err)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, he.Message, "overlap")
}

func TestAttack(t *testing.T) {
	t.Parallel()

	e, h, _, _, game, _ := setupTest(t)
	game.view = dto.GameView{State: dto.StatePlaying, Turn: "p2"}

	req, rec := makeRequest(http.MethodPost, "/matches/m1/attack",
		dto.FireRequest{Weapon: "AP", X: 5, Y: 5}, nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "p1")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	err := h.Attack(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PLAYING")
}

func TestAttack_InvalidJSON(t *testing.T) {
	t.Parallel()

	e, h, _, _, _, _ := setupTest(t)
	req, rec := makeRequest(http.MethodPost, "/matches/m1/attack", "{bad", nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "p1")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	err := h.Attack(c)
	he := httpErr(t, err)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAttack_ServiceError(t *testing.T) {
	t.Parallel()

	e, h, _, _, game, _ := setupTest(t)
	game.viewErr = errors.New("not your turn")

	req, rec := makeRequest(http.MethodPost, "/matches/m1/attack",
		dto.FireRequest{Weapon: "AP", X: 5, Y: 5}, nil)
	c := e.NewContext(req, rec)
	c.Set("player_id", "p1")
	c.SetParamNames("id")
	c.SetParamValues("m1")

	err := h.Attack(c)
	he := httpErr(t, err)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, he.Message, "not your turn")
}

func TestStreamMatchEvents(t *testing.T) { //nolint:paralleltest
	e, h, _, _, game, notifier := setupTest(t)
	game.view = dto.GameView{State: dto.StateSetup, Turn: "p1"}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := e.NewContext(r, w)
		c.SetPath("/matches/:id/ws")
		c.SetParamNames("id")
		c.SetParamValues("m1")
		c.Set("player_id", "p1")

		err := h.StreamMatchEvents(c)
		assert.NoError(t, err)
	}))
	defer ts.Close()

	wsURL := "ws" + ts.URL[4:] + "/matches/m1/ws"

	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer ws.Close()

	var evt dto.WSEvent
	err = ws.ReadJSON(&evt)
	assert.NoError(t, err)
	assert.Equal(t, "game_update", evt.Type)
	assert.NotNil(t, evt.Payload)
	assert.Equal(t, dto.StateSetup, evt.Payload.State)

	game.view = dto.GameView{State: dto.StatePlaying, Turn: "p2"}
	notifier.ch <- &dto.GameEvent{Type: "game.started"}

	err = ws.ReadJSON(&evt)
	assert.NoError(t, err)
	assert.Equal(t, "game_update", evt.Type)
	assert.NotNil(t, evt.Payload)
	assert.Equal(t, dto.StatePlaying, evt.Payload.State)
}
