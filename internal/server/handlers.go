package server

import (
	"net/http"

	"github.com/nullwave/flotilla/internal/controller"
	"github.com/nullwave/flotilla/internal/dto"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// EchoHandler holds the HTTP handlers for the echo router. It is a thin
// adapter: all game logic lives behind controller.AppController.
type EchoHandler struct {
	ctrl *controller.AppController
}

// NewEchoHandler wires a controller into a fresh handler set.
func NewEchoHandler(c *controller.AppController) *EchoHandler {
	return &EchoHandler{ctrl: c}
}

// Login handles the user login/registration request.
// POST /login
func (h *EchoHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	resp, err := h.ctrl.Login(c.Request().Context(), req.Username, "web", req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}

// ListMatches retrieves the lobby list.
// GET /matches
func (h *EchoHandler) ListMatches(c echo.Context) error {
	matches, err := h.ctrl.ListGamesAction(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, matches)
}

// HostMatch opens a new match waiting for a second human to join.
// POST /matches
func (h *EchoHandler) HostMatch(c echo.Context) error {
	playerID, _ := c.Get("player_id").(string)

	matchID, err := h.ctrl.HostGameAction(c.Request().Context(), playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"match_id": matchID})
}

// HostSoloMatch opens a match against the decision core at the requested
// difficulty, skipping the lobby wait entirely.
// POST /matches/solo
func (h *EchoHandler) HostSoloMatch(c echo.Context) error {
	playerID, _ := c.Get("player_id").(string)

	var req struct {
		Difficulty string `json:"difficulty"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	matchID, err := h.ctrl.HostSoloGameAction(c.Request().Context(), playerID, req.Difficulty)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"match_id": matchID})
}

// JoinMatch seats a second player in a waiting match.
// POST /matches/:id/join
func (h *EchoHandler) JoinMatch(c echo.Context) error {
	matchID := c.Param("id")
	playerID, _ := c.Get("player_id").(string)

	view, err := h.ctrl.JoinGameAction(c.Request().Context(), matchID, playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, view)
}

// GetState returns the requesting player's fogged view of the match.
// GET /matches/:id
func (h *EchoHandler) GetState(c echo.Context) error {
	matchID := c.Param("id")
	playerID, _ := c.Get("player_id").(string)

	view, err := h.ctrl.GetGameStateAction(c.Request().Context(), matchID, playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, view)
}

// PlaceShip lays a ship down during the setup phase.
// POST /matches/:id/place
func (h *EchoHandler) PlaceShip(c echo.Context) error {
	var req dto.PlaceShipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	matchID := c.Param("id")
	playerID, _ := c.Get("player_id").(string)
	vertical := req.Orientation == "vertical" || req.Orientation == "v" || req.Orientation == "V"

	view, err := h.ctrl.PlaceShipAction(
		c.Request().Context(),
		matchID,
		playerID,
		req.ShipType,
		req.X,
		req.Y,
		vertical,
	)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, view)
}

// Attack fires a weapon at a cell on the opponent's board.
// POST /matches/:id/attack
func (h *EchoHandler) Attack(c echo.Context) error {
	var req dto.FireRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	matchID := c.Param("id")
	playerID, _ := c.Get("player_id").(string)

	view, err := h.ctrl.AttackAction(c.Request().Context(), matchID, playerID, req.Weapon, req.X, req.Y)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, view)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamMatchEvents upgrades to a websocket and pushes a fresh GameView
// every time the match changes, until the client disconnects.
// GET /matches/:id/ws
func (h *EchoHandler) StreamMatchEvents(c echo.Context) error {
	matchID := c.Param("id")
	playerID, _ := c.Get("player_id").(string)

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	sub, events := h.ctrl.SubscribeToMatch(matchID)
	defer sub.Unsubscribe()

	view, err := h.ctrl.GetGameStateAction(c.Request().Context(), matchID, playerID)
	if err != nil {
		return nil
	}
	if err := ws.WriteJSON(dto.WSEvent{Type: "game_update", Payload: &view}); err != nil {
		return nil
	}

	for range events {
		view, err := h.ctrl.GetGameStateAction(c.Request().Context(), matchID, playerID)
		if err != nil {
			return nil
		}
		if err := ws.WriteJSON(dto.WSEvent{Type: "game_update", Payload: &view}); err != nil {
			return nil
		}
	}

	return nil
}
