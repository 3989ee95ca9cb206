package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/chessboard-backend/internal/game"
	"github.com/benbeisheim/chessboard-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app     *fiber.App
	service *service.GameService
}

func newTestServer() *testServer {
	app := fiber.New()
	gs := service.NewGameService(service.NewGameManager())
	SetupRoutes(app, gs, websocket.Config{})
	return &testServer{app: app, service: gs}
}

func (ts *testServer) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (ts *testServer) createGame(t *testing.T, body string) string {
	t.Helper()
	status, data := ts.do(t, http.MethodPost, "/api/game/create", body)
	require.Equal(t, fiber.StatusCreated, status, string(data))
	var resp struct {
		GameID string `json:"game_id"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp.GameID
}

type stateResponse struct {
	Placement      string `json:"placement"`
	Status         string `json:"status"`
	Winner         string `json:"winner"`
	Sound          string `json:"sound"`
	SelectedSquare *struct {
		Row int `json:"row"`
		Col int `json:"col"`
	} `json:"selectedSquare"`
	Board [][]*struct {
		Type  string `json:"type"`
		Color string `json:"color"`
	} `json:"board"`
}

type square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type movesResponse struct {
	Quiet   []square `json:"quiet"`
	Capture []square `json:"capture"`
}

func TestCreateAndGetGame(t *testing.T) {
	ts := newTestServer()
	gameID := ts.createGame(t, "")

	status, data := ts.do(t, http.MethodGet, "/api/game/"+gameID, "")
	require.Equal(t, fiber.StatusOK, status)

	var state stateResponse
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", state.Placement)
	assert.Equal(t, "active", state.Status)
	require.Len(t, state.Board, 8)
	assert.Equal(t, "rook", state.Board[0][0].Type)
	assert.Equal(t, "black", state.Board[0][0].Color)
	assert.Nil(t, state.Board[4][4])
}

func TestCreateGameWithPlacement(t *testing.T) {
	ts := newTestServer()

	gameID := ts.createGame(t, `{"placement":"4k3/8/8/8/8/8/8/4K3"}`)

	status, data := ts.do(t, http.MethodGet, "/api/game/"+gameID, "")
	require.Equal(t, fiber.StatusOK, status)
	var state stateResponse
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3", state.Placement)
}

func TestCreateGameBadPlacement(t *testing.T) {
	ts := newTestServer()

	status, data := ts.do(t, http.MethodPost, "/api/game/create", `{"placement":"nope"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(data), "invalid placement")
}

func TestUnknownAndInvalidGameIDs(t *testing.T) {
	ts := newTestServer()

	status, _ := ts.do(t, http.MethodGet, "/api/game/"+uuid.New().String(), "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = ts.do(t, http.MethodGet, "/api/game/not-a-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetMoves(t *testing.T) {
	ts := newTestServer()
	gameID := ts.createGame(t, "")

	status, data := ts.do(t, http.MethodGet, "/api/game/"+gameID+"/moves?row=7&col=6", "")
	require.Equal(t, fiber.StatusOK, status, string(data))

	var moves movesResponse
	require.NoError(t, json.Unmarshal(data, &moves))
	assert.Equal(t, []square{{5, 5}, {5, 7}}, moves.Quiet)
	assert.Empty(t, moves.Capture)

	status, _ = ts.do(t, http.MethodGet, "/api/game/"+gameID+"/moves", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSelectThenMove(t *testing.T) {
	ts := newTestServer()
	gameID := ts.createGame(t, "")

	status, data := ts.do(t, http.MethodPost, "/api/game/"+gameID+"/select", `{"row":6,"col":4}`)
	require.Equal(t, fiber.StatusOK, status, string(data))
	var moves movesResponse
	require.NoError(t, json.Unmarshal(data, &moves))
	assert.Equal(t, []square{{5, 4}, {4, 4}}, moves.Quiet)

	status, data = ts.do(t, http.MethodPost, "/api/game/"+gameID+"/move", `{"row":4,"col":4}`)
	require.Equal(t, fiber.StatusOK, status, string(data))
	var state stateResponse
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR", state.Placement)
	assert.Equal(t, "move", state.Sound)
	assert.Nil(t, state.SelectedSquare)
}

func TestMoveErrors(t *testing.T) {
	ts := newTestServer()
	gameID := ts.createGame(t, "")

	status, _ := ts.do(t, http.MethodPost, "/api/game/"+gameID+"/move", `{"row":4,"col":4}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = ts.do(t, http.MethodPost, "/api/game/"+gameID+"/select", `{"row":6,"col":4}`)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = ts.do(t, http.MethodPost, "/api/game/"+gameID+"/move", `{"row":3,"col":4}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = ts.do(t, http.MethodPost, "/api/game/"+gameID+"/move", `{"row":9,"col":4}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, data := ts.do(t, http.MethodPost, "/api/game/"+gameID+"/move", `{"row":4}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(data), "row and col are required")
}

func TestClickCapturesKingAndEndsGame(t *testing.T) {
	ts := newTestServer()
	gameID := ts.createGame(t, `{"placement":"4k3/8/8/8/8/8/8/4R2K"}`)

	status, _ := ts.do(t, http.MethodPost, "/api/game/"+gameID+"/click", `{"row":7,"col":4}`)
	require.Equal(t, fiber.StatusOK, status)
	status, data := ts.do(t, http.MethodPost, "/api/game/"+gameID+"/click", `{"row":0,"col":4}`)
	require.Equal(t, fiber.StatusOK, status, string(data))

	var state stateResponse
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, string(game.StatusKingCaptured), state.Status)
	assert.Equal(t, "white", state.Winner)
	assert.Equal(t, "capture", state.Sound)

	status, _ = ts.do(t, http.MethodPost, "/api/game/"+gameID+"/click", `{"row":7,"col":7}`)
	assert.Equal(t, fiber.StatusConflict, status)

	status, data = ts.do(t, http.MethodPost, "/api/game/"+gameID+"/reset", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, "active", state.Status)
	assert.Equal(t, "4k3/8/8/8/8/8/8/4R2K", state.Placement)
}

func TestDeleteGame(t *testing.T) {
	ts := newTestServer()
	gameID := ts.createGame(t, "")

	status, _ := ts.do(t, http.MethodDelete, "/api/game/"+gameID, "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = ts.do(t, http.MethodGet, "/api/game/"+gameID, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	ts := newTestServer()
	gameID := ts.createGame(t, "")

	status, _ := ts.do(t, http.MethodGet, "/ws/game/"+gameID, "")

	assert.Equal(t, fiber.StatusUpgradeRequired, status)
}
