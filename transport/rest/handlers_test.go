package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/msgcat"
	"github.com/rocketscienceinc/gomoku-backend/internal/render"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

type mockGameUseCase struct {
	mock.Mock
}

func (that *mockGameUseCase) GetGame(ctx context.Context) (*entity.Game, error) {
	args := that.Called(ctx)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) PlaceStone(ctx context.Context, cell int) (*entity.Game, error) {
	args := that.Called(ctx, cell)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) Reset(ctx context.Context) (*entity.Game, error) {
	args := that.Called(ctx)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(t *testing.T, games gameUseCase) http.Handler {
	t.Helper()

	ws := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusSwitchingProtocols)
	})

	return NewRouter(newLogger(), NewGameHandler(newLogger(), games, msgcat.MustNew()), ws)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	useCase := usecase.NewGameUseCase(newLogger(), "main", repository.NewMemoryGameRepository())
	_, err := useCase.Start(context.Background())
	require.NoError(t, err)

	return newRouter(t, useCase)
}

func serve(handler http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func decodeGame(t *testing.T, rec *httptest.ResponseRecorder) (*entity.Game, map[string]any) {
	t.Helper()

	var resp struct {
		Game *entity.Game   `json:"game"`
		View map[string]any `json:"view"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	return resp.Game, resp.View
}

func TestPing(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestWebSocketRoute(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/ws", nil)

	assert.Equal(t, http.StatusSwitchingProtocols, rec.Code)
}

func TestGameHandler_Page(t *testing.T) {
	handler := newTestRouter(t)

	t.Run("Renders the empty board", func(t *testing.T) {
		rec := serve(handler, http.MethodGet, "/", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, entity.CellCount, strings.Count(rec.Body.String(), `name="cell"`))
	})

	t.Run("Form move redirects to the board", func(t *testing.T) {
		// When: a cell is submitted
		rec := serve(handler, http.MethodPost, "/play", strings.NewReader(url.Values{"cell": {"31"}}.Encode()))

		// Then: the browser is sent back to the page showing the stone
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		page := serve(handler, http.MethodGet, "/", nil)
		assert.Contains(t, page.Body.String(), `value="31" class="cell blue"`)
		assert.Contains(t, page.Body.String(), `class="reset-btn" disabled>`)
	})

	t.Run("Form move with garbage is ignored", func(t *testing.T) {
		rec := serve(handler, http.MethodPost, "/play", strings.NewReader("cell=abc"))

		require.Equal(t, http.StatusSeeOther, rec.Code)

		game, _ := decodeGame(t, serve(handler, http.MethodGet, "/api/game", nil))
		assert.Equal(t, entity.PlayerSecond, game.CurrentPlayer)
	})

	t.Run("Form reset clears the board", func(t *testing.T) {
		rec := serve(handler, http.MethodPost, "/reset", nil)

		require.Equal(t, http.StatusSeeOther, rec.Code)

		game, _ := decodeGame(t, serve(handler, http.MethodGet, "/api/game", nil))
		assert.Equal(t, entity.NewGame("main"), game)
	})
}

func TestGameHandler_API(t *testing.T) {
	handler := newTestRouter(t)

	t.Run("Get returns the game and its view", func(t *testing.T) {
		rec := serve(handler, http.MethodGet, "/api/game", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		game, view := decodeGame(t, rec)
		assert.Equal(t, entity.NewGame("main"), game)
		assert.Equal(t, false, view["new_game_disabled"])
		assert.Equal(t, false, view["finished"])
	})

	t.Run("Placing a stone", func(t *testing.T) {
		rec := serve(handler, http.MethodPost, "/api/game/cells/450", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		game, view := decodeGame(t, rec)
		assert.Equal(t, entity.PlayerFirst, game.Board[450])
		assert.Equal(t, entity.PlayerSecond, game.CurrentPlayer)
		assert.Equal(t, true, view["new_game_disabled"])
	})

	t.Run("Occupied cell is ignored", func(t *testing.T) {
		rec := serve(handler, http.MethodPost, "/api/game/cells/450", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		game, _ := decodeGame(t, rec)
		assert.Equal(t, entity.PlayerFirst, game.Board[450])
		assert.Equal(t, entity.PlayerSecond, game.CurrentPlayer)
	})

	t.Run("Out of range cell is ignored", func(t *testing.T) {
		rec := serve(handler, http.MethodPost, "/api/game/cells/900", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		game, _ := decodeGame(t, rec)
		assert.Equal(t, entity.PlayerSecond, game.CurrentPlayer)
	})

	t.Run("Cell that is not a number is rejected", func(t *testing.T) {
		rec := serve(handler, http.MethodPost, "/api/game/cells/abc", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid cell index")
	})

	t.Run("Win is reported", func(t *testing.T) {
		serve(handler, http.MethodPost, "/api/game/reset", nil)

		var rec *httptest.ResponseRecorder
		for _, cell := range []string{"0", "899", "1", "897", "2", "895", "3", "893", "4"} {
			rec = serve(handler, http.MethodPost, "/api/game/cells/"+cell, nil)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		game, view := decodeGame(t, rec)
		assert.Equal(t, entity.PlayerFirst, game.Winner)
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, game.WinningLine)
		assert.Equal(t, true, view["finished"])
		assert.Equal(t, false, view["new_game_disabled"])
		assert.Equal(t, "Player 1 wins!", view["winner_text"])
	})

	t.Run("Reset", func(t *testing.T) {
		rec := serve(handler, http.MethodPost, "/api/game/reset", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		game, _ := decodeGame(t, rec)
		assert.Equal(t, entity.NewGame("main"), game)
	})
}

func TestGameHandler_BoardImage(t *testing.T) {
	handler := newTestRouter(t)
	serve(handler, http.MethodPost, "/api/game/cells/0", nil)

	rec := serve(handler, http.MethodGet, "/board.png", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, render.ImageSize, img.Bounds().Dx())
	assert.Equal(t, render.ImageSize, img.Bounds().Dy())
}

func TestGameHandler_StorageErrors(t *testing.T) {
	errStorage := errors.New("storage down")

	games := &mockGameUseCase{}
	games.On("GetGame", mock.Anything).Return(nil, errStorage)
	games.On("PlaceStone", mock.Anything, 5).Return(nil, errStorage)
	games.On("Reset", mock.Anything).Return(nil, errStorage)

	handler := newRouter(t, games)

	for _, tc := range []struct {
		name   string
		method string
		target string
	}{
		{"page", http.MethodGet, "/"},
		{"board image", http.MethodGet, "/board.png"},
		{"api get", http.MethodGet, "/api/game"},
		{"api move", http.MethodPost, "/api/game/cells/5"},
		{"api reset", http.MethodPost, "/api/game/reset"},
		{"form reset", http.MethodPost, "/reset"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(handler, tc.method, tc.target, nil)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.NotContains(t, rec.Body.String(), "storage down")
		})
	}

	t.Run("ping", func(t *testing.T) {
		rec := serve(handler, http.MethodGet, "/ping", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
