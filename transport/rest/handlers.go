package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/msgcat"
	"github.com/rocketscienceinc/gomoku-backend/internal/render"
	"github.com/rocketscienceinc/gomoku-backend/internal/view"
	"github.com/rocketscienceinc/gomoku-backend/internal/viewmodel"
)

type gameUseCase interface {
	GetGame(ctx context.Context) (*entity.Game, error)

	PlaceStone(ctx context.Context, cell int) (*entity.Game, error)
	Reset(ctx context.Context) (*entity.Game, error)
}

// GameHandler serves the board page, its form actions, the JSON API, the board snapshot and the health check.
type GameHandler struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	catalog     *msgcat.Catalog
}

type gameResponse struct {
	Game *entity.Game       `json:"game"`
	View viewmodel.GamePage `json:"view"`
}

func NewGameHandler(logger *slog.Logger, gameUseCase gameUseCase, catalog *msgcat.Catalog) *GameHandler {
	return &GameHandler{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
		catalog:     catalog,
	}
}

func (that *GameHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ping", that.ping)
	r.Get("/", that.page)
	r.Post("/play", that.play)
	r.Post("/reset", that.reset)
	r.Get("/board.png", that.boardImage)

	r.Route("/api/game", func(r chi.Router) {
		r.Get("/", that.getGame)
		r.Post("/cells/{cell}", that.placeStone)
		r.Post("/reset", that.resetGame)
	})
}

func (that *GameHandler) page(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context())
	if err != nil {
		that.internalError(w, "page", err)
		return
	}

	renderComponent(w, r, view.GamePage(viewmodel.NewGamePage(game, that.catalog)))
}

// play handles the board form. A cell that is not a number is ignored like any other invalid move.
func (that *GameHandler) play(w http.ResponseWriter, r *http.Request) {
	if cell, err := strconv.Atoi(r.FormValue("cell")); err == nil {
		if _, err = that.gameUseCase.PlaceStone(r.Context(), cell); err != nil {
			that.internalError(w, "play", err)
			return
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *GameHandler) reset(w http.ResponseWriter, r *http.Request) {
	if _, err := that.gameUseCase.Reset(r.Context()); err != nil {
		that.internalError(w, "reset", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *GameHandler) boardImage(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context())
	if err != nil {
		that.internalError(w, "boardImage", err)
		return
	}

	img, err := render.PNG(game)
	if err != nil {
		that.internalError(w, "boardImage", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img)
}

func (that *GameHandler) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context())
	if err != nil {
		that.internalError(w, "getGame", err)
		return
	}

	that.writeGame(w, game)
}

func (that *GameHandler) placeStone(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(chi.URLParam(r, "cell"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("%s: %q", apperror.ErrInvalidCell, chi.URLParam(r, "cell")),
		})
		return
	}

	game, err := that.gameUseCase.PlaceStone(r.Context(), cell)
	if err != nil {
		that.internalError(w, "placeStone", err)
		return
	}

	that.writeGame(w, game)
}

func (that *GameHandler) resetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.Reset(r.Context())
	if err != nil {
		that.internalError(w, "resetGame", err)
		return
	}

	that.writeGame(w, game)
}

func (that *GameHandler) writeGame(w http.ResponseWriter, game *entity.Game) {
	writeJSON(w, http.StatusOK, gameResponse{
		Game: game,
		View: viewmodel.NewGamePage(game, that.catalog),
	})
}

func (that *GameHandler) internalError(w http.ResponseWriter, method string, err error) {
	that.logger.Error("request failed", "method", method, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
