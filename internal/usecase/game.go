package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/pkg/realtime"
)

type GameUseCase interface {
	Start(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context) (*entity.Game, error)

	PlaceStone(ctx context.Context, cell int) (*entity.Game, error)
	Reset(ctx context.Context) (*entity.Game, error)
	Stop(ctx context.Context) error

	Subscribe() chan *entity.Game
	Unsubscribe(ch chan *entity.Game)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// gameUseCase runs every operation on the shared board one at a time and
// notifies subscribers after each change. Returned games are copies.
type gameUseCase struct {
	logger *slog.Logger

	gameID   string
	gameRepo gameRepo
	updates  *realtime.Broadcaster[*entity.Game]

	mu sync.Mutex
}

func NewGameUseCase(logger *slog.Logger, gameID string, gameRepo gameRepo) GameUseCase {
	return &gameUseCase{
		logger:   logger.With("component", "game", "gameID", gameID),
		gameID:   gameID,
		gameRepo: gameRepo,
		updates:  realtime.NewBroadcaster[*entity.Game](),
	}
}

// Start - begins a fresh game, discarding whatever the storage holds for this board.
func (that *gameUseCase) Start(ctx context.Context) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game := entity.NewGame(that.gameID)
	if err := that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game started")

	return that.publish(game), nil
}

func (that *gameUseCase) GetGame(ctx context.Context) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.loadGame(ctx)
	if err != nil {
		return nil, err
	}

	return game.Clone(), nil
}

func (that *gameUseCase) PlaceStone(ctx context.Context, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "PlaceStone", "cell", cell)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.loadGame(ctx)
	if err != nil {
		return nil, err
	}

	player := game.CurrentPlayer

	game, applied := gomoku.NewGameController(game).PlaceStone(cell)
	if !applied {
		log.Debug("move ignored")
		return game.Clone(), nil
	}

	if err = that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game won", "winner", game.Winner, "line", game.WinningLine)
	} else {
		log.Debug("stone placed", "player", player)
	}

	return that.publish(game), nil
}

func (that *gameUseCase) Reset(ctx context.Context) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.loadGame(ctx)
	if err != nil {
		return nil, err
	}

	game = gomoku.NewGameController(game).Reset()

	if err = that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game reset")

	return that.publish(game), nil
}

// Stop - removes the board from storage. A board already gone is not an error.
func (that *gameUseCase) Stop(ctx context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	err := that.gameRepo.DeleteByID(ctx, that.gameID)
	if err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game removed")

	return nil
}

// Subscribe returns a channel receiving the game after every change. Received games must not be modified.
func (that *gameUseCase) Subscribe() chan *entity.Game {
	return that.updates.Subscribe()
}

func (that *gameUseCase) Unsubscribe(ch chan *entity.Game) {
	that.updates.Unsubscribe(ch)
}

// loadGame returns the stored game, or a new one when the storage lost it (for example after expiry) or holds garbage.
func (that *gameUseCase) loadGame(ctx context.Context) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, that.gameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		that.logger.Warn("game not found in storage, starting a new one")
		return entity.NewGame(that.gameID), nil
	}

	if errors.Is(err, apperror.ErrInvalidGame) {
		that.logger.Warn("stored game is invalid, starting a new one", "error", err)
		return entity.NewGame(that.gameID), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) saveGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameUseCase) publish(game *entity.Game) *entity.Game {
	that.updates.Publish(game.Clone())
	that.logger.Debug("game published", "subscribers", that.updates.Len())

	return game.Clone()
}
