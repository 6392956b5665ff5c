package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const writeTimeout = 5 * time.Second

type gameUseCase interface {
	GetGame(ctx context.Context) (*entity.Game, error)

	PlaceStone(ctx context.Context, cell int) (*entity.Game, error)
	Reset(ctx context.Context) (*entity.Game, error)

	Subscribe() chan *entity.Game
	Unsubscribe(ch chan *entity.Game)
}

type handler func(ctx context.Context, msg *Message) (*entity.Game, error)

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase

	handlers map[string]handler
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
	}

	server.handlers = map[string]handler{
		actionState: server.handleState,
		actionTurn:  server.handleTurn,
		actionReset: server.handleReset,
	}

	return server
}

// ServeHTTP upgrades the request and keeps the client in sync with the shared game.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	ctx := r.Context()

	updates := that.gameUseCase.Subscribe()
	defer that.gameUseCase.Unsubscribe(updates)

	log.Debug("websocket connection established")

	game, err := that.gameUseCase.GetGame(ctx)
	if err != nil {
		log.Error("failed to get game", "error", err)
		conn.Close(websocket.StatusInternalError, "failed to get the game")
		return
	}

	if err = that.send(ctx, conn, actionState, Payload{Game: game}); err != nil {
		log.Error("failed to send game state", "error", err)
		return
	}

	readErr := make(chan error, 1)
	go func() {
		readErr <- that.handleMessages(ctx, conn)
	}()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case err = <-readErr:
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				log.Debug("websocket connection closed")
			default:
				log.Warn("websocket connection lost", "error", err)
			}
			return
		case game, ok := <-updates:
			if !ok {
				return
			}

			if err = that.send(ctx, conn, actionUpdate, Payload{Game: game}); err != nil {
				log.Error("failed to send game update", "error", err)
				return
			}
		}
	}
}

// handleMessages - processes messages from the client until the connection fails.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			if err = that.send(ctx, conn, actionError, Payload{Error: "malformed message"}); err != nil {
				return err
			}
			continue
		}

		h, ok := that.handlers[msg.Action]
		if !ok {
			log.Debug("unknown action", "action", msg.Action)
			errMsg := fmt.Sprintf("%s: %q", apperror.ErrUnknownAction, msg.Action)
			if err = that.send(ctx, conn, actionError, Payload{Error: errMsg}); err != nil {
				return err
			}
			continue
		}

		game, err := h(ctx, &msg)
		if err != nil {
			log.Error("error processing message", "action", msg.Action, "error", err)
			if err = that.send(ctx, conn, msg.Action, Payload{Error: publicError(err)}); err != nil {
				return err
			}
			continue
		}

		if err = that.send(ctx, conn, actionState, Payload{Game: game}); err != nil {
			return err
		}
	}
}

func (that *Server) send(ctx context.Context, conn *websocket.Conn, action string, payload Payload) error {
	msg, err := newMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err = wsjson.Write(ctx, conn, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
