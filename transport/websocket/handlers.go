package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

func (that *Server) handleState(ctx context.Context, _ *Message) (*entity.Game, error) {
	return that.gameUseCase.GetGame(ctx)
}

func (that *Server) handleTurn(ctx context.Context, msg *Message) (*entity.Game, error) {
	var payloadReq Payload

	if len(msg.Payload) != 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidCell, err)
		}
	}

	if payloadReq.Cell == nil {
		return nil, fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell)
	}

	return that.gameUseCase.PlaceStone(ctx, *payloadReq.Cell)
}

func (that *Server) handleReset(ctx context.Context, _ *Message) (*entity.Game, error) {
	return that.gameUseCase.Reset(ctx)
}

// publicError hides infrastructure details from clients.
func publicError(err error) string {
	if errors.Is(err, apperror.ErrInvalidCell) {
		return apperror.ErrInvalidCell.Error()
	}

	return "internal error"
}
