package apperror

import "errors"

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidGame   = errors.New("invalid game state")
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrUnknownAction = errors.New("unknown action")
)
