package entity

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	BoardSize = 30
	WinLength = 5
	CellCount = BoardSize * BoardSize
)

// Game represents the state of one board: the cells, whose turn it is and the outcome.
type Game struct {
	ID            string            `json:"id"`
	Board         [CellCount]Player `json:"board"`
	CurrentPlayer Player            `json:"current_player"`
	Winner        Player            `json:"winner"`
	WinningLine   []int             `json:"winning_line"`
	Started       bool              `json:"started"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:            id,
		CurrentPlayer: PlayerFirst,
		Winner:        EmptyCell,
		WinningLine:   []int{},
	}
}

// Reset returns the game to its initial state, keeping the ID.
func (that *Game) Reset() {
	*that = *NewGame(that.ID)
}

func (that *Game) IsFinished() bool {
	return that.Winner != EmptyCell
}

// IsInProgress reports whether stones were placed and nobody has won yet.
func (that *Game) IsInProgress() bool {
	return that.Started && !that.IsFinished()
}

func (that *Game) IsOccupied(cell int) bool {
	return that.Board[cell] != EmptyCell
}

func (that *Game) InWinningLine(cell int) bool {
	return slices.Contains(that.WinningLine, cell)
}

// Clone returns a deep copy that callers may keep or modify freely.
func (that *Game) Clone() *Game {
	clone := *that
	clone.WinningLine = slices.Clone(that.WinningLine)
	if clone.WinningLine == nil {
		clone.WinningLine = []int{}
	}

	return &clone
}

// Validate checks a game that came from outside the process, such as storage, against the board invariants.
func (that *Game) Validate() error {
	stones := 0
	for cell, owner := range that.Board {
		if !owner.IsValid() {
			return fmt.Errorf("%w: unknown owner %q at cell %d", apperror.ErrInvalidGame, owner, cell)
		}
		if owner != EmptyCell {
			stones++
		}
	}

	if !that.CurrentPlayer.IsStone() {
		return fmt.Errorf("%w: unknown current player %q", apperror.ErrInvalidGame, that.CurrentPlayer)
	}

	if !that.Winner.IsValid() {
		return fmt.Errorf("%w: unknown winner %q", apperror.ErrInvalidGame, that.Winner)
	}

	if stones > 0 && !that.Started {
		return fmt.Errorf("%w: stones on a board that was never started", apperror.ErrInvalidGame)
	}

	if !that.IsFinished() {
		if len(that.WinningLine) != 0 {
			return fmt.Errorf("%w: winning line without a winner", apperror.ErrInvalidGame)
		}

		return nil
	}

	if len(that.WinningLine) < WinLength {
		return fmt.Errorf("%w: winner with a line of %d cells", apperror.ErrInvalidGame, len(that.WinningLine))
	}

	for _, cell := range that.WinningLine {
		if !ValidCell(cell) || that.Board[cell] != that.Winner {
			return fmt.Errorf("%w: winning line cell %d is not the winner's", apperror.ErrInvalidGame, cell)
		}
	}

	return nil
}

// ValidCell reports whether cell addresses a square of the board.
func ValidCell(cell int) bool {
	return cell >= 0 && cell < CellCount
}

// CellPosition splits a cell index into its row and column.
func CellPosition(cell int) (int, int) {
	return cell / BoardSize, cell % BoardSize
}

// CellIndex joins a row and column into a cell index. The second result is false outside the board.
func CellIndex(row, col int) (int, bool) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return 0, false
	}

	return row*BoardSize + col, true
}
