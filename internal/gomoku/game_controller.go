package gomoku

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// axis is a line direction as a (row, column) step.
type axis struct {
	dRow, dCol int
}

// axes are scanned in this order and the first one reaching WinLength wins.
var axes = [...]axis{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// GameController applies moves to a single game and decides the winner.
type GameController struct {
	game *entity.Game
}

func NewGameController(game *entity.Game) *GameController {
	return &GameController{game: game}
}

// State returns the game the controller mutates.
func (that *GameController) State() *entity.Game {
	return that.game
}

// PlaceStone puts the current player's stone on cell. It returns false and leaves the game untouched
// when the cell is outside the board, already occupied, or the game already has a winner.
func (that *GameController) PlaceStone(cell int) (*entity.Game, bool) {
	if !canPlace(that.game, cell) {
		return that.game, false
	}

	that.game.Started = true

	player := that.game.CurrentPlayer
	that.game.Board[cell] = player

	if line := findWinningLine(&that.game.Board, cell); line != nil {
		that.game.Winner = player
		that.game.WinningLine = line

		return that.game, true
	}

	that.game.CurrentPlayer = player.Opponent()

	return that.game, true
}

// Reset - restores the initial state of the game.
func (that *GameController) Reset() *entity.Game {
	that.game.Reset()

	return that.game
}

func canPlace(game *entity.Game, cell int) bool {
	return entity.ValidCell(cell) && !game.IsOccupied(cell) && !game.IsFinished()
}

// findWinningLine looks for WinLength or more stones through cell that belong to the cell's owner.
// The line starts with cell, followed by the forward matches and then the backward matches.
func findWinningLine(board *[entity.CellCount]entity.Player, cell int) []int {
	player := board[cell]
	row, col := entity.CellPosition(cell)

	for _, dir := range axes {
		line := []int{cell}
		line = walk(board, line, player, row, col, dir.dRow, dir.dCol)
		line = walk(board, line, player, row, col, -dir.dRow, -dir.dCol)

		if len(line) >= entity.WinLength {
			return line
		}
	}

	return nil
}

// walk steps away from (row, col) up to WinLength-1 times, appending each matching cell to line.
func walk(board *[entity.CellCount]entity.Player, line []int, player entity.Player, row, col, dRow, dCol int) []int {
	for step := 1; step < entity.WinLength; step++ {
		next, ok := entity.CellIndex(row+dRow*step, col+dCol*step)
		if !ok || board[next] != player {
			break
		}

		line = append(line, next)
	}

	return line
}
