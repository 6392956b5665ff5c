package viewmodel

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/msgcat"
)

// Cell is one board square as drawn on the page.
type Cell struct {
	Index   int
	Owner   entity.Player
	Winning bool
	Label   string
}

// PlayerIndicator is the header badge of one player.
type PlayerIndicator struct {
	Player entity.Player `json:"player"`
	Name   string        `json:"name"`
	Active bool          `json:"active"`
	Winner bool          `json:"winner"`
}

// GamePage holds data for the board page and the API view projection.
type GamePage struct {
	Title           string             `json:"-"`
	Cells           []Cell             `json:"-"`
	Players         [2]PlayerIndicator `json:"players"`
	NewGameDisabled bool               `json:"new_game_disabled"`
	NewGameLabel    string             `json:"-"`
	Finished        bool               `json:"finished"`
	WinnerTitle     string             `json:"-"`
	WinnerText      string             `json:"winner_text,omitempty"`
	Winner          entity.Player      `json:"winner"`
	PlayAgainLabel  string             `json:"-"`
}

// NewGamePage projects the game state for rendering.
// The new game control is disabled while stones are on the board and nobody has won.
func NewGamePage(game *entity.Game, catalog *msgcat.Catalog) GamePage {
	page := GamePage{
		Title:           catalog.Text("title", nil),
		Cells:           make([]Cell, entity.CellCount),
		NewGameDisabled: game.IsInProgress(),
		NewGameLabel:    catalog.Text("button.new_game", nil),
		Finished:        game.IsFinished(),
		Winner:          game.Winner,
		PlayAgainLabel:  catalog.Text("button.play_again", nil),
	}

	for i, player := range []entity.Player{entity.PlayerFirst, entity.PlayerSecond} {
		page.Players[i] = PlayerIndicator{
			Player: player,
			Name:   catalog.Text("player.label", map[string]any{"Number": player.Number()}),
			Active: game.CurrentPlayer == player && !game.IsFinished(),
			Winner: game.Winner == player,
		}
	}

	winning := make(map[int]bool, len(game.WinningLine))
	for _, cell := range game.WinningLine {
		winning[cell] = true
	}

	for cell := range page.Cells {
		row, col := entity.CellPosition(cell)
		page.Cells[cell] = Cell{
			Index:   cell,
			Owner:   game.Board[cell],
			Winning: winning[cell],
			Label:   catalog.Text("board.cell", map[string]any{"Row": row + 1, "Col": col + 1}),
		}
	}

	if game.IsFinished() {
		page.WinnerTitle = catalog.Text("winner.title", nil)
		page.WinnerText = catalog.Text("player.wins", map[string]any{"Number": game.Winner.Number()})
	}

	return page
}
