package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// filler cells sit on the last row, two columns apart, so the opponent never lines up five.
var filler = []int{899, 897, 895, 893, 891, 889, 887, 885}

// interleave alternates the given cells with filler moves, starting with cells[0].
func interleave(cells []int) []int {
	moves := make([]int, 0, len(cells)*2)
	for i, cell := range cells {
		moves = append(moves, cell)
		if i < len(cells)-1 {
			moves = append(moves, filler[i])
		}
	}

	return moves
}

func play(t *testing.T, controller *GameController, moves ...int) {
	t.Helper()

	for _, cell := range moves {
		_, applied := controller.PlaceStone(cell)
		require.True(t, applied, "move on cell %d was rejected", cell)
	}
}

func newController() *GameController {
	return NewGameController(entity.NewGame("123"))
}

func TestGameController_PlaceStone(t *testing.T) {
	t.Run("First move", func(t *testing.T) {
		// Given: a new game
		controller := newController()

		// When: the first player places a stone
		game, applied := controller.PlaceStone(42)

		// Then: the stone is placed and the turn passes to the second player
		require.True(t, applied)

		expectedGame := entity.NewGame("123")
		expectedGame.Board[42] = entity.PlayerFirst
		expectedGame.CurrentPlayer = entity.PlayerSecond
		expectedGame.Started = true

		require.Equal(t, expectedGame, game)
	})

	t.Run("Occupied cell is ignored", func(t *testing.T) {
		// Given: a game where cell 10 is taken by the first player
		controller := newController()
		play(t, controller, 10)
		before := controller.State().Clone()

		// When: the second player clicks the same cell
		game, applied := controller.PlaceStone(10)

		// Then: nothing changes
		assert.False(t, applied)
		require.Equal(t, before, game)
		assert.Equal(t, entity.PlayerSecond, game.CurrentPlayer)
	})

	t.Run("Out of range cells are ignored", func(t *testing.T) {
		for _, cell := range []int{-1, entity.CellCount, entity.CellCount + 31} {
			// Given: a new game
			controller := newController()

			// When: a cell outside the board is played
			game, applied := controller.PlaceStone(cell)

			// Then: the game stays in its initial state
			assert.False(t, applied)
			require.Equal(t, entity.NewGame("123"), game)
		}
	})

	t.Run("Moves after a win are ignored", func(t *testing.T) {
		// Given: a game already won by the first player
		controller := newController()
		play(t, controller, interleave([]int{0, 1, 2, 3, 4})...)
		before := controller.State().Clone()

		// When: more moves are attempted
		for _, cell := range []int{5, 450, 899} {
			game, applied := controller.PlaceStone(cell)

			// Then: none of them changes the game
			assert.False(t, applied)
			require.Equal(t, before, game)
		}
	})

	t.Run("Exactly one cell changes per move", func(t *testing.T) {
		// Given: a game with a few moves
		controller := newController()
		play(t, controller, 100, 200, 300)

		for _, cell := range []int{101, 201, 301, 401} {
			before := controller.State().Clone()

			// When: another stone is placed
			game, applied := controller.PlaceStone(cell)
			require.True(t, applied)

			// Then: only that cell differs and it holds the mover
			changed := 0
			for i := range game.Board {
				if game.Board[i] != before.Board[i] {
					changed++
					assert.Equal(t, cell, i)
					assert.Equal(t, before.CurrentPlayer, game.Board[i])
				}
			}
			assert.Equal(t, 1, changed)
		}
	})

	t.Run("Turns alternate without a winner", func(t *testing.T) {
		controller := newController()

		for _, cell := range []int{0, 2, 4, 6, 8, 61, 63} {
			before := controller.State().CurrentPlayer

			game, applied := controller.PlaceStone(cell)
			require.True(t, applied)

			assert.Equal(t, before.Opponent(), game.CurrentPlayer)
			assert.False(t, game.IsFinished())
		}
	})
}

func TestGameController_WinDetection(t *testing.T) {
	t.Run("Horizontal win", func(t *testing.T) {
		// Given: a new game
		controller := newController()

		// When: the first player fills row 0, columns 0 to 4
		play(t, controller, interleave([]int{0, 1, 2, 3, 4})...)
		game := controller.State()

		// Then: the first player wins with that line, seed first
		assert.Equal(t, entity.PlayerFirst, game.Winner)
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, game.WinningLine)
		assert.Equal(t, []int{4, 3, 2, 1, 0}, game.WinningLine)
		assert.Equal(t, entity.PlayerFirst, game.CurrentPlayer)
	})

	t.Run("Full row without five in a row", func(t *testing.T) {
		// Given: a new game
		controller := newController()

		// When: both players alternate along row 0
		for cell := 0; cell < entity.BoardSize; cell++ {
			game, applied := controller.PlaceStone(cell)
			require.True(t, applied)

			// Then: nobody ever wins
			require.False(t, game.IsFinished())
			require.Empty(t, game.WinningLine)
		}
	})

	t.Run("Vertical win", func(t *testing.T) {
		controller := newController()

		play(t, controller, interleave([]int{0, 30, 60, 90, 120})...)
		game := controller.State()

		assert.Equal(t, entity.PlayerFirst, game.Winner)
		assert.ElementsMatch(t, []int{0, 30, 60, 90, 120}, game.WinningLine)
	})

	t.Run("Diagonal down win", func(t *testing.T) {
		controller := newController()

		play(t, controller, interleave([]int{0, 31, 62, 93, 124})...)
		game := controller.State()

		assert.Equal(t, entity.PlayerFirst, game.Winner)
		assert.ElementsMatch(t, []int{0, 31, 62, 93, 124}, game.WinningLine)
	})

	t.Run("Diagonal up win", func(t *testing.T) {
		// row 4 col 0 up to row 0 col 4
		controller := newController()

		play(t, controller, interleave([]int{120, 91, 62, 33, 4})...)
		game := controller.State()

		assert.Equal(t, entity.PlayerFirst, game.Winner)
		assert.Equal(t, []int{4, 33, 62, 91, 120}, game.WinningLine)
	})

	t.Run("Second player wins", func(t *testing.T) {
		controller := newController()

		play(t, controller, 899, 0, 897, 1, 895, 2, 893, 3, 891, 4)
		game := controller.State()

		assert.Equal(t, entity.PlayerSecond, game.Winner)
		assert.Equal(t, entity.PlayerSecond, game.CurrentPlayer)
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, game.WinningLine)
	})

	t.Run("Seed in the middle lists forward matches before backward ones", func(t *testing.T) {
		controller := newController()

		play(t, controller, interleave([]int{0, 1, 3, 4, 2})...)

		assert.Equal(t, []int{2, 3, 4, 1, 0}, controller.State().WinningLine)
	})

	t.Run("Longer line is reported whole within reach", func(t *testing.T) {
		// Given: two runs of four separated by one gap
		controller := newController()

		// When: the gap is filled
		play(t, controller, interleave([]int{0, 1, 2, 3, 5, 6, 7, 8, 4})...)
		game := controller.State()

		// Then: the whole run of nine is the winning line
		assert.Equal(t, entity.PlayerFirst, game.Winner)
		assert.Equal(t, []int{4, 5, 6, 7, 8, 3, 2, 1, 0}, game.WinningLine)
	})

	t.Run("Lines do not wrap around the board edge", func(t *testing.T) {
		// Given: stones at the end of row 0 and the start of row 1
		controller := newController()

		// When: they form five consecutive indices
		play(t, controller, interleave([]int{27, 28, 29, 30, 31})...)

		// Then: there is no winner
		assert.False(t, controller.State().IsFinished())
		assert.Empty(t, controller.State().WinningLine)
	})

	t.Run("First axis in scan order wins", func(t *testing.T) {
		// Given: four stones to the right of cell 0 and four below it
		controller := newController()

		// When: cell 0 completes both lines
		play(t, controller, interleave([]int{1, 2, 3, 4, 30, 60, 90, 120, 0})...)

		// Then: only the horizontal line is reported
		assert.Equal(t, []int{0, 1, 2, 3, 4}, controller.State().WinningLine)
	})

	t.Run("Winning line cells belong to the winner", func(t *testing.T) {
		// Given: four stones leading diagonally to the bottom right corner
		controller := newController()
		play(t, controller, 775, 0, 806, 2, 837, 4, 868, 6)
		require.False(t, controller.State().IsFinished())

		// When: the corner is taken
		play(t, controller, 899)
		game := controller.State()

		// Then: the line stays inside the board and belongs to the winner
		require.Equal(t, entity.PlayerFirst, game.Winner)
		assert.Equal(t, []int{899, 868, 837, 806, 775}, game.WinningLine)
		require.GreaterOrEqual(t, len(game.WinningLine), entity.WinLength)
		for _, cell := range game.WinningLine {
			assert.Equal(t, game.Winner, game.Board[cell])
		}
	})
}

func TestGameController_Reset(t *testing.T) {
	t.Run("Reset after a win", func(t *testing.T) {
		// Given: a game won by the first player
		controller := newController()
		play(t, controller, interleave([]int{0, 1, 2, 3, 4})...)
		require.True(t, controller.State().IsFinished())

		// When: the game is reset
		game := controller.Reset()

		// Then: everything returns to the initial state
		require.Equal(t, entity.NewGame("123"), game)
		assert.Equal(t, entity.PlayerFirst, game.CurrentPlayer)
		assert.False(t, game.Started)
	})

	t.Run("Reset of a new game", func(t *testing.T) {
		controller := newController()

		require.Equal(t, entity.NewGame("123"), controller.Reset())
	})

	t.Run("Play continues after reset", func(t *testing.T) {
		controller := newController()
		play(t, controller, 5, 6)
		controller.Reset()

		game, applied := controller.PlaceStone(5)

		require.True(t, applied)
		assert.Equal(t, entity.PlayerFirst, game.Board[5])
		assert.Equal(t, entity.PlayerSecond, game.CurrentPlayer)
	})
}
