package entity

// Player is the owner of a cell. EmptyCell marks an unoccupied cell and, as a Winner, "no winner yet".
type Player string

const (
	EmptyCell    Player = ""
	PlayerFirst  Player = "blue"
	PlayerSecond Player = "red"
)

// IsStone reports whether the value is one of the two players.
func (that Player) IsStone() bool {
	return that == PlayerFirst || that == PlayerSecond
}

// IsValid reports whether the value may appear in a cell.
func (that Player) IsValid() bool {
	return that == EmptyCell || that.IsStone()
}

// Opponent returns the other player.
func (that Player) Opponent() Player {
	if that == PlayerFirst {
		return PlayerSecond
	}
	return PlayerFirst
}

// Number returns 1 for the first player, 2 for the second and 0 for an empty cell.
func (that Player) Number() int {
	switch that {
	case PlayerFirst:
		return 1
	case PlayerSecond:
		return 2
	default:
		return 0
	}
}
