package monopoly

import "github.com/rocketscienceinc/monopoly-engine/internal/entity"

// Movement resolves a dice roll or a forced relocation into a destination
// space and a possible passed-Go bonus.
type Movement struct {
	Player   *entity.Player
	Roll     int
	Doubles  bool
	Position int
	Space    *entity.Space
	PassedGo bool
}

// rollMovement rolls the dice and computes the destination.
func (that *Game) rollMovement(player *entity.Player) *Movement {
	roll, doubles := that.dice.Roll()
	position := (player.Position + roll) % entity.BoardSize
	return &Movement{
		Player:   player,
		Roll:     roll,
		Doubles:  doubles,
		Position: position,
		Space:    that.Board.Space(position),
		PassedGo: player.Position+roll >= entity.BoardSize,
	}
}

// forcedMovement relocates without dice. collectGo grants the salary when
// the relocation wraps past Go; card effects that move backwards or into
// jail pass false.
func (that *Game) forcedMovement(player *entity.Player, position int, collectGo bool) *Movement {
	position = ((position % entity.BoardSize) + entity.BoardSize) % entity.BoardSize
	return &Movement{
		Player:   player,
		Position: position,
		Space:    that.Board.Space(position),
		PassedGo: collectGo && position <= player.Position,
	}
}

// apply commits the movement: salary first, then the new position.
func (that *Movement) apply() {
	if that.PassedGo {
		that.Player.Credit(entity.GoSalary)
	}
	that.Player.Position = that.Position
}
