package game

import "fmt"

// Player takes part in a game. ID is the player's index in the game's player
// list and is assigned by New. A player owns a cell when Cell.Owner points to it.
type Player struct {
	ID    int
	Name  string
	Base  Position
	Human bool
}

func NewPlayer(name string, base Position, human bool) *Player {
	return &Player{Name: name, Base: base, Human: human}
}

func (p *Player) String() string {
	if p == nil {
		return "<nobody>"
	}
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("Player%d", p.ID+1)
}

// IsNearBase reports whether pos touches the player's base.
func (p *Player) IsNearBase(pos Position) bool {
	return pos.Chebyshev(p.Base) == 1
}
