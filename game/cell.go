package game

import "math"

type CellState int

const (
	Free CellState = iota
	Alive
	Dead
	Base
)

func (s CellState) String() string {
	switch s {
	case Free:
		return "free"
	case Alive:
		return "alive"
	case Dead:
		return "dead"
	case Base:
		return "base"
	default:
		return "unknown"
	}
}

// Position is a grid coordinate, (0,0) is the top-left cell.
type Position struct {
	X int
	Y int
}

// Chebyshev returns the king-move distance between two positions.
func (p Position) Chebyshev(q Position) int {
	return max(abs(p.X-q.X), abs(p.Y-q.Y))
}

// Distance returns the straight-line distance between two positions.
func (p Position) Distance(q Position) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Cell is one grid position. Owner is nil for unowned cells. Available is
// recomputed for the current player after every change of the board.
type Cell struct {
	Position
	Owner     *Player
	State     CellState
	Available bool
}

// IsEnemyOf reports whether the cell is owned by someone other than p.
func (c *Cell) IsEnemyOf(p *Player) bool {
	return c.Owner != nil && c.Owner != p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
