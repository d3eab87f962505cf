package game

import "strings"

// Board is the grid together with the turn bookkeeping. GameState owns the live
// board; Snapshot hands out copies that readers are free to inspect without
// holding any lock. A snapshot must not be modified.
type Board struct {
	width      int
	height     int
	cells      []Cell // Indexed by y*width+x
	players    []*Player
	current    int
	remaining  int
	turnLength int
	defeated   []bool // Indexed by Player.ID
	available  int    // Result of the last availability pass
	epoch      uint64 // Bumped by every reset
}

func (b *Board) Width() int      { return b.width }
func (b *Board) Height() int     { return b.height }
func (b *Board) TurnLength() int { return b.turnLength }

// RemainingMoves returns how many moves the current player has left this turn.
func (b *Board) RemainingMoves() int { return b.remaining }

func (b *Board) CurrentPlayer() *Player { return b.players[b.current] }

func (b *Board) Players() []*Player { return b.players }

// Epoch identifies the game the board belongs to. It changes on every reset.
func (b *Board) Epoch() uint64 { return b.epoch }

// Cells returns all cells in row-major order.
func (b *Board) Cells() []Cell { return b.cells }

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// At returns the cell at (x,y), or nil when the coordinates are off the board.
func (b *Board) At(x, y int) *Cell {
	if !b.InBounds(x, y) {
		return nil
	}
	return &b.cells[y*b.width+x]
}

func (b *Board) Cell(p Position) *Cell {
	return b.At(p.X, p.Y)
}

// Index returns the row-major index of p. p must be on the board.
func (b *Board) Index(p Position) int {
	return p.Y*b.width + p.X
}

// Neighbors returns the up to 8 cells surrounding c.
func (b *Board) Neighbors(c *Cell) []*Cell {
	var buf [8]int
	idx := b.neighborIndexes(b.Index(c.Position), buf[:0])
	neighbors := make([]*Cell, len(idx))
	for i, j := range idx {
		neighbors[i] = &b.cells[j]
	}
	return neighbors
}

// NeighborIndexes appends the row-major indexes of the cells surrounding the
// cell at index i to buf.
func (b *Board) NeighborIndexes(i int, buf []int) []int {
	return b.neighborIndexes(i, buf)
}

func (b *Board) neighborIndexes(i int, buf []int) []int {
	cx, cy := i%b.width, i/b.width
	xNotMin := cx != 0
	xNotMax := cx < b.width-1

	if cy != 0 {
		if xNotMin {
			buf = append(buf, i-b.width-1)
		}
		buf = append(buf, i-b.width)
		if xNotMax {
			buf = append(buf, i-b.width+1)
		}
	}

	if xNotMin {
		buf = append(buf, i-1)
	}
	if xNotMax {
		buf = append(buf, i+1)
	}

	if cy != b.height-1 {
		if xNotMin {
			buf = append(buf, i+b.width-1)
		}
		buf = append(buf, i+b.width)
		if xNotMax {
			buf = append(buf, i+b.width+1)
		}
	}
	return buf
}

// Available returns the cells the current player may claim this turn.
func (b *Board) Available() []*Cell {
	var cells []*Cell
	for i := range b.cells {
		if b.cells[i].Available {
			cells = append(cells, &b.cells[i])
		}
	}
	return cells
}

// AvailableCount returns the number of cells found by the last availability pass.
func (b *Board) AvailableCount() int { return b.available }

func (b *Board) IsDefeated(p *Player) bool {
	return b.defeated[p.ID]
}

// DefeatedPlayers returns the defeated players in player order.
func (b *Board) DefeatedPlayers() []*Player {
	var players []*Player
	for _, p := range b.players {
		if b.defeated[p.ID] {
			players = append(players, p)
		}
	}
	return players
}

// Enemies returns the players other than p that are still in the game.
func (b *Board) Enemies(p *Player) []*Player {
	var enemies []*Player
	for _, e := range b.players {
		if e != p && !b.defeated[e.ID] {
			enemies = append(enemies, e)
		}
	}
	return enemies
}

// AliveCount returns the number of Alive cells owned by p.
func (b *Board) AliveCount(p *Player) int {
	count := 0
	for i := range b.cells {
		if b.cells[i].Owner == p && b.cells[i].State == Alive {
			count++
		}
	}
	return count
}

// IsFightStarted reports whether territories of two different players touch.
func (b *Board) IsFightStarted() bool {
	var buf [8]int
	for i := range b.cells {
		owner := b.cells[i].Owner
		if owner == nil {
			continue
		}
		for _, j := range b.neighborIndexes(i, buf[:0]) {
			if b.cells[j].IsEnemyOf(owner) {
				return true
			}
		}
	}
	return false
}

// IsGameOver reports whether at most one player is left, or nobody can move.
func (b *Board) IsGameOver() bool {
	alive := 0
	for _, defeated := range b.defeated {
		if !defeated {
			alive++
		}
	}
	return alive <= 1 || b.available == 0
}

// Winner returns the only player left in the game, or nil.
func (b *Board) Winner() *Player {
	var winner *Player
	for _, p := range b.players {
		if b.defeated[p.ID] {
			continue
		}
		if winner != nil {
			return nil
		}
		winner = p
	}
	return winner
}

func (b *Board) copy() *Board {
	c := *b
	c.cells = make([]Cell, len(b.cells))
	copy(c.cells, b.cells)
	c.defeated = make([]bool, len(b.defeated))
	copy(c.defeated, b.defeated)
	return &c
}

// String draws the board one row per line: '.' free, '*' available, base
// 'A'+id, alive 'a'+id, dead '0'+id.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.At(x, y)
			switch {
			case c.Owner == nil && c.Available:
				sb.WriteByte('*')
			case c.Owner == nil:
				sb.WriteByte('.')
			case c.State == Base:
				sb.WriteByte(byte('A' + c.Owner.ID))
			case c.State == Alive:
				sb.WriteByte(byte('a' + c.Owner.ID))
			default:
				sb.WriteByte(byte('0' + c.Owner.ID))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
