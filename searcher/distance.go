package searcher

import (
	"strconv"
	"strings"

	"klop/game"
)

// Unreached is the distance of every cell when there are no enemy cells.
const Unreached = -1

// Distances holds, for every cell, the number of king moves to the nearest cell
// owned by an enemy. Enemy cells are at distance 0.
type Distances struct {
	width  int
	height int
	values []int
}

// EnemyDistances spreads a wavefront over the whole board from every cell
// owned by someone other than player.
func EnemyDistances(board *game.Board, player *game.Player) Distances {
	d := Distances{
		width:  board.Width(),
		height: board.Height(),
		values: make([]int, board.Width()*board.Height()),
	}

	cells := board.Cells()
	queue := make([]int, 0, len(cells))
	for i := range cells {
		if cells[i].IsEnemyOf(player) {
			queue = append(queue, i)
		} else {
			d.values[i] = Unreached
		}
	}

	var buf [8]int
	for head := 0; head < len(queue); head++ {
		i := queue[head]
		for _, j := range board.NeighborIndexes(i, buf[:0]) {
			if d.values[j] != Unreached {
				continue
			}
			d.values[j] = d.values[i] + 1
			queue = append(queue, j)
		}
	}
	return d
}

func (d Distances) At(p game.Position) int {
	return d.values[p.Y*d.width+p.X]
}

// Min returns the smallest distance among cells, or Unreached when cells is
// empty or no enemy cell exists.
func (d Distances) Min(cells []*game.Cell) int {
	best := Unreached
	for _, c := range cells {
		v := d.At(c.Position)
		if v == Unreached {
			continue
		}
		if best == Unreached || v < best {
			best = v
		}
	}
	return best
}

func (d Distances) String() string {
	var sb strings.Builder
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			sb.WriteString(padRight(strconv.Itoa(d.values[y*d.width+x]), 4))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
