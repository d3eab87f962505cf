package game

// updateAvailability marks the cells the current player may claim and returns
// their count. A cell is available when it is Free or an enemy's Alive cell and
// touches a chain of the player's own cells leading back to the player's base.
func (b *Board) updateAvailability() int {
	for i := range b.cells {
		b.cells[i].Available = false
	}

	player := b.players[b.current]
	start := b.Index(player.Base)
	b.available = 0
	if b.cells[start].Owner != player {
		return 0
	}

	visited := make([]bool, len(b.cells))
	visited[start] = true
	stack := []int{start}
	var buf [8]int

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, j := range b.neighborIndexes(i, buf[:0]) {
			if visited[j] {
				continue
			}
			cell := &b.cells[j]
			if cell.Owner == player {
				// Own cells only extend the network
				visited[j] = true
				stack = append(stack, j)
				continue
			}
			if cell.State != Free && cell.State != Alive {
				continue
			}
			visited[j] = true
			cell.Available = true
			b.available++
		}
	}
	return b.available
}
