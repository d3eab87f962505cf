package game

import "fmt"

// Parse builds a game from a board drawn the way Board.String draws it. Upper
// case letters are bases, lower case letters alive cells and digits dead cells
// of the player with that index ('A', 'a' and '0' belong to the first player).
// Any other byte is a free cell. The first player is to move with a full turn.
func Parse(rows []string, turnLength int) (*GameState, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty board: %w", ErrInvalidConfig)
	}
	width, height := len(rows[0]), len(rows)

	type mark struct {
		pos   Position
		id    int
		state CellState
	}
	var marks []mark
	bases := map[int]Position{}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrInvalidConfig)
		}
		for x := 0; x < width; x++ {
			pos := Position{X: x, Y: y}
			switch ch := row[x]; {
			case ch >= 'A' && ch <= 'Z':
				id := int(ch - 'A')
				if _, ok := bases[id]; ok {
					return nil, fmt.Errorf("second base for player %d at (%d,%d): %w", id, x, y, ErrInvalidConfig)
				}
				bases[id] = pos
			case ch >= 'a' && ch <= 'z':
				marks = append(marks, mark{pos: pos, id: int(ch - 'a'), state: Alive})
			case ch >= '0' && ch <= '9':
				marks = append(marks, mark{pos: pos, id: int(ch - '0'), state: Dead})
			}
		}
	}

	players := make([]*Player, len(bases))
	for id := range players {
		base, ok := bases[id]
		if !ok {
			return nil, fmt.Errorf("no base for player %d: %w", id, ErrInvalidConfig)
		}
		players[id] = NewPlayer(fmt.Sprintf("Player %d", id+1), base, false)
	}
	for _, m := range marks {
		if m.id >= len(players) {
			return nil, fmt.Errorf("cell (%d,%d) belongs to unknown player %d: %w", m.pos.X, m.pos.Y, m.id, ErrInvalidConfig)
		}
	}

	gs, err := New(width, height, turnLength, players)
	if err != nil {
		return nil, err
	}
	gs.mutate(func() {
		for _, m := range marks {
			c := gs.board.Cell(m.pos)
			c.Owner = players[m.id]
			c.State = m.state
		}
		gs.notify(CellsChanged)
		gs.board.updateAvailability()
	})
	return gs, nil
}
