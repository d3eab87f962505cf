package game

import (
	"fmt"
	"sync"
)

// snapshot is one undo record: the target cell as it was before a move.
type snapshot struct {
	pos   Position
	owner *Player
	state CellState
}

// GameState is the turn engine. It is safe for concurrent use: every mutation
// runs inside one critical section, and readers get copies.
type GameState struct {
	mu      sync.Mutex
	board   *Board
	history []snapshot
	pending []Change

	lmu       sync.Mutex
	listeners []subscription
	nextID    int
}

// New creates a game on a width x height board. The players' IDs are set to
// their index in players. Bases must be on the board and distinct.
func New(width, height, turnLength int, players []*Player) (*GameState, error) {
	if width < MinWidth || height < MinHeight {
		return nil, fmt.Errorf("board %dx%d is smaller than %dx%d: %w", width, height, MinWidth, MinHeight, ErrInvalidConfig)
	}
	if len(players) < MinPlayers {
		return nil, fmt.Errorf("need %d or more players, got %d: %w", MinPlayers, len(players), ErrInvalidConfig)
	}
	if turnLength < 1 {
		return nil, fmt.Errorf("turn length %d must be positive: %w", turnLength, ErrInvalidConfig)
	}

	bases := make(map[Position]bool, len(players))
	for _, p := range players {
		if p == nil {
			return nil, fmt.Errorf("nil player: %w", ErrInvalidConfig)
		}
		if p.Base.X < 0 || p.Base.Y < 0 || p.Base.X >= width || p.Base.Y >= height {
			return nil, fmt.Errorf("base of %s at (%d,%d) is outside of the board: %w", p, p.Base.X, p.Base.Y, ErrInvalidConfig)
		}
		if bases[p.Base] {
			return nil, fmt.Errorf("base of %s at (%d,%d) is shared: %w", p, p.Base.X, p.Base.Y, ErrInvalidConfig)
		}
		bases[p.Base] = true
	}

	list := make([]*Player, len(players))
	copy(list, players)
	for i, p := range list {
		p.ID = i
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i].Position = Position{X: i % width, Y: i / width}
	}

	gs := &GameState{
		board: &Board{
			width:      width,
			height:     height,
			cells:      cells,
			players:    list,
			turnLength: turnLength,
			defeated:   make([]bool, len(list)),
		},
	}
	gs.mutate(gs.reset)
	return gs, nil
}

// Subscribe registers fn for change notifications and returns a function that
// removes it again.
func (gs *GameState) Subscribe(fn Listener) (unsubscribe func()) {
	gs.lmu.Lock()
	defer gs.lmu.Unlock()
	id := gs.nextID
	gs.nextID++
	gs.listeners = append(gs.listeners, subscription{id: id, fn: fn})

	return func() {
		gs.lmu.Lock()
		defer gs.lmu.Unlock()
		for i, s := range gs.listeners {
			if s.id == id {
				gs.listeners = append(gs.listeners[:i], gs.listeners[i+1:]...)
				return
			}
		}
	}
}

// mutate runs fn under the state lock and dispatches the changes it recorded
// once the lock is released.
func (gs *GameState) mutate(fn func()) {
	gs.mu.Lock()
	fn()
	changes := gs.pending
	gs.pending = nil
	gs.mu.Unlock()

	if len(changes) == 0 {
		return
	}
	gs.lmu.Lock()
	listeners := make([]subscription, len(gs.listeners))
	copy(listeners, gs.listeners)
	gs.lmu.Unlock()

	for _, c := range changes {
		for _, s := range listeners {
			s.fn(c)
		}
	}
}

func (gs *GameState) notify(kind ChangeKind) {
	gs.pending = append(gs.pending, gs.board.change(kind))
}

func (gs *GameState) setRemaining(n int) {
	gs.board.remaining = n
	gs.notify(RemainingMovesChanged)
}

func (gs *GameState) setCurrent(i int) {
	gs.board.current = i
	gs.notify(CurrentPlayerChanged)
}

// MakeTurn claims the cell at (x,y) for the current player. Moves outside of the
// board or onto cells that are not available are ignored; the return value
// tells whether the move was applied.
func (gs *GameState) MakeTurn(x, y int) bool {
	return gs.makeTurn(0, nil, x, y)
}

// makeTurn only checks player and epoch when they are set.
func (gs *GameState) makeTurn(epoch uint64, player *Player, x, y int) bool {
	applied := false
	gs.mutate(func() {
		b := gs.board
		if player != nil && player != b.CurrentPlayer() {
			return
		}
		if epoch != 0 && epoch != b.epoch {
			return
		}
		cell := b.At(x, y)
		if cell == nil || !cell.Available {
			return
		}

		gs.history = append(gs.history, snapshot{pos: cell.Position, owner: cell.Owner, state: cell.State})

		cell.Owner = b.CurrentPlayer()
		switch cell.State {
		case Alive:
			cell.State = Dead
		case Free:
			cell.State = Alive
		}
		gs.notify(CellsChanged)

		gs.setRemaining(b.remaining - 1)
		gs.trySwitchTurn()
		applied = true
	})
	return applied
}

// MakeTurnAt is MakeTurn for a position.
func (gs *GameState) MakeTurnAt(p Position) bool {
	return gs.MakeTurn(p.X, p.Y)
}

// MakeTurnAs is MakeTurnAt that is also ignored unless player is to move.
func (gs *GameState) MakeTurnAs(player *Player, p Position) bool {
	return gs.makeTurn(0, player, p.X, p.Y)
}

// MakeTurnIn is MakeTurnAs that is also ignored once the game has been reset
// since a board of the given epoch was taken.
func (gs *GameState) MakeTurnIn(epoch uint64, player *Player, p Position) bool {
	return gs.makeTurn(epoch, player, p.X, p.Y)
}

// UndoTurn reverts the last move of the current turn, if any.
func (gs *GameState) UndoTurn() bool {
	return gs.undoTurn(nil)
}

// UndoTurnAs is UndoTurn that is also ignored unless player is to move.
func (gs *GameState) UndoTurnAs(player *Player) bool {
	return gs.undoTurn(player)
}

func (gs *GameState) undoTurn(player *Player) bool {
	undone := false
	gs.mutate(func() {
		if player != nil && player != gs.board.CurrentPlayer() {
			return
		}
		if len(gs.history) == 0 {
			return
		}
		last := gs.history[len(gs.history)-1]
		gs.history = gs.history[:len(gs.history)-1]

		cell := gs.board.Cell(last.pos)
		cell.Owner = last.owner
		cell.State = last.state
		gs.notify(CellsChanged)

		gs.setRemaining(gs.board.remaining + 1)
		gs.board.updateAvailability()
		undone = true
	})
	return undone
}

// Reset puts the game back to its initial position with the same configuration.
func (gs *GameState) Reset() {
	gs.mutate(gs.reset)
}

func (gs *GameState) reset() {
	b := gs.board
	b.epoch++
	for i := range b.defeated {
		b.defeated[i] = false
	}
	gs.notify(DefeatedPlayersChanged)

	for i := range b.cells {
		c := &b.cells[i]
		c.Owner = nil
		c.State = Free
		c.Available = false
	}
	for _, p := range b.players {
		c := b.Cell(p.Base)
		c.Owner = p
		c.State = Base
	}
	gs.notify(CellsChanged)

	gs.history = gs.history[:0]
	gs.setRemaining(b.turnLength)
	gs.setCurrent(0)
	b.updateAvailability()
}

// trySwitchTurn passes the turn on while the current player has nothing to do.
// It gives up after one round over all players so a table where nobody can move
// does not spin.
func (gs *GameState) trySwitchTurn() {
	b := gs.board
	for attempt := 0; attempt < len(b.players)+1; attempt++ {
		gs.switchTurn()
		avail := b.updateAvailability()
		gs.detectDefeated(avail)
		if avail > 0 {
			return
		}
	}
}

func (gs *GameState) switchTurn() {
	b := gs.board
	if b.remaining != 0 && b.available > 0 {
		return
	}
	gs.setRemaining(b.turnLength)
	gs.setCurrent((b.current + 1) % len(b.players))
	gs.history = gs.history[:0] // No undo across turns
}

// detectDefeated marks the current player defeated when moves remain but no
// cell is available.
func (gs *GameState) detectDefeated(avail int) {
	b := gs.board
	if avail != 0 || b.remaining == 0 {
		return
	}
	p := b.CurrentPlayer()
	if b.defeated[p.ID] {
		return
	}
	b.defeated[p.ID] = true
	gs.notify(DefeatedPlayersChanged)
}

// Snapshot returns a copy of the board for lock-free reading.
func (gs *GameState) Snapshot() *Board {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.board.copy()
}

func (gs *GameState) Width() int  { return gs.board.width }
func (gs *GameState) Height() int { return gs.board.height }

func (gs *GameState) TurnLength() int { return gs.board.turnLength }

func (gs *GameState) Players() []*Player { return gs.board.players }

// Cell returns a copy of the cell at (x,y) and false when off the board.
func (gs *GameState) Cell(x, y int) (Cell, bool) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	c := gs.board.At(x, y)
	if c == nil {
		return Cell{}, false
	}
	return *c, true
}

// Cells returns a copy of all cells in row-major order.
func (gs *GameState) Cells() []Cell {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	cells := make([]Cell, len(gs.board.cells))
	copy(cells, gs.board.cells)
	return cells
}

func (gs *GameState) CurrentPlayer() *Player {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.board.CurrentPlayer()
}

func (gs *GameState) RemainingMoves() int {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.board.remaining
}

func (gs *GameState) DefeatedPlayers() []*Player {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.board.DefeatedPlayers()
}

func (gs *GameState) IsPlayerDefeated(p *Player) bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.board.IsDefeated(p)
}

func (gs *GameState) AvailableCount() int {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.board.available
}

// CanUndo reports whether the current turn has a move to take back.
func (gs *GameState) CanUndo() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return len(gs.history) > 0
}

func (gs *GameState) IsFightStarted() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.board.IsFightStarted()
}

func (gs *GameState) IsGameOver() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.board.IsGameOver()
}

func (gs *GameState) Winner() *Player {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.board.Winner()
}
