package game

// ChangeKind names the observable property of a GameState that changed.
type ChangeKind int

const (
	CellsChanged ChangeKind = iota
	RemainingMovesChanged
	CurrentPlayerChanged
	DefeatedPlayersChanged
)

func (k ChangeKind) String() string {
	switch k {
	case CellsChanged:
		return "cells"
	case RemainingMovesChanged:
		return "remaining_moves"
	case CurrentPlayerChanged:
		return "current_player"
	case DefeatedPlayersChanged:
		return "defeated_players"
	default:
		return "unknown"
	}
}

// Change carries the values of the turn bookkeeping right after the change.
type Change struct {
	Kind           ChangeKind
	CurrentPlayer  *Player
	RemainingMoves int
	Defeated       []*Player
}

// Listener receives changes after the GameState lock has been released, so it
// may read the state or submit moves.
type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

func (b *Board) change(kind ChangeKind) Change {
	return Change{
		Kind:           kind,
		CurrentPlayer:  b.CurrentPlayer(),
		RemainingMoves: b.remaining,
		Defeated:       b.DefeatedPlayers(),
	}
}
