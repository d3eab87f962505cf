// Package game implements the rules of the territory-capture game: a grid of
// cells claimed from a fixed base, a per-turn move budget, captures of enemy
// cells and detection of players that got cut off.
package game

import "errors"

const (
	MinWidth   = 10
	MinHeight  = 10
	MinPlayers = 2
)

// ErrInvalidConfig is returned by New when the board or the players violate the
// construction preconditions. The game cannot start.
var ErrInvalidConfig = errors.New("invalid game configuration")
