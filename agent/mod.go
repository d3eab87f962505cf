// Package agent implements the computer player. Each turn it looks at a
// snapshot of the board, picks a target cell and walks the cheapest route
// towards it until the turn is used up.
package agent

import "math"

// AttackThreshold is the share of the remaining moves within which an enemy
// cell has to be for the player to go for it instead of building.
const AttackThreshold = 0.4

// Longest prefix of a route played before the next target is chosen.
const (
	BuildPathLength  = 2
	FightPathLength  = 1
	AttackPathLength = math.MaxInt
)

type Mode int

const (
	// Building grows the territory in a pattern while the enemy is far away.
	Building Mode = iota
	// Attacking heads for the nearest enemy cell.
	Attacking
	// Fighting goes for the cell that hurts the enemy's connections the most.
	Fighting
)

func (m Mode) String() string {
	switch m {
	case Building:
		return "building"
	case Attacking:
		return "attacking"
	case Fighting:
		return "fighting"
	default:
		return "unknown"
	}
}
