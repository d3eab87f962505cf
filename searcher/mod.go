// Package searcher scores cells for a player and searches cheap routes
// across the board.
package searcher

import "math"

// Cost of entering a cell, per kind of cell.
const (
	EatOwnBaseCost   = 5.0
	EatEnemyBaseCost = 8.0
	EatCost          = 35.0
	EmptyCost        = 100.0
	NearEnemyCost    = 140.0
	NearBaseCost     = 11000.0

	// OwnedBonus is divided by the distance to each owned neighbour of a free
	// cell and added to its cost.
	OwnedBonus = 10.0
)

// Blocked is the cost of a cell that cannot be entered.
var Blocked = math.Inf(1)

func IsBlocked(cost float64) bool {
	return math.IsInf(cost, 1)
}
