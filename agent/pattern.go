package agent

import (
	"klop/game"
	"klop/searcher"
	"klop/utils"
)

// Pattern picks where to grow while no enemy is in reach.
type Pattern interface {
	Name() string
	Next(board *game.Board, player *game.Player, distances searcher.Distances) (game.Position, bool)
}

// FrontierPattern grows towards the enemy and keeps the ring around the own
// base free. Among the free cells it can take, it picks the one closest to an
// enemy; ties go to the cell farther from the own base, then to the first cell
// in row order.
type FrontierPattern struct{}

func (FrontierPattern) Name() string { return "frontier" }

func (FrontierPattern) Next(board *game.Board, player *game.Player, distances searcher.Distances) (game.Position, bool) {
	free := utils.Filter(board.Available(), func(c *game.Cell) bool { return c.State == game.Free })
	open := utils.Filter(free, func(c *game.Cell) bool { return !player.IsNearBase(c.Position) })
	if len(open) == 0 {
		open = free
	}

	var best *game.Cell
	bestDist, bestSpread := 0, 0.0
	for _, c := range open {
		d := distances.At(c.Position)
		if d == searcher.Unreached {
			d = board.Width() + board.Height()
		}
		spread := c.Position.Distance(player.Base)
		if best == nil || d < bestDist || (d == bestDist && spread > bestSpread) {
			best, bestDist, bestSpread = c, d, spread
		}
	}
	if best == nil {
		return game.Position{}, false
	}
	return best.Position, true
}
