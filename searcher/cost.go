package searcher

import "klop/game"

// CellCost returns what it costs player to take cell. Own cells are free, dead
// cells and bases are blocked. Capturing is cheaper than expanding, and cheaper
// still next to a base. Free cells next to the own base or next to another
// player's cells are penalised, other free cells cost a bit more the closer
// they are to own territory.
func CellCost(board *game.Board, cell *game.Cell, player *game.Player) float64 {
	if cell.Owner == player {
		return 0
	}

	switch cell.State {
	case game.Dead, game.Base:
		return Blocked
	case game.Alive:
		if player.IsNearBase(cell.Position) {
			return EatOwnBaseCost
		}
		for _, p := range board.Players() {
			if p != player && p.IsNearBase(cell.Position) {
				return EatEnemyBaseCost
			}
		}
		return EatCost
	}

	if player.IsNearBase(cell.Position) {
		return NearBaseCost
	}
	bonus := 0.0
	for _, n := range board.Neighbors(cell) {
		if n.Owner == nil {
			continue
		}
		if n.Owner != player {
			return NearEnemyCost
		}
		bonus += OwnedBonus / n.Position.Distance(cell.Position)
	}
	return EmptyCost + bonus
}
