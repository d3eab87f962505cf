package agent

import (
	"math"

	"klop/game"
	"klop/searcher"

	"github.com/rs/zerolog/log"
)

// Decision is the next target of a player and how much of the route towards it
// to play before deciding again.
type Decision struct {
	Mode    Mode
	Target  game.Position
	MaxPath int
}

// Decide chooses the next target on board. It returns false when there is
// nothing left to go for.
func (p *Player) Decide(board *game.Board) (Decision, bool) {
	distances := searcher.EnemyDistances(board, p.player)

	if board.IsFightStarted() {
		target, ok := p.fight(board, distances)
		return Decision{Mode: Fighting, Target: target, MaxPath: FightPathLength}, ok
	}

	closest := distances.Min(board.Available())
	if closest != searcher.Unreached && float64(closest) < float64(board.RemainingMoves())*AttackThreshold {
		target, ok := p.enemyCellToAttack(board, distances)
		return Decision{Mode: Attacking, Target: target, MaxPath: AttackPathLength}, ok
	}

	target, ok := p.pattern.Next(board, p.player, distances)
	return Decision{Mode: Building, Target: target, MaxPath: BuildPathLength}, ok
}

// PreferredEnemy returns the enemy to go after: humans first, then the one with
// the most alive cells. It returns nil when every enemy is defeated.
func PreferredEnemy(board *game.Board, player *game.Player) *game.Player {
	enemies := board.Enemies(player)
	var humans []*game.Player
	for _, e := range enemies {
		if e.Human {
			humans = append(humans, e)
		}
	}
	if len(humans) > 0 {
		enemies = humans
	}

	var best *game.Player
	bestAlive := -1
	for _, e := range enemies {
		if alive := board.AliveCount(e); alive > bestAlive {
			best, bestAlive = e, alive
		}
	}
	return best
}

func (p *Player) fight(board *game.Board, distances searcher.Distances) (game.Position, bool) {
	enemy := PreferredEnemy(board, p.player)
	if enemy == nil {
		for _, c := range board.Cells() {
			if c.Owner == nil {
				return c.Position, true
			}
		}
		return game.Position{}, false
	}

	if target, ok := p.mostImportantCell(board, enemy); ok {
		return target, true
	}
	log.Debug().Msgf("%s found no cell cutting %s, falling back", p.player, enemy)
	return p.fallback(board, enemy, distances)
}

// mostImportantCell looks for the enemy cell in reach whose loss makes the
// enemy's route between the two bases the most expensive. A cell whose loss
// cuts the route entirely beats every other cell.
func (p *Player) mostImportantCell(board *game.Board, enemy *game.Player) (game.Position, bool) {
	pf := p.finder
	pf.Prepare(board, enemy)
	baseline := pf.Search(p.player.Base, enemy.Base)
	if !baseline.Found {
		return game.Position{}, false
	}

	var best game.Position
	bestDelta, found := 0.0, false
	for _, c := range board.Cells() {
		if !c.Available || c.Owner != enemy || c.State != game.Alive {
			continue
		}
		old := pf.SetCost(c.Position, searcher.Blocked)
		path := pf.Search(p.player.Base, enemy.Base)
		pf.SetCost(c.Position, old)

		delta := searcher.Blocked
		if path.Found {
			delta = path.Cost - baseline.Cost
		}
		if delta > bestDelta {
			best, bestDelta, found = c.Position, delta, true
		}
	}
	return best, found
}

// fallback is used when no capture hurts the enemy. Candidates are tried in
// order and skipped when no route leads to them.
func (p *Player) fallback(board *game.Board, enemy *game.Player, distances searcher.Distances) (game.Position, bool) {
	me := p.player
	fromBase := func(c *game.Cell) float64 { return c.Position.Distance(me.Base) }
	rush := p.finder.FindPath(board, me.Base, enemy.Base, me)

	candidates := []func() (game.Position, bool){
		func() (game.Position, bool) {
			for _, pos := range rush.Cells {
				if board.Cell(pos).Available {
					return pos, true
				}
			}
			return game.Position{}, false
		},
		func() (game.Position, bool) {
			return nearest(board.Cells(), func(c *game.Cell) bool {
				return c.Available && c.Owner != me
			}, func(c *game.Cell) float64 {
				if d := distances.At(c.Position); d != searcher.Unreached {
					return float64(d)
				}
				return math.Inf(1)
			})
		},
		func() (game.Position, bool) {
			return nearest(board.Cells(), func(c *game.Cell) bool {
				return c.IsEnemyOf(me) && c.State == game.Alive && hasAvailableNeighbor(board, c)
			}, fromBase)
		},
		func() (game.Position, bool) {
			return nearest(board.Cells(), func(c *game.Cell) bool {
				return c.IsEnemyOf(me) && c.State == game.Alive
			}, fromBase)
		},
		func() (game.Position, bool) {
			return p.randomAvailable(board)
		},
	}

	for i, candidate := range candidates {
		pos, ok := candidate()
		if !ok {
			continue
		}
		if !p.reachable(board, pos) {
			log.Debug().Msgf("%s rejected fallback %d at (%d,%d): no route", me, i, pos.X, pos.Y)
			continue
		}
		return pos, true
	}
	return game.Position{}, false
}

// enemyCellToAttack returns the enemy cell nearest to the own territory. When
// several are equally near, the one with the longest route to its owner's base
// wins.
func (p *Player) enemyCellToAttack(board *game.Board, distances searcher.Distances) (game.Position, bool) {
	var best game.Position
	bestLen, found := -1, false
	for _, pos := range nearestEnemyCells(board, distances) {
		owner := board.Cell(pos).Owner
		length := p.finder.FindPath(board, pos, owner.Base, p.player).Len()
		if length > bestLen {
			best, bestLen, found = pos, length, true
		}
	}
	return best, found
}

// nearestEnemyCells follows the distance field downhill from every available
// cell at the smallest distance and collects the enemy cells it ends in.
func nearestEnemyCells(board *game.Board, distances searcher.Distances) []game.Position {
	available := board.Available()
	closest := distances.Min(available)
	if closest == searcher.Unreached {
		return nil
	}

	var found []game.Position
	seen := make(map[game.Position]bool)
	var descend func(c *game.Cell)
	descend = func(c *game.Cell) {
		if seen[c.Position] {
			return
		}
		seen[c.Position] = true
		d := distances.At(c.Position)
		if d == 0 {
			found = append(found, c.Position)
			return
		}
		for _, n := range board.Neighbors(c) {
			if distances.At(n.Position) < d {
				descend(n)
			}
		}
	}
	for _, c := range available {
		if distances.At(c.Position) == closest {
			descend(c)
		}
	}
	return found
}

func (p *Player) reachable(board *game.Board, pos game.Position) bool {
	if board.Cell(pos).Available {
		return true
	}
	path := p.finder.FindPath(board, p.player.Base, pos, p.player, searcher.Inverted())
	return path.Found && path.Len() > 0
}

func (p *Player) randomAvailable(board *game.Board) (game.Position, bool) {
	available := board.Available()
	if len(available) == 0 {
		return game.Position{}, false
	}
	return available[p.rng.Intn(len(available))].Position, true
}

func hasAvailableNeighbor(board *game.Board, c *game.Cell) bool {
	for _, n := range board.Neighbors(c) {
		if n.Available {
			return true
		}
	}
	return false
}

// nearest returns the first cell matching keep with the smallest score.
func nearest(cells []game.Cell, keep func(c *game.Cell) bool, score func(c *game.Cell) float64) (game.Position, bool) {
	var best *game.Cell
	bestScore := 0.0
	for i := range cells {
		c := &cells[i]
		if !keep(c) {
			continue
		}
		if s := score(c); best == nil || s < bestScore {
			best, bestScore = c, s
		}
	}
	if best == nil {
		return game.Position{}, false
	}
	return best.Position, true
}
