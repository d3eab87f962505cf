package searcher

import (
	"container/heap"

	"klop/game"
)

// Path is the outcome of a search. Cells run from the start towards the finish
// and leave out the cells the searching player already owns.
type Path struct {
	Cells []game.Position
	Cost  float64
	Found bool
}

func (p Path) Len() int { return len(p.Cells) }

// Prefix returns the first n cells of the path, or all of them when n is not
// smaller than the path.
func (p Path) Prefix(n int) []game.Position {
	if n < 0 || n >= len(p.Cells) {
		return p.Cells
	}
	return p.Cells[:n]
}

type Option func(o *options)

type options struct {
	inverted bool
}

// Inverted runs the search from the finish back to the start. The returned
// path is still ordered from the start.
func Inverted() Option {
	return func(o *options) {
		o.inverted = true
	}
}

// PathFinder runs A* over a board. Costs are filled in by Prepare and can be
// overridden cell by cell with SetCost before calling Search, which is how
// callers ask what a route would cost without a given cell. A PathFinder is not
// safe for concurrent use.
type PathFinder struct {
	width  int
	height int
	nodes  []node
	open   openSet
	gen    uint32
	board  *game.Board
	player *game.Player
	stats  counters
}

func NewPathFinder() *PathFinder {
	return &PathFinder{}
}

// Prepare computes the cost of every cell of board for player.
func (pf *PathFinder) Prepare(board *game.Board, player *game.Player) {
	w, h := board.Width(), board.Height()
	if w != pf.width || h != pf.height {
		pf.width, pf.height = w, h
		pf.nodes = make([]node, w*h)
		pf.open = openSet{nodes: pf.nodes, items: make([]int, 0, w+h)}
		pf.gen = 0
	}
	pf.board = board
	pf.player = player

	cells := board.Cells()
	for i := range cells {
		pf.nodes[i].cost = CellCost(board, &cells[i], player)
	}
}

// Cost returns the prepared cost of the cell at pos.
func (pf *PathFinder) Cost(pos game.Position) float64 {
	return pf.nodes[pf.board.Index(pos)].cost
}

// SetCost overrides the prepared cost of the cell at pos and returns the cost
// it replaced.
func (pf *PathFinder) SetCost(pos game.Position, cost float64) float64 {
	n := &pf.nodes[pf.board.Index(pos)]
	old := n.cost
	n.cost = cost
	return old
}

// Search finds the cheapest route from start to finish on the prepared costs.
// Blocked cells are never entered, except for the finish itself.
func (pf *PathFinder) Search(start, finish game.Position, opts ...Option) Path {
	if pf.board == nil {
		panic("searcher: Search called before Prepare")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	from, to := pf.board.Index(start), pf.board.Index(finish)
	if o.inverted {
		from, to = to, from
	}

	pf.stats.searches.Add(1)
	pf.gen++
	if pf.gen == 0 {
		// Stamps wrapped around, forget every node
		for i := range pf.nodes {
			pf.nodes[i].open, pf.nodes[i].closed = 0, 0
		}
		pf.gen = 1
	}

	tx, ty := to%pf.width, to/pf.width
	step := pf.cheapestStep(from)
	root := &pf.nodes[from]
	root.parent = -1
	root.g = 0
	root.h = estimate(from%pf.width, from/pf.width, tx, ty, step)
	root.near = distance(from%pf.width, from/pf.width, tx, ty)
	root.open = pf.gen
	pf.open.items = pf.open.items[:0]
	heap.Push(&pf.open, from)

	var buf [8]int
	for pf.open.Len() > 0 {
		i := heap.Pop(&pf.open).(int)
		cur := &pf.nodes[i]
		if i == to {
			pf.stats.found.Add(1)
			return pf.path(from, to, o.inverted)
		}
		cur.closed = pf.gen
		pf.stats.expanded.Add(1)

		for _, j := range pf.board.NeighborIndexes(i, buf[:0]) {
			n := &pf.nodes[j]
			if n.closed == pf.gen {
				continue
			}
			cost := n.cost
			if IsBlocked(cost) {
				if j != to {
					continue
				}
				cost = 0
			}
			g := cur.g + cost
			if n.open == pf.gen {
				if g >= n.g {
					continue
				}
				n.parent = i
				n.g = g
				heap.Fix(&pf.open, n.slot)
				continue
			}
			n.parent = i
			n.g = g
			n.h = estimate(j%pf.width, j/pf.width, tx, ty, step)
			n.near = distance(j%pf.width, j/pf.width, tx, ty)
			n.open = pf.gen
			heap.Push(&pf.open, j)
		}
	}
	return Path{}
}

// cheapestStep returns the lowest finite cost of entering any node but the
// root. Scaling the estimate by it keeps the estimate from exceeding the real
// cost, so the first route to reach the goal is the cheapest. With a free cell
// on the board the search degrades to Dijkstra.
func (pf *PathFinder) cheapestStep(root int) float64 {
	cheapest := Blocked
	for i := range pf.nodes {
		if c := pf.nodes[i].cost; i != root && c < cheapest {
			cheapest = c
		}
	}
	if IsBlocked(cheapest) {
		return 0
	}
	return cheapest
}

// path walks back from the reached node. When the search ran backwards, the
// walk already starts at the caller's start.
func (pf *PathFinder) path(from, to int, inverted bool) Path {
	var cells []game.Position
	for i := to; i != -1; i = pf.nodes[i].parent {
		c := &pf.board.Cells()[i]
		if c.Owner != pf.player {
			cells = append(cells, c.Position)
		}
		if i == from {
			break
		}
	}
	if !inverted {
		for l, r := 0, len(cells)-1; l < r; l, r = l+1, r-1 {
			cells[l], cells[r] = cells[r], cells[l]
		}
	}
	return Path{Cells: cells, Cost: pf.nodes[to].g, Found: true}
}

// FindPath prepares the costs of board for player and searches for a route
// from start to finish.
func (pf *PathFinder) FindPath(board *game.Board, start, finish game.Position, player *game.Player, opts ...Option) Path {
	pf.Prepare(board, player)
	return pf.Search(start, finish, opts...)
}

func (pf *PathFinder) Stats() Stats {
	return pf.stats.snapshot()
}
