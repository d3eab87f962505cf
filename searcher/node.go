package searcher

import "math"

// node is the search record of one cell. Nodes live in a flat arena indexed
// like the board's cells and are reused between searches: a node counts as
// open or closed only when its stamp equals the generation of the running
// search.
type node struct {
	parent int
	g      float64 // Cost from the search root
	h      float64 // Lower bound of the cost left to the goal
	near   float64 // Straight-line distance to the goal, breaks ties
	cost   float64 // Cost of entering the node
	open   uint32
	closed uint32
	slot   int // Position in the open set
}

func (n *node) f() float64 {
	return n.g + n.h
}

// openSet is a binary heap of node indexes ordered by f, then straight-line
// distance to the goal, then index.
// It implements heap.Interface.
type openSet struct {
	nodes []node
	items []int
}

func (s *openSet) Len() int { return len(s.items) }

func (s *openSet) Less(i, j int) bool {
	a, b := &s.nodes[s.items[i]], &s.nodes[s.items[j]]
	if fa, fb := a.f(), b.f(); fa != fb {
		return fa < fb
	}
	if a.near != b.near {
		return a.near < b.near
	}
	return s.items[i] < s.items[j]
}

func (s *openSet) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.nodes[s.items[i]].slot = i
	s.nodes[s.items[j]].slot = j
}

func (s *openSet) Push(x any) {
	i := x.(int)
	s.nodes[i].slot = len(s.items)
	s.items = append(s.items, i)
}

func (s *openSet) Pop() any {
	last := len(s.items) - 1
	i := s.items[last]
	s.items = s.items[:last]
	s.nodes[i].slot = -1
	return i
}

// estimate returns a lower bound of the cost of reaching (tx,ty) from (x,y)
// when no cell costs less than step. Every cell between the two is entered at
// least once; the goal itself may be blocked and entered for free.
func estimate(x, y, tx, ty int, step float64) float64 {
	between := max(abs(x-tx), abs(y-ty)) - 1
	if between <= 0 {
		return 0
	}
	return float64(between) * step
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func distance(x1, y1, x2, y2 int) float64 {
	dx := float64(x1 - x2)
	dy := float64(y1 - y2)
	return math.Sqrt(dx*dx + dy*dy)
}
