package searcher

import "sync/atomic"

// Stats counts the work done by a PathFinder since it was created.
type Stats struct {
	Searches int64
	Expanded int64
	Found    int64
}

type counters struct {
	searches atomic.Int64
	expanded atomic.Int64
	found    atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Searches: c.searches.Load(),
		Expanded: c.expanded.Load(),
		Found:    c.found.Load(),
	}
}

// Sub returns the work done between an earlier snapshot and s.
func (s Stats) Sub(earlier Stats) Stats {
	return Stats{
		Searches: s.Searches - earlier.Searches,
		Expanded: s.Expanded - earlier.Expanded,
		Found:    s.Found - earlier.Found,
	}
}
