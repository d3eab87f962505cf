package agent

import (
	"sync"
	"time"

	"klop/experiments/metrics"
	"klop/game"
	"klop/searcher"

	"golang.org/x/exp/rand"
)

type Option func(p *Player)

// WithDelay pauses before every move.
func WithDelay(delay time.Duration) Option {
	return func(p *Player) {
		if delay > 0 {
			p.delay = delay
		}
	}
}

func WithPattern(pattern Pattern) Option {
	return func(p *Player) {
		if pattern != nil {
			p.pattern = pattern
		}
	}
}

// WithSeed seeds the random choice of a cell when nothing better is left.
func WithSeed(seed uint64) Option {
	return func(p *Player) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(p *Player) {
		if collector != nil {
			p.metrics = collector
		}
	}
}

// Player plays the turns of one game.Player. A Player must only be driven by
// one goroutine at a time.
type Player struct {
	player  *game.Player
	delay   time.Duration
	pattern Pattern
	rng     *rand.Rand
	finder  *searcher.PathFinder
	metrics metrics.Collector

	mu        sync.Mutex
	decisions int
}

func New(player *game.Player, options ...Option) *Player {
	if player == nil {
		panic("agent needs a game player")
	}
	p := &Player{ // Default values
		player:  player,
		pattern: FrontierPattern{},
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		finder:  searcher.NewPathFinder(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Player returns the game player this agent moves for.
func (p *Player) Player() *game.Player { return p.player }

func (p *Player) Delay() time.Duration { return p.delay }

func (p *Player) Pattern() Pattern { return p.pattern }

// Decisions returns how many targets the player has chosen so far.
func (p *Player) Decisions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.decisions
}

func (p *Player) Metrics() metrics.Collector { return p.metrics }
