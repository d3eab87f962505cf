package engine

import (
	"context"
	"sync"
	"time"

	"klop/agent"
	"klop/experiments/metrics"
	"klop/game"
	"klop/meta"
	"klop/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Local runs computer players against a GameState in the same process. Every
// agent plays on its own goroutine and is woken whenever the state changes;
// humans submit their moves through MakeTurn.
type Local struct {
	State    *game.GameState
	Agents   []*agent.Player
	maxTurns int

	wakes []chan struct{}
	over  chan struct{}

	mu     sync.Mutex
	runCtx context.Context
	turn   context.Context
	cancel context.CancelFunc
	moves  int
	turns  int
}

var _ Engine = (*Local)(nil)

type Option func(*Local)

// WithMaxTurns stops Run after n turns. Zero or less plays until the game is over.
func WithMaxTurns(n int) Option {
	return func(e *Local) {
		e.maxTurns = n
	}
}

func LocalEngine(state *game.GameState, agents []*agent.Player, options ...Option) *Local {
	if state == nil {
		panic("engine needs a game")
	}
	seen := map[*game.Player]bool{}
	for _, a := range agents {
		if seen[a.Player()] {
			panic("two agents play for " + a.Player().String())
		}
		seen[a.Player()] = true
		if !utils.Contains(state.Players(), a.Player()) {
			panic(a.Player().String() + " does not play this game")
		}
	}

	e := &Local{
		State:    state,
		Agents:   agents,
		maxTurns: meta.MAX_TURNS,
		wakes:    make([]chan struct{}, len(agents)),
		over:     make(chan struct{}, 1),
		runCtx:   context.Background(),
	}
	for i := range e.wakes {
		e.wakes[i] = make(chan struct{}, 1)
	}
	for _, option := range options {
		option(e)
	}
	e.turn, e.cancel = context.WithCancel(e.runCtx)
	return e
}

// Run plays until the game is over, the turn limit is reached or ctx is
// cancelled. Agents are stopped before Run returns.
func (e *Local) Run(ctx context.Context) (metrics.GameMetric, error) {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	e.mu.Lock()
	e.cancel()
	e.runCtx = ctx
	e.turn, e.cancel = context.WithCancel(ctx)
	e.moves, e.turns = 0, 0
	e.mu.Unlock()
	select {
	case <-e.over:
	default:
	}

	metric := metrics.GameMetric{
		ID:         uuid.New().String(),
		Players:    len(e.State.Players()),
		Width:      e.State.Width(),
		Height:     e.State.Height(),
		TurnLength: e.State.TurnLength(),
		StartTime:  time.Now(),
	}

	unsubscribe := e.State.Subscribe(e.observe)
	defer unsubscribe()

	var wg sync.WaitGroup
	for i, a := range e.Agents {
		wg.Add(1)
		go e.play(ctx, &wg, a, e.wakes[i])
	}

	log.Info().Msgf("%s is starting", e.State.CurrentPlayer())
	e.wake()
	if e.State.IsGameOver() {
		e.finish()
	}

	var err error
	select {
	case <-e.over:
	case <-ctx.Done():
		err = ctx.Err()
	}
	stop()
	wg.Wait()

	metric.EndTime = time.Now()
	metric.Duration = metric.EndTime.Sub(metric.StartTime)
	if winner := e.State.Winner(); winner != nil {
		metric.Winner = winner.Name
		log.Info().Msgf("%s wins", winner)
	}
	e.mu.Lock()
	metric.TotalMoves, metric.Turns = e.moves, e.turns
	e.mu.Unlock()
	return metric, err
}

func (e *Local) observe(c game.Change) {
	e.mu.Lock()
	switch c.Kind {
	case game.CellsChanged:
		e.moves++
	case game.CurrentPlayerChanged:
		e.turns++
	}
	limited := e.maxTurns > 0 && e.turns >= e.maxTurns
	e.mu.Unlock()

	if c.Kind == game.CurrentPlayerChanged {
		log.Debug().Msgf("%s is to move", c.CurrentPlayer)
		e.wake()
	}
	if limited || e.State.IsGameOver() {
		e.finish()
	}
}

func (e *Local) finish() {
	select {
	case e.over <- struct{}{}:
	default:
	}
}

func (e *Local) wake() {
	for _, ch := range e.wakes {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (e *Local) play(ctx context.Context, wg *sync.WaitGroup, a *agent.Player, wake <-chan struct{}) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-wake:
		}
		if e.State.CurrentPlayer() != a.Player() {
			continue
		}

		e.mu.Lock()
		turn := e.turn
		e.mu.Unlock()
		if err := a.PlayTurn(turn, e.State); err != nil && ctx.Err() == nil {
			log.Debug().Msgf("%s turn interrupted: %v", a.Player(), err)
		}
	}
}

// Reset starts a new game. Turns in progress are cancelled, and a move planned
// on the previous board is rejected by the state even if it races the reset.
func (e *Local) Reset() {
	e.mu.Lock()
	e.cancel()
	e.turn, e.cancel = context.WithCancel(e.runCtx)
	e.mu.Unlock()

	e.State.Reset()
	e.mu.Lock()
	e.moves, e.turns = 0, 0
	e.mu.Unlock()
	log.Info().Msg("game reset")
}

func (e *Local) agentFor(p *game.Player) *agent.Player {
	for _, a := range e.Agents {
		if a.Player() == p {
			return a
		}
	}
	return nil
}

// MakeTurn plays (x,y) for the current player if that player is human.
func (e *Local) MakeTurn(x, y int) bool {
	current := e.State.CurrentPlayer()
	if e.agentFor(current) != nil {
		return false
	}
	return e.State.MakeTurnAs(current, game.Position{X: x, Y: y})
}

// UndoTurn takes back the last move of a human current player.
func (e *Local) UndoTurn() bool {
	current := e.State.CurrentPlayer()
	if e.agentFor(current) != nil {
		return false
	}
	if !e.State.UndoTurnAs(current) {
		return false
	}
	e.mu.Lock()
	// The undo itself was counted as a board change
	e.moves -= 2
	e.mu.Unlock()
	return true
}
