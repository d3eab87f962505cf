package metrics

import (
	"sync"
	"time"
)

// DecisionMetric describes how a computer player chose one target.
type DecisionMetric struct {
	Player     int // Player ID
	Mode       string
	TargetX    int
	TargetY    int
	Found      bool
	MaxPath    int
	PathLength int
	Searches   int64
	Expanded   int64
	StartTime  time.Time
	Duration   time.Duration
}

type GameMetric struct {
	ID         string
	Players    int
	Width      int
	Height     int
	TurnLength int
	Winner     string // Player name, empty without a winner
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Turns      int
}

type Collector interface {
	Start(player int)
	SetDecision(mode string, x, y int, found bool, maxPath int)
	SetPath(length int, searches, expanded int64)
	Complete() DecisionMetric

	// Decisions returns every completed metric so far.
	Decisions() []DecisionMetric
}

type collector struct {
	current   DecisionMetric
	mu        sync.Mutex
	completed []DecisionMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(player int) {
	m.current = DecisionMetric{Player: player, StartTime: time.Now()}
}

func (m *collector) SetDecision(mode string, x, y int, found bool, maxPath int) {
	m.current.Mode = mode
	m.current.TargetX = x
	m.current.TargetY = y
	m.current.Found = found
	m.current.MaxPath = maxPath
}

func (m *collector) SetPath(length int, searches, expanded int64) {
	m.current.PathLength = length
	m.current.Searches = searches
	m.current.Expanded = expanded
}

func (m *collector) Complete() DecisionMetric {
	metric := m.current
	metric.Duration = time.Since(metric.StartTime)

	m.mu.Lock()
	m.completed = append(m.completed, metric)
	m.mu.Unlock()
	return metric
}

func (m *collector) Decisions() []DecisionMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DecisionMetric, len(m.completed))
	copy(out, m.completed)
	return out
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(player int)                                           {}
func (m *dummyCollector) SetDecision(mode string, x, y int, found bool, maxPath int) {}
func (m *dummyCollector) SetPath(length int, searches, expanded int64)               {}
func (m *dummyCollector) Complete() DecisionMetric                                   { return DecisionMetric{} }
func (m *dummyCollector) Decisions() []DecisionMetric                                { return nil }
