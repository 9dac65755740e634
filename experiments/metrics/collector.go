package metrics

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"mazerunner/game"
)

type SearchMetric struct {
	Depth       int           `json:"depth"`
	Duration    time.Duration `json:"duration"`
	Nodes       int           `json:"nodes"`
	Evaluations int           `json:"evaluations"` // Evaluations that ran a path search
	CacheHits   int           `json:"cache_hits"`
	Cutoffs     int           `json:"cutoffs"`
	FellBack    bool          `json:"fell_back"` // Decision came from the heuristic fallback instead of the search
}

type MoveMetric struct {
	Step   int           `json:"step"`
	Side   game.Side     `json:"side"`
	Skill  string        `json:"skill"`
	Target game.Position `json:"target"`
	Valid  bool          `json:"valid"` // The driver accepted the agent's suggestion as is
	SearchMetric
}

type GameMetric struct {
	ID          uuid.UUID     `json:"id"`
	Winner      game.Side     `json:"winner"`
	Rounds      int           `json:"rounds"`
	Walls       int           `json:"walls"`
	RunnerSteps int           `json:"runner_steps"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Duration    time.Duration `json:"duration"`
	TotalMoves  int           `json:"total_moves"`
}

type Collector interface {
	Start(depth int)
	AddNode()
	AddEvaluation(cached bool)
	AddCutoff()
	SetFellBack(value bool)
	Complete() SearchMetric
}

type collector struct {
	depth       int
	startTime   time.Time
	nodes       atomic.Int32
	evaluations atomic.Int32
	cacheHits   atomic.Int32
	cutoffs     atomic.Int32
	fellBack    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(depth int) {
	m.startTime = time.Now()
	m.depth = depth
	m.nodes.Store(0)
	m.evaluations.Store(0)
	m.cacheHits.Store(0)
	m.cutoffs.Store(0)
	m.fellBack.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation(cached bool) {
	if cached {
		m.cacheHits.Add(1)
		return
	}
	m.evaluations.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetFellBack(value bool) {
	m.fellBack.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
		CacheHits:   int(m.cacheHits.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
		FellBack:    m.fellBack.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)           {}
func (m *dummyCollector) AddNode()                  {}
func (m *dummyCollector) AddEvaluation(cached bool) {}
func (m *dummyCollector) AddCutoff()                {}
func (m *dummyCollector) SetFellBack(value bool)    {}
func (m *dummyCollector) Complete() SearchMetric    { return SearchMetric{} }
