package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes a single search call.
type SearchMetric struct {
	Depth    int
	Workers  int
	Duration time.Duration
	Nodes    int64
	Leaves   int64
	Cutoffs  int64
	Passes   int64
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string // empty for a forced pass
	SearchMetric
}

type GameMetric struct {
	Black      string // Agent name
	White      string // Agent name
	Winner     string // "black", "white" or "empty" for a tie
	BlackScore int
	WhiteScore int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Passes     int
}

// Collector counts search events. Counters are atomic so parallel root
// workers may share one collector.
type Collector interface {
	Start(depth, workers int)
	AddNode()
	AddLeaf()
	AddCutoff()
	AddPass()
	Complete() SearchMetric
}

type collector struct {
	depth     int
	workers   int
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
	passes    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(depth, workers int) {
	m.startTime = time.Now()
	m.depth = depth
	m.workers = workers
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
	m.passes.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddPass() {
	m.passes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:    m.depth,
		Workers:  m.workers,
		Duration: time.Since(m.startTime),
		Nodes:    m.nodes.Load(),
		Leaves:   m.leaves.Load(),
		Cutoffs:  m.cutoffs.Load(),
		Passes:   m.passes.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, workers int) {}
func (m *dummyCollector) AddNode()                 {}
func (m *dummyCollector) AddLeaf()                 {}
func (m *dummyCollector) AddCutoff()               {}
func (m *dummyCollector) AddPass()                 {}
func (m *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
