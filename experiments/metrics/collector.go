package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth     int // Deepest completed search pass
	Nodes     int
	TableHits int
	Duration  time.Duration
}

type MoveMetric struct {
	Step   int
	Player int    // Player ID
	Action int
	State  uint64 // Hash of the state the action was chosen in
	SearchMetric
}

type GameMetric struct {
	StartingAgent int // Agent index that moved first
	Winner        int // Agent index
	Reason        string
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
}

// ThroughputRecord sums fixed-depth searches over a set of positions.
type ThroughputRecord struct {
	Depth     int
	Positions int
	Nodes     int
	Duration  time.Duration
}

func (r ThroughputRecord) NodesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Nodes) / r.Duration.Seconds()
}

// Collector gathers metrics of one search. The searching goroutine records while the
// host may read a snapshot with Complete at any time.
type Collector interface {
	Start()
	AddNode()
	AddTableHit()
	CompleteDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	startTime atomic.Int64 // Unix nanoseconds
	depth     atomic.Int32
	nodes     atomic.Int64
	tableHits atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime.Store(time.Now().UnixNano())
	m.depth.Store(0)
	m.nodes.Store(0)
	m.tableHits.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddTableHit() {
	m.tableHits.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:     int(m.depth.Load()),
		Nodes:     int(m.nodes.Load()),
		TableHits: int(m.tableHits.Load()),
		Duration:  time.Since(time.Unix(0, m.startTime.Load())),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                  {}
func (m *dummyCollector) AddNode()                {}
func (m *dummyCollector) AddTableHit()            {}
func (m *dummyCollector) CompleteDepth(depth int) {}
func (m *dummyCollector) Complete() SearchMetric  { return SearchMetric{} }
