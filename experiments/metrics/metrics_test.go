package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent nodes", func(t *testing.T) {
		c := NewCollector()
		c.Start()

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddNode()
				}
				c.AddTableHit()
			}()
		}
		wg.Wait()
		c.CompleteDepth(5)

		m := c.Complete()
		require.Equal(t, 400, m.Nodes)
		require.Equal(t, 4, m.TableHits)
		require.Equal(t, 5, m.Depth)
		require.Positive(t, m.Duration)
	})

	t.Run("start resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.AddNode()
		c.CompleteDepth(3)

		c.Start()

		m := c.Complete()
		require.Zero(t, m.Nodes)
		require.Zero(t, m.Depth)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start()
		c.AddNode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})

	t.Run("throughput of an empty run is zero", func(t *testing.T) {
		require.Zero(t, ThroughputRecord{Nodes: 10}.NodesPerSecond())
		require.Equal(t, 20.0, ThroughputRecord{Nodes: 10, Duration: 500 * time.Millisecond}.NodesPerSecond())
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "unit")
	require.NoError(t, err)

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID: 1, Agent1: 3, Agent2: 4,
			GameMetric: GameMetric{StartingAgent: 1, Winner: 0, Reason: "isolated", StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 41},
		}})
		require.NoError(t, err)

		f, err := os.Open(filepath.Join(w.Dir(), "game_records.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)

		require.Len(t, rows, 2)
		require.Equal(t, "starting_agent", rows[0][3])
		require.Equal(t, []string{"1", "3", "4", "1", "0", "isolated", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "41"}, rows[1])
	})

	t.Run("move records store the state hash in hex", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{Step: 3, Player: 0, Action: 25, State: 0xff, SearchMetric: SearchMetric{Depth: 4}}}})
		require.NoError(t, err)

		f, err := os.Open(filepath.Join(w.Dir(), "move_records.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)

		require.Equal(t, "ff", rows[1][4])
		require.Equal(t, "4", rows[1][5])
	})

	t.Run("setup computes the duration", func(t *testing.T) {
		start := time.Now()
		err := w.WriteSetup(Setup{Name: "unit", Matchups: [][2]int{{0, 1}}, StartTime: start, EndTime: start.Add(time.Minute)})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(w.Dir(), "setup.json"))
		require.NoError(t, err)
		var setup Setup
		require.NoError(t, json.Unmarshal(data, &setup))
		require.Equal(t, time.Minute, setup.Duration)
		require.Equal(t, [][2]int{{0, 1}}, setup.Matchups)
	})
}
