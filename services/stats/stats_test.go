package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordDispatch(t *testing.T) {
	t.Run("increments total and per-command counters", func(t *testing.T) {
		collector := NewCollector([]string{"truth", "dare"})

		collector.RecordDispatch("truth")
		collector.RecordDispatch("truth")
		collector.RecordDispatch("dare")

		snapshot := collector.Snapshot()
		assert.Equal(t, int64(3), snapshot.TotalThisMinute)
		assert.Equal(t, int64(3), snapshot.TotalLifetime)
		assert.Equal(t, int64(2), snapshot.CommandsMinute["truth"])
		assert.Equal(t, int64(1), snapshot.CommandsMinute["dare"])
	})

	t.Run("initializes zero counters for registered commands", func(t *testing.T) {
		collector := NewCollector([]string{"truth", "dare"})

		snapshot := collector.Snapshot()
		assert.Equal(t, int64(0), snapshot.CommandsLifetime["truth"])
		assert.Equal(t, int64(0), snapshot.CommandsLifetime["dare"])
	})
}

func TestCollector_Register(t *testing.T) {
	t.Run("seeds zero counters for late-registered commands", func(t *testing.T) {
		collector := NewCollector(nil)
		collector.Register([]string{"truth", "ping"})

		snapshot := collector.Snapshot()
		assert.Contains(t, snapshot.CommandsLifetime, "truth")
		assert.Contains(t, snapshot.CommandsLifetime, "ping")
		assert.Equal(t, int64(0), snapshot.CommandsLifetime["truth"])
		assert.Equal(t, int64(0), snapshot.CommandsMinute["ping"])
	})

	t.Run("does not reset counters that already have counts", func(t *testing.T) {
		collector := NewCollector(nil)
		collector.RecordDispatch("truth")
		collector.Register([]string{"truth", "ping"})

		snapshot := collector.Snapshot()
		assert.Equal(t, int64(1), snapshot.CommandsLifetime["truth"])
		assert.Equal(t, int64(0), snapshot.CommandsLifetime["ping"])
	})
}

func TestCollector_Flush(t *testing.T) {
	t.Run("resets minute counters and keeps lifetime counts", func(t *testing.T) {
		collector := NewCollector([]string{"truth"})

		for range 7 {
			collector.RecordDispatch("truth")
		}
		collector.Flush()

		snapshot := collector.Snapshot()
		assert.Equal(t, int64(0), snapshot.TotalThisMinute)
		assert.Equal(t, int64(0), snapshot.CommandsMinute["truth"])
		assert.Equal(t, int64(7), snapshot.TotalLifetime)
		assert.Equal(t, int64(7), snapshot.CommandsLifetime["truth"])
		assert.Equal(t, int64(1), snapshot.MinutesPassed)
	})

	t.Run("recomputes the rolling average across minutes", func(t *testing.T) {
		collector := NewCollector([]string{"truth"})

		// minute 1: 6 invocations
		for range 6 {
			collector.RecordDispatch("truth")
		}
		collector.Flush()
		require.True(t, collector.Snapshot().AveragePerMinute.Equal(decimal.NewFromInt(6)))

		// minute 2: 2 invocations -> average (6*1 + 2) / 2 = 4
		collector.RecordDispatch("truth")
		collector.RecordDispatch("truth")
		collector.Flush()
		assert.True(t, collector.Snapshot().AveragePerMinute.Equal(decimal.NewFromInt(4)))

		// minute 3: 1 invocation -> average (4*2 + 1) / 3 = 3
		collector.RecordDispatch("truth")
		collector.Flush()
		assert.True(t, collector.Snapshot().AveragePerMinute.Equal(decimal.NewFromInt(3)))
	})

	t.Run("idle minutes pull the average down", func(t *testing.T) {
		collector := NewCollector([]string{"truth"})

		for range 4 {
			collector.RecordDispatch("truth")
		}
		collector.Flush()
		collector.Flush()

		assert.True(t, collector.Snapshot().AveragePerMinute.Equal(decimal.NewFromInt(2)))
	})
}

func TestCollector_SuccessFailureTallies(t *testing.T) {
	t.Run("tallies are independent of invocation counts", func(t *testing.T) {
		collector := NewCollector([]string{"truth"})

		collector.RecordDispatch("truth")
		collector.RecordFailure()
		collector.RecordDispatch("truth")
		collector.RecordSuccess()

		snapshot := collector.Snapshot()
		assert.Equal(t, int64(2), snapshot.TotalLifetime)
		assert.Equal(t, int64(1), snapshot.Succeeded)
		assert.Equal(t, int64(1), snapshot.Failed)
	})
}
