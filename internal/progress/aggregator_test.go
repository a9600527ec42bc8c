package progress_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/progress"
)

func TestAggregator_Add(t *testing.T) {
	agg := progress.NewAggregator()

	agg.Add(10, 2)
	agg.Add(5, 0)

	snap := agg.Snapshot()
	assert.Equal(t, int64(15), snap.Completed)
	assert.Equal(t, int64(2), snap.Errors)
	assert.False(t, snap.StartedAt.IsZero())
}

func TestAggregator_ConcurrentAdds(t *testing.T) {
	agg := progress.NewAggregator()

	const goroutines = 50
	const addsPer = 200

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < addsPer; j++ {
				agg.Add(1, 0)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*addsPer), agg.Snapshot().Completed,
		"no update may be lost under concurrency")
}

func TestAggregator_SnapshotMonotonic(t *testing.T) {
	agg := progress.NewAggregator()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			agg.Add(1, 0)
			if i%3 == 0 {
				agg.Add(0, 1)
			}
		}
	}()

	var lastCompleted, lastErrors int64
	for {
		snap := agg.Snapshot()
		assert.GreaterOrEqual(t, snap.Completed, lastCompleted)
		assert.GreaterOrEqual(t, snap.Errors, lastErrors)
		lastCompleted, lastErrors = snap.Completed, snap.Errors

		select {
		case <-done:
			return
		default:
		}
	}
}

func TestAggregator_RateAndETA(t *testing.T) {
	agg := progress.NewAggregator()

	agg.Add(100, 0)
	time.Sleep(20 * time.Millisecond)

	rate := agg.Rate()
	assert.Greater(t, rate, 0.0)

	eta := agg.ETA(200)
	assert.Greater(t, eta, time.Duration(0))

	// Past the total, nothing remains.
	assert.Equal(t, time.Duration(0), agg.ETA(50))
	assert.Equal(t, time.Duration(0), agg.ETA(100))
}
