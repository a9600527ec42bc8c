package reporter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/progress"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/reporter"
)

func TestReporterStartStop(t *testing.T) {
	agg := progress.NewAggregator()
	rep := reporter.New("run-test", 100, agg, nil, nil)

	rep.Start(1)
	agg.Add(10, 1)
	time.Sleep(50 * time.Millisecond)

	// Stop is idempotent and always emits a final update without
	// panicking, even with no hub attached.
	rep.Stop()
	rep.Stop()

	snap := agg.Snapshot()
	assert.Equal(t, int64(10), snap.Completed)
	assert.Equal(t, int64(1), snap.Errors)
}

func TestReporterZeroIntervalDefaults(t *testing.T) {
	agg := progress.NewAggregator()
	rep := reporter.New("run-test", 10, agg, nil, nil)

	rep.Start(0)
	rep.Stop()
}
