package metrics

import (
	"testing"
	"time"
)

func TestIncrementTaskCreated(t *testing.T) {
	m := getTestMetrics()

	initial := getCounterValue(t, m.TaskCreatedTotal)
	m.IncrementTaskCreated()

	if got := getCounterValue(t, m.TaskCreatedTotal); got != initial+1 {
		t.Errorf("expected counter %f, got %f", initial+1, got)
	}
}

func TestIncrementTaskMoved(t *testing.T) {
	m := getTestMetrics()

	initial := getCounterValue(t, m.TaskMovedTotal)
	m.IncrementTaskMoved()
	m.IncrementTaskMoved()

	if got := getCounterValue(t, m.TaskMovedTotal); got != initial+2 {
		t.Errorf("expected counter %f, got %f", initial+2, got)
	}
}

func TestIncrementAuditWriteFailure(t *testing.T) {
	m := getTestMetrics()

	initial := getCounterValue(t, m.AuditWriteFailuresTotal)
	m.IncrementAuditWriteFailure()

	if got := getCounterValue(t, m.AuditWriteFailuresTotal); got != initial+1 {
		t.Errorf("expected counter %f, got %f", initial+1, got)
	}
}

func TestSetTasksTotal(t *testing.T) {
	m := getTestMetrics()

	tests := []struct {
		name  string
		count int64
	}{
		{"zero tasks", 0},
		{"one task", 1},
		{"many tasks", 42},
		{"large board", 1000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetTasksTotal(tt.count)
			if got := getGaugeValue(t, m.TasksTotal); got != float64(tt.count) {
				t.Errorf("expected gauge %d, got %f", tt.count, got)
			}
		})
	}
}

func TestSetBoardsTotal(t *testing.T) {
	m := getTestMetrics()

	m.SetBoardsTotal(7)
	if got := getGaugeValue(t, m.BoardsTotal); got != 7 {
		t.Errorf("expected gauge 7, got %f", got)
	}

	m.SetBoardsTotal(3)
	if got := getGaugeValue(t, m.BoardsTotal); got != 3 {
		t.Errorf("expected gauge 3, got %f", got)
	}
}

func TestRecordCacheHitAndMiss(t *testing.T) {
	m := getTestMetrics()

	m.RecordCacheHit("task")
	m.RecordCacheMiss("task")

	hit := getCounterValue(t, m.CacheHitsTotal.WithLabelValues("task"))
	miss := getCounterValue(t, m.CacheMissesTotal.WithLabelValues("task"))
	if hit < 1 {
		t.Errorf("expected at least one hit, got %f", hit)
	}
	if miss < 1 {
		t.Errorf("expected at least one miss, got %f", miss)
	}
}

// Recording on a zero-value Metrics must not crash the caller
func TestMetricsOperationsSurvivePanics(t *testing.T) {
	m := &Metrics{}

	operations := []func(){
		func() { m.RecordHTTPRequest("GET", "/tasks", 200, time.Second) },
		func() { m.RecordDBQuery("select", "tasks", time.Millisecond, nil) },
		func() { m.IncrementTaskCreated() },
		func() { m.IncrementTaskMoved() },
		func() { m.IncrementAuditWriteFailure() },
		func() { m.RecordCacheHit("task") },
		func() { m.RecordCacheMiss("task") },
		func() { m.SetTasksTotal(1) },
		func() { m.SetBoardsTotal(1) },
	}

	for _, op := range operations {
		op()
	}
}
