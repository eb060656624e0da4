package metrics

// IncrementTaskCreated increments task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// IncrementTaskMoved increments task move counter
func (m *Metrics) IncrementTaskMoved() {
	m.safeExecute("IncrementTaskMoved", func() {
		m.TaskMovedTotal.Inc()
	})
}

// IncrementAuditWriteFailure increments the failed event log write counter
func (m *Metrics) IncrementAuditWriteFailure() {
	m.safeExecute("IncrementAuditWriteFailure", func() {
		m.AuditWriteFailuresTotal.Inc()
	})
}

// RecordCacheHit increments the hit counter for a named cache
func (m *Metrics) RecordCacheHit(cache string) {
	m.safeExecute("RecordCacheHit", func() {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	})
}

// RecordCacheMiss increments the miss counter for a named cache
func (m *Metrics) RecordCacheMiss(cache string) {
	m.safeExecute("RecordCacheMiss", func() {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	})
}

// SetTasksTotal sets total tasks gauge
func (m *Metrics) SetTasksTotal(count int64) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}
