package metrics

import (
	"time"
)

// endpoints excluded from request metrics
var skippedEndpoints = map[string]bool{
	"/metrics":               true,
	"/health":                true,
	"/api/taskboard/metrics": true,
	"/api/taskboard/health":  true,
}

// RecordHTTPRequest counts one request and observes its duration. The status
// label is the class (2xx..5xx), not the exact code, to bound cardinality.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		m.HTTPRequestsTotal.WithLabelValues(method, endpoint, categorizeStatus(statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	})
}

func categorizeStatus(code int) string {
	switch code / 100 {
	case 2:
		return "2xx"
	case 3:
		return "3xx"
	case 4:
		return "4xx"
	}
	if code >= 500 {
		return "5xx"
	}
	return "unknown"
}

// ShouldSkipEndpoint reports whether a path is excluded from request metrics
func ShouldSkipEndpoint(path string) bool {
	return skippedEndpoints[path]
}
