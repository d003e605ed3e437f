package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for portal and upstream traffic.
type Metrics struct {
	mu              sync.Mutex
	requestCount    map[string]int64
	requestDuration map[string]time.Duration
	errorCount      map[string]int64
	upstreamCount   map[string]int64
	refreshSuccess  int64
	refreshFailure  int64
	forcedLogouts   int64
	fallbacksServed map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:    make(map[string]int64),
		requestDuration: make(map[string]time.Duration),
		upstreamCount:   make(map[string]int64),
		errorCount:      make(map[string]int64),
		fallbacksServed: make(map[string]int64),
	}
}

// RecordRequest counts a portal request and accumulates its handling time,
// keyed by path, method and status.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestDuration[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordUpstreamAttempt increments the counter for one upstream dispatch attempt.
func (m *Metrics) RecordUpstreamAttempt(path, outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upstreamCount[path+"|"+outcome]++
}

// RecordRefresh counts a credential refresh attempt by outcome.
func (m *Metrics) RecordRefresh(success bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.refreshSuccess++
	} else {
		m.refreshFailure++
	}
}

// RecordForcedLogout counts a forced logout transition.
func (m *Metrics) RecordForcedLogout() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forcedLogouts++
}

// RecordFallback counts a sample-data fallback served for a dashboard domain.
func (m *Metrics) RecordFallback(domain string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacksServed[domain]++
}

// Snapshot returns a copy of the counters for health/debug output.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int64)
	for k, v := range m.requestCount {
		out["request|"+k] = v
		if v > 0 {
			out["latency_ms_avg|"+k] = m.requestDuration[k].Milliseconds() / v
		}
	}
	for k, v := range m.errorCount {
		out["error|"+k] = v
	}
	for k, v := range m.upstreamCount {
		out["upstream|"+k] = v
	}
	for k, v := range m.fallbacksServed {
		out["fallback|"+k] = v
	}
	out["refresh|success"] = m.refreshSuccess
	out["refresh|failure"] = m.refreshFailure
	out["forced_logouts"] = m.forcedLogouts
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
