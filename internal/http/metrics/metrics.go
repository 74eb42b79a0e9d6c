package metrics

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
)

// Collector counts requests and error kinds and renders them in the
// Prometheus text format.
type Collector struct {
	requests uint64
	failures uint64

	mu     sync.Mutex
	byCode map[string]uint64
}

func NewCollector() *Collector {
	return &Collector{byCode: make(map[string]uint64)}
}

func (c *Collector) IncRequests() {
	atomic.AddUint64(&c.requests, 1)
}

// IncServerErrors counts 5xx responses.
func (c *Collector) IncServerErrors() {
	atomic.AddUint64(&c.failures, 1)
}

// IncErrorCode counts an error response by kind.
func (c *Collector) IncErrorCode(code string) {
	c.mu.Lock()
	c.byCode[code]++
	c.mu.Unlock()
}

func (c *Collector) Snapshot() (requests, serverErrors uint64, byCode map[string]uint64) {
	c.mu.Lock()
	byCode = make(map[string]uint64, len(c.byCode))
	for code, n := range c.byCode {
		byCode[code] = n
	}
	c.mu.Unlock()
	return atomic.LoadUint64(&c.requests), atomic.LoadUint64(&c.failures), byCode
}

func (c *Collector) WriteText(w io.Writer) {
	requests, serverErrors, byCode := c.Snapshot()
	_, _ = fmt.Fprintf(w, "# HELP jobly_requests_total Total number of HTTP requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobly_requests_total counter\n")
	_, _ = fmt.Fprintf(w, "jobly_requests_total %d\n", requests)
	_, _ = fmt.Fprintf(w, "# HELP jobly_server_errors_total Total number of 5xx HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobly_server_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "jobly_server_errors_total %d\n", serverErrors)
	_, _ = fmt.Fprintf(w, "# HELP jobly_errors_total Error responses by kind.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobly_errors_total counter\n")
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		_, _ = fmt.Fprintf(w, "jobly_errors_total{code=%q} %d\n", code, byCode[code])
	}
}
