package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide counters, incremented by the HTTP layer and snapshotted
// by the /metrics endpoint.
var (
	RequestsTotal Counter
	RequestErrors Counter
	OrdersCreated Counter
	StatusUpdates Counter
)

func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"requests_total": RequestsTotal.Load(),
		"request_errors": RequestErrors.Load(),
		"orders_created": OrdersCreated.Load(),
		"status_updates": StatusUpdates.Load(),
	}
}
