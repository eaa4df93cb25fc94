package metrics

import (
	"sync/atomic"
	"time"

	"authorize-gateway/internal/payment"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
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

// PaymentMetrics counts gateway outcomes.
type PaymentMetrics struct {
	Processed Counter
	Captured  Counter
	Rejected  Counter // failed local validation
	Declined  Counter // failed at the vendor or in transport

	lastLatencyNanos int64
}

type Snapshot struct {
	Processed     uint64 `json:"processed"`
	Captured      uint64 `json:"captured"`
	Rejected      uint64 `json:"rejected"`
	Declined      uint64 `json:"declined"`
	LastLatencyMS int64  `json:"last_latency_ms"`
}

// Observe records a gateway result. capture tells whether it came from a
// capture call.
func (m *PaymentMetrics) Observe(res payment.Result, capture bool, took time.Duration) {
	atomic.StoreInt64(&m.lastLatencyNanos, int64(took))

	switch {
	case res.IsError() && res.Err().IsInputError():
		m.Rejected.Inc()
	case res.IsError():
		m.Declined.Inc()
	case capture:
		m.Captured.Inc()
	default:
		m.Processed.Inc()
	}
}

func (m *PaymentMetrics) Snapshot() Snapshot {
	return Snapshot{
		Processed:     m.Processed.Load(),
		Captured:      m.Captured.Load(),
		Rejected:      m.Rejected.Load(),
		Declined:      m.Declined.Load(),
		LastLatencyMS: time.Duration(atomic.LoadInt64(&m.lastLatencyNanos)).Milliseconds(),
	}
}
