package fs9721

import (
	"sync/atomic"
)

// ClientMetrics contains atomic metrics for a Client.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type ClientMetrics struct {
	// ReadCount indicates the number of successfully read and decoded frames.
	ReadCount atomic.Uint64
	// ReadRetryCount indicates the total number of failed frame read attempts.
	ReadRetryCount atomic.Uint64
	// ReadFailureCount indicates the number of reads that exhausted all retries.
	ReadFailureCount atomic.Uint64
	// SyncCount indicates the number of re-synchronization operations.
	SyncCount atomic.Uint64
	// InsaneValueCount indicates the number of readings that failed a sanity check.
	InsaneValueCount atomic.Uint64
}

func (m *ClientMetrics) incReadCount() {
	m.ReadCount.Add(1)
}

func (m *ClientMetrics) incReadRetryCount() {
	m.ReadRetryCount.Add(1)
}

func (m *ClientMetrics) incReadFailureCount() {
	m.ReadFailureCount.Add(1)
}

func (m *ClientMetrics) incSyncCount() {
	m.SyncCount.Add(1)
}

func (m *ClientMetrics) incInsaneValueCount() {
	m.InsaneValueCount.Add(1)
}
