package model

import "sync"

// Tally is the shared attempt/failure accumulator fed by every probe loop
// and stress worker. Both counters are monotonically non-decreasing and
// failures never exceeds attempts.
type Tally struct {
	mu       sync.Mutex
	attempts int64
	failures int64
}

// Record registers one operation outcome. Increments attempts, and failures
// iff success is false. Safe for concurrent callers.
func (t *Tally) Record(success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts++
	if !success {
		t.failures++
	}
}

// Counts returns a consistent (attempts, failures) pair taken under the
// same lock — never two separately-read fields.
func (t *Tally) Counts() (attempts, failures int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts, t.failures
}

// SuccessRate returns the success percentage in [0, 100]. Zero attempts
// yields 0.0 rather than an error.
func (t *Tally) SuccessRate() float64 {
	attempts, failures := t.Counts()
	if attempts == 0 {
		return 0.0
	}
	return float64(attempts-failures) / float64(attempts) * 100
}
