package model

import "time"

const defaultTrendCap = 60

// TrendPoint is a single timestamped data point stored in the ring buffer.
type TrendPoint struct {
	Timestamp   time.Time
	SuccessRate float64
	Operations  float64
	Failures    float64
	Sessions    float64
}

// TrendHistory is a fixed-size ring buffer of TrendPoints feeding the live
// dashboard sparklines. When the buffer is full, new pushes overwrite the
// oldest entry.
type TrendHistory struct {
	buf  []TrendPoint
	head int // index of the next write position
	size int // number of valid entries
}

// NewTrendHistory creates a TrendHistory with the given capacity.
// If cap <= 0, the defaultTrendCap (60) is used.
func NewTrendHistory(capacity int) *TrendHistory {
	if capacity <= 0 {
		capacity = defaultTrendCap
	}
	return &TrendHistory{
		buf: make([]TrendPoint, capacity),
	}
}

// Push appends a new point to the history, overwriting the oldest if full.
func (h *TrendHistory) Push(p TrendPoint) {
	h.buf[h.head] = p
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Len returns the number of valid entries in the history.
func (h *TrendHistory) Len() int {
	return h.size
}

// Values returns a slice of float64 for the named field in chronological
// order (oldest first). Valid field names: "successRate", "operations",
// "failures", "sessions".
func (h *TrendHistory) Values(field string) []float64 {
	out := make([]float64, h.size)
	// oldest entry sits at (head - size + cap) % cap
	start := (h.head - h.size + len(h.buf)) % len(h.buf)
	for i := 0; i < h.size; i++ {
		p := h.buf[(start+i)%len(h.buf)]
		switch field {
		case "successRate":
			out[i] = p.SuccessRate
		case "operations":
			out[i] = p.Operations
		case "failures":
			out[i] = p.Failures
		case "sessions":
			out[i] = p.Sessions
		}
	}
	return out
}
