package tui

// sparkBlocks maps levels 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// History is a fixed-capacity circular buffer of per-click counts.
type History struct {
	data  []int
	head  int
	count int
}

// NewHistory creates a history holding up to capacity samples.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{data: make([]int, capacity)}
}

// Push records a sample, overwriting the oldest when full.
func (h *History) Push(v int) {
	h.data[h.head] = v
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// Len returns the number of recorded samples.
func (h *History) Len() int { return h.count }

// Cap returns the history capacity.
func (h *History) Cap() int { return len(h.data) }

// Last returns the most recent sample, or 0 if empty.
func (h *History) Last() int {
	if h.count == 0 {
		return 0
	}
	return h.data[(h.head-1+len(h.data))%len(h.data)]
}

// Values returns samples oldest first.
func (h *History) Values() []int {
	if h.count == 0 {
		return nil
	}
	out := make([]int, h.count)
	start := (h.head - h.count + len(h.data)) % len(h.data)
	for i := range h.count {
		out[i] = h.data[(start+i)%len(h.data)]
	}
	return out
}

// Reset forgets every sample.
func (h *History) Reset() {
	h.head = 0
	h.count = 0
}

// RenderSparkline draws values scaled against the largest one. Negative
// values count as zero; an all-zero series renders at the lowest level.
func RenderSparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if peak > 0 && v > 0 {
			level = v * (len(sparkBlocks) - 1) / peak
		}
		runes[i] = sparkBlocks[level]
	}
	return string(runes)
}
