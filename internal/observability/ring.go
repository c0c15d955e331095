package observability

import (
	"strings"
	"sync"
)

// LogRing is a bounded ring buffer of recent log lines. It implements
// io.Writer so it can be teed behind the process logger, and exposes a
// pull API for the admin view instead of a mutable global array.
type LogRing struct {
	mu    sync.Mutex
	lines []string
	next  int
	full  bool
}

func NewLogRing(capacity int) *LogRing {
	if capacity <= 0 {
		capacity = 256
	}
	return &LogRing{lines: make([]string, capacity)}
}

// Write records one log line. zerolog emits one event per Write call.
func (r *LogRing) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if line == "" {
		return len(p), nil
	}

	r.mu.Lock()
	r.lines[r.next] = line
	r.next = (r.next + 1) % len(r.lines)
	if r.next == 0 {
		r.full = true
	}
	r.mu.Unlock()

	return len(p), nil
}

// Snapshot returns the buffered lines, oldest first.
func (r *LogRing) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]string, r.next)
		copy(out, r.lines[:r.next])
		return out
	}

	out := make([]string, 0, len(r.lines))
	out = append(out, r.lines[r.next:]...)
	out = append(out, r.lines[:r.next]...)
	return out
}

// Len reports how many lines are currently buffered.
func (r *LogRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.lines)
	}
	return r.next
}
