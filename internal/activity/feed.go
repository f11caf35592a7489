package activity

import "sync"

const DefaultFeedSize = 20

// Feed keeps the most recent events, newest first on read.
type Feed struct {
	mu     sync.RWMutex
	events []Event
	next   int
	full   bool
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{events: make([]Event, size)}
}

func (f *Feed) Record(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[f.next] = e
	f.next = (f.next + 1) % len(f.events)
	if f.next == 0 {
		f.full = true
	}
}

// Recent returns up to n events, newest first. n <= 0 returns all held events.
func (f *Feed) Recent(n int) []Event {
	f.mu.RLock()
	defer f.mu.RUnlock()
	count := f.next
	if f.full {
		count = len(f.events)
	}
	if n <= 0 || n > count {
		n = count
	}
	out := make([]Event, 0, n)
	for i := 1; i <= n; i++ {
		idx := (f.next - i + len(f.events)) % len(f.events)
		out = append(out, f.events[idx])
	}
	return out
}
