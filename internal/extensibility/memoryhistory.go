// Package extensibility provides pluggable component implementations for the
// router runtime: effect runners, location sources, and an in-process
// browser-history simulator.
package extensibility

import (
	"context"
	"errors"
	"sync"

	"github.com/comalice/navsyncx/internal/core"
)

// MemoryHistory simulates a browser history stack in process. It implements
// both platform roles: core.Navigator (Push/Replace writes) and
// core.LocationSource (every navigation, including the echo of a write, is
// reported on Locations).
//
// Used by tests, the examples, and the replay CLI in place of a real
// address bar.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []historyEntry
	idx     int
	ch      chan string
}

type historyEntry struct {
	url string
	key core.NavKey
}

// NewMemoryHistory creates a history whose single entry is the initial URL.
func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{
		entries: []historyEntry{{url: initial}},
		ch:      make(chan string, 128),
	}
}

// Locations returns the stream of reported URLs. The consumer must drain it;
// reports block once the buffer fills.
func (h *MemoryHistory) Locations() <-chan string {
	return h.ch
}

// Push appends a new history entry, discarding any forward entries, and
// reports the new current URL.
func (h *MemoryHistory) Push(ctx context.Context, url string, key core.NavKey) error {
	h.mu.Lock()
	h.entries = append(h.entries[:h.idx+1], historyEntry{url: url, key: key})
	h.idx = len(h.entries) - 1
	h.mu.Unlock()

	h.report(ctx, url)
	return nil
}

// Replace overwrites the current history entry in place and reports the URL.
func (h *MemoryHistory) Replace(ctx context.Context, url string, key core.NavKey) error {
	h.mu.Lock()
	h.entries[h.idx] = historyEntry{url: url, key: key}
	h.mu.Unlock()

	h.report(ctx, url)
	return nil
}

// Navigate simulates the user typing a URL or following a link: a fresh
// entry with no navigation key, reported as any other location change.
func (h *MemoryHistory) Navigate(url string) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.idx+1], historyEntry{url: url})
	h.idx = len(h.entries) - 1
	h.mu.Unlock()

	h.report(context.Background(), url)
}

// Back moves one entry backwards, reporting the URL it lands on. Reports
// false at the start of the stack.
func (h *MemoryHistory) Back() bool {
	h.mu.Lock()
	if h.idx == 0 {
		h.mu.Unlock()
		return false
	}
	h.idx--
	url := h.entries[h.idx].url
	h.mu.Unlock()

	h.report(context.Background(), url)
	return true
}

// Forward moves one entry forwards, reporting the URL it lands on. Reports
// false at the end of the stack.
func (h *MemoryHistory) Forward() bool {
	h.mu.Lock()
	if h.idx >= len(h.entries)-1 {
		h.mu.Unlock()
		return false
	}
	h.idx++
	url := h.entries[h.idx].url
	h.mu.Unlock()

	h.report(context.Background(), url)
	return true
}

// Current returns the URL of the current history entry.
func (h *MemoryHistory) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.idx].url
}

// Len returns the number of history entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// KeyAt returns the navigation key recorded for entry i. Zero for entries
// the router did not write.
func (h *MemoryHistory) KeyAt(i int) (core.NavKey, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i < 0 || i >= len(h.entries) {
		return core.ZeroNavKey, errors.New("history index out of range")
	}
	return h.entries[i].key, nil
}

func (h *MemoryHistory) report(ctx context.Context, url string) {
	select {
	case h.ch <- url:
	case <-ctx.Done():
	}
}
