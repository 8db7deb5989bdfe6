package extensibility

import (
	"context"
	"testing"

	"github.com/comalice/navsyncx/internal/core"
)

func drainOne(t *testing.T, h *MemoryHistory) string {
	t.Helper()
	select {
	case url := <-h.Locations():
		return url
	default:
		t.Fatal("no location report pending")
		return ""
	}
}

func TestMemoryHistoryPushReports(t *testing.T) {
	h := NewMemoryHistory("/")
	key := core.NewNavKey()

	if err := h.Push(context.Background(), "/a", key); err != nil {
		t.Fatal(err)
	}

	if got := drainOne(t, h); got != "/a" {
		t.Errorf("reported = %q, want /a", got)
	}
	if h.Current() != "/a" || h.Len() != 2 {
		t.Errorf("current = %q len = %d, want /a 2", h.Current(), h.Len())
	}
	if k, _ := h.KeyAt(1); k != key {
		t.Error("pushed entry should record the navigation key")
	}
}

func TestMemoryHistoryReplaceKeepsLen(t *testing.T) {
	h := NewMemoryHistory("/")
	h.Push(context.Background(), "/a", core.NewNavKey())
	drainOne(t, h)

	if err := h.Replace(context.Background(), "/a2", core.NewNavKey()); err != nil {
		t.Fatal(err)
	}

	if got := drainOne(t, h); got != "/a2" {
		t.Errorf("reported = %q, want /a2", got)
	}
	if h.Len() != 2 {
		t.Errorf("len = %d, want 2 (replace adds no entry)", h.Len())
	}
}

func TestMemoryHistoryBackForward(t *testing.T) {
	h := NewMemoryHistory("/")
	h.Push(context.Background(), "/a", core.NewNavKey())
	h.Push(context.Background(), "/b", core.NewNavKey())
	drainOne(t, h)
	drainOne(t, h)

	if !h.Back() {
		t.Fatal("Back should succeed")
	}
	if got := drainOne(t, h); got != "/a" {
		t.Errorf("back reported = %q, want /a", got)
	}

	if !h.Forward() {
		t.Fatal("Forward should succeed")
	}
	if got := drainOne(t, h); got != "/b" {
		t.Errorf("forward reported = %q, want /b", got)
	}

	h.Back()
	h.Back()
	drainOne(t, h)
	drainOne(t, h)
	if h.Back() {
		t.Error("Back at the start of the stack should report false")
	}
}

func TestMemoryHistoryPushTruncatesForward(t *testing.T) {
	h := NewMemoryHistory("/")
	h.Push(context.Background(), "/a", core.NewNavKey())
	h.Push(context.Background(), "/b", core.NewNavKey())
	h.Back()
	for i := 0; i < 3; i++ {
		drainOne(t, h)
	}

	h.Push(context.Background(), "/c", core.NewNavKey())
	drainOne(t, h)

	if h.Len() != 3 {
		t.Errorf("len = %d, want 3 (/, /a, /c)", h.Len())
	}
	if h.Forward() {
		t.Error("forward entries should be gone after push")
	}
}

func TestMemoryHistoryNavigateHasNoKey(t *testing.T) {
	h := NewMemoryHistory("/")
	h.Navigate("/typed")
	drainOne(t, h)

	k, err := h.KeyAt(1)
	if err != nil {
		t.Fatal(err)
	}
	if k != core.ZeroNavKey {
		t.Error("user navigation must not carry a router navigation key")
	}
}
