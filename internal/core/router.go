// Package core provides the runtime core tier of the URL router: the
// reconciliation engine, the router bookkeeping state, the program runtime
// event loop, and the pluggable component interfaces.
// Dependencies: internal/primitives.
// Pluggable components defined here as forward declarations for wiring.
//
//go:generate go test ./... -race
package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/comalice/navsyncx/internal/primitives"
)

// NavKey is the handle a self-initiated location write is keyed by. The
// platform echoes it back on the matching location-changed event, and the
// journal records it, so a write can be correlated across layers.
type NavKey uuid.UUID

// NewNavKey mints a fresh navigation handle.
func NewNavKey() NavKey {
	return NavKey(uuid.New())
}

// ZeroNavKey is the handle of navigations the router did not initiate.
var ZeroNavKey NavKey

func (k NavKey) String() string {
	return uuid.UUID(k).String()
}

// RouterState is the engine's private bookkeeping: the last Location the
// router has recorded as current, and the count of self-initiated location
// writes the platform has not yet acknowledged.
//
// Expected acts as a mode flag. Zero means any location event is external;
// N > 0 means the next N location events are self-inflicted and must be
// absorbed without side effects. It never goes negative: decrements floor
// at zero, bounding out-of-order platform delivery to one spurious replay.
type RouterState struct {
	Reported primitives.Location
	Expected int
}

// RouterSnapshot is the serializable snapshot of router runtime state.
// The embedded application state is deliberately absent; persisting it is
// the application's business.
type RouterSnapshot struct {
	ProgramID string    `json:"programID" yaml:"programID"`
	Reported  string    `json:"reported" yaml:"reported"`
	Expected  int       `json:"expected" yaml:"expected"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Snapshot captures the router state for persistence.
func (r RouterState) Snapshot(programID string) RouterSnapshot {
	return RouterSnapshot{
		ProgramID: programID,
		Reported:  r.Reported.String(),
		Expected:  r.Expected,
		Timestamp: time.Now(),
	}
}

// RestoreRouterState rebuilds a RouterState from a snapshot.
func RestoreRouterState(snap RouterSnapshot) RouterState {
	return RouterState{
		Reported: primitives.ParseLocation(snap.Reported),
		Expected: snap.Expected,
	}
}
