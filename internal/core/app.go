package core

import "github.com/comalice/navsyncx/internal/primitives"

// App is the contract an embedding application supplies to the router.
// S is the application's opaque state type, M its message type.
//
// Update and the two routing hooks must be pure over their inputs; the
// returned command (nil for none) is an opaque side-effect request the
// runtime forwards to the EffectRunner untouched.
type App[S, M any] interface {
	// Init produces the application's starting state and optional command.
	Init() (S, any)

	// Update advances the application state by one message.
	Update(msg M, state S) (S, any)

	// Delta2URL reports whether a state transition should move the
	// location bar, and how. Called exactly once per application-message
	// cycle and never while a location-originated event is replayed.
	Delta2URL(prev, next S) (primitives.URLChange, bool)

	// Location2Messages decodes an externally sourced Location into the
	// ordered messages that bring the application in line with it. An
	// empty result is a normal outcome, not an error.
	Location2Messages(loc primitives.Location) []M
}

// Viewer is optionally implemented by applications that render. The runtime
// never calls View itself; it only exposes it through Runtime.Render.
type Viewer[S any] interface {
	View(state S) any
}

// Subscriber is optionally implemented by applications with external event
// sources of their own. The runtime pumps the channel into the event queue.
type Subscriber[S, M any] interface {
	Subscriptions(state S) <-chan M
}

// Event is the input sum of the reconciliation engine: either the platform
// reported a current URL, or the host delivered an application message.
type Event[M any] struct {
	kind eventKind
	raw  string
	msg  M
}

type eventKind int

const (
	evLocation eventKind = iota
	evMsg
)

// LocationEvent wraps a platform-reported URL, however it originated
// (user navigation, programmatic write, initial load).
func LocationEvent[M any](raw string) Event[M] {
	return Event[M]{kind: evLocation, raw: raw}
}

// MsgEvent wraps an ordinary application message.
func MsgEvent[M any](msg M) Event[M] {
	return Event[M]{kind: evMsg, msg: msg}
}

// IsLocation reports whether the event carries a platform URL.
func (e Event[M]) IsLocation() bool { return e.kind == evLocation }

// Effect is a side-effect request emitted by Step, executed by the runtime
// after the state transition commits.
type Effect interface{ effect() }

// WriteURL instructs the platform to write a new URL with push or replace
// semantics, keyed by a navigation handle.
type WriteURL struct {
	URL   string
	Entry primitives.HistoryEntry
	Key   NavKey
}

// AppCmd forwards an application-produced command unchanged.
type AppCmd struct {
	Cmd any
}

func (WriteURL) effect() {}
func (AppCmd) effect()   {}

// LoadExternal is a command an application may return from Update to request
// navigation outside its own origin. The runtime hands it to the external
// handler instead of the EffectRunner; the reconciliation engine never
// interprets it.
type LoadExternal struct {
	URL string
}
