// Package navsyncx keeps a single-page application's in-memory state and the
// platform's address bar synchronized in both directions.
//
// Forward direction: after every application update, the application's
// Delta2URL hook decides whether the location bar should move and what kind
// of history entry to create. Reverse direction: whenever the platform
// reports a location change (back/forward, typed URL, bookmark), the
// Location2Messages hook decodes it into application messages that are
// replayed through the application's own Update function.
//
// The core is the reconciliation engine in internal/core: bookkeeping that
// tells a location change the application requested apart from one the
// user or platform initiated, so the two directions never feed back into
// each other, plus an idempotence guard against redundant history entries.
//
// # Basic Usage
//
//	history := navsyncx.NewMemoryHistory("/")
//	prog := navsyncx.NewProgram[myState, myMsg]("app", myApp{}, navsyncx.ParseLocation("/"),
//		navsyncx.WithNavigator[myState, myMsg](history),
//		navsyncx.WithSource[myState, myMsg](history),
//	)
//	prog.Start(ctx)
//	defer prog.Stop()
//	prog.SendMsg(openProfile{id: 42}) // address bar follows
//	history.Back()                    // application state follows
package navsyncx

import (
	"github.com/comalice/navsyncx/internal/core"
	"github.com/comalice/navsyncx/internal/primitives"
)

// Re-export the data tier. Location and URLChange are plain values; see
// internal/primitives for their invariants.
type (
	// Location is the parsed, comparable representation of a URL's
	// path/query/fragment.
	Location = primitives.Location
	// URLChange describes a target location plus history-entry semantics.
	URLChange = primitives.URLChange
	// PathChange replaces path, query and fragment wholesale.
	PathChange = primitives.PathChange
	// QueryChange keeps the current path and sets query (and optionally fragment).
	QueryChange = primitives.QueryChange
	// FragmentChange sets only the fragment.
	FragmentChange = primitives.FragmentChange
	// HistoryEntry selects push vs replace semantics for a write.
	HistoryEntry = primitives.HistoryEntry
)

const (
	// NewEntry pushes a new, navigable history item.
	NewEntry = primitives.NewEntry
	// ModifyEntry overwrites the current history item.
	ModifyEntry = primitives.ModifyEntry
)

// ParseLocation parses a raw URL string into a Location. Total.
func ParseLocation(raw string) Location {
	return primitives.ParseLocation(raw)
}

// ApplyChange derives the target Location of a URLChange against a base.
func ApplyChange(base Location, change URLChange) Location {
	return primitives.Apply(base, change)
}

// Re-export the engine tier.
type (
	// App is the contract an embedding application supplies.
	App[S, M any] = core.App[S, M]
	// Viewer is optionally implemented by applications that render.
	Viewer[S any] = core.Viewer[S]
	// Subscriber is optionally implemented by applications with their own
	// event sources.
	Subscriber[S, M any] = core.Subscriber[S, M]
	// Event is the engine's input sum: location-changed or application message.
	Event[M any] = core.Event[M]
	// Effect is a side-effect request emitted by Step.
	Effect = core.Effect
	// WriteURL is the location-write effect.
	WriteURL = core.WriteURL
	// AppCmd forwards an application command unchanged.
	AppCmd = core.AppCmd
	// LoadExternal requests navigation outside the application's origin.
	LoadExternal = core.LoadExternal
	// RouterState is the engine's private bookkeeping.
	RouterState = core.RouterState
	// RouterSnapshot is the serializable router state.
	RouterSnapshot = core.RouterSnapshot
	// ProgramState composes router bookkeeping with application state.
	ProgramState[S any] = core.ProgramState[S]
	// NavKey is the handle a self-initiated write is keyed by.
	NavKey = core.NavKey
	// NavMetadata describes one processed navigation for observers.
	NavMetadata = core.NavMetadata
	// NavKind classifies a published navigation record.
	NavKind = core.NavKind

	// Navigator is the platform write primitive.
	Navigator = core.Navigator
	// LocationSource is the platform's stream of current-URL reports.
	LocationSource = core.LocationSource
	// EffectRunner executes application commands.
	EffectRunner = core.EffectRunner
	// Persister stores router snapshots.
	Persister = core.Persister
	// EventPublisher receives one record per processed navigation.
	EventPublisher = core.EventPublisher
)

const (
	NavWrite    = core.NavWrite
	NavAck      = core.NavAck
	NavExternal = core.NavExternal
)

// LocationEvent wraps a platform-reported URL.
func LocationEvent[M any](raw string) Event[M] {
	return core.LocationEvent[M](raw)
}

// MsgEvent wraps an application message.
func MsgEvent[M any](msg M) Event[M] {
	return core.MsgEvent[M](msg)
}

// Step is the pure reconciliation engine: one event in, one state out, plus
// effects. See internal/core.Step for the transition rules.
func Step[S, M any](app App[S, M], ev Event[M], st ProgramState[S]) (ProgramState[S], []Effect) {
	return core.Step(app, ev, st)
}

// InitProgram builds the initial ProgramState from the application's Init
// output and the initial Location.
func InitProgram[S, M any](app App[S, M], initial Location) (ProgramState[S], []Effect) {
	return core.InitProgram(app, initial)
}

// NewNavKey mints a fresh navigation handle.
func NewNavKey() NavKey {
	return core.NewNavKey()
}

// Sentinel errors returned by Program.SendMsg and Program.SendLocation.
var (
	// ErrStopped reports that the program has been stopped.
	ErrStopped = core.ErrStopped
	// ErrQueueFull reports transient backpressure on the event queue.
	ErrQueueFull = core.ErrQueueFull
)

// Program is the runnable composition of an application with the
// reconciliation engine.
type Program[S, M any] = core.Runtime[S, M]

// Option applies configuration to a Program.
type Option[S, M any] = core.Option[S, M]

// NewProgram creates a Program for the given application, starting from the
// given initial location.
func NewProgram[S, M any](id string, app App[S, M], initial Location, opts ...Option[S, M]) *Program[S, M] {
	return core.NewRuntime(id, app, initial, opts...)
}

// WithNavigator wires the platform write primitive.
func WithNavigator[S, M any](n Navigator) Option[S, M] {
	return core.WithNavigator[S, M](n)
}

// WithSource wires a platform location-event source.
func WithSource[S, M any](s LocationSource) Option[S, M] {
	return core.WithSource[S, M](s)
}

// WithEffectRunner wires a custom EffectRunner.
func WithEffectRunner[S, M any](er EffectRunner) Option[S, M] {
	return core.WithEffectRunner[S, M](er)
}

// WithPersister wires a router-snapshot Persister.
func WithPersister[S, M any](p Persister) Option[S, M] {
	return core.WithPersister[S, M](p)
}

// WithPublisher wires a navigation EventPublisher.
func WithPublisher[S, M any](pb EventPublisher) Option[S, M] {
	return core.WithPublisher[S, M](pb)
}

// WithExternalHandler wires the handler for LoadExternal commands.
func WithExternalHandler[S, M any](h func(url string)) Option[S, M] {
	return core.WithExternalHandler[S, M](h)
}

// WithQueueSize sets the event queue buffer size.
func WithQueueSize[S, M any](size int) Option[S, M] {
	return core.WithQueueSize[S, M](size)
}
