package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/comalice/navsyncx/internal/primitives"
)

// Sentinel errors returned by SendMsg and SendLocation.
var (
	// ErrStopped reports that the runtime has been stopped.
	ErrStopped = errors.New("runtime stopped")
	// ErrQueueFull reports transient backpressure on the event queue.
	ErrQueueFull = errors.New("event queue full (backpressure)")
)

// Pluggable component interfaces. Implementations live in
// internal/extensibility and internal/production.

// Navigator is the platform write primitive: it applies a URL to the address
// bar with push or replace semantics. The platform is expected to report the
// written URL back through the LocationSource.
type Navigator interface {
	Push(ctx context.Context, url string, key NavKey) error
	Replace(ctx context.Context, url string, key NavKey) error
}

// LocationSource is the platform's stream of current-URL reports: user
// navigation, back/forward, typed URLs, and echoes of the runtime's own
// writes all arrive here.
type LocationSource interface {
	Locations() <-chan string
}

// EffectRunner executes application-produced commands.
type EffectRunner interface {
	Run(ctx context.Context, cmd any) error
}

// Persister stores router snapshots.
type Persister interface {
	Save(ctx context.Context, snapshot RouterSnapshot) error
	Load(ctx context.Context, programID string) (RouterSnapshot, error)
}

// NavMetadata describes one processed navigation for observers.
type NavMetadata struct {
	ProgramID string    `json:"programID" yaml:"programID"`
	Kind      NavKind   `json:"kind" yaml:"kind"`
	URL       string    `json:"url" yaml:"url"`
	Entry     string    `json:"entry,omitempty" yaml:"entry,omitempty"`
	Key       string    `json:"key,omitempty" yaml:"key,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NavKind classifies a published navigation record.
type NavKind string

const (
	// NavWrite is a self-initiated location write issued by the engine.
	NavWrite NavKind = "write"
	// NavAck is a location event absorbed as the acknowledgment of a write.
	NavAck NavKind = "ack"
	// NavExternal is a user/platform-driven location event.
	NavExternal NavKind = "external"
)

// EventPublisher receives one record per navigation the engine processes.
type EventPublisher interface {
	Publish(ctx context.Context, md NavMetadata) error
	Close() error
}

// Runtime is the wrapper/composition layer: it owns the ProgramState, pumps
// the LocationSource and application messages through a single event queue,
// and runs each event through Step to completion before the next is
// accepted. It never duplicates the reconciliation rules; every event goes
// through Step exactly once.
//
// Thread-safe for concurrent SendMsg from multiple goroutines. A single
// loop goroutine owns the state transitions.
type Runtime[S, M any] struct {
	id    string
	app   App[S, M]
	state ProgramState[S]
	mu    sync.RWMutex

	queue     chan Event[M]
	done      chan struct{}
	once      sync.Once
	enqueued  atomic.Int64
	processed atomic.Int64

	initial primitives.Location

	// Pluggable components (nil = absent)
	nav       Navigator
	source    LocationSource
	runner    EffectRunner
	persister Persister
	publisher EventPublisher
	external  func(url string)
}

// Option applies configuration to Runtime via functional options.
type Option[S, M any] func(*Runtime[S, M])

// NewRuntime creates a Runtime for the given application, starting from the
// given initial location.
func NewRuntime[S, M any](id string, app App[S, M], initial primitives.Location, opts ...Option[S, M]) *Runtime[S, M] {
	r := &Runtime[S, M]{
		id:      id,
		app:     app,
		initial: initial,
		queue:   make(chan Event[M], 256),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start initializes the program state (replaying the initial location's
// decoded messages), executes the resulting effects, and launches the event
// loop plus the source pumps.
func (r *Runtime[S, M]) Start(ctx context.Context) error {
	if r.app == nil {
		return errors.New("runtime has no application")
	}

	r.mu.Lock()
	st, effects := InitProgram(r.app, r.initial)
	r.state = st
	r.mu.Unlock()

	r.execute(ctx, effects, nil)

	go r.loop()

	if r.source != nil {
		go func() {
			for raw := range r.source.Locations() {
				if !r.deliver(LocationEvent[M](raw)) {
					return
				}
			}
		}()
	}
	if sub, ok := r.app.(Subscriber[S, M]); ok {
		ch := sub.Subscriptions(st.AppState())
		if ch != nil {
			go func() {
				for m := range ch {
					if !r.deliver(MsgEvent[M](m)) {
						return
					}
				}
			}()
		}
	}
	return nil
}

// deliver enqueues one pumped event, retrying through transient backpressure
// so a momentarily full queue never kills a pump or loses a platform report.
// Returns false once the runtime has stopped.
func (r *Runtime[S, M]) deliver(ev Event[M]) bool {
	for {
		err := r.send(ev)
		if err == nil {
			return true
		}
		if errors.Is(err, ErrStopped) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

// loop is the private event loop goroutine. Events are processed one at a
// time, to completion, in delivery order; the runtime never reorders or
// batches.
func (r *Runtime[S, M]) loop() {
	for {
		select {
		case ev := <-r.queue:
			r.processEvent(ev)
		case <-r.done:
			return
		}
	}
}

func (r *Runtime[S, M]) processEvent(ev Event[M]) {
	r.mu.Lock()
	before := r.state.Router
	st, effects := Step(r.app, ev, r.state)
	r.state = st
	r.mu.Unlock()

	// A location write must be issued in the same logical step as the state
	// update, before the next event is dequeued, or an interleaved event
	// could corrupt the expected-write counter.
	md := r.metadata(ev, before, effects)
	r.execute(context.Background(), effects, md)
	r.processed.Inc()
}

// metadata classifies the processed event for the publisher. Nil when the
// event produced nothing an observer cares about.
func (r *Runtime[S, M]) metadata(ev Event[M], before RouterState, effects []Effect) *NavMetadata {
	if ev.kind == evLocation {
		kind := NavExternal
		if before.Expected > 0 {
			kind = NavAck
		}
		return &NavMetadata{ProgramID: r.id, Kind: kind, URL: ev.raw, Timestamp: time.Now()}
	}
	for _, ef := range effects {
		if w, ok := ef.(WriteURL); ok {
			return &NavMetadata{
				ProgramID: r.id,
				Kind:      NavWrite,
				URL:       w.URL,
				Entry:     w.Entry.String(),
				Key:       w.Key.String(),
				Timestamp: time.Now(),
			}
		}
	}
	return nil
}

func (r *Runtime[S, M]) execute(ctx context.Context, effects []Effect, md *NavMetadata) {
	for _, ef := range effects {
		switch e := ef.(type) {
		case WriteURL:
			if r.nav == nil {
				continue
			}
			var err error
			if e.Entry == primitives.ModifyEntry {
				err = r.nav.Replace(ctx, e.URL, e.Key)
			} else {
				err = r.nav.Push(ctx, e.URL, e.Key)
			}
			if err != nil {
				// The platform write failed; the pending acknowledgment
				// will never arrive. The floor clamp bounds the damage
				// to one absorbed event.
				continue
			}
		case AppCmd:
			r.runCmd(ctx, e.Cmd)
		}
	}

	if md == nil {
		return
	}
	snap := r.RouterState().Snapshot(r.id)

	// Persist and publish after the write (fire-and-forget).
	go func() {
		if r.persister != nil {
			_ = r.persister.Save(context.Background(), snap)
		}
		if r.publisher != nil {
			_ = r.publisher.Publish(context.Background(), *md)
		}
	}()
}

func (r *Runtime[S, M]) runCmd(ctx context.Context, cmd any) {
	if ext, ok := cmd.(LoadExternal); ok && r.external != nil {
		r.external(ext.URL)
		return
	}
	if r.runner == nil {
		return
	}
	_ = r.runner.Run(ctx, cmd)
}

// SendMsg enqueues an application message for asynchronous processing.
// Returns ErrQueueFull on backpressure and ErrStopped after Stop. Thread-safe.
func (r *Runtime[S, M]) SendMsg(msg M) error {
	return r.send(MsgEvent[M](msg))
}

// SendLocation enqueues a platform-reported URL. Used by the LocationSource
// pump and directly by hosts without a channel-shaped source.
func (r *Runtime[S, M]) SendLocation(raw string) error {
	return r.send(LocationEvent[M](raw))
}

func (r *Runtime[S, M]) send(ev Event[M]) error {
	select {
	case <-r.done:
		return ErrStopped
	default:
	}
	select {
	case r.queue <- ev:
		r.enqueued.Inc()
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop shuts the event loop down. Idempotent.
func (r *Runtime[S, M]) Stop() {
	r.once.Do(func() {
		close(r.done)
		if r.publisher != nil {
			_ = r.publisher.Close()
		}
	})
}

// AppState returns the current embedded application state. Thread-safe
// snapshot; the router bookkeeping is not exposed here.
func (r *Runtime[S, M]) AppState() S {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.AppState()
}

// RouterState returns a copy of the router bookkeeping, for host tooling
// and tests.
func (r *Runtime[S, M]) RouterState() RouterState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Router
}

// Render calls the application's View against the current state, if the
// application implements Viewer. Returns nil otherwise.
func (r *Runtime[S, M]) Render() any {
	v, ok := r.app.(Viewer[S])
	if !ok {
		return nil
	}
	return v.View(r.AppState())
}

// Drain blocks until every event accepted so far has been fully processed,
// including its effects, or the timeout elapses. Test and shutdown helper.
// Events a pump has not yet read from its source are not covered.
func (r *Runtime[S, M]) Drain(timeout time.Duration) error {
	target := r.enqueued.Load()
	deadline := time.After(timeout)
	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			if r.processed.Load() >= target {
				return nil
			}
		case <-deadline:
			return errors.New("drain timeout")
		}
	}
}
