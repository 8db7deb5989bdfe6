package core

import "github.com/comalice/navsyncx/internal/primitives"

// ProgramState composes the router bookkeeping with the opaque application
// state. The wrapper owns both; the application only ever sees its own slice
// through AppState/MapApp, and never touches Router.
type ProgramState[S any] struct {
	Router RouterState
	app    S
}

// AppState returns the embedded application state.
func (p ProgramState[S]) AppState() S { return p.app }

// MapApp transforms the embedded application state without touching the
// router bookkeeping. Used by host tooling, not by routing logic.
func (p ProgramState[S]) MapApp(f func(S) S) ProgramState[S] {
	p.app = f(p.app)
	return p
}

// Step is the reconciliation engine: one event in, one state out, plus the
// effects to execute. Pure over its inputs apart from minting the navigation
// handle on a write; there is no hidden global, so the engine is testable
// without any platform.
//
// Location-changed events decrement the expected-write counter (floored at
// zero). If the pre-decrement counter was positive the event is the
// acknowledgment of a self-initiated write and is absorbed silently.
// Otherwise it is externally sourced: Location2Messages decodes it and every
// decoded message is replayed through Update in order, with Delta2URL never
// consulted during the replay. Either way the reported Location is updated
// exactly once.
//
// Application messages run Update once, then Delta2URL against the old and
// new state. A change that would not actually move the reported Location is
// discarded (no write, no counter bump) so a spurious duplicate history
// entry is never created. A real move updates the reported Location,
// increments the expected-write counter and emits WriteURL in the same
// logical step.
func Step[S, M any](app App[S, M], ev Event[M], st ProgramState[S]) (ProgramState[S], []Effect) {
	if ev.kind == evLocation {
		return stepLocation(app, ev.raw, st)
	}
	return stepMsg(app, ev.msg, st)
}

func stepLocation[S, M any](app App[S, M], raw string, st ProgramState[S]) (ProgramState[S], []Effect) {
	loc := primitives.ParseLocation(raw)
	expectedBefore := st.Router.Expected

	st.Router.Reported = loc
	if expectedBefore > 0 {
		// Acknowledgment of our own write. Absorb.
		st.Router.Expected = expectedBefore - 1
		return st, nil
	}

	// Externally sourced navigation: decode and replay.
	var effects []Effect
	for _, m := range app.Location2Messages(loc) {
		var cmd any
		st.app, cmd = app.Update(m, st.app)
		if cmd != nil {
			effects = append(effects, AppCmd{Cmd: cmd})
		}
	}
	return st, effects
}

func stepMsg[S, M any](app App[S, M], msg M, st ProgramState[S]) (ProgramState[S], []Effect) {
	prev := st.app
	next, cmd := app.Update(msg, prev)
	st.app = next

	var effects []Effect
	if cmd != nil {
		effects = append(effects, AppCmd{Cmd: cmd})
	}

	change, ok := app.Delta2URL(prev, next)
	if !ok || change == nil {
		return st, effects
	}

	candidate := primitives.Apply(st.Router.Reported, change)
	if candidate.Eq(st.Router.Reported) {
		// Idempotence guard: the change would not move the location.
		return st, effects
	}

	st.Router.Reported = candidate
	st.Router.Expected++
	effects = append(effects, WriteURL{
		URL:   candidate.String(),
		Entry: change.HistoryEntry(),
		Key:   NewNavKey(),
	})
	return st, effects
}

// InitProgram builds the initial ProgramState from the application's Init
// output and the initial Location, replaying the decoded initial messages
// under the same rule as an external location event: Delta2URL is not
// consulted, and every command the application emits is threaded out.
func InitProgram[S, M any](app App[S, M], initial primitives.Location) (ProgramState[S], []Effect) {
	s0, cmd := app.Init()

	st := ProgramState[S]{
		Router: RouterState{Reported: initial},
		app:    s0,
	}

	var effects []Effect
	if cmd != nil {
		effects = append(effects, AppCmd{Cmd: cmd})
	}
	for _, m := range app.Location2Messages(initial) {
		var c any
		st.app, c = app.Update(m, st.app)
		if c != nil {
			effects = append(effects, AppCmd{Cmd: c})
		}
	}
	return st, effects
}
