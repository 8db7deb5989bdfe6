package core

import (
	"sync/atomic"
	"testing"

	"github.com/comalice/navsyncx/internal/primitives"
)

// fakeApp is a func-backed App with call counting, so each test can shape
// the routing hooks it cares about.
type fakeApp struct {
	init   func() (navState, any)
	update func(m navMsg, s navState) (navState, any)
	delta  func(prev, next navState) (primitives.URLChange, bool)
	decode func(loc primitives.Location) []navMsg

	deltaCalls  atomic.Int64
	decodeCalls atomic.Int64
}

type navState struct {
	route string
	log   []string
}

type navMsg struct {
	route string
	note  string
	cmd   any
}

func (a *fakeApp) Init() (navState, any) {
	if a.init != nil {
		return a.init()
	}
	return navState{route: "/"}, nil
}

func (a *fakeApp) Update(m navMsg, s navState) (navState, any) {
	if a.update != nil {
		return a.update(m, s)
	}
	if m.route != "" {
		s.route = m.route
	}
	if m.note != "" {
		s.log = append(append([]string(nil), s.log...), m.note)
	}
	return s, m.cmd
}

func (a *fakeApp) Delta2URL(prev, next navState) (primitives.URLChange, bool) {
	a.deltaCalls.Add(1)
	if a.delta != nil {
		return a.delta(prev, next)
	}
	if prev.route == next.route {
		return nil, false
	}
	loc := primitives.ParseLocation(next.route)
	return primitives.PathChange{Path: loc.Path, Query: loc.Query, Fragment: loc.Fragment, Entry: primitives.NewEntry}, true
}

func (a *fakeApp) Location2Messages(loc primitives.Location) []navMsg {
	a.decodeCalls.Add(1)
	if a.decode != nil {
		return a.decode(loc)
	}
	return []navMsg{{route: loc.String()}}
}

func stateAt(route string, expected int) ProgramState[navState] {
	return ProgramState[navState]{
		Router: RouterState{Reported: primitives.ParseLocation(route), Expected: expected},
		app:    navState{route: route},
	}
}

func TestStepSelfInitiatedWrite(t *testing.T) {
	app := &fakeApp{}
	st := stateAt("/home", 0)

	st2, effects := Step[navState, navMsg](app, MsgEvent[navMsg](navMsg{route: "/profile/42"}), st)

	if len(effects) != 1 {
		t.Fatalf("effects = %v, want one WriteURL", effects)
	}
	w, ok := effects[0].(WriteURL)
	if !ok {
		t.Fatalf("effect = %T, want WriteURL", effects[0])
	}
	if w.URL != "/profile/42" || w.Entry != primitives.NewEntry {
		t.Errorf("write = (%q, %v), want (/profile/42, push)", w.URL, w.Entry)
	}
	if w.Key == ZeroNavKey {
		t.Error("write should carry a minted navigation key")
	}
	if got := st2.Router.Reported.String(); got != "/profile/42" {
		t.Errorf("reported = %q, want /profile/42", got)
	}
	if st2.Router.Expected != 1 {
		t.Errorf("expected = %d, want 1", st2.Router.Expected)
	}
}

func TestStepAcknowledgmentConsumption(t *testing.T) {
	app := &fakeApp{}
	st := stateAt("/home", 0)
	st.Router.Reported = primitives.ParseLocation("/profile/42")
	st.Router.Expected = 1

	st2, effects := Step[navState, navMsg](app, LocationEvent[navMsg]("/profile/42"), st)

	if len(effects) != 0 {
		t.Errorf("effects = %v, want none", effects)
	}
	if st2.Router.Expected != 0 {
		t.Errorf("expected = %d, want 0", st2.Router.Expected)
	}
	if got := st2.Router.Reported.String(); got != "/profile/42" {
		t.Errorf("reported = %q, want /profile/42", got)
	}
	if app.decodeCalls.Load() != 0 {
		t.Errorf("Location2Messages called %d times during ack, want 0", app.decodeCalls.Load())
	}
	if app.deltaCalls.Load() != 0 {
		t.Errorf("Delta2URL called %d times during ack, want 0", app.deltaCalls.Load())
	}
}

func TestStepAckConsumesOneAtATime(t *testing.T) {
	app := &fakeApp{}
	st := stateAt("/a", 3)

	st, _ = Step[navState, navMsg](app, LocationEvent[navMsg]("/b"), st)
	if st.Router.Expected != 2 {
		t.Fatalf("expected = %d, want 2", st.Router.Expected)
	}
	st, _ = Step[navState, navMsg](app, LocationEvent[navMsg]("/c"), st)
	if st.Router.Expected != 1 {
		t.Fatalf("expected = %d, want 1", st.Router.Expected)
	}
	if app.decodeCalls.Load() != 0 {
		t.Errorf("decode calls = %d, want 0 while acks pending", app.decodeCalls.Load())
	}
	if got := st.Router.Reported.String(); got != "/c" {
		t.Errorf("reported = %q, want /c (updated on every event)", got)
	}
}

func TestStepExternalEventDecoding(t *testing.T) {
	var seen []string
	app := &fakeApp{
		decode: func(loc primitives.Location) []navMsg {
			return []navMsg{{route: loc.String(), note: "first"}, {note: "second"}}
		},
		update: func(m navMsg, s navState) (navState, any) {
			seen = append(seen, m.note)
			if m.route != "" {
				s.route = m.route
			}
			return s, nil
		},
	}
	st := stateAt("/list?page=2", 0)

	st2, effects := Step[navState, navMsg](app, LocationEvent[navMsg]("/list?page=3"), st)

	if app.decodeCalls.Load() != 1 {
		t.Errorf("Location2Messages calls = %d, want 1", app.decodeCalls.Load())
	}
	if app.deltaCalls.Load() != 0 {
		t.Errorf("Delta2URL calls = %d during replay, want 0", app.deltaCalls.Load())
	}
	if len(seen) != 2 || seen[0] != "first" || seen[1] != "second" {
		t.Errorf("replay order = %v, want [first second]", seen)
	}
	if got := st2.Router.Reported.String(); got != "/list?page=3" {
		t.Errorf("reported = %q, want /list?page=3", got)
	}
	if st2.Router.Expected != 0 {
		t.Errorf("expected = %d, want 0", st2.Router.Expected)
	}
	if len(effects) != 0 {
		t.Errorf("effects = %v, want none (no app cmds emitted)", effects)
	}
}

func TestStepExternalReplayThreadsCommands(t *testing.T) {
	app := &fakeApp{
		decode: func(primitives.Location) []navMsg {
			return []navMsg{{cmd: "fetch-1"}, {cmd: "fetch-2"}}
		},
	}
	st := stateAt("/", 0)

	_, effects := Step[navState, navMsg](app, LocationEvent[navMsg]("/x"), st)

	if len(effects) != 2 {
		t.Fatalf("effects = %v, want two AppCmds", effects)
	}
	for i, want := range []string{"fetch-1", "fetch-2"} {
		cmd, ok := effects[i].(AppCmd)
		if !ok || cmd.Cmd != want {
			t.Errorf("effects[%d] = %v, want AppCmd{%s}", i, effects[i], want)
		}
	}
}

func TestStepIdempotenceGuard(t *testing.T) {
	app := &fakeApp{
		delta: func(prev, next navState) (primitives.URLChange, bool) {
			// Resolves to the location we are already at.
			return primitives.QueryChange{Query: map[string]string{"page": "2"}, Entry: primitives.NewEntry}, true
		},
	}
	st := stateAt("/list?page=2", 0)
	before := st.Router

	st2, effects := Step[navState, navMsg](app, MsgEvent[navMsg](navMsg{note: "tick"}), st)

	if st2.Router.Expected != before.Expected {
		t.Errorf("expected = %d, want unchanged %d", st2.Router.Expected, before.Expected)
	}
	if !st2.Router.Reported.Eq(before.Reported) {
		t.Errorf("reported = %v, want unchanged %v", st2.Router.Reported, before.Reported)
	}
	for _, ef := range effects {
		if _, ok := ef.(WriteURL); ok {
			t.Error("idempotent change must not emit a location write")
		}
	}
}

func TestStepDeltaNone(t *testing.T) {
	app := &fakeApp{
		delta: func(prev, next navState) (primitives.URLChange, bool) { return nil, false },
	}
	st := stateAt("/home", 0)

	st2, effects := Step[navState, navMsg](app, MsgEvent[navMsg](navMsg{note: "tick", cmd: "side"}), st)

	if app.deltaCalls.Load() != 1 {
		t.Errorf("Delta2URL calls = %d, want exactly 1 per message cycle", app.deltaCalls.Load())
	}
	if st2.Router.Expected != 0 || !st2.Router.Reported.Eq(st.Router.Reported) {
		t.Errorf("router state changed without a url change: %+v", st2.Router)
	}
	if len(effects) != 1 {
		t.Fatalf("effects = %v, want the forwarded app cmd only", effects)
	}
	if cmd, ok := effects[0].(AppCmd); !ok || cmd.Cmd != "side" {
		t.Errorf("effects[0] = %v, want AppCmd{side}", effects[0])
	}
}

func TestStepFloorClamp(t *testing.T) {
	app := &fakeApp{}
	st := stateAt("/", 0)

	for i := 0; i < 3; i++ {
		st, _ = Step[navState, navMsg](app, LocationEvent[navMsg]("/spurious"), st)
		if st.Router.Expected < 0 {
			t.Fatalf("expected went negative: %d", st.Router.Expected)
		}
	}
	if st.Router.Expected != 0 {
		t.Errorf("expected = %d, want 0", st.Router.Expected)
	}
	// Each spurious event decoded externally, bounded damage.
	if app.decodeCalls.Load() != 3 {
		t.Errorf("decode calls = %d, want 3", app.decodeCalls.Load())
	}
}

func TestStepReplaceEntry(t *testing.T) {
	app := &fakeApp{
		delta: func(prev, next navState) (primitives.URLChange, bool) {
			return primitives.QueryChange{Query: map[string]string{"q": "go"}, Entry: primitives.ModifyEntry}, true
		},
	}
	st := stateAt("/search", 0)

	_, effects := Step[navState, navMsg](app, MsgEvent[navMsg](navMsg{note: "type"}), st)

	if len(effects) != 1 {
		t.Fatalf("effects = %v, want one WriteURL", effects)
	}
	w := effects[0].(WriteURL)
	if w.Entry != primitives.ModifyEntry {
		t.Errorf("entry = %v, want replace", w.Entry)
	}
	if w.URL != "/search?q=go" {
		t.Errorf("url = %q, want /search?q=go", w.URL)
	}
}

func TestInitProgram(t *testing.T) {
	app := &fakeApp{
		init: func() (navState, any) { return navState{route: "/"}, "boot" },
		decode: func(loc primitives.Location) []navMsg {
			return []navMsg{{route: loc.String()}, {note: "restored", cmd: "warm"}}
		},
	}

	st, effects := InitProgram[navState, navMsg](app, primitives.ParseLocation("/profile/42"))

	if got := st.Router.Reported.String(); got != "/profile/42" {
		t.Errorf("reported = %q, want /profile/42", got)
	}
	if st.Router.Expected != 0 {
		t.Errorf("expected = %d, want 0", st.Router.Expected)
	}
	if got := st.AppState().route; got != "/profile/42" {
		t.Errorf("app route = %q, want /profile/42", got)
	}
	if app.deltaCalls.Load() != 0 {
		t.Errorf("Delta2URL calls = %d during init replay, want 0", app.deltaCalls.Load())
	}
	if len(effects) != 2 {
		t.Fatalf("effects = %v, want init cmd + replay cmd", effects)
	}
	if effects[0].(AppCmd).Cmd != "boot" || effects[1].(AppCmd).Cmd != "warm" {
		t.Errorf("effects = %v, want [boot warm]", effects)
	}
}

func TestMapAppLeavesRouterAlone(t *testing.T) {
	st := stateAt("/a", 2)
	st2 := st.MapApp(func(s navState) navState {
		s.route = "/elsewhere"
		return s
	})

	if st2.AppState().route != "/elsewhere" {
		t.Errorf("app state = %+v, want mapped", st2.AppState())
	}
	if st2.Router.Expected != st.Router.Expected || !st2.Router.Reported.Eq(st.Router.Reported) {
		t.Errorf("router = %+v, want untouched %+v", st2.Router, st.Router)
	}
}

func TestRouterSnapshotRoundTrip(t *testing.T) {
	st := RouterState{Reported: primitives.ParseLocation("/list?page=2#top"), Expected: 2}
	snap := st.Snapshot("prog-1")

	if snap.ProgramID != "prog-1" || snap.Expected != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
	back := RestoreRouterState(snap)
	if !back.Reported.Eq(st.Reported) || back.Expected != st.Expected {
		t.Errorf("restored = %+v, want %+v", back, st)
	}
}
