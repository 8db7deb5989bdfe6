package replay

import (
	"fmt"

	"github.com/comalice/navsyncx"
)

// Write is one captured location write: what the engine asked the platform
// to do, minus the per-run navigation key.
type Write struct {
	URL   string
	Entry string
}

// Result is the outcome of replaying a trace.
type Result[S any] struct {
	Final  navsyncx.ProgramState[S]
	Writes []Write
}

// Run replays a trace through the pure reconciliation engine. No runtime, no
// goroutines, no platform: each event goes through Step in recorded order
// and every WriteURL effect is captured. Identical traces produce identical
// results.
//
// Note: a recorded location event is replayed as-is, it does NOT echo back
// as the acknowledgment of a preceding write the way a live platform would.
// Record the echoes too (the live LocationSource delivers them) and replay
// stays faithful.
func Run[S, M any](app navsyncx.App[S, M], trace Trace, codec Codec[M]) (Result[S], error) {
	st, _ := navsyncx.InitProgram(app, navsyncx.ParseLocation(trace.Initial))

	var result Result[S]
	for _, ev := range trace.Events {
		var e navsyncx.Event[M]
		switch ev.Kind {
		case KindLocation:
			e = navsyncx.LocationEvent[M](ev.URL)
		case KindMsg:
			m, err := codec.Decode(ev.Msg)
			if err != nil {
				return Result[S]{}, fmt.Errorf("decode event %s: %w", ev.ID, err)
			}
			e = navsyncx.MsgEvent(m)
		default:
			return Result[S]{}, fmt.Errorf("event %s: unknown kind %q", ev.ID, ev.Kind)
		}

		var effects []navsyncx.Effect
		st, effects = navsyncx.Step(app, e, st)
		for _, ef := range effects {
			if w, ok := ef.(navsyncx.WriteURL); ok {
				result.Writes = append(result.Writes, Write{URL: w.URL, Entry: w.Entry.String()})
			}
		}
	}
	result.Final = st
	return result, nil
}

// DivergeAt compares two write sequences and returns the index of the first
// difference, or -1 if they match. Regression harness helper.
func DivergeAt(a, b []Write) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
