package replay

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/atomic"
)

// Recorder captures the event stream feeding a live program. It is safe for
// concurrent use: sequence numbers are assigned atomically, so events from
// the location pump and the message senders interleave in a total order.
type Recorder[M any] struct {
	codec Codec[M]

	seq     atomic.Uint64
	mu      sync.Mutex
	events  []TraceEvent
	entropy *rand.Rand
}

// NewRecorder creates a Recorder using the given message codec.
func NewRecorder[M any](codec Codec[M]) *Recorder[M] {
	return &Recorder[M]{
		codec:   codec,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Location records a platform-reported URL.
func (r *Recorder[M]) Location(url string) {
	seq := r.seq.Inc()
	r.append(TraceEvent{Seq: seq, Kind: KindLocation, URL: url})
}

// Msg records an application message.
func (r *Recorder[M]) Msg(m M) error {
	encoded, err := r.codec.Encode(m)
	if err != nil {
		return err
	}
	seq := r.seq.Inc()
	r.append(TraceEvent{Seq: seq, Kind: KindMsg, Msg: encoded})
	return nil
}

func (r *Recorder[M]) append(ev TraceEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev.ID = ulid.MustNew(ulid.Now(), r.entropy).String()
	// Keep the slice ordered by sequence even if two recorders raced
	// between Inc and append.
	i := len(r.events)
	for i > 0 && r.events[i-1].Seq > ev.Seq {
		i--
	}
	r.events = append(r.events, TraceEvent{})
	copy(r.events[i+1:], r.events[i:])
	r.events[i] = ev
}

// Len returns the number of recorded events.
func (r *Recorder[M]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Trace snapshots the recording into a replayable Trace.
func (r *Recorder[M]) Trace(programID, initial string) Trace {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Trace{
		ProgramID: programID,
		Initial:   initial,
		Events:    append([]TraceEvent(nil), r.events...),
	}
}
