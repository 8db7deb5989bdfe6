package replay

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec translates application messages to and from their trace encoding.
// Supplied by the embedder; the trace format itself is message-agnostic.
type Codec[M any] interface {
	Encode(m M) (string, error)
	Decode(s string) (M, error)
}

// StringCodec is the identity codec for applications whose message type is
// string. Handy for scripted demos and the CLI.
type StringCodec struct{}

func (StringCodec) Encode(m string) (string, error) { return m, nil }
func (StringCodec) Decode(s string) (string, error) { return s, nil }

// Event kinds in a trace.
const (
	KindLocation = "location"
	KindMsg      = "msg"
)

// TraceEvent is one recorded input event.
type TraceEvent struct {
	ID   string `yaml:"id" json:"id"`
	Seq  uint64 `yaml:"seq" json:"seq"`
	Kind string `yaml:"kind" json:"kind"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
	Msg  string `yaml:"msg,omitempty" json:"msg,omitempty"`
}

// Trace is a complete recorded session: the initial location plus every
// event in delivery order.
type Trace struct {
	ProgramID string       `yaml:"programID" json:"programID"`
	Initial   string       `yaml:"initial" json:"initial"`
	Events    []TraceEvent `yaml:"events" json:"events"`
}

// EncodeTrace serializes a trace to YAML.
func EncodeTrace(t Trace) ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal trace: %w", err)
	}
	return data, nil
}

// DecodeTrace parses a YAML trace.
func DecodeTrace(data []byte) (Trace, error) {
	var t Trace
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Trace{}, fmt.Errorf("yaml unmarshal trace: %w", err)
	}
	return t, nil
}
