package production

import (
	"context"
	"log"

	"github.com/comalice/navsyncx/internal/core"
)

// ChannelPublisher is a stdlib-only implementation that forwards navigation
// records to a Go channel. Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch chan<- core.NavMetadata
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- core.NavMetadata) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, md core.NavMetadata) error {
	select {
	case p.ch <- md:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil // Non-blocking drop
	}
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}

// LogPublisher writes one line per navigation record to the standard logger.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, md core.NavMetadata) error {
	log.Printf("nav %s: %s %s %s", md.ProgramID, md.Kind, md.URL, md.Entry)
	return nil
}

func (LogPublisher) Close() error { return nil }
