package extensibility

import (
	"time"
)

// ChannelLocationSource is a LocationSource implementation backed by a Go
// channel. Provides a simple way to feed platform URL reports into the
// Runtime.
type ChannelLocationSource struct {
	ch chan string
}

// Locations returns the receive-only channel of URL reports.
func (s *ChannelLocationSource) Locations() <-chan string {
	return s.ch
}

// Offer reports a URL. Non-blocking; drops on backpressure.
func (s *ChannelLocationSource) Offer(raw string) bool {
	select {
	case s.ch <- raw:
		return true
	default:
		return false
	}
}

// NewChannelLocationSource creates a new ChannelLocationSource with the given
// buffer size.
func NewChannelLocationSource(buffer int) *ChannelLocationSource {
	return &ChannelLocationSource{ch: make(chan string, buffer)}
}

// PollingLocationSource samples a current-URL function at a fixed interval
// and emits only when the value changes. Useful for platforms without a
// native location-changed callback (the hashchange-polling era).
type PollingLocationSource struct {
	ch      chan string
	current func() string
	ticker  *time.Ticker
	stop    chan struct{}
}

// NewPollingLocationSource creates a PollingLocationSource sampling current
// every d duration.
func NewPollingLocationSource(current func() string, d time.Duration) *PollingLocationSource {
	ch := make(chan string, 10)
	p := &PollingLocationSource{
		ch:      ch,
		current: current,
		ticker:  time.NewTicker(d),
		stop:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *PollingLocationSource) run() {
	last := p.current()
	for {
		select {
		case <-p.ticker.C:
			now := p.current()
			if now == last {
				continue
			}
			last = now
			select {
			case p.ch <- now:
			default:
				// drop if full
			}
		case <-p.stop:
			p.ticker.Stop()
			close(p.ch)
			return
		}
	}
}

// Locations returns the URL report channel.
func (p *PollingLocationSource) Locations() <-chan string {
	return p.ch
}

// Stop stops the ticker and closes the channel.
func (p *PollingLocationSource) Stop() {
	close(p.stop)
}
