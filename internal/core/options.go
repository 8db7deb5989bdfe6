// Options for configuring Runtime instances.
package core

// WithNavigator configures the Runtime with the platform write primitive.
func WithNavigator[S, M any](n Navigator) Option[S, M] {
	return func(r *Runtime[S, M]) {
		r.nav = n
	}
}

// WithSource configures the Runtime with a platform location-event source.
func WithSource[S, M any](s LocationSource) Option[S, M] {
	return func(r *Runtime[S, M]) {
		r.source = s
	}
}

// WithEffectRunner configures the Runtime with a custom EffectRunner.
func WithEffectRunner[S, M any](er EffectRunner) Option[S, M] {
	return func(r *Runtime[S, M]) {
		r.runner = er
	}
}

// WithPersister configures the Runtime with a router-snapshot Persister.
func WithPersister[S, M any](p Persister) Option[S, M] {
	return func(r *Runtime[S, M]) {
		r.persister = p
	}
}

// WithPublisher configures the Runtime with a navigation EventPublisher.
func WithPublisher[S, M any](pb EventPublisher) Option[S, M] {
	return func(r *Runtime[S, M]) {
		r.publisher = pb
	}
}

// WithExternalHandler configures the handler for LoadExternal commands,
// navigation requests whose target is outside the application's own origin.
func WithExternalHandler[S, M any](h func(url string)) Option[S, M] {
	return func(r *Runtime[S, M]) {
		r.external = h
	}
}

// WithQueueSize configures the event queue buffer size.
// Note: overwrites the default channel; apply before Start.
func WithQueueSize[S, M any](size int) Option[S, M] {
	return func(r *Runtime[S, M]) {
		r.queue = make(chan Event[M], size)
	}
}
