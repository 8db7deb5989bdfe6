package extensibility

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/comalice/navsyncx/internal/core"
)

// DefaultEffectRunner provides the default implementation of EffectRunner.
// It executes func-shaped commands directly and rejects everything else, so
// applications that only ever emit closures need no custom runner.
type DefaultEffectRunner struct{}

// Run executes the given command.
func (r *DefaultEffectRunner) Run(ctx context.Context, cmd any) error {
	switch c := cmd.(type) {
	case nil:
		return nil
	case func():
		c()
		return nil
	case func(context.Context) error:
		return c(ctx)
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}
}

// FuncEffectRunner adapts a plain function to EffectRunner.
type FuncEffectRunner func(ctx context.Context, cmd any) error

// Run invokes the wrapped function.
func (f FuncEffectRunner) Run(ctx context.Context, cmd any) error {
	return f(ctx, cmd)
}

// LoggingEffectRunner wraps an EffectRunner and adds logging around execution.
type LoggingEffectRunner struct {
	inner core.EffectRunner
}

// NewLoggingEffectRunner creates a new LoggingEffectRunner wrapping the given inner runner.
func NewLoggingEffectRunner(inner core.EffectRunner) *LoggingEffectRunner {
	return &LoggingEffectRunner{inner: inner}
}

// Run logs before and after delegating to the inner runner.
func (r *LoggingEffectRunner) Run(ctx context.Context, cmd any) error {
	log.Printf("LOG: Executing command %T", cmd)
	start := time.Now()
	err := r.inner.Run(ctx, cmd)
	log.Printf("LOG: Command %T completed in %v: %v", cmd, time.Since(start), err)
	return err
}
