package forge

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a Solver via functional arguments
type Option func(*Options)

// Options holds the tunables of a Solver run
type Options struct {
	// Dedup collapses duplicate states after each step. Disabling it
	// never changes the result, only the running time.
	Dedup bool

	// Logger receives one debug entry per completed step
	Logger logrus.FieldLogger

	// OnStep is called after each step with its statistics
	OnStep func(StepStats)

	// Inspect is called for every state taken off a step's work queue
	Inspect func(step, remaining int, s State)
}

// DefaultOptions returns dedup enabled, a discarding logger and no-op hooks
func DefaultOptions() Options {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return Options{
		Dedup:   true,
		Logger:  logger,
		OnStep:  func(StepStats) {},
		Inspect: func(int, int, State) {},
	}
}

// WithoutDedup keeps every ticked state in the frontier
func WithoutDedup() Option {
	return func(o *Options) {
		o.Dedup = false
	}
}

// WithLogger sets the logger used for per-step progress
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithStepHook registers a callback run after every step
func WithStepHook(fn func(StepStats)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnStep = fn
		}
	}
}

// WithInspector registers a callback run on every expanded or ticked state
func WithInspector(fn func(step, remaining int, s State)) Option {
	return func(o *Options) {
		if fn != nil {
			o.Inspect = fn
		}
	}
}
