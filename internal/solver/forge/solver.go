package forge

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/napolitain/forge-scheduler/internal/models"
)

// ErrBadHorizon is returned when the horizon is not positive
var ErrBadHorizon = errors.New("forge: horizon must be positive")

// StepStats describes one completed step
type StepStats struct {
	CatalogID int
	Step      int // 1-based
	Expanded  int // NeedsDecision states branched
	Ticked    int // states pushed to the next frontier
	Frontier  int // states kept after deduplication
}

// Result is the outcome of one catalog over one horizon
type Result struct {
	CatalogID int
	Horizon   int
	Best      int
	Steps     []StepStats
}

// PeakFrontier returns the largest frontier seen during the run
func (r *Result) PeakFrontier() int {
	peak := 0
	for _, st := range r.Steps {
		peak = max(peak, st.Frontier)
	}
	return peak
}

// Solver runs the layered search. A Solver holds no state between runs
// and may be shared by concurrent callers.
type Solver struct {
	opts Options
}

// NewSolver creates a solver with the given options
func NewSolver(opts ...Option) *Solver {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Solver{opts: o}
}

// Run explores every schedule of cat over horizon steps and returns the
// maximum output balance reachable.
func (s *Solver) Run(cat *models.Catalog, horizon int) (*Result, error) {
	return s.RunContext(context.Background(), cat, horizon)
}

// RunContext is Run with cancellation. ctx is checked before each step;
// a cancelled run returns ctx.Err() and no result.
func (s *Solver) RunContext(ctx context.Context, cat *models.Catalog, horizon int) (*Result, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadHorizon, horizon)
	}

	result := &Result{
		CatalogID: cat.ID,
		Horizon:   horizon,
		Steps:     make([]StepStats, 0, horizon),
	}

	frontier := []State{Seed(cat)}
	for step := 1; step <= horizon; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		remaining := horizon - step + 1
		next, stats := s.step(cat, frontier, step, remaining)
		frontier = next.States()

		result.Steps = append(result.Steps, stats)
		s.opts.OnStep(stats)
		s.opts.Logger.WithFields(logrus.Fields{
			"catalog":  cat.ID,
			"step":     step,
			"expanded": stats.Expanded,
			"states":   stats.Frontier,
		}).Debug("step done")
	}

	result.Best = Best(frontier)
	return result, nil
}

// step drains one step's work queue. NeedsDecision states are branched
// back onto the queue; AwaitingTick states are ticked into the next
// frontier.
func (s *Solver) step(cat *models.Catalog, frontier []State, step, remaining int) (*Frontier, StepStats) {
	stats := StepStats{CatalogID: cat.ID, Step: step}
	next := NewFrontier(s.opts.Dedup, len(frontier))

	queue := make([]State, len(frontier), 2*len(frontier))
	copy(queue, frontier)

	for len(queue) > 0 {
		st := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		s.opts.Inspect(step, remaining, st)

		switch st.Phase {
		case NeedsDecision:
			stats.Expanded++
			queue = append(queue, Branch(cat, st, remaining)...)
		case AwaitingTick:
			next.Push(Tick(cat, st, remaining))
		}
	}

	stats.Ticked = next.Pushed()
	stats.Frontier = next.Len()
	return next, stats
}

// MaxOutput is a shortcut for NewSolver(opts...).Run(cat, horizon).Best
func MaxOutput(cat *models.Catalog, horizon int, opts ...Option) (int, error) {
	res, err := NewSolver(opts...).Run(cat, horizon)
	if err != nil {
		return 0, err
	}
	return res.Best, nil
}
