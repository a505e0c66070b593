// Package solver evaluates many production catalogs over the same horizon.
package solver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/napolitain/forge-scheduler/internal/models"
	"github.com/napolitain/forge-scheduler/internal/solver/forge"
)

// Standard horizons of the two reports
const (
	QualityHorizon = 24
	ProductHorizon = 32
	ProductTop     = 3
)

// Outcome pairs a catalog with its search result
type Outcome struct {
	Catalog *models.Catalog
	Result  *forge.Result
}

// SolveAll runs one independent search per catalog concurrently and
// returns the outcomes in input order. Runs share nothing, so the only
// coordination is the join. ctx is checked before each run and between
// steps of a running search. Hooks passed in opts are called from several
// goroutines.
func SolveAll(ctx context.Context, catalogs []*models.Catalog, horizon int, opts ...forge.Option) ([]Outcome, error) {
	outcomes := make([]Outcome, len(catalogs))
	s := forge.NewSolver(opts...)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, cat := range catalogs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.RunContext(ctx, cat, horizon)
			if err != nil {
				return fmt.Errorf("catalog %d: %w", cat.ID, err)
			}
			outcomes[i] = Outcome{Catalog: cat, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// QualitySum returns the sum of catalog ID times best output
func QualitySum(outcomes []Outcome) int {
	sum := 0
	for _, o := range outcomes {
		sum += o.Catalog.ID * o.Result.Best
	}
	return sum
}

// TopProduct returns the product of the best outputs of the first n
// outcomes. Fewer than n outcomes multiply what is there.
func TopProduct(outcomes []Outcome, n int) int {
	product := 1
	for i, o := range outcomes {
		if i >= n {
			break
		}
		product *= o.Result.Best
	}
	return product
}

// Report runs the standard quality report over every catalog
func Report(ctx context.Context, catalogs []*models.Catalog, opts ...forge.Option) (int, error) {
	outcomes, err := SolveAll(ctx, catalogs, QualityHorizon, opts...)
	if err != nil {
		return 0, err
	}
	return QualitySum(outcomes), nil
}

// ProductReport runs the long-horizon report over the first ProductTop catalogs
func ProductReport(ctx context.Context, catalogs []*models.Catalog, opts ...forge.Option) (int, error) {
	if len(catalogs) > ProductTop {
		catalogs = catalogs[:ProductTop]
	}
	outcomes, err := SolveAll(ctx, catalogs, ProductHorizon, opts...)
	if err != nil {
		return 0, err
	}
	return TopProduct(outcomes, ProductTop), nil
}
