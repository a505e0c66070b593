package forge

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/napolitain/forge-scheduler/internal/models"
)

func TestExampleBlueprints(t *testing.T) {
	first, second := exampleCatalogs(t)

	tests := []struct {
		name    string
		catalog *models.Catalog
		horizon int
		want    int
		long    bool
	}{
		{"blueprint 1, 24 steps", first, 24, 9, false},
		{"blueprint 2, 24 steps", second, 24, 12, false},
		{"blueprint 1, 32 steps", first, 32, 56, true},
		{"blueprint 2, 32 steps", second, 32, 62, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.long && testing.Short() {
				t.Skip("skipping 32-step search in short mode")
			}

			res, err := NewSolver().Run(tc.catalog, tc.horizon)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if res.Best != tc.want {
				t.Errorf("Best = %d, want %d", res.Best, tc.want)
			}
			t.Logf("best=%d peak frontier=%d", res.Best, res.PeakFrontier())
		})
	}
}

func TestRunRejectsBadHorizon(t *testing.T) {
	first, _ := exampleCatalogs(t)

	for _, h := range []int{0, -3} {
		if _, err := NewSolver().Run(first, h); !errors.Is(err, ErrBadHorizon) {
			t.Errorf("horizon %d: want ErrBadHorizon, got %v", h, err)
		}
	}
}

func TestRunContextCancelsBetweenSteps(t *testing.T) {
	first, _ := exampleCatalogs(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	steps := 0
	res, err := NewSolver(WithStepHook(func(st StepStats) {
		steps++
		if st.Step == 3 {
			cancel()
		}
	})).RunContext(ctx, first, 24)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if res != nil {
		t.Errorf("cancelled run returned %+v", res)
	}
	if steps != 3 {
		t.Errorf("ran %d steps after cancel at step 3", steps)
	}
}

// TestRunDeterminism verifies identical results and step statistics
// across repeated runs.
func TestRunDeterminism(t *testing.T) {
	_, second := exampleCatalogs(t)

	baseline, err := NewSolver().Run(second, 20)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for i := 1; i < 5; i++ {
		res, err := NewSolver().Run(second, 20)
		if err != nil {
			t.Fatalf("Iteration %d: Run failed: %v", i, err)
		}
		if !reflect.DeepEqual(res, baseline) {
			t.Errorf("Iteration %d: result mismatch: got %+v, want %+v", i, res, baseline)
		}
	}
}

func TestRunMonotonicInHorizon(t *testing.T) {
	_, second := exampleCatalogs(t)
	cheap := cheapCatalog(t)

	for _, cat := range []*models.Catalog{second, cheap} {
		prev := 0
		for h := 1; h <= 20; h++ {
			best, err := MaxOutput(cat, h)
			if err != nil {
				t.Fatalf("horizon %d: %v", h, err)
			}
			if best < prev {
				t.Errorf("catalog %d: horizon %d best %d < horizon %d best %d", cat.ID, h, best, h-1, prev)
			}
			prev = best
		}
	}
}

func TestRunInvariants(t *testing.T) {
	first, _ := exampleCatalogs(t)
	caps := first.MaxUseful()

	seen := 0
	inspect := func(step, remaining int, s State) {
		seen++
		if !s.Balances.NonNegative() {
			t.Fatalf("step %d: negative balances %v", step, s)
		}
		for _, r := range models.AllResourceKinds() {
			if r == models.OutputResource {
				continue
			}
			if s.Rates[r] > caps[r] {
				t.Fatalf("step %d: %s rate %d above cap %d", step, r, s.Rates[r], caps[r])
			}
		}
		if remaining == 1 && s.Queued != NoUnit {
			t.Fatalf("step %d: unit queued on final step %v", step, s)
		}
	}

	if _, err := NewSolver(WithInspector(inspect)).Run(first, 24); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if seen == 0 {
		t.Fatal("inspector never called")
	}
}

// TestDedupSoundness compares runs with and without frontier
// deduplication on horizons small enough to finish without it.
func TestDedupSoundness(t *testing.T) {
	_, second := exampleCatalogs(t)
	cheap := cheapCatalog(t)

	tests := []struct {
		catalog *models.Catalog
		maxH    int
	}{
		{second, 14},
		{cheap, 10},
	}

	for _, tc := range tests {
		for h := 1; h <= tc.maxH; h++ {
			with, err := NewSolver().Run(tc.catalog, h)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			without, err := NewSolver(WithoutDedup()).Run(tc.catalog, h)
			if err != nil {
				t.Fatalf("Run without dedup failed: %v", err)
			}

			if with.Best != without.Best {
				t.Errorf("catalog %d horizon %d: dedup best %d, raw best %d",
					tc.catalog.ID, h, with.Best, without.Best)
			}
			if with.PeakFrontier() > without.PeakFrontier() {
				t.Errorf("catalog %d horizon %d: dedup grew the frontier", tc.catalog.ID, h)
			}
		}
	}
}

func TestZeroRecipeUnit(t *testing.T) {
	cat, err := models.NewCatalog(1, "free", []models.UnitKind{
		{Name: "free geode robot", Produces: models.Geode},
	})
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	// One robot bought on each of the first four steps: 0+1+2+3+4.
	best, err := MaxOutput(cat, 5)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if best != 10 {
		t.Errorf("Best = %d, want 10", best)
	}
}

func TestStepStatsAndHooks(t *testing.T) {
	first, _ := exampleCatalogs(t)

	var hooked []StepStats
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	res, err := NewSolver(
		WithStepHook(func(st StepStats) { hooked = append(hooked, st) }),
		WithLogger(logger),
	).Run(first, 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(res.Steps) != 10 {
		t.Fatalf("got %d step stats, want 10", len(res.Steps))
	}
	if !reflect.DeepEqual(hooked, res.Steps) {
		t.Errorf("hook saw %v, result has %v", hooked, res.Steps)
	}

	// Nothing is affordable on the first step.
	if res.Steps[0].Frontier != 1 || res.Steps[0].Expanded != 1 {
		t.Errorf("first step = %+v, want a single idle state", res.Steps[0])
	}
	for _, st := range res.Steps {
		if st.Frontier > st.Ticked {
			t.Errorf("step %d: frontier %d larger than ticked %d", st.Step, st.Frontier, st.Ticked)
		}
		if st.CatalogID != first.ID {
			t.Errorf("step %d: catalog id %d", st.Step, st.CatalogID)
		}
	}

	if got := strings.Count(buf.String(), "step done"); got != 10 {
		t.Errorf("logged %d step lines, want 10", got)
	}
}

func BenchmarkRun24(b *testing.B) {
	first, second := exampleCatalogs(b)
	solver := NewSolver()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Run(first, 24); err != nil {
			b.Fatal(err)
		}
		if _, err := solver.Run(second, 24); err != nil {
			b.Fatal(err)
		}
	}
}
