package converter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/napolitain/forge-scheduler/internal/loader"
	"github.com/napolitain/forge-scheduler/internal/models"
	"github.com/napolitain/forge-scheduler/internal/solver"
	"github.com/napolitain/forge-scheduler/internal/solver/forge"
)

// Request limits errors
var (
	ErrUnknownType     = errors.New("unknown message type")
	ErrMaxHorizon      = errors.New("horizon too large")
	ErrNoDedupHorizon  = errors.New("horizon too large without deduplication")
	ErrTooManyCatalogs = errors.New("too many catalogs")
	ErrBusy            = errors.New("a solve request is already queued")
)

// Limits on what a remote client may request
const (
	MaxHorizon        = 40
	MaxNoDedupHorizon = 16
	MaxCatalogs       = 32
)

// RequestToCatalogs checks a SolveRequest against the request limits and
// converts it to validated catalogs
func RequestToCatalogs(req *SolveRequest) ([]*models.Catalog, error) {
	if req.Type != TypeSolve {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, req.Type)
	}
	if req.Horizon <= 0 {
		return nil, fmt.Errorf("%w: %d", forge.ErrBadHorizon, req.Horizon)
	}
	if req.Horizon > MaxHorizon {
		return nil, fmt.Errorf("%w: %d > %d", ErrMaxHorizon, req.Horizon, MaxHorizon)
	}
	if req.NoDedup && req.Horizon > MaxNoDedupHorizon {
		return nil, fmt.Errorf("%w: %d > %d", ErrNoDedupHorizon, req.Horizon, MaxNoDedupHorizon)
	}
	if len(req.Catalogs) > MaxCatalogs {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyCatalogs, len(req.Catalogs), MaxCatalogs)
	}

	var (
		catalogs []*models.Catalog
		err      error
	)
	if req.Blueprints != "" {
		catalogs, err = loader.ParseBlueprints(strings.NewReader(req.Blueprints))
	} else {
		catalogs, err = loader.ToCatalogs(req.Catalogs)
	}
	if err != nil {
		return nil, err
	}

	if len(catalogs) > MaxCatalogs {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyCatalogs, len(catalogs), MaxCatalogs)
	}
	return catalogs, nil
}

// RequestOptions returns the search options a request asks for
func RequestOptions(req *SolveRequest) []forge.Option {
	var opts []forge.Option
	if req.NoDedup {
		opts = append(opts, forge.WithoutDedup())
	}
	return opts
}

// StepToProgress converts step statistics to a progress message
func StepToProgress(st forge.StepStats) Message {
	return Message{
		Type: TypeProgress,
		Payload: Progress{
			Catalog:  st.CatalogID,
			Step:     st.Step,
			Expanded: st.Expanded,
			States:   st.Frontier,
		},
	}
}

// OutcomeToResult converts a catalog outcome to a result message
func OutcomeToResult(o solver.Outcome) Message {
	return Message{
		Type: TypeResult,
		Payload: CatalogResult{
			Catalog:    o.Catalog.ID,
			Name:       o.Catalog.Name,
			Best:       o.Result.Best,
			Quality:    o.Catalog.ID * o.Result.Best,
			PeakStates: o.Result.PeakFrontier(),
		},
	}
}

// OutcomesToSummary aggregates every outcome of a request
func OutcomesToSummary(horizon int, outcomes []solver.Outcome) Message {
	return Message{
		Type: TypeSummary,
		Payload: Summary{
			Horizon:    horizon,
			Catalogs:   len(outcomes),
			QualitySum: solver.QualitySum(outcomes),
			TopProduct: solver.TopProduct(outcomes, solver.ProductTop),
		},
	}
}

// ErrorToMessage wraps an error for the client
func ErrorToMessage(err error) Message {
	return Message{Type: TypeError, Payload: ErrorPayload{Error: err.Error()}}
}
