// Package converter provides conversions between wire messages and model types
package converter

import "github.com/napolitain/forge-scheduler/internal/loader"

// Message types
const (
	TypeSolve    = "solve"
	TypeProgress = "progress"
	TypeResult   = "result"
	TypeSummary  = "summary"
	TypeError    = "error"
)

// Message is the envelope of every websocket frame
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// SolveRequest asks for every catalog to be searched over Horizon steps.
// Catalogs may be given structured or as blueprint text.
type SolveRequest struct {
	Type       string               `json:"type"`
	Horizon    int                  `json:"horizon"`
	Catalogs   []loader.CatalogJSON `json:"catalogs,omitempty"`
	Blueprints string               `json:"blueprints,omitempty"`
	NoDedup    bool                 `json:"no_dedup,omitempty"`
}

// Progress reports one completed search step
type Progress struct {
	Catalog  int `json:"catalog"`
	Step     int `json:"step"`
	Expanded int `json:"expanded"`
	States   int `json:"states"`
}

// CatalogResult reports the outcome of one catalog
type CatalogResult struct {
	Catalog    int    `json:"catalog"`
	Name       string `json:"name"`
	Best       int    `json:"best"`
	Quality    int    `json:"quality"`
	PeakStates int    `json:"peak_states"`
}

// Summary closes a solve request
type Summary struct {
	Horizon    int `json:"horizon"`
	Catalogs   int `json:"catalogs"`
	QualitySum int `json:"quality_sum"`
	TopProduct int `json:"top_product"`
}

// ErrorPayload carries a request failure
type ErrorPayload struct {
	Error string `json:"error"`
}
