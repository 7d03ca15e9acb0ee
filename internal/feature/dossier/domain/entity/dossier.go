// Package entity defines the payload types for the dossier feature.
//
// Upstream payloads are owned by the FastAPI service and are relayed as opaque JSON.
// The typed structs here describe only the placeholder data generated when the
// upstream cannot be reached.
package entity

import "encoding/json"

const (
	// SourceUpstream marks data relayed from the FastAPI service.
	SourceUpstream = "upstream"
	// SourceFallback marks generated placeholder data.
	SourceFallback = "fallback"
)

// Metadata describes where a payload came from.
type Metadata struct {
	Source      string `json:"source"`
	Error       string `json:"error,omitempty"`
	FetchedAt   string `json:"fetched_at,omitempty"`
	GeneratedAt string `json:"generated_at,omitempty"`
}

// IsFallback reports whether the payload was generated locally.
func (m Metadata) IsFallback() bool {
	return m.Source == SourceFallback
}

// Dossier aggregates the company profile, metrics and timeline for one entity.
type Dossier struct {
	CompanyID string   `json:"company_id"`
	Company   any      `json:"company"`
	Metrics   any      `json:"metrics"`
	Timeline  any      `json:"timeline"`
	Metadata  Metadata `json:"metadata"`
}

// Section is a single dossier sub-resource (forecast, provenance, repos, timeseries).
type Section struct {
	CompanyID string
	Kind      string
	Data      any
	Metadata  Metadata
}

// MarshalJSON renders the section as {"company_id", "<kind>": data, "metadata"}.
func (s Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"company_id": s.CompanyID,
		s.Kind:       s.Data,
		"metadata":   s.Metadata,
	})
}
