package api

import "github.com/ypbank/txfile/pkg/record"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port       int
	Bind       string
	APIKey     string // Optional; empty disables API key checks
	ArchiveDir string
}

// Comparison verdicts returned by the compare endpoint.
const (
	VerdictCountMismatch = "different transaction count"
	VerdictDifferent     = "found different transactions"
	VerdictIdentical     = "all transactions are identical"
)

// CompareResponse is the body of a successful compare call.
type CompareResponse struct {
	Verdict string         `json:"verdict"`
	Index   int            `json:"index,omitempty"`
	First   *record.Record `json:"first,omitempty"`
	Second  *record.Record `json:"second,omitempty"`
}

// ImportResponse is the body of a successful archive import call.
type ImportResponse struct {
	Imported int    `json:"imported"`
	BatchID  string `json:"batch_id"`
}
