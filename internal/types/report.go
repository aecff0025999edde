package types

import "time"

// ResolveReport aggregates one resolution run: the externally-sourced
// modules in first-seen order, non-fatal parse failures, the merged plan and
// the entries already satisfied by the environment. Rendering belongs to the
// CLI layer; the core only collects.
type ResolveReport struct {
	Entry         string         `json:"entry"`
	Externals     []string       `json:"externals"`
	ParseFailures []ParseFailure `json:"parse_failures,omitempty"`
	Requirements  []Requirement  `json:"requirements,omitempty"`
	Plan          []PlanEntry    `json:"plan"`
	Satisfied     []PlanEntry    `json:"satisfied,omitempty"`
	GeneratedAt   time.Time      `json:"generated_at"`
}
