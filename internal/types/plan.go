package types

// Requirement is one entry parsed from a requirements file. The specifier is
// carried for reporting but resolution only existence-checks the name.
type Requirement struct {
	Name      string `json:"name"`
	Specifier string `json:"specifier,omitempty"`
	Source    string `json:"source"`
}

// PlanEntry is one distribution the orchestrator should attempt to install.
type PlanEntry struct {
	Distribution string          `json:"distribution"`
	Module       string          `json:"module"`
	Specifier    string          `json:"specifier,omitempty"`
	Source       PlanEntrySource `json:"source"`
	State        PlanEntryState  `json:"state"`
}

// IndexProject is the package index's view of a distribution.
type IndexProject struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Summary string `json:"summary"`
}

// Suggestion is a candidate alternative distribution surfaced after an
// install failure. Informational only; never auto-installed.
type Suggestion struct {
	Name       string `json:"name"`
	Version    string `json:"version,omitempty"`
	Summary    string `json:"summary,omitempty"`
	ExactMatch bool   `json:"exact_match"`
}

// InstallOutcome is the per-distribution result of the install orchestrator.
type InstallOutcome struct {
	Distribution string        `json:"distribution"`
	Module       string        `json:"module"`
	Status       InstallStatus `json:"status"`
	Hint         FailureHint   `json:"hint,omitempty"`
	HintText     string        `json:"hint_text,omitempty"`
	Error        string        `json:"error,omitempty"`
	Suggestions  []Suggestion  `json:"suggestions,omitempty"`
}
