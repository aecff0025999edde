package app

import "pyrun/internal/types"

type ResolveRequest struct {
	Script           string
	RequirementsFile string
	SkipRequirements bool
}

type ResolveResult struct {
	Report types.ResolveReport
}

type InstallRequest struct {
	Report    types.ResolveReport
	AssumeYes bool
	IndexURL  string
}

type InstallResult struct {
	Outcomes []types.InstallOutcome
	Declined bool
}

type RunRequest struct {
	Script           string
	Args             []string
	RequirementsFile string
	SkipRequirements bool
	AssumeYes        bool
	IndexURL         string
}

type RunResult struct {
	Report   types.ResolveReport
	Outcomes []types.InstallOutcome
	Verdict  types.ResolutionVerdict
	Declined bool
	ExitCode int
}
