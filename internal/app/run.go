package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"pyrun/internal/types"
)

// Run resolves and installs, then executes the entry script with its
// original arguments. Install failures are surfaced as warnings but never
// block execution: a missing package may sit on a code path the script
// never hits.
func (s Service) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	resolved, err := s.Resolve(ctx, ResolveRequest{
		Script:           req.Script,
		RequirementsFile: req.RequirementsFile,
		SkipRequirements: req.SkipRequirements,
	})
	if err != nil {
		return RunResult{}, err
	}

	installed, err := s.Install(ctx, InstallRequest{
		Report:    resolved.Report,
		AssumeYes: req.AssumeYes,
		IndexURL:  req.IndexURL,
	})
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		Report:   resolved.Report,
		Outcomes: installed.Outcomes,
		Declined: installed.Declined,
		Verdict:  VerdictFor(resolved.Report, installed.Outcomes, installed.Declined),
	}

	for _, outcome := range installed.Outcomes {
		if outcome.Status != types.InstallStatusFailed {
			continue
		}
		log.Ctx(ctx).Warn().
			Str("distribution", outcome.Distribution).
			Str("hint", string(outcome.Hint)).
			Msg("dependency install failed; continuing anyway")
	}

	exitCode, err := s.Runner.Run(ctx, req.Script, req.Args)
	if err != nil {
		return result, err
	}
	result.ExitCode = exitCode
	return result, nil
}

// VerdictFor condenses a run for the CLI exit-code decision: undetermined
// when the entry script itself could not be analyzed and nothing was
// discovered, partial when something failed or the user declined, full
// otherwise.
func VerdictFor(report types.ResolveReport, outcomes []types.InstallOutcome, declined bool) types.ResolutionVerdict {
	entryFailed := false
	for _, failure := range report.ParseFailures {
		if failure.Path == report.Entry {
			entryFailed = true
			break
		}
	}
	if entryFailed && len(report.Externals) == 0 {
		return types.VerdictUndetermined
	}
	// A decline leaves the whole plan uninstalled, which is as partial as a
	// failed install.
	if declined {
		return types.VerdictPartial
	}
	for _, outcome := range outcomes {
		if outcome.Status == types.InstallStatusFailed {
			return types.VerdictPartial
		}
	}
	return types.VerdictFull
}
