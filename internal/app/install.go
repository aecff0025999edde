package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/rs/zerolog/log"

	"pyrun/internal/policies"
	"pyrun/internal/ports"
	"pyrun/internal/types"
)

// Install runs the orchestrator over the report's plan. Each entry moves
// pending → installing → installed|failed; one failure never aborts the
// batch. Without auto_install the plan is listed and confirmed first.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	cfg := s.loadConfig(ctx)
	policy := policies.NewInstallPolicy(cfg, req.AssumeYes)

	result := InstallResult{}
	for _, entry := range req.Report.Satisfied {
		result.Outcomes = append(result.Outcomes, types.InstallOutcome{
			Distribution: entry.Distribution,
			Module:       entry.Module,
			Status:       types.InstallStatusAlreadySatisfied,
		})
	}
	if len(req.Report.Plan) == 0 {
		return result, nil
	}

	if policy.NeedsConfirmation() {
		if !s.Prompt.Confirm(confirmMessage(req.Report.Plan)) {
			log.Ctx(ctx).Warn().Msg("install declined; the script may fail on missing imports")
			result.Declined = true
			return result, nil
		}
	}

	if cfg.AutoUpdatePip {
		s.maybeUpgradePip(ctx)
	}

	for _, entry := range req.Report.Plan {
		outcome := s.installOne(ctx, entry, policy, req.IndexURL)
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result, nil
}

func (s Service) installOne(ctx context.Context, entry types.PlanEntry, policy policies.InstallPolicy, indexURL string) types.InstallOutcome {
	entry.State = types.PlanEntryStateInstalling
	opts := ports.InstallOptions{IndexURL: indexURL}

	err := s.Installer.Install(ctx, entry.Distribution, opts)
	for attempt := 0; err != nil && attempt < policy.MaxRetries; attempt++ {
		// Retry once bypassing the cache to rule out index staleness.
		opts.NoCache = true
		log.Ctx(ctx).Warn().Str("distribution", entry.Distribution).Msg("install failed, retrying without cache")
		err = s.Installer.Install(ctx, entry.Distribution, opts)
	}
	if err == nil {
		return types.InstallOutcome{
			Distribution: entry.Distribution,
			Module:       entry.Module,
			Status:       types.InstallStatusInstalled,
		}
	}

	message := flattenError(err)
	hint, hintText := policy.ClassifyFailure(message, entry.Distribution)
	outcome := types.InstallOutcome{
		Distribution: entry.Distribution,
		Module:       entry.Module,
		Status:       types.InstallStatusFailed,
		Hint:         hint,
		HintText:     hintText,
		Error:        message,
	}
	outcome.Suggestions = s.suggestAlternatives(ctx, entry.Module, message, policy)
	return outcome
}

// maybeUpgradePip upgrades the installer once per run when the index knows a
// newer version. Best-effort: any failure here only logs.
func (s Service) maybeUpgradePip(ctx context.Context) {
	current, err := s.PyEnv.PipVersion(ctx)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("pip version unavailable, skipping update check")
		return
	}
	project, found, err := s.Index.Lookup(ctx, "pip")
	if err != nil || !found {
		log.Ctx(ctx).Debug().Err(err).Msg("pip index lookup failed, skipping update check")
		return
	}
	installed, err := pep440.Parse(current)
	if err != nil {
		return
	}
	latest, err := pep440.Parse(project.Version)
	if err != nil {
		return
	}
	if !installed.LessThan(latest) {
		return
	}
	log.Ctx(ctx).Info().Str("current", current).Str("latest", project.Version).Msg("updating pip")
	if err := s.Installer.UpgradePip(ctx); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("pip update failed")
	}
}

// flattenError joins every layer of the error chain, so classification sees
// the pip output even when a wrapper's Error() omits its cause.
func flattenError(err error) string {
	message := err.Error()
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		if text := cause.Error(); !strings.Contains(message, text) {
			message += ": " + text
		}
	}
	return message
}

func confirmMessage(plan []types.PlanEntry) string {
	names := make([]string, 0, len(plan))
	for _, entry := range plan {
		names = append(names, entry.Distribution)
	}
	return fmt.Sprintf("install %d missing package(s): %s?", len(plan), strings.Join(names, ", "))
}
