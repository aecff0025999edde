// Package policies holds the decision rules of the install orchestrator:
// when to ask for confirmation, how often to retry, and how pip failures are
// classified for the user.
package policies

import (
	"regexp"
	"strings"

	"pyrun/internal/types"
)

const (
	defaultMaxRetries     = 1
	defaultMaxSuggestions = 5
)

// InstallPolicy is consulted by the orchestrator per run. It owns no IO.
type InstallPolicy struct {
	AutoInstall    bool
	AssumeYes      bool
	MaxRetries     int
	MaxSuggestions int
}

func NewInstallPolicy(cfg types.Config, assumeYes bool) InstallPolicy {
	return InstallPolicy{
		AutoInstall:    cfg.AutoInstall,
		AssumeYes:      assumeYes,
		MaxRetries:     defaultMaxRetries,
		MaxSuggestions: defaultMaxSuggestions,
	}
}

// NeedsConfirmation reports whether the orchestrator must list the plan and
// ask before any network action.
func (p InstallPolicy) NeedsConfirmation() bool {
	return !p.AutoInstall && !p.AssumeYes
}

// ClassifyFailure inspects a pip error message and returns a coarse category
// with a human recommendation. Unrecognized output yields no hint.
func (p InstallPolicy) ClassifyFailure(message string, distribution string) (types.FailureHint, string) {
	switch {
	case strings.Contains(message, "HTTPError"),
		strings.Contains(message, "ConnectionError"),
		strings.Contains(message, "Connection refused"),
		strings.Contains(message, "Temporary failure in name resolution"):
		return types.FailureHintNetwork,
			"network problem; check connectivity or point --index-url at a reachable mirror"
	case strings.Contains(message, "Permission denied"):
		return types.FailureHintPermission,
			"permission denied; retry with `pip install --user " + distribution + "` or elevated privileges"
	case strings.Contains(message, "No matching distribution found"):
		return types.FailureHintNoDistribution,
			"no matching distribution; the name '" + distribution + "' may be wrong or unsupported on this interpreter"
	case strings.Contains(message, "requires") && strings.Contains(message, "which is incompatible"):
		return types.FailureHintVersionConflict,
			"dependency version conflict; consider a virtual environment or a compatible version pin"
	default:
		return types.FailureHintNone, ""
	}
}

// pipSuggestionPatterns match the "did you mean" hints pip itself sometimes
// prints on a failed install.
var pipSuggestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Perhaps you meant "([^"]+)"`),
	regexp.MustCompile(`Perhaps you meant '([^']+)'`),
	regexp.MustCompile(`Did you mean "([^"]+)"`),
	regexp.MustCompile(`Did you mean '([^']+)'`),
}

// ExtractPipSuggestion pulls a suggested distribution name out of pip's own
// error output, when present.
func (p InstallPolicy) ExtractPipSuggestion(message string) (string, bool) {
	for _, pattern := range pipSuggestionPatterns {
		if match := pattern.FindStringSubmatch(message); match != nil {
			return match[1], true
		}
	}
	return "", false
}
