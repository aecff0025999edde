package types

type ImportKind string

const (
	ImportKindAbsolute ImportKind = "absolute"
	ImportKindFrom     ImportKind = "from"
	ImportKindRelative ImportKind = "relative"
)

type InstallStatus string

const (
	InstallStatusAlreadySatisfied InstallStatus = "already_satisfied"
	InstallStatusInstalled        InstallStatus = "installed"
	InstallStatusFailed           InstallStatus = "failed"
)

type PlanEntryState string

const (
	PlanEntryStatePending    PlanEntryState = "pending"
	PlanEntryStateInstalling PlanEntryState = "installing"
	PlanEntryStateDone       PlanEntryState = "done"
)

// PlanEntrySource records where a plan entry came from, so that reports can
// distinguish scanned imports from requirements-file entries.
type PlanEntrySource string

const (
	PlanEntrySourceImports      PlanEntrySource = "imports"
	PlanEntrySourceRequirements PlanEntrySource = "requirements"
)

// FailureHint classifies a pip failure into a coarse category the CLI can
// render a human-readable recommendation for.
type FailureHint string

const (
	FailureHintNone            FailureHint = ""
	FailureHintNetwork         FailureHint = "network"
	FailureHintPermission      FailureHint = "permission"
	FailureHintNoDistribution  FailureHint = "no_distribution"
	FailureHintVersionConflict FailureHint = "version_conflict"
)

// ResolutionVerdict summarizes an entire resolve-and-install pass for the
// CLI exit-code decision.
type ResolutionVerdict string

const (
	// VerdictFull means every plan entry was satisfied or installed.
	VerdictFull ResolutionVerdict = "full"
	// VerdictPartial means at least one entry failed but resolution itself
	// succeeded; the script may still be runnable.
	VerdictPartial ResolutionVerdict = "partial"
	// VerdictUndetermined means the entry script's imports could not be
	// statically determined at all.
	VerdictUndetermined ResolutionVerdict = "undetermined"
)
