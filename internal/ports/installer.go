package ports

import "context"

// InstallOptions tune a single install attempt.
type InstallOptions struct {
	// NoCache forces a fresh index fetch, ruling out stale-cache failures.
	NoCache bool
	// IndexURL overrides the package index for this attempt.
	IndexURL string
}

// InstallerPort performs package installs in the target environment. A
// failed install returns an error whose message carries the pip output so
// callers can classify it.
type InstallerPort interface {
	Install(ctx context.Context, distribution string, opts InstallOptions) error
	UpgradePip(ctx context.Context) error
}
