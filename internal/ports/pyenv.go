package ports

import "context"

// PyEnvPort answers questions about the target Python environment without
// importing anything from the scanned project.
type PyEnvPort interface {
	// StdlibModules returns the standard-library module set of the running
	// interpreter version.
	StdlibModules(ctx context.Context) (map[string]struct{}, error)
	// Importable reports whether the module can be imported in the target
	// environment.
	Importable(ctx context.Context, module string) (bool, error)
	// InstalledDistributions returns PEP 503 normalized distribution names
	// mapped to their installed versions.
	InstalledDistributions(ctx context.Context) (map[string]string, error)
	// PipVersion returns the installed pip version string.
	PipVersion(ctx context.Context) (string, error)
	// Interpreter returns the interpreter command in use.
	Interpreter() string
}
