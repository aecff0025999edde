package ports

import "pyrun/internal/types"

// ConfigPort reads and persists the tool configuration file. Load never
// fails hard: on a malformed file it returns safe defaults together with the
// error so the caller can warn instead of crash.
type ConfigPort interface {
	Load() (types.Config, error)
	Save(cfg types.Config) error
	Exists() bool
	Path() string
}
