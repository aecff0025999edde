package ports

import "pyrun/internal/types"

// RequirementsPort loads requirement entries from a requirements file,
// following include directives. A missing file yields an empty list.
type RequirementsPort interface {
	Load(path string) ([]types.Requirement, error)
}
