package ports

import (
	"context"

	"pyrun/internal/types"
)

// PackageIndexPort looks up distributions on the package index. Used only as
// a best-effort fallback after an install failure and for the pip update
// check, never during name mapping.
type PackageIndexPort interface {
	// Lookup returns the index metadata for an exact distribution name.
	// found=false with a nil error means the name does not exist.
	Lookup(ctx context.Context, name string) (types.IndexProject, bool, error)
}
