package content

import liberrors "github.com/jrsteele09/go-lab-site/internal/errors"

// Re-exported so Repo implementations and callers share one sentinel set
var (
	ErrNotFound = liberrors.ErrNotFound
	ErrConflict = liberrors.ErrConflict
)
