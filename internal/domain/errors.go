package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("entry not found in tree")
	ErrProtectedPath    = errors.New("path is protected")
	ErrScanRoot         = errors.New("refusing to remove the scan root")
	ErrFailedAtRoot     = errors.New("scan root is not readable")
)

// PartialDeleteError reports a recursive removal that deleted some entries
// but not all of them. The tree must be re-synced for the affected subtree.
type PartialDeleteError struct {
	Removed int
	Failed  int
	Reasons []string
}

func (err *PartialDeleteError) Error() string {
	return fmt.Sprintf("partial delete: %d removed, %d failed", err.Removed, err.Failed)
}
