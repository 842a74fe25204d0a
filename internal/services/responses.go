package services

import (
	"time"

	"scorch/internal/domain"
)

type ScanProgress struct {
	Files   int64
	Dirs    int64
	Bytes   int64
	Errs    int64
	Current string
	Done    bool
}

type ScanResult struct {
	Session  domain.ScanSession
	Duration time.Duration
}

// DeleteInfo previews what a delete would remove.
type DeleteInfo struct {
	Items int
	Bytes int64
}

type DeleteResult struct {
	Removed    int
	Failed     int
	FreedBytes int64
	Partial    bool
	Reasons    []string
}

// RemoveOutcome is the raw filesystem-side result of a removal, before the
// tree has been updated.
type RemoveOutcome struct {
	Removed int
	Failed  int
	Reasons []string
}

func (outcome RemoveOutcome) Ok() bool {
	return outcome.Failed == 0
}
