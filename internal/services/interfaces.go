package services

import (
	"context"

	"scorch/internal/domain"
)

type Scanner interface {
	Scan(ctx context.Context, req ScanRequest) (ScanResult, error)
}

type ProgressProvider interface {
	ProgressSnapshot() ScanProgress
}

// SnapshotProvider hands out bounded-depth read-only clones of the tree.
type SnapshotProvider interface {
	Snapshot(path []string, depth int) (*domain.Node, bool)
}

type Remover interface {
	Remove(ctx context.Context, path string) RemoveOutcome
}

// SummaryProvider reports the last persisted result for a root, if any.
type SummaryProvider interface {
	LastSummary(root string) (ScanSummary, bool)
}
