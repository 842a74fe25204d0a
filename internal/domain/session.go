package domain

import (
	"time"

	"github.com/google/uuid"
)

type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeComplete
	OutcomeCancelled
	OutcomeFailedAtRoot
)

func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeRunning:
		return "running"
	case OutcomeComplete:
		return "complete"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailedAtRoot:
		return "failed at root"
	default:
		return "unknown"
	}
}

// ScanSession is one traversal of a chosen root. A new scan replaces the
// previous session entirely; nothing is persisted across sessions.
type ScanSession struct {
	ID        uuid.UUID
	RootPath  string
	StartedAt time.Time
	Outcome   Outcome
}

func NewScanSession(rootPath string) ScanSession {
	return ScanSession{
		ID:        uuid.New(),
		RootPath:  rootPath,
		StartedAt: time.Now(),
		Outcome:   OutcomeRunning,
	}
}
