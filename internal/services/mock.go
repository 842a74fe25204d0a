package services

import "context"

// MockRemover stands in for the filesystem during tests, returning a
// scripted outcome without touching disk.
type MockRemover struct {
	Outcome RemoveOutcome
	Paths   []string
}

func NewMockRemover(outcome RemoveOutcome) *MockRemover {
	return &MockRemover{Outcome: outcome}
}

func (remover *MockRemover) Remove(_ context.Context, path string) RemoveOutcome {
	remover.Paths = append(remover.Paths, path)
	return remover.Outcome
}
