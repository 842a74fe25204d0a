package services

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// FSRemover performs the actual filesystem removal once the deletion guard
// has authorized it. Directories are removed file-by-file so a partial
// failure reports exactly what is left behind instead of guessing.
type FSRemover struct{}

func NewFSRemover() *FSRemover {
	return &FSRemover{}
}

func (remover *FSRemover) Remove(ctx context.Context, path string) RemoveOutcome {
	outcome := RemoveOutcome{}
	info, err := os.Lstat(path)
	if err != nil {
		outcome.Failed++
		outcome.Reasons = append(outcome.Reasons, err.Error())
		return outcome
	}
	if !info.IsDir() {
		if err := os.Remove(path); err != nil {
			outcome.Failed++
			outcome.Reasons = append(outcome.Reasons, err.Error())
			return outcome
		}
		outcome.Removed++
		return outcome
	}
	removeDirectory(ctx, path, &outcome)
	return outcome
}

func removeDirectory(ctx context.Context, path string, outcome *RemoveOutcome) {
	dirs := []string{}
	walkErr := filepath.WalkDir(path, func(child string, entry fs.DirEntry, err error) error {
		if err != nil {
			outcome.Failed++
			outcome.Reasons = append(outcome.Reasons, err.Error())
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			dirs = append(dirs, child)
			return nil
		}
		if err := os.Remove(child); err != nil {
			outcome.Failed++
			outcome.Reasons = append(outcome.Reasons, err.Error())
			return nil
		}
		outcome.Removed++
		return nil
	})
	if walkErr != nil {
		outcome.Failed++
		outcome.Reasons = append(outcome.Reasons, walkErr.Error())
		return
	}
	for index := len(dirs) - 1; index >= 0; index-- {
		if ctx.Err() != nil {
			outcome.Failed++
			outcome.Reasons = append(outcome.Reasons, ctx.Err().Error())
			return
		}
		if err := os.Remove(dirs[index]); err != nil {
			outcome.Failed++
			outcome.Reasons = append(outcome.Reasons, err.Error())
			continue
		}
		outcome.Removed++
	}
}
