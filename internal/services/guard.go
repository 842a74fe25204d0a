package services

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"scorch/internal/domain"
	"scorch/internal/policy"
)

// DeletionGuard validates delete requests against the protected-path policy
// and the live tree before any filesystem removal happens. The same
// classifier the scanner pruned with answers here, so a subtree that was
// skipped during the scan can never be deleted either.
type DeletionGuard struct {
	scanner *FSScanner
	remover Remover
}

func NewDeletionGuard(scanner *FSScanner, remover Remover) *DeletionGuard {
	return &DeletionGuard{scanner: scanner, remover: remover}
}

// Authorize returns nil when the name path may be deleted, or the denial
// reason: the scan root itself, a protected path, or a node that is no
// longer present in the tree (raced with an external deletion).
func (guard *DeletionGuard) Authorize(path []string) error {
	builder := guard.scanner.Builder()
	if builder == nil {
		return domain.ErrNotFound
	}
	if len(path) == 0 {
		return domain.ErrScanRoot
	}
	abs := absolutePath(builder.RootPath(), path)
	classifier := guard.scanner.Classifier()
	if classifier != nil && classifier.Classify(abs) == policy.Protected {
		return domain.ErrProtectedPath
	}
	if !builder.Exists(path) {
		return domain.ErrNotFound
	}
	return nil
}

// Info previews the entry count and byte total a delete would remove.
func (guard *DeletionGuard) Info(path []string) (DeleteInfo, bool) {
	builder := guard.scanner.Builder()
	if builder == nil {
		return DeleteInfo{}, false
	}
	return builder.Stats(path)
}

// Execute authorizes, removes from the filesystem, then updates the tree.
// On full success ancestors are debited exactly once; on partial failure
// the affected subtree is rebuilt from disk and swapped in, so the sum
// invariant holds without a rescan.
func (guard *DeletionGuard) Execute(ctx context.Context, req DeleteRequest) (DeleteResult, error) {
	if err := guard.Authorize(req.Path); err != nil {
		return DeleteResult{}, err
	}
	builder := guard.scanner.Builder()
	abs := absolutePath(builder.RootPath(), req.Path)
	before, _ := builder.Stats(req.Path)

	outcome := guard.remover.Remove(ctx, abs)
	result := DeleteResult{
		Removed: outcome.Removed,
		Failed:  outcome.Failed,
		Reasons: outcome.Reasons,
	}

	if outcome.Ok() {
		freed, err := builder.Remove(req.Path)
		if err != nil {
			return result, err
		}
		result.FreedBytes = freed
		return result, nil
	}

	result.Partial = true
	fresh := rebuildSubtree(abs, guard.scanner.Classifier())
	if fresh == nil {
		if freed, err := builder.Remove(req.Path); err == nil {
			result.FreedBytes = freed
		}
	} else if err := builder.Replace(req.Path, fresh); err == nil {
		result.FreedBytes = before.Bytes - fresh.SizeBytes
	}
	return result, &domain.PartialDeleteError{
		Removed: outcome.Removed,
		Failed:  outcome.Failed,
		Reasons: outcome.Reasons,
	}
}

func absolutePath(root string, path []string) string {
	return filepath.Join(append([]string{root}, path...)...)
}

// rebuildSubtree re-walks one subtree synchronously after a partial delete.
// Symlinks stay leaves and protected directories stay skipped, matching
// what the concurrent scanner would have produced.
func rebuildSubtree(path string, classifier *policy.Classifier) *domain.Node {
	info, err := os.Lstat(path)
	if err != nil {
		return nil
	}
	name := filepath.Base(path)
	if info.Mode()&fs.ModeSymlink != 0 {
		return &domain.Node{Name: name, Kind: domain.KindSymlink, SizeBytes: info.Size(), State: domain.ScanComplete}
	}
	if !info.IsDir() {
		return &domain.Node{Name: name, Kind: domain.KindFile, SizeBytes: info.Size(), State: domain.ScanComplete}
	}

	node := &domain.Node{
		Name:     name,
		Kind:     domain.KindDir,
		Children: []*domain.Node{},
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		node.ErrCount = 1
		node.State = domain.ScanPartial
		return node
	}
	for _, entry := range entries {
		full := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if classifier != nil && classifier.Classify(full) == policy.Protected {
				node.Children = append(node.Children, &domain.Node{
					Name: entry.Name(), Kind: domain.KindDir, State: domain.ScanComplete,
					Protected: true, Children: []*domain.Node{},
				})
				continue
			}
			child := rebuildSubtree(full, classifier)
			if child == nil {
				node.ErrCount++
				continue
			}
			node.Children = append(node.Children, child)
			node.SizeBytes += child.SizeBytes
			if child.State == domain.ScanPartial {
				node.State = domain.ScanPartial
			}
			continue
		}
		entryInfo, infoErr := entry.Info()
		if infoErr != nil {
			node.ErrCount++
			node.Children = append(node.Children, &domain.Node{
				Name: entry.Name(), Kind: domain.KindUnreadable, State: domain.ScanComplete, ErrCount: 1,
			})
			continue
		}
		kind := domain.KindFile
		if entry.Type()&fs.ModeSymlink != 0 {
			kind = domain.KindSymlink
		}
		node.Children = append(node.Children, &domain.Node{
			Name: entry.Name(), Kind: kind, SizeBytes: entryInfo.Size(), State: domain.ScanComplete,
		})
		node.SizeBytes += entryInfo.Size()
	}
	if node.ErrCount > 0 {
		node.State = domain.ScanPartial
	} else if node.State != domain.ScanPartial {
		node.State = domain.ScanComplete
	}
	node.SortChildren()
	return node
}
