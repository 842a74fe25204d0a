package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"scorch/internal/domain"
	"scorch/internal/policy"
)

const (
	minWorkers = 4
	maxWorkers = 64
)

// FSScanner walks a root concurrently and feeds observations into a
// TreeBuilder. Workers do the blocking ReadDir/Lstat calls in parallel,
// bounded by a weighted semaphore; the builder serializes tree mutation.
type FSScanner struct {
	mu         sync.RWMutex
	table      policy.Table
	builder    *TreeBuilder
	classifier *policy.Classifier
	session    domain.ScanSession
	cache      *ScanCache

	files   int64
	dirs    int64
	bytes   int64
	errs    int64
	current atomic.Value
}

func NewFSScanner(table policy.Table) *FSScanner {
	return &FSScanner{
		table: table,
		cache: NewScanCache(),
	}
}

func defaultWorkers() int {
	workers := runtime.NumCPU() * 2
	if workers < minWorkers {
		workers = minWorkers
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return workers
}

// Scan traverses req.RootPath and replaces the previous session. The
// returned error is fatal only when the root itself cannot be read;
// everything below the root degrades per-node instead of aborting.
func (scanner *FSScanner) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	start := time.Now()
	root := cleanPath(req.RootPath)
	session := domain.NewScanSession(root)

	info, err := os.Lstat(root)
	if err != nil || !info.IsDir() {
		session.Outcome = domain.OutcomeFailedAtRoot
		scanner.installSession(nil, nil, session)
		if err == nil {
			err = fmt.Errorf("not a directory: %s", root)
		}
		return ScanResult{Session: session, Duration: time.Since(start)},
			fmt.Errorf("%w: %v", domain.ErrFailedAtRoot, err)
	}

	builder := NewTreeBuilder(root)
	classifier := policy.NewClassifier(root, scanner.table)
	scanner.installSession(builder, classifier, session)
	scanner.resetProgress()
	atomic.AddInt64(&scanner.dirs, 1)

	workers := req.Workers
	if workers <= 0 {
		workers = defaultWorkers()
	}
	sem := semaphore.NewWeighted(int64(workers))
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return scanner.scanDir(groupCtx, group, sem, builder, classifier, nil, root)
	})
	walkErr := group.Wait()

	switch {
	case walkErr == nil:
		session.Outcome = domain.OutcomeComplete
	case errors.Is(walkErr, context.Canceled), errors.Is(walkErr, context.DeadlineExceeded):
		builder.MarkCancelled()
		session.Outcome = domain.OutcomeCancelled
	default:
		builder.MarkCancelled()
		session.Outcome = domain.OutcomeCancelled
	}
	scanner.updateOutcome(session.Outcome)

	result := ScanResult{Session: scanner.Session(), Duration: time.Since(start)}
	if session.Outcome == domain.OutcomeComplete {
		if rootNode, ok := builder.Snapshot(nil, 0); ok {
			scanner.cache.Store(root, SummaryOf(rootNode, result))
		}
	}
	return result, nil
}

// scanDir lists one directory, emits a terminal observation per entry, and
// spawns subdirectories as new work items. The semaphore slot is held only
// across the blocking directory listing.
func (scanner *FSScanner) scanDir(ctx context.Context, group *errgroup.Group, sem *semaphore.Weighted,
	builder *TreeBuilder, classifier *policy.Classifier, rel []string, abs string) error {

	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	entries, err := os.ReadDir(abs)
	sem.Release(1)
	if err != nil {
		builder.DirUnlistable(rel)
		atomic.AddInt64(&scanner.errs, 1)
		return nil
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		name := entry.Name()
		full := filepath.Join(abs, name)

		if entry.IsDir() {
			if classifier.Classify(full) == policy.Protected {
				// Skipped subtree: zero size, marked so it is never
				// mistaken for a fully scanned directory.
				builder.AddLeaf(rel, name, domain.KindDir, 0, true)
				continue
			}
			if builder.AddDir(rel, name) {
				childRel := append(append([]string(nil), rel...), name)
				group.Go(func() error {
					return scanner.scanDir(ctx, group, sem, builder, classifier, childRel, full)
				})
				atomic.AddInt64(&scanner.dirs, 1)
			}
			continue
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			builder.AddLeaf(rel, name, domain.KindUnreadable, 0, false)
			atomic.AddInt64(&scanner.errs, 1)
			continue
		}
		kind := domain.KindFile
		if entry.Type()&fs.ModeSymlink != 0 {
			// Symlinks keep their own link size and are never followed,
			// which is what stops traversal cycles.
			kind = domain.KindSymlink
		}
		builder.AddLeaf(rel, name, kind, info.Size(), false)
		atomic.AddInt64(&scanner.files, 1)
		atomic.AddInt64(&scanner.bytes, info.Size())
	}

	scanner.current.Store(abs)
	builder.DirListed(rel)
	return nil
}

func (scanner *FSScanner) installSession(builder *TreeBuilder, classifier *policy.Classifier, session domain.ScanSession) {
	scanner.mu.Lock()
	defer scanner.mu.Unlock()
	scanner.builder = builder
	scanner.classifier = classifier
	scanner.session = session
}

func (scanner *FSScanner) updateOutcome(outcome domain.Outcome) {
	scanner.mu.Lock()
	defer scanner.mu.Unlock()
	scanner.session.Outcome = outcome
}

func (scanner *FSScanner) resetProgress() {
	atomic.StoreInt64(&scanner.files, 0)
	atomic.StoreInt64(&scanner.dirs, 0)
	atomic.StoreInt64(&scanner.bytes, 0)
	atomic.StoreInt64(&scanner.errs, 0)
	scanner.current.Store("")
}

func (scanner *FSScanner) Session() domain.ScanSession {
	scanner.mu.RLock()
	defer scanner.mu.RUnlock()
	return scanner.session
}

// Builder exposes the current session's tree for the guard and navigator.
func (scanner *FSScanner) Builder() *TreeBuilder {
	scanner.mu.RLock()
	defer scanner.mu.RUnlock()
	return scanner.builder
}

func (scanner *FSScanner) Classifier() *policy.Classifier {
	scanner.mu.RLock()
	defer scanner.mu.RUnlock()
	return scanner.classifier
}

func (scanner *FSScanner) Cache() *ScanCache {
	return scanner.cache
}

// LastSummary implements SummaryProvider from the persisted cache.
func (scanner *FSScanner) LastSummary(root string) (ScanSummary, bool) {
	return scanner.cache.Lookup(root)
}

// Snapshot implements SnapshotProvider against the active session's tree.
func (scanner *FSScanner) Snapshot(path []string, depth int) (*domain.Node, bool) {
	builder := scanner.Builder()
	if builder == nil {
		return nil, false
	}
	return builder.Snapshot(path, depth)
}

// ProgressSnapshot is polled by the UI tick; counters are monotonic within
// one session.
func (scanner *FSScanner) ProgressSnapshot() ScanProgress {
	current, _ := scanner.current.Load().(string)
	return ScanProgress{
		Files:   atomic.LoadInt64(&scanner.files),
		Dirs:    atomic.LoadInt64(&scanner.dirs),
		Bytes:   atomic.LoadInt64(&scanner.bytes),
		Errs:    atomic.LoadInt64(&scanner.errs),
		Current: current,
		Done:    scanner.Session().Outcome != domain.OutcomeRunning,
	}
}

func cleanPath(path string) string {
	if path == "" {
		return path
	}
	clean := filepath.Clean(path)
	abs, err := filepath.Abs(clean)
	if err != nil {
		return clean
	}
	return abs
}
