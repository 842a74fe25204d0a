package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorch/internal/domain"
	"scorch/internal/policy"
)

func scannedFixture(t *testing.T, table policy.Table) (*FSScanner, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "doomed.txt", 30)
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "inner", 70)

	scanner := NewFSScanner(table)
	_, err := scanner.Scan(context.Background(), ScanRequest{RootPath: dir})
	require.NoError(t, err)
	return scanner, dir
}

func TestGuardDeniesScanRoot(t *testing.T) {
	scanner, _ := scannedFixture(t, policy.Table{})
	guard := NewDeletionGuard(scanner, NewMockRemover(RemoveOutcome{}))

	assert.ErrorIs(t, guard.Authorize(nil), domain.ErrScanRoot)
}

func TestGuardDeniesProtectedPath(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.Mkdir(blocked, 0o755))

	scanner := NewFSScanner(policy.Table{DeniedSubtrees: []string{blocked}})
	_, err := scanner.Scan(context.Background(), ScanRequest{RootPath: dir})
	require.NoError(t, err)

	remover := NewMockRemover(RemoveOutcome{})
	guard := NewDeletionGuard(scanner, remover)

	assert.ErrorIs(t, guard.Authorize([]string{"blocked"}), domain.ErrProtectedPath)

	_, execErr := guard.Execute(context.Background(), DeleteRequest{Path: []string{"blocked"}})
	assert.ErrorIs(t, execErr, domain.ErrProtectedPath)
	assert.Empty(t, remover.Paths, "denied requests never reach the filesystem")
}

func TestGuardDeniesStaleEntry(t *testing.T) {
	scanner, _ := scannedFixture(t, policy.Table{})
	guard := NewDeletionGuard(scanner, NewMockRemover(RemoveOutcome{}))

	assert.ErrorIs(t, guard.Authorize([]string{"vanished"}), domain.ErrNotFound)
}

func TestGuardDeniesWithoutSession(t *testing.T) {
	scanner := NewFSScanner(policy.Table{})
	guard := NewDeletionGuard(scanner, NewMockRemover(RemoveOutcome{}))

	assert.ErrorIs(t, guard.Authorize([]string{"anything"}), domain.ErrNotFound)
}

func TestGuardInfoPreview(t *testing.T) {
	scanner, _ := scannedFixture(t, policy.Table{})
	guard := NewDeletionGuard(scanner, NewMockRemover(RemoveOutcome{}))

	info, ok := guard.Info([]string{"sub"})
	require.True(t, ok)
	assert.Equal(t, int64(70), info.Bytes)
	assert.Equal(t, 2, info.Items, "directory plus the file inside it")
}

func TestGuardExecuteSuccessUpdatesTree(t *testing.T) {
	scanner, _ := scannedFixture(t, policy.Table{})
	remover := NewMockRemover(RemoveOutcome{Removed: 1})
	guard := NewDeletionGuard(scanner, remover)

	result, err := guard.Execute(context.Background(), DeleteRequest{Path: []string{"doomed.txt"}})
	require.NoError(t, err)
	assert.Equal(t, int64(30), result.FreedBytes)
	assert.False(t, result.Partial)
	assert.Len(t, remover.Paths, 1)

	root, ok := scanner.Snapshot(nil, 1)
	require.True(t, ok)
	assert.Equal(t, int64(70), root.SizeBytes)
	assert.Nil(t, root.Child("doomed.txt"))
}

func TestGuardExecuteRealRemoval(t *testing.T) {
	scanner, dir := scannedFixture(t, policy.Table{})
	guard := NewDeletionGuard(scanner, NewFSRemover())

	result, err := guard.Execute(context.Background(), DeleteRequest{Path: []string{"sub"}})
	require.NoError(t, err)
	assert.Equal(t, int64(70), result.FreedBytes)

	_, statErr := os.Lstat(filepath.Join(dir, "sub"))
	assert.True(t, os.IsNotExist(statErr))
	assert.False(t, scanner.Builder().Exists([]string{"sub"}))
}

func TestGuardExecutePartialResyncsSubtree(t *testing.T) {
	scanner, dir := scannedFixture(t, policy.Table{})
	remover := NewMockRemover(RemoveOutcome{Removed: 0, Failed: 1, Reasons: []string{"permission denied"}})
	guard := NewDeletionGuard(scanner, remover)

	result, err := guard.Execute(context.Background(), DeleteRequest{Path: []string{"sub"}})
	var partial *domain.PartialDeleteError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 1, partial.Failed)
	assert.True(t, result.Partial)
	assert.Equal(t, int64(0), result.FreedBytes, "nothing actually left the disk")

	// The subtree was rebuilt from disk, so the tree still matches reality.
	root, ok := scanner.Snapshot(nil, 2)
	require.True(t, ok)
	assert.Equal(t, int64(100), root.SizeBytes)
	require.NotNil(t, root.Child("sub"))
	assert.Equal(t, int64(70), root.Child("sub").SizeBytes)

	_, statErr := os.Lstat(filepath.Join(dir, "sub", "inner"))
	assert.NoError(t, statErr)
}
