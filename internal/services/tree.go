package services

import (
	"path/filepath"
	"strings"
	"sync"

	"scorch/internal/domain"
)

// TreeBuilder owns the size tree for one scan session. Scanner workers
// parallelize filesystem I/O and funnel every structural mutation through
// the builder's lock, so sibling completions on the same ancestor can never
// lose an update. Readers take bounded-depth clones and never see a
// directory size above its eventual total.
type TreeBuilder struct {
	mu       sync.RWMutex
	rootPath string
	root     *domain.Node
	dirs     map[string]*dirState
}

// dirState tracks scan bookkeeping per directory, keyed by the relative
// name path joined with "/" (the root key is ""). Parent linkage lives
// here rather than on domain.Node, which stays free of back-references.
type dirState struct {
	node        *domain.Node
	parent      string
	outstanding int
	listed      bool
	isRoot      bool
}

func NewTreeBuilder(rootPath string) *TreeBuilder {
	name := filepath.Base(rootPath)
	if name == "." || name == string(filepath.Separator) {
		name = rootPath
	}
	root := &domain.Node{
		Name:     name,
		Kind:     domain.KindDir,
		State:    domain.ScanPending,
		Children: []*domain.Node{},
	}
	builder := &TreeBuilder{
		rootPath: rootPath,
		root:     root,
		dirs:     map[string]*dirState{"": {node: root, isRoot: true}},
	}
	return builder
}

func (builder *TreeBuilder) RootPath() string {
	return builder.rootPath
}

func pathKey(path []string) string {
	return strings.Join(path, "/")
}

func childKey(parent []string, name string) string {
	if len(parent) == 0 {
		return name
	}
	return pathKey(parent) + "/" + name
}

// AddDir records a pending subdirectory under parent and returns false when
// a child with that name already exists.
func (builder *TreeBuilder) AddDir(parent []string, name string) bool {
	builder.mu.Lock()
	defer builder.mu.Unlock()

	parentState, ok := builder.dirs[pathKey(parent)]
	if !ok || parentState.node.Child(name) != nil {
		return false
	}
	node := &domain.Node{
		Name:     name,
		Kind:     domain.KindDir,
		State:    domain.ScanPending,
		Children: []*domain.Node{},
	}
	parentState.node.Children = append(parentState.node.Children, node)
	parentState.outstanding++
	builder.dirs[childKey(parent, name)] = &dirState{
		node:   node,
		parent: pathKey(parent),
	}
	return true
}

// AddLeaf records a terminal observation (file, symlink, unreadable entry,
// or a protected directory that will not be traversed). The size is added
// to every ancestor in the same critical section.
func (builder *TreeBuilder) AddLeaf(parent []string, name string, kind domain.Kind, size int64, protected bool) bool {
	builder.mu.Lock()
	defer builder.mu.Unlock()

	parentState, ok := builder.dirs[pathKey(parent)]
	if !ok || parentState.node.Child(name) != nil {
		return false
	}
	node := &domain.Node{
		Name:      name,
		Kind:      kind,
		SizeBytes: size,
		State:     domain.ScanComplete,
		Protected: protected,
	}
	if kind == domain.KindDir {
		node.Children = []*domain.Node{}
	}
	if kind == domain.KindUnreadable {
		node.ErrCount = 1
		parentState.node.ErrCount++
	}
	parentState.node.Children = append(parentState.node.Children, node)
	builder.addSizeLocked(pathKey(parent), size)
	return true
}

// DirListed marks a directory's immediate enumeration as finished. The
// directory turns terminal once every enqueued subdirectory is terminal
// too; the finalized subtree size is returned when that happens now.
func (builder *TreeBuilder) DirListed(path []string) (int64, bool) {
	builder.mu.Lock()
	defer builder.mu.Unlock()

	state, ok := builder.dirs[pathKey(path)]
	if !ok {
		return 0, false
	}
	state.listed = true
	if state.outstanding == 0 {
		builder.finishLocked(pathKey(path))
		return state.node.SizeBytes, true
	}
	return 0, false
}

// DirUnlistable degrades a directory that could not be enumerated at all.
func (builder *TreeBuilder) DirUnlistable(path []string) {
	builder.mu.Lock()
	defer builder.mu.Unlock()

	state, ok := builder.dirs[pathKey(path)]
	if !ok {
		return
	}
	state.node.ErrCount++
	state.listed = true
	if state.outstanding == 0 {
		builder.finishLocked(pathKey(path))
	}
}

// finishLocked settles a directory's terminal state, sorts its children
// once (amortizing the size-descending order), and cascades completion to
// ancestors waiting only on this subtree.
func (builder *TreeBuilder) finishLocked(key string) {
	state := builder.dirs[key]
	node := state.node

	partial := node.ErrCount > 0
	for _, child := range node.Children {
		if child.Kind == domain.KindDir && child.State == domain.ScanPartial {
			partial = true
			break
		}
	}
	if partial {
		node.State = domain.ScanPartial
	} else {
		node.State = domain.ScanComplete
	}
	node.SortChildren()

	if state.isRoot {
		return
	}
	parentState, ok := builder.dirs[state.parent]
	if !ok {
		return
	}
	parentState.outstanding--
	if parentState.listed && parentState.outstanding == 0 {
		builder.finishLocked(state.parent)
	}
}

func (builder *TreeBuilder) addSizeLocked(key string, delta int64) {
	for {
		state, ok := builder.dirs[key]
		if !ok {
			return
		}
		state.node.SizeBytes += delta
		if state.isRoot {
			return
		}
		key = state.parent
	}
}

// MarkCancelled degrades every directory still awaiting children to
// Partial. Collected observations stay valid and visible.
func (builder *TreeBuilder) MarkCancelled() {
	builder.mu.Lock()
	defer builder.mu.Unlock()

	for _, state := range builder.dirs {
		if state.node.State == domain.ScanPending {
			state.node.State = domain.ScanPartial
			state.node.SortChildren()
		}
	}
}

// Snapshot returns a clone of the node at the given name path, copied down
// to depth child levels. Safe to call while the scan is still running.
func (builder *TreeBuilder) Snapshot(path []string, depth int) (*domain.Node, bool) {
	builder.mu.RLock()
	defer builder.mu.RUnlock()

	node := builder.root.FindPath(path)
	if node == nil {
		return nil, false
	}
	return node.CloneDepth(depth), true
}

// Stats reports the entry count and byte total of the subtree at path.
func (builder *TreeBuilder) Stats(path []string) (DeleteInfo, bool) {
	builder.mu.RLock()
	defer builder.mu.RUnlock()

	node := builder.root.FindPath(path)
	if node == nil {
		return DeleteInfo{}, false
	}
	return DeleteInfo{Items: node.ItemCount(), Bytes: node.SizeBytes}, true
}

// Exists reports whether the name path is present in the current tree.
func (builder *TreeBuilder) Exists(path []string) bool {
	builder.mu.RLock()
	defer builder.mu.RUnlock()
	return builder.root.FindPath(path) != nil
}

// Remove detaches the subtree at path and subtracts its exact size from
// every ancestor, keeping the sum invariant without a rescan.
func (builder *TreeBuilder) Remove(path []string) (int64, error) {
	if len(path) == 0 {
		return 0, domain.ErrScanRoot
	}
	builder.mu.Lock()
	defer builder.mu.Unlock()

	parentKey := pathKey(path[:len(path)-1])
	parentState, ok := builder.dirs[parentKey]
	if !ok {
		return 0, domain.ErrNotFound
	}
	name := path[len(path)-1]
	node := parentState.node.Child(name)
	if node == nil {
		return 0, domain.ErrNotFound
	}

	freed := node.SizeBytes
	children := parentState.node.Children
	for i, child := range children {
		if child.Name == name {
			parentState.node.Children = append(children[:i], children[i+1:]...)
			break
		}
	}
	builder.addSizeLocked(parentKey, -freed)
	builder.purgeDirStatesLocked(pathKey(path))
	return freed, nil
}

// Replace swaps in a freshly rebuilt subtree (after a partial delete) and
// adjusts ancestor sizes by the exact difference.
func (builder *TreeBuilder) Replace(path []string, fresh *domain.Node) error {
	if len(path) == 0 {
		return domain.ErrScanRoot
	}
	builder.mu.Lock()
	defer builder.mu.Unlock()

	parentKey := pathKey(path[:len(path)-1])
	parentState, ok := builder.dirs[parentKey]
	if !ok {
		return domain.ErrNotFound
	}
	name := path[len(path)-1]
	node := parentState.node.Child(name)
	if node == nil {
		return domain.ErrNotFound
	}

	delta := fresh.SizeBytes - node.SizeBytes
	for i, child := range parentState.node.Children {
		if child.Name == name {
			parentState.node.Children[i] = fresh
			break
		}
	}
	builder.addSizeLocked(parentKey, delta)
	builder.purgeDirStatesLocked(pathKey(path))
	builder.indexSubtreeLocked(pathKey(path), parentKey, fresh)
	parentState.node.SortChildren()
	return nil
}

func (builder *TreeBuilder) purgeDirStatesLocked(key string) {
	delete(builder.dirs, key)
	prefix := key + "/"
	for existing := range builder.dirs {
		if strings.HasPrefix(existing, prefix) {
			delete(builder.dirs, existing)
		}
	}
}

func (builder *TreeBuilder) indexSubtreeLocked(key, parent string, node *domain.Node) {
	if node.Kind != domain.KindDir {
		return
	}
	builder.dirs[key] = &dirState{node: node, parent: parent, listed: true}
	for _, child := range node.Children {
		builder.indexSubtreeLocked(key+"/"+child.Name, key, child)
	}
}
