// Package state holds the navigation state machine: which node the
// sunburst is centered on and how to get back up. Ancestors are
// reconstructed by re-walking the snapshot from the root with the stored
// name sequence, so nodes never need parent pointers.
package state

import (
	"scorch/internal/domain"
	"scorch/internal/services"
)

type Crumb struct {
	Name      string
	Path      []string
	SizeBytes int64
}

type Navigator struct {
	provider services.SnapshotProvider
	focus    []string
}

func NewNavigator(provider services.SnapshotProvider) *Navigator {
	return &Navigator{provider: provider}
}

// FocusPath is the name sequence from the scan root to the focus node.
// Empty means the root itself.
func (navigator *Navigator) FocusPath() []string {
	return append([]string(nil), navigator.focus...)
}

// Focus returns a snapshot of the focused subtree, cloned to depth levels.
func (navigator *Navigator) Focus(depth int) (*domain.Node, bool) {
	return navigator.provider.Snapshot(navigator.focus, depth)
}

// DrillDown moves focus to the named child. No-op (false) when the child
// does not exist or is not a directory.
func (navigator *Navigator) DrillDown(name string) bool {
	target := append(navigator.FocusPath(), name)
	node, ok := navigator.provider.Snapshot(target, 0)
	if !ok || !node.IsDir() {
		return false
	}
	navigator.focus = target
	return true
}

// GoUp pops one level. No-op (false) at the root.
func (navigator *Navigator) GoUp() bool {
	if len(navigator.focus) == 0 {
		return false
	}
	navigator.focus = navigator.focus[:len(navigator.focus)-1]
	return true
}

func (navigator *Navigator) Reset() {
	navigator.focus = nil
}

// EnsureValid walks the focus back up until it names a node that still
// exists, after deletions or a tree swap.
func (navigator *Navigator) EnsureValid() {
	for len(navigator.focus) > 0 {
		if _, ok := navigator.provider.Snapshot(navigator.focus, 0); ok {
			return
		}
		navigator.focus = navigator.focus[:len(navigator.focus)-1]
	}
}

// Breadcrumbs lists the root and every ancestor of the focus, in order,
// ending with the focus node itself.
func (navigator *Navigator) Breadcrumbs() []Crumb {
	crumbs := make([]Crumb, 0, len(navigator.focus)+1)
	for i := 0; i <= len(navigator.focus); i++ {
		path := append([]string(nil), navigator.focus[:i]...)
		node, ok := navigator.provider.Snapshot(path, 0)
		if !ok {
			break
		}
		crumbs = append(crumbs, Crumb{Name: node.Name, Path: path, SizeBytes: node.SizeBytes})
	}
	return crumbs
}
