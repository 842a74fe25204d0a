// Package policy decides which paths may be scanned or deleted. The same
// table answers both questions so the scanner and the deletion guard can
// never disagree about what is off limits.
package policy

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type Class int

const (
	Scannable Class = iota
	Protected
	Inaccessible
)

func (class Class) String() string {
	switch class {
	case Scannable:
		return "scannable"
	case Protected:
		return "protected"
	case Inaccessible:
		return "inaccessible"
	default:
		return "unknown"
	}
}

// Table is the configurable deny list. Denied entries match exactly;
// DeniedSubtrees protect themselves and everything beneath them.
type Table struct {
	Denied         []string `yaml:"denied"`
	DeniedSubtrees []string `yaml:"deniedSubtrees"`
}

// DefaultTable protects system-critical roots and the virtual filesystems
// that do not represent real disk usage.
func DefaultTable() Table {
	return Table{
		Denied: []string{
			"/", "/usr", "/etc", "/bin", "/sbin", "/lib", "/lib64",
			"/boot", "/var", "/root",
		},
		DeniedSubtrees: []string{
			"/proc", "/sys", "/dev", "/run", "/snap",
		},
	}
}

// Classifier is a pure function over (path, table, scan root). It performs
// no filesystem access; stat failures are mapped separately via ClassifyError.
type Classifier struct {
	scanRoot string
	denied   map[string]struct{}
	subtrees []string
}

func NewClassifier(scanRoot string, table Table) *Classifier {
	denied := make(map[string]struct{}, len(table.Denied))
	for _, path := range table.Denied {
		denied[filepath.Clean(path)] = struct{}{}
	}
	subtrees := make([]string, 0, len(table.DeniedSubtrees))
	for _, path := range table.DeniedSubtrees {
		subtrees = append(subtrees, filepath.Clean(path))
	}
	return &Classifier{
		scanRoot: filepath.Clean(scanRoot),
		denied:   denied,
		subtrees: subtrees,
	}
}

// Classify reports whether a path may be traversed or deleted. Anything
// outside the scan root is Protected, closing the symlink-escape hole.
func (classifier *Classifier) Classify(path string) Class {
	clean := filepath.Clean(path)
	if !isWithin(classifier.scanRoot, clean) {
		return Protected
	}
	if _, ok := classifier.denied[clean]; ok {
		return Protected
	}
	for _, subtree := range classifier.subtrees {
		if isWithin(subtree, clean) {
			return Protected
		}
	}
	return Scannable
}

// ClassifyError maps a stat or listing failure onto the classification a
// scanner should record for the entry. Permission and I/O failures both
// mean the entry exists but cannot be measured.
func ClassifyError(err error) Class {
	if err == nil {
		return Scannable
	}
	return Inaccessible
}

// IsPermission reports whether a filesystem error is a permission failure,
// kept here so error taxonomy stays in one place.
func IsPermission(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, fs.ErrPermission)
}

func isWithin(root, path string) bool {
	if root == path {
		return true
	}
	if root == string(filepath.Separator) {
		return strings.HasPrefix(path, root)
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
