package policy

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDeniedExactMatch(t *testing.T) {
	classifier := NewClassifier("/", DefaultTable())

	assert.Equal(t, Protected, classifier.Classify("/"))
	assert.Equal(t, Protected, classifier.Classify("/usr"))
	assert.Equal(t, Protected, classifier.Classify("/etc"))
	assert.Equal(t, Scannable, classifier.Classify("/usr/share"), "exact entries do not protect descendants")
}

func TestClassifyDeniedSubtrees(t *testing.T) {
	classifier := NewClassifier("/", DefaultTable())

	assert.Equal(t, Protected, classifier.Classify("/proc"))
	assert.Equal(t, Protected, classifier.Classify("/proc/1/fd"))
	assert.Equal(t, Protected, classifier.Classify("/sys/kernel"))
	assert.Equal(t, Scannable, classifier.Classify("/procfake"), "prefix match is per path component")
}

func TestClassifyOutsideScanRoot(t *testing.T) {
	classifier := NewClassifier("/home/user", Table{})

	assert.Equal(t, Scannable, classifier.Classify("/home/user/docs"))
	assert.Equal(t, Protected, classifier.Classify("/home/other"))
	assert.Equal(t, Protected, classifier.Classify("/tmp"))
}

func TestClassifyScanRootItself(t *testing.T) {
	classifier := NewClassifier("/home/user", Table{})
	assert.Equal(t, Scannable, classifier.Classify("/home/user"))
}

func TestClassifyCleansPaths(t *testing.T) {
	classifier := NewClassifier("/home/user", Table{Denied: []string{"/home/user/keep/"}})

	assert.Equal(t, Protected, classifier.Classify("/home/user/keep"))
	assert.Equal(t, Protected, classifier.Classify("/home/user/docs/../keep"))
}

func TestClassifyCustomTable(t *testing.T) {
	table := Table{
		Denied:         []string{"/data/keep"},
		DeniedSubtrees: []string{"/data/vault"},
	}
	classifier := NewClassifier("/data", table)

	assert.Equal(t, Protected, classifier.Classify("/data/keep"))
	assert.Equal(t, Scannable, classifier.Classify("/data/keep/inner"))
	assert.Equal(t, Protected, classifier.Classify("/data/vault/inner"))
	assert.Equal(t, Scannable, classifier.Classify("/data/other"))
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, Scannable, ClassifyError(nil))
	assert.Equal(t, Inaccessible, ClassifyError(os.ErrPermission))
	assert.Equal(t, Inaccessible, ClassifyError(errors.New("i/o error")))
}

func TestIsPermission(t *testing.T) {
	assert.True(t, IsPermission(os.ErrPermission))
	assert.True(t, IsPermission(fs.ErrPermission))
	assert.True(t, IsPermission(&fs.PathError{Op: "open", Path: "/x", Err: os.ErrPermission}))
	assert.False(t, IsPermission(errors.New("other")))
	assert.False(t, IsPermission(nil))
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "scannable", Scannable.String())
	assert.Equal(t, "protected", Protected.String())
	assert.Equal(t, "inaccessible", Inaccessible.String())
}
