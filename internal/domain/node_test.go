package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Node {
	return &Node{
		Name: "root", Kind: KindDir, SizeBytes: 60,
		Children: []*Node{
			{
				Name: "a", Kind: KindDir, SizeBytes: 50,
				Children: []*Node{
					{Name: "x", Kind: KindFile, SizeBytes: 50},
				},
			},
			{Name: "b.txt", Kind: KindFile, SizeBytes: 10},
		},
	}
}

func TestFindPath(t *testing.T) {
	tree := sampleTree()

	assert.Same(t, tree, tree.FindPath(nil))
	require.NotNil(t, tree.FindPath([]string{"a", "x"}))
	assert.Equal(t, int64(50), tree.FindPath([]string{"a", "x"}).SizeBytes)
	assert.Nil(t, tree.FindPath([]string{"a", "missing"}))
	assert.Nil(t, tree.FindPath([]string{"b.txt", "x"}), "files have no children")
}

func TestSortChildren(t *testing.T) {
	node := &Node{
		Name: "p", Kind: KindDir,
		Children: []*Node{
			{Name: "small", SizeBytes: 1},
			{Name: "zz", SizeBytes: 5},
			{Name: "aa", SizeBytes: 5},
		},
	}
	node.SortChildren()

	assert.Equal(t, "aa", node.Children[0].Name)
	assert.Equal(t, "zz", node.Children[1].Name)
	assert.Equal(t, "small", node.Children[2].Name)
}

func TestItemCount(t *testing.T) {
	assert.Equal(t, 4, sampleTree().ItemCount())
	assert.Equal(t, 1, (&Node{Name: "lone"}).ItemCount())
}

func TestCloneDepth(t *testing.T) {
	tree := sampleTree()

	flat := tree.CloneDepth(0)
	assert.Empty(t, flat.Children)
	assert.Equal(t, int64(60), flat.SizeBytes)

	one := tree.CloneDepth(1)
	require.Len(t, one.Children, 2)
	assert.Empty(t, one.Child("a").Children)

	two := tree.CloneDepth(2)
	require.NotNil(t, two.Child("a").Child("x"))

	// Mutating the clone leaves the original alone.
	two.Child("a").SizeBytes = 999
	assert.Equal(t, int64(50), tree.Child("a").SizeBytes)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryDirectory, Categorize("anything", KindDir))
	assert.Equal(t, CategoryVideo, Categorize("movie.MKV", KindFile))
	assert.Equal(t, CategoryImage, Categorize("photo.jpeg", KindFile))
	assert.Equal(t, CategoryAudio, Categorize("song.flac", KindFile))
	assert.Equal(t, CategoryArchive, Categorize("backup.tar", KindFile))
	assert.Equal(t, CategoryDocument, Categorize("paper.pdf", KindFile))
	assert.Equal(t, CategoryCode, Categorize("main.go", KindFile))
	assert.Equal(t, CategoryOther, Categorize("mystery.bin", KindFile))
	assert.Equal(t, CategoryOther, Categorize("no-extension", KindFile))
}
