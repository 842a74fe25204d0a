package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorch/internal/domain"
)

// staticProvider serves snapshots from a fixed in-memory tree.
type staticProvider struct {
	root *domain.Node
}

func (provider *staticProvider) Snapshot(path []string, depth int) (*domain.Node, bool) {
	if provider.root == nil {
		return nil, false
	}
	node := provider.root.FindPath(path)
	if node == nil {
		return nil, false
	}
	return node.CloneDepth(depth), true
}

func navigatorFixture() (*Navigator, *staticProvider) {
	provider := &staticProvider{
		root: &domain.Node{
			Name: "root", Kind: domain.KindDir, SizeBytes: 100,
			Children: []*domain.Node{
				{
					Name: "docs", Kind: domain.KindDir, SizeBytes: 80,
					Children: []*domain.Node{
						{Name: "deep", Kind: domain.KindDir, SizeBytes: 50},
						{Name: "readme.md", Kind: domain.KindFile, SizeBytes: 30},
					},
				},
				{Name: "loose.txt", Kind: domain.KindFile, SizeBytes: 20},
			},
		},
	}
	return NewNavigator(provider), provider
}

func TestNavigatorStartsAtRoot(t *testing.T) {
	navigator, _ := navigatorFixture()

	assert.Empty(t, navigator.FocusPath())
	focus, ok := navigator.Focus(1)
	require.True(t, ok)
	assert.Equal(t, "root", focus.Name)
}

func TestNavigatorDrillDown(t *testing.T) {
	navigator, _ := navigatorFixture()

	assert.True(t, navigator.DrillDown("docs"))
	assert.Equal(t, []string{"docs"}, navigator.FocusPath())

	assert.True(t, navigator.DrillDown("deep"))
	assert.Equal(t, []string{"docs", "deep"}, navigator.FocusPath())
}

func TestNavigatorDrillDownRejectsFiles(t *testing.T) {
	navigator, _ := navigatorFixture()

	assert.False(t, navigator.DrillDown("loose.txt"))
	assert.Empty(t, navigator.FocusPath(), "focus unchanged after a rejected drill")
}

func TestNavigatorDrillDownRejectsMissing(t *testing.T) {
	navigator, _ := navigatorFixture()

	require.True(t, navigator.DrillDown("docs"))
	assert.False(t, navigator.DrillDown("ghost"))
	assert.Equal(t, []string{"docs"}, navigator.FocusPath())
}

func TestNavigatorGoUp(t *testing.T) {
	navigator, _ := navigatorFixture()

	require.True(t, navigator.DrillDown("docs"))
	require.True(t, navigator.DrillDown("deep"))

	assert.True(t, navigator.GoUp())
	assert.Equal(t, []string{"docs"}, navigator.FocusPath())
	assert.True(t, navigator.GoUp())
	assert.Empty(t, navigator.FocusPath())
	assert.False(t, navigator.GoUp(), "no-op at the root")
}

func TestNavigatorReset(t *testing.T) {
	navigator, _ := navigatorFixture()

	require.True(t, navigator.DrillDown("docs"))
	navigator.Reset()
	assert.Empty(t, navigator.FocusPath())
}

func TestNavigatorEnsureValidPopsDeletedFocus(t *testing.T) {
	navigator, provider := navigatorFixture()

	require.True(t, navigator.DrillDown("docs"))
	require.True(t, navigator.DrillDown("deep"))

	// docs loses its children, as after a delete.
	docs := provider.root.Child("docs")
	docs.Children = nil

	navigator.EnsureValid()
	assert.Equal(t, []string{"docs"}, navigator.FocusPath())
}

func TestNavigatorEnsureValidSurvivesTreeSwap(t *testing.T) {
	navigator, provider := navigatorFixture()

	require.True(t, navigator.DrillDown("docs"))
	provider.root = &domain.Node{Name: "other", Kind: domain.KindDir}

	navigator.EnsureValid()
	assert.Empty(t, navigator.FocusPath(), "falls back to the new root")
}

func TestNavigatorBreadcrumbs(t *testing.T) {
	navigator, _ := navigatorFixture()

	require.True(t, navigator.DrillDown("docs"))
	require.True(t, navigator.DrillDown("deep"))

	crumbs := navigator.Breadcrumbs()
	require.Len(t, crumbs, 3)
	assert.Equal(t, "root", crumbs[0].Name)
	assert.Equal(t, int64(100), crumbs[0].SizeBytes)
	assert.Equal(t, "docs", crumbs[1].Name)
	assert.Equal(t, []string{"docs"}, crumbs[1].Path)
	assert.Equal(t, "deep", crumbs[2].Name)
	assert.Equal(t, []string{"docs", "deep"}, crumbs[2].Path)
}
