package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryStartsWithDetachedDefault(t *testing.T) {
	reg := NewRegistry(nil)
	assert.Contains(t, reg.Roots(), DefaultWorkspaceRoot)
}

func TestRegistryByDocumentPicksLongestEnclosingRoot(t *testing.T) {
	reg := NewRegistry(nil)
	outer := reg.Open("file:///repo")
	inner := reg.Open("file:///repo/nested")

	assert.Same(t, inner, reg.ByDocument("file:///repo/nested/a.rhai"))
	assert.Same(t, outer, reg.ByDocument("file:///repo/a.rhai"))
}

func TestRegistryByDocumentFallsBackToDetached(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Open("file:///repo")

	detached := reg.ByDocument("file:///elsewhere/a.rhai")
	require.NotNil(t, detached)
	assert.Same(t, reg.roots[DefaultWorkspaceRoot], detached)
}

func TestRegistryCloseRemovesRootButNotDefault(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Open("file:///repo")
	reg.Close("file:///repo")
	assert.NotContains(t, reg.Roots(), "file:///repo")

	reg.Close(DefaultWorkspaceRoot)
	assert.Contains(t, reg.Roots(), DefaultWorkspaceRoot)
}
