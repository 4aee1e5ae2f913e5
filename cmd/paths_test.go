package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLineSpec(t *testing.T) {
	path, lines, err := splitLineSpec("features/a.feature:3:9")
	require.NoError(t, err)
	assert.Equal(t, "features/a.feature", path)
	assert.Equal(t, []int{3, 9}, lines)

	path, lines, err = splitLineSpec("features/a.feature")
	require.NoError(t, err)
	assert.Equal(t, "features/a.feature", path)
	assert.Nil(t, lines)

	_, _, err = splitLineSpec("features/a.feature:0")
	assert.Error(t, err)
}

func TestResolvePaths_KeepsMissingFiles(t *testing.T) {
	inTempDir(t)

	paths, lines, err := resolvePaths([]string{"missing.feature"})
	require.NoError(t, err)
	assert.Equal(t, []string{"missing.feature"}, paths)
	assert.Empty(t, lines)
}

func TestResolvePaths_DirectoryAndLines(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "features/b.feature", loginFeature)
	writeFeature(t, "features/a/z.feature", loginFeature)
	writeFeature(t, "features/a/readme.md", "")

	paths, lines, err := resolvePaths([]string{"features", "features/b.feature:6"})
	require.NoError(t, err)
	assert.Equal(t, []string{"features/a/z.feature", "features/b.feature", "features/b.feature"}, paths)
	assert.Equal(t, map[string][]int{"features/b.feature": {6}}, lines)
}
