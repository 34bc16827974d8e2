package facebench

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("cascade"), 0644))
}

func TestCascade_ShouldResolveFromSearchPaths(t *testing.T) {
	t.Setenv(CascadePathEnv, "")
	first, second := t.TempDir(), t.TempDir()
	touch(t, filepath.Join(second, PigoCascadeName))

	path, err := FindCascade(PigoCascadeName, []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, PigoCascadeName), path)

	// The first match wins.
	touch(t, filepath.Join(first, PigoCascadeName))
	path, err = FindCascade(PigoCascadeName, []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(first, PigoCascadeName), path)
}

func TestCascade_ShouldResolveFromEnvironment(t *testing.T) {
	empty, dir := t.TempDir(), t.TempDir()
	touch(t, filepath.Join(dir, HaarCascadeName))
	t.Setenv(CascadePathEnv, strings.Join([]string{empty, dir}, string(os.PathListSeparator)))

	path, err := FindCascade(HaarCascadeName, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, HaarCascadeName), path)
}

func TestCascade_ShouldIgnoreDirectories(t *testing.T) {
	t.Setenv(CascadePathEnv, "")
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, PigoCascadeName), 0755))

	_, err := FindCascade(PigoCascadeName, []string{dir})
	assert.ErrorIs(t, err, ErrCascadeNotFound)
}

func TestCascade_MissingResourceShouldFail(t *testing.T) {
	t.Setenv(CascadePathEnv, "")

	_, err := FindCascade("no-such-cascade.xml", []string{t.TempDir()})
	assert.ErrorIs(t, err, ErrCascadeNotFound)
	assert.Contains(t, err.Error(), "no-such-cascade.xml")
}

func TestCascade_ResolveShouldPreferTheExplicitPath(t *testing.T) {
	t.Setenv(CascadePathEnv, "")
	dir := t.TempDir()
	touch(t, filepath.Join(dir, PigoCascadeName))
	touch(t, filepath.Join(dir, "custom"))

	path, err := resolveCascade(&CascadeConfig{Path: "/some/where/cascade"}, PigoCascadeName)
	require.NoError(t, err)
	assert.Equal(t, "/some/where/cascade", path)

	path, err = resolveCascade(&CascadeConfig{SearchPaths: []string{dir}}, PigoCascadeName)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, PigoCascadeName), path)

	path, err = resolveCascade(&CascadeConfig{Name: "custom", SearchPaths: []string{dir}}, PigoCascadeName)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom"), path)
}
