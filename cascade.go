package facebench

import (
	"fmt"
	"os"
	"path/filepath"
)

// CascadePathEnv lists extra directories searched for cascade resources.
const CascadePathEnv = "FACEBENCH_CASCADE_PATH"

// defaultSearchPaths are tried after the configured and environment paths.
var defaultSearchPaths = []string{"cascade", "data", "testdata"}

// FindCascade resolves a cascade resource by name. The configured search paths
// come first, then the directories listed in FACEBENCH_CASCADE_PATH, then the
// default locations relative to the working directory.
func FindCascade(name string, searchPaths []string) (string, error) {
	dirs := make([]string, 0, len(searchPaths)+len(defaultSearchPaths))
	dirs = append(dirs, searchPaths...)
	if env := os.Getenv(CascadePathEnv); env != "" {
		dirs = append(dirs, filepath.SplitList(env)...)
	}
	dirs = append(dirs, defaultSearchPaths...)

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, name)
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrCascadeNotFound, name)
}

// resolveCascade returns the cascade file location for the given config,
// falling back to the backend default resource name.
func resolveCascade(cfg *CascadeConfig, defaultName string) (string, error) {
	if cfg.Path != "" {
		return cfg.Path, nil
	}
	name := cfg.Name
	if name == "" {
		name = defaultName
	}
	return FindCascade(name, cfg.SearchPaths)
}
