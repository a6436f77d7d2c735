package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nanogit-vcs/nanogit/internal/config"
	"github.com/nanogit-vcs/nanogit/store"
)

// openRepository locates a repository's git directory starting at root
// (walking upward the way `git rev-parse --git-dir` does), opens its
// object store, and loads its optional nanogit.toml.
func openRepository(root string, cacheOverride int64, opts ...store.Option) (gitDir string, st *store.Store, cfg *config.Config, err error) {
	gitDir, err = discoverGitDir(root)
	if err != nil {
		return "", nil, nil, err
	}

	cfg, err = config.Load(filepath.Join(filepath.Dir(gitDir), config.FileName))
	if err != nil {
		return "", nil, nil, err
	}

	cacheBytes := cfg.Store.CacheBytes
	if cacheOverride != 0 {
		cacheBytes = cacheOverride
	}
	if cacheBytes > 0 {
		opts = append(opts, store.WithCache(cacheBytes))
	}

	st, err = store.Open(gitDir, opts...)
	if err != nil {
		return "", nil, nil, err
	}
	return gitDir, st, cfg, nil
}

// discoverGitDir walks upward from start looking for a ".git" directory;
// at each level, a directory that directly contains "objects" is taken
// as a bare repository instead.
func discoverGitDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ".git")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		if info, err := os.Stat(filepath.Join(dir, "objects")); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not a git repository (or any parent up to %s)", start)
		}
		dir = parent
	}
}
