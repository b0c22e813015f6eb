package core

import (
	"os"
	"path/filepath"

	"github.com/lineheat/lineheat/schema"
)

// Perforce environment variable consulted when no marker is found on
// the ancestor path.
const p4ConfigEnv = "P4CONFIG"

// Detect classifies the version control system governing dir by walking
// parent directories toward the filesystem root. A .git marker wins at
// the level it appears, then a .p4config marker. When the walk exhausts
// the ancestor chain, a set P4CONFIG environment variable still
// classifies as perforce. Pure filesystem probe, no caching.
func Detect(dir string) schema.VCSKind {
	current, err := filepath.Abs(dir)
	if err != nil {
		return schema.NoVCS
	}

	for {
		if markerExists(filepath.Join(current, ".git")) {
			return schema.GitVCS
		}
		if markerExists(filepath.Join(current, ".p4config")) {
			return schema.PerforceVCS
		}
		parent := filepath.Dir(current)
		if parent == current {
			// Reached the filesystem root.
			break
		}
		current = parent
	}

	if os.Getenv(p4ConfigEnv) != "" {
		return schema.PerforceVCS
	}
	return schema.NoVCS
}

// markerExists reports whether a .git / .p4config marker is present;
// both directory and file markers count (git worktrees use a file).
func markerExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
