// Package vcs detects git and mercurial repositories and reports their
// state as a normalized Status record.
package vcs

import (
	"context"
	"os"
	"path/filepath"
)

// System identifies a supported version control backend.
type System int

const (
	// Git is the snapshot-based backend.
	Git System = iota
	// Mercurial is the changeset-based backend.
	Mercurial
)

func (s System) String() string {
	switch s {
	case Git:
		return "git"
	case Mercurial:
		return "hg"
	}
	return "unknown"
}

// Symbol returns the default display glyph for the backend.
func (s System) Symbol() string {
	switch s {
	case Git:
		return "±"
	case Mercurial:
		return "☿"
	}
	return ""
}

// markers are probed in order at every ancestry level, so git wins when a
// directory carries both metadata directories.
var markers = []struct {
	system System
	path   string
}{
	{Git, filepath.Join(".git", "HEAD")},
	{Mercurial, filepath.Join(".hg", "00changelog.i")},
}

// Repo identifies the innermost repository enclosing a directory.
type Repo struct {
	System System
	Root   string
}

// Detect locates the repository enclosing the working directory. The
// second return value is false when no repository is found, which is a
// normal condition rather than an error.
func Detect() (*Repo, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, false
	}
	return DetectAt(cwd)
}

// DetectAt walks from dir toward the filesystem root and returns the
// first directory carrying a backend marker. Nested repositories resolve
// to the innermost one.
func DetectAt(dir string) (*Repo, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, false
	}
	for {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(dir, m.path)); err == nil {
				return &Repo{System: m.system, Root: dir}, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false
		}
		dir = parent
	}
}

// MetaDir returns the repository metadata directory (.git or .hg).
func (r *Repo) MetaDir() string {
	switch r.System {
	case Mercurial:
		return filepath.Join(r.Root, ".hg")
	default:
		return filepath.Join(r.Root, ".git")
	}
}

// WatchTrees returns the metadata subtrees that change on commits, ref
// updates and bookmark moves. Used by watch mode; the object store is
// deliberately left out.
func (r *Repo) WatchTrees() []string {
	meta := r.MetaDir()
	switch r.System {
	case Mercurial:
		return []string{filepath.Join(meta, "store")}
	default:
		return []string{filepath.Join(meta, "refs"), filepath.Join(meta, "logs")}
	}
}

// Status runs the backend's status commands for the repository and
// parses their output into a Status record.
func (r *Repo) Status(ctx context.Context) (*Status, error) {
	switch r.System {
	case Mercurial:
		return hgStatus(ctx, r.Root)
	default:
		return gitStatus(ctx, r.Root)
	}
}
