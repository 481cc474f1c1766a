package vcs

import "strconv"

// unknown is the placeholder reported when a backend cannot determine a
// branch or commit.
const unknown = "<unknown>"

// initialCommit is what git reports as the commit id before the first
// commit exists. It is rendered verbatim, never truncated.
const initialCommit = "(initial)"

// Status is the normalized state of one repository at one point in time.
// It is built fresh on every invocation and handed to the renderer
// read-only.
type Status struct {
	// System identifies the backend that produced this record.
	System System
	// Symbol is the display glyph for the backend.
	Symbol string
	// Branch is the current branch (plus bookmark for mercurial).
	Branch string
	// Commit is the current commit identifier.
	Commit string
	// Ahead and Behind count revisions of divergence from upstream.
	Ahead  int
	Behind int
	// Staged counts index-side changes. Mercurial folds all tracked
	// changes into this counter.
	Staged int
	// Changed counts worktree-side changes.
	Changed int
	// Untracked counts files unknown to the backend.
	Untracked int
	// Conflicts counts unmerged files.
	Conflicts int
	// Added and Deleted accumulate line-level diff stats.
	Added   int
	Deleted int
	// Operations lists in-progress multi-step operations in a fixed
	// priority order, e.g. MERGING or REBASE.
	Operations []string
}

// NewStatus returns a zero-count Status for the given backend.
func NewStatus(sys System) *Status {
	return &Status{
		System:     sys,
		Symbol:     sys.Symbol(),
		Branch:     unknown,
		Commit:     unknown,
		Operations: []string{},
	}
}

// IsClean reports whether the repository has no local changes. Upstream
// divergence and in-progress operations do not affect cleanliness.
func (s *Status) IsClean() bool {
	return s.Staged == 0 && s.Conflicts == 0 && s.Changed == 0 && s.Untracked == 0
}

// FmtCommit returns the commit id truncated to n characters. The
// pre-first-commit placeholder is returned whole.
func (s *Status) FmtCommit(n int) string {
	if s.Commit == initialCommit || len(s.Commit) <= n {
		return s.Commit
	}
	return s.Commit[:n]
}

// FmtDiff renders the accumulated diff stats as "+A" or "+A/-D". It
// returns an empty string when there are no worktree changes or no
// recorded insertions.
func (s *Status) FmtDiff() string {
	if s.Changed == 0 || s.Added == 0 {
		return ""
	}
	out := "+" + strconv.Itoa(s.Added)
	if s.Deleted > 0 {
		out += "/-" + strconv.Itoa(s.Deleted)
	}
	return out
}
