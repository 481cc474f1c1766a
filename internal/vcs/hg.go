package vcs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

func hgStatus(ctx context.Context, root string) (*Status, error) {
	out, err := runCommand(ctx, root, "hg", "status", "--color=false", "--pager=false")
	if err != nil {
		return nil, err
	}
	st := parseHgStatus(out)
	st.Branch = hgBranch(root) + hgBookmark(root)
	return st, nil
}

// parseHgStatus classifies lines by their leading status code. Mercurial
// has no index, so modified/added/removed/missing all land in Staged.
func parseHgStatus(out string) *Status {
	st := NewStatus(Mercurial)
	for _, line := range strings.Split(out, "\n") {
		switch code, _, _ := strings.Cut(line, " "); code {
		case "M", "A", "R", "!":
			st.Staged++
		case "?":
			st.Untracked++
		}
	}
	return st
}

// hgBranch reads the active branch from .hg/branch. The file does not
// exist while the repository sits on the default branch.
func hgBranch(root string) string {
	data, err := os.ReadFile(filepath.Join(root, ".hg", "branch"))
	if err != nil {
		return "default"
	}
	return strings.TrimSpace(string(data))
}

// hgBookmark returns the active bookmark prefixed with "*", or an empty
// string when no bookmark is current.
func hgBookmark(root string) string {
	data, err := os.ReadFile(filepath.Join(root, ".hg", "bookmarks.current"))
	if err != nil {
		return ""
	}
	return "*" + strings.TrimSpace(string(data))
}
