package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// operationMarkers maps sentinel paths under .git to the operation they
// indicate. The order is fixed so simultaneous operations always render
// the same way.
var operationMarkers = []struct {
	marker string
	name   string
}{
	{"rebase-merge", "REBASE"},
	{"rebase-apply", "AM/REBASE"},
	{"MERGE_HEAD", "MERGING"},
	{"CHERRY_PICK_HEAD", "CHERRY-PICKING"},
	{"REVERT_HEAD", "REVERTING"},
	{"BISECT_LOG", "BISECTING"},
}

func gitStatus(ctx context.Context, root string) (*Status, error) {
	statusOut, err := runCommand(ctx, root, "git",
		"status", "--porcelain=2", "--branch", "--untracked-files=normal")
	if err != nil {
		return nil, err
	}
	diffOut, err := runCommand(ctx, root, "git", "diff", "--numstat")
	if err != nil {
		return nil, err
	}

	st, err := parseGitStatus(statusOut)
	if err != nil {
		return nil, err
	}
	parseNumstat(st, diffOut)
	scanOperations(st, root)
	return st, nil
}

// parseGitStatus consumes porcelain v2 output. Each line's first token
// selects its record kind; unknown kinds are skipped so newer git
// versions stay parseable.
func parseGitStatus(out string) (*Status, error) {
	st := NewStatus(Git)
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "#":
			if err := parseGitHeader(st, parts); err != nil {
				return nil, err
			}
		case "1", "2":
			if len(parts) < 2 {
				continue
			}
			// Two-character XY code: index side then worktree side.
			// Both can be set at once and then both counters move.
			xy := parts[1]
			if !strings.HasPrefix(xy, ".") {
				st.Staged++
			}
			if !strings.HasSuffix(xy, ".") {
				st.Changed++
			}
		case "u":
			st.Conflicts++
		case "?":
			st.Untracked++
		}
	}
	return st, nil
}

func parseGitHeader(st *Status, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "branch.head":
		st.Branch = fieldOr(parts, 2, unknown)
	case "branch.oid":
		st.Commit = fieldOr(parts, 2, unknown)
	case "branch.ab":
		ahead, err := parseDivergence(fieldOr(parts, 2, "0"))
		if err != nil {
			return fmt.Errorf("malformed branch.ab header: %w", err)
		}
		behind, err := parseDivergence(fieldOr(parts, 3, "0"))
		if err != nil {
			return fmt.Errorf("malformed branch.ab header: %w", err)
		}
		st.Ahead = ahead
		st.Behind = behind
	}
	return nil
}

// parseDivergence reads the signed +N/-N tokens of the branch.ab header
// and keeps the magnitude. Unlike the diff stats this header is
// structural, so a bad token is a hard error.
func parseDivergence(tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = -n
	}
	return n, nil
}

// parseNumstat accumulates per-file insertion/deletion counts from
// `git diff --numstat` output. The stats are an enrichment: fields that
// fail to parse (such as the "-" shown for binary files) count as zero
// and never fail the run.
func parseNumstat(st *Status, out string) {
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		st.Added += parseCount(fieldOr(parts, 0, ""))
		st.Deleted += parseCount(fieldOr(parts, 1, ""))
	}
}

func parseCount(tok string) int {
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}

func fieldOr(parts []string, i int, def string) string {
	if i < len(parts) {
		return parts[i]
	}
	return def
}

// scanOperations appends the name of every in-progress operation whose
// marker exists under the metadata directory, in marker-table order.
func scanOperations(st *Status, root string) {
	gitDir := filepath.Join(root, ".git")
	for _, op := range operationMarkers {
		if _, err := os.Stat(filepath.Join(gitDir, op.marker)); err == nil {
			st.Operations = append(st.Operations, op.name)
		}
	}
}
