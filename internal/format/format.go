// Package format renders a vcs.Status into a prompt line. Rendering is a
// pure function of the status, the template set and the options; color
// tags are left symbolic until Resolve or Strip runs.
package format

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/chmouel/vcprompt/internal/vcs"
)

// Mode selects one of the three output layouts.
type Mode int

const (
	// Detailed is the default layout with every field.
	Detailed Mode = iota
	// Minimal shows just the branch with compact dirty markers.
	Minimal
	// FormatString renders a user-supplied %-directive pattern.
	FormatString
)

// Options carries the layout choice and value-level tweaks.
type Options struct {
	Mode Mode
	// Pattern is the format string consulted in FormatString mode.
	// Empty falls back to DefaultPattern.
	Pattern string
	// MaxBranchLen truncates longer branch names with an ellipsis.
	// Zero disables truncation.
	MaxBranchLen int
}

// Render produces the prompt line for st. The result still contains
// symbolic color tags.
func Render(st *vcs.Status, tpl Templates, opts Options) string {
	switch opts.Mode {
	case Minimal:
		return renderMinimal(st, tpl, opts)
	case FormatString:
		return renderPattern(st, tpl, opts)
	default:
		return renderDetailed(st, tpl, opts)
	}
}

// renderDetailed emits prefix, name, branch, divergence, one separator
// per in-progress operation plus a closing one, the local-change
// counters, the clean marker, and the suffix. Counters at zero are
// skipped entirely, never shown as 0.
func renderDetailed(st *vcs.Status, tpl Templates, opts Options) string {
	var b strings.Builder
	b.WriteString(tpl.Prefix)
	b.WriteString(applyName(tpl.Name, st))
	b.WriteString(apply(tpl.Branch, branchValue(st, opts)))
	applyCount(&b, tpl.Behind, st.Behind)
	applyCount(&b, tpl.Ahead, st.Ahead)
	for _, op := range st.Operations {
		b.WriteString(tpl.Separator)
		b.WriteString(apply(tpl.Operation, op))
	}
	b.WriteString(tpl.Separator)
	applyCount(&b, tpl.Staged, st.Staged)
	applyCount(&b, tpl.Conflicts, st.Conflicts)
	applyCount(&b, tpl.Changed, st.Changed)
	applyCount(&b, tpl.Untracked, st.Untracked)
	if st.IsClean() {
		b.WriteString(tpl.Clean)
	}
	b.WriteString(tpl.Suffix)
	return b.String()
}

func renderMinimal(st *vcs.Status, tpl Templates, opts Options) string {
	var b strings.Builder
	b.WriteString(tpl.Prefix)
	b.WriteString(apply(tpl.Branch, branchValue(st, opts)))
	if st.Staged > 0 {
		b.WriteString("{bold}{yellow}+{reset}")
	}
	if !st.IsClean() {
		b.WriteString("{red}*{reset}")
	}
	applyCount(&b, tpl.Behind, st.Behind)
	applyCount(&b, tpl.Ahead, st.Ahead)
	b.WriteString(tpl.Suffix)
	return b.String()
}

// renderPattern scans the pattern once with a single character of
// lookahead. A % consumes the next character as a directive; unknown
// directives emit that character literally and a trailing % is dropped.
// The clean marker and suffix are appended after the pattern, matching
// the fixed layouts.
func renderPattern(st *vcs.Status, tpl Templates, opts Options) string {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			b.WriteRune(runes[i])
			continue
		}
		i++
		if i >= len(runes) {
			break
		}
		switch runes[i] {
		case 'n':
			b.WriteString(applyName(tpl.Name, st))
		case 'b':
			b.WriteString(apply(tpl.Branch, branchValue(st, opts)))
		case 'c':
			b.WriteString(apply(tpl.Commit, st.FmtCommit(7)))
		case 'A':
			applyCount(&b, tpl.Ahead, st.Ahead)
		case 'B':
			applyCount(&b, tpl.Behind, st.Behind)
		case 's':
			applyCount(&b, tpl.Staged, st.Staged)
		case 'U':
			applyCount(&b, tpl.Conflicts, st.Conflicts)
		case 'm':
			applyCount(&b, tpl.Changed, st.Changed)
		case 'u':
			applyCount(&b, tpl.Untracked, st.Untracked)
		case 'o':
			for _, op := range st.Operations {
				b.WriteString(apply(tpl.Operation, op))
			}
		case 'd':
			if diff := st.FmtDiff(); diff != "" {
				b.WriteString(apply(tpl.Diff, diff))
			}
		default:
			b.WriteRune(runes[i])
		}
	}

	if st.IsClean() {
		b.WriteString(tpl.Clean)
	}
	b.WriteString(tpl.Suffix)
	return b.String()
}

func apply(tpl, value string) string {
	return strings.ReplaceAll(tpl, "{value}", value)
}

// applyCount writes the template only for strictly positive counts.
func applyCount(b *strings.Builder, tpl string, n int) {
	if n > 0 {
		b.WriteString(apply(tpl, strconv.Itoa(n)))
	}
}

func applyName(tpl string, st *vcs.Status) string {
	out := strings.ReplaceAll(tpl, "{value}", st.System.String())
	return strings.ReplaceAll(out, "{symbol}", st.Symbol)
}

func branchValue(st *vcs.Status, opts Options) string {
	if opts.MaxBranchLen > 0 {
		return truncate.StringWithTail(st.Branch, uint(opts.MaxBranchLen), "…") //nolint:gosec
	}
	return st.Branch
}
