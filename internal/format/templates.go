package format

// DefaultPattern is the pattern used in format-string mode when the
// user supplies none.
const DefaultPattern = "%n %b %o"

// Templates holds the per-field decoration strings applied by Render.
// Each template may contain a {value} placeholder; the Name template may
// additionally contain {symbol}.
type Templates struct {
	Prefix    string
	Suffix    string
	Separator string
	Name      string
	Branch    string
	Commit    string
	Operation string
	Behind    string
	Ahead     string
	Staged    string
	Changed   string
	Conflicts string
	Untracked string
	Clean     string
	Diff      string
}

// DefaultTemplates returns the built-in decoration set.
func DefaultTemplates() Templates {
	return Templates{
		Prefix:    "",
		Suffix:    "{reset}",
		Separator: "{reset}|",
		Name:      "{symbol}",
		Branch:    "{cyan}{value}{reset}",
		Commit:    "{black_on_green}{value}{reset}",
		Operation: "{red}{value}{reset}",
		Behind:    "⇣{value}",
		Ahead:     "⇡{value}",
		Staged:    "{blue}●{value}",
		Changed:   "{yellow}Δ{value}",
		Conflicts: "{red}‼{value}",
		Untracked: "{gray}…{value}",
		Clean:     "{green}{bold}✔",
		Diff:      "{green}{value}{reset}",
	}
}
