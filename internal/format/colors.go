package format

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// colorTable maps the bracketed tags recognized in templates to raw ANSI
// escape sequences. No tag is a substring of another tag, so the
// replacement order never matters.
var colorTable = []struct {
	tag string
	seq string
}{
	{"{reset}", escape(color.Reset)},
	{"{bold}", escape(color.Bold)},
	{"{black}", escape(color.FgBlack)},
	{"{red}", escape(color.FgRed)},
	{"{green}", escape(color.FgGreen)},
	{"{yellow}", escape(color.FgYellow)},
	{"{blue}", escape(color.FgBlue)},
	{"{magenta}", escape(color.FgMagenta)},
	{"{cyan}", escape(color.FgCyan)},
	{"{white}", escape(color.FgWhite)},
	{"{gray}", escape(color.FgHiBlack)},
	{"{black_on_green}", escape(color.FgBlack, color.BgGreen)},
}

// escape renders SGR attributes as one raw sequence. Codes are
// zero-padded to keep the classic \x1b[00m and \x1b[01m spellings that
// shells have been matching on for years.
func escape(attrs ...color.Attribute) string {
	codes := make([]string, len(attrs))
	for i, a := range attrs {
		codes[i] = fmt.Sprintf("%02d", a)
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// Resolve replaces every color tag in s with its escape sequence.
func Resolve(s string) string {
	for _, c := range colorTable {
		s = strings.ReplaceAll(s, c.tag, c.seq)
	}
	return s
}

// Strip removes every color tag from s, for terminals or capture
// contexts that want no escapes at all.
func Strip(s string) string {
	for _, c := range colorTable {
		s = strings.ReplaceAll(s, c.tag, "")
	}
	return s
}
