package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEscapes(t *testing.T) {
	tests := []struct {
		tag string
		seq string
	}{
		{"{reset}", "\x1b[00m"},
		{"{bold}", "\x1b[01m"},
		{"{black}", "\x1b[30m"},
		{"{red}", "\x1b[31m"},
		{"{green}", "\x1b[32m"},
		{"{yellow}", "\x1b[33m"},
		{"{blue}", "\x1b[34m"},
		{"{magenta}", "\x1b[35m"},
		{"{cyan}", "\x1b[36m"},
		{"{white}", "\x1b[37m"},
		{"{gray}", "\x1b[90m"},
		{"{black_on_green}", "\x1b[30;42m"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.seq, Resolve(tt.tag))
		})
	}
}

func TestResolveReplacesEveryTag(t *testing.T) {
	var b strings.Builder
	for _, c := range colorTable {
		b.WriteString(c.tag)
		b.WriteString("x")
	}

	out := Resolve(b.String())

	assert.NotContains(t, out, "{")
	assert.NotContains(t, out, "}")
}

func TestResolveIsIdempotent(t *testing.T) {
	in := "{cyan}main{reset}{bold}{yellow}+{reset}"
	once := Resolve(in)
	assert.Equal(t, once, Resolve(once))
}

func TestResolveKeepsUnknownTags(t *testing.T) {
	assert.Equal(t, "\x1b[36m{unknown}m", Resolve("{cyan}{unknown}m"))
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "tags removed", in: "{cyan}main{reset}{red}*{reset}", expected: "main*"},
		{name: "plain text untouched", in: "main +2", expected: "main +2"},
		{name: "unknown tag kept", in: "{cyan}{nope}", expected: "{nope}"},
		{name: "empty", in: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Strip(tt.in))
		})
	}
}

func TestNoTagIsASubstringOfAnother(t *testing.T) {
	for i, a := range colorTable {
		for j, b := range colorTable {
			if i == j {
				continue
			}
			assert.NotContains(t, a.tag, b.tag)
		}
	}
}
