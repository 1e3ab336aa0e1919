package ui

import (
	"regexp"

	"github.com/mattn/go-runewidth"
)

// ANSI SGR escape code pattern for stripping/measuring
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes all ANSI SGR escape codes from a string
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// DisplayWidth returns the terminal cell width of a string, ignoring ANSI
// codes and accounting for wide runes.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}
