//go:build !windows

package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

const unnamed = "_unnamed_"

// CleanFileName drops path separators and control characters from file name
// and makes sure result is not hidden.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || sym == os.PathSeparator || sym == os.PathListSeparator {
			return -1
		}
		return sym
	}, in)
	if out = strings.TrimLeft(out, "."); out == "" {
		return unnamed
	}
	return out
}

// EnableColorOutput reports if stream is attached to terminal.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
