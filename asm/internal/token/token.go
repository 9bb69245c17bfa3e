package token

import (
	"iter"
	"strings"
)

// CommentMarker starts a comment that runs to the end of the line.
const CommentMarker = '#'

// Line is one non-empty source line.
type Line struct {
	Text   string // raw line without its terminator
	Tokens []string
	No     int // 1-based
}

// Scan yields the token lists of every line of source that has at least one
// token outside its comment. Each range over the returned sequence starts
// again from the first line.
func Scan(source string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		no := 0
		rest := source
		for len(rest) > 0 {
			no++
			text := rest
			if i := strings.IndexByte(rest, '\n'); i >= 0 {
				text, rest = rest[:i], rest[i+1:]
			} else {
				rest = ""
			}
			text = strings.TrimSuffix(text, "\r")

			tokens := Tokenize(text)
			if len(tokens) == 0 {
				continue
			}
			if !yield(Line{No: no, Text: text, Tokens: tokens}) {
				return
			}
		}
	}
}

// Tokenize strips the comment from a single line and splits the remainder on
// whitespace.
func Tokenize(line string) []string {
	if i := strings.IndexByte(line, CommentMarker); i >= 0 {
		line = line[:i]
	}
	return strings.Fields(line)
}
