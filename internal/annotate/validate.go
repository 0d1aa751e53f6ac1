package annotate

import (
	"strings"
	"unicode/utf8"
)

// CheckBalance fails when line has a different number of '[' and ']'. The
// error points at the last occurrence of the bracket in excess. When the
// counts agree it still fails on the first ']' that closes nothing.
func CheckBalance(n int, line string) error {
	open := strings.Count(line, "[")
	closed := strings.Count(line, "]")
	if open == closed {
		return checkOrder(n, line)
	}
	excess := "]"
	if open > closed {
		excess = "["
	}
	return &ParseError{
		Kind:   BracketMismatch,
		Line:   n,
		Offset: utf8.RuneCountInString(line[:strings.LastIndex(line, excess)]),
		Text:   line,
	}
}

func checkOrder(n int, line string) error {
	depth, pos := 0, 0
	for _, r := range line {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return &ParseError{Kind: BracketMismatch, Line: n, Offset: pos, Text: line}
			}
		}
		pos++
	}
	return nil
}

// CheckBareClose fails when a ']' is directly followed by whitespace instead
// of a tag. The error points at the whitespace.
func CheckBareClose(n int, line string) error {
	idx := -1
	for i := 0; i+1 < len(line); i++ {
		if line[i] == ']' && (line[i+1] == ' ' || line[i+1] == '\t') {
			idx = i + 1
			break
		}
	}
	if idx < 0 {
		return nil
	}
	return &ParseError{
		Kind:   NoAnnotation,
		Line:   n,
		Offset: utf8.RuneCountInString(line[:idx]),
		Text:   line,
	}
}
