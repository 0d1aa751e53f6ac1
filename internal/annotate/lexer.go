package annotate

import (
	"regexp"
	"unicode/utf8"
)

// Lexer recognizes annotation tags. Both methods report positions and lengths
// in characters.
type Lexer interface {
	// MatchTag returns the length of the tag at the very start of s.
	MatchTag(s string) (int, bool)
	// FindOrphan returns the offset of the first tag-like token in s that is
	// not attached to a closing bracket.
	FindOrphan(s string) (int, bool)
}

var (
	tagPattern    = regexp.MustCompile(`^[\p{L}_][*+\p{L}\p{N}_]*`)
	orphanPattern = regexp.MustCompile(`(?:^|[^\]\p{L}\p{N}_*+])([\p{L}\p{N}_]+[*+])`)
)

// RegexpLexer is the default Lexer. A tag starts with a letter or underscore
// and continues with word characters, '*' or '+'. An orphan is a run of word
// characters ending in '*' or '+' that does not follow ']', a word character,
// '*' or '+'.
type RegexpLexer struct {
	Tag    *regexp.Regexp
	Orphan *regexp.Regexp
}

func NewRegexpLexer() *RegexpLexer {
	return &RegexpLexer{Tag: tagPattern, Orphan: orphanPattern}
}

func (l *RegexpLexer) MatchTag(s string) (int, bool) {
	loc := l.Tag.FindStringIndex(s)
	if loc == nil || loc[0] != 0 || loc[1] == 0 {
		return 0, false
	}
	return utf8.RuneCountInString(s[:loc[1]]), true
}

func (l *RegexpLexer) FindOrphan(s string) (int, bool) {
	loc := l.Orphan.FindStringSubmatchIndex(s)
	if loc == nil {
		return 0, false
	}
	return utf8.RuneCountInString(s[:loc[2]]), true
}
