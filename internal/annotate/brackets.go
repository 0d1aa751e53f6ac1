package annotate

// Span holds the positions of a matching '[' and ']' pair.
type Span struct {
	Start int
	End   int
}

// MatchBrackets returns the outermost bracket spans of text in order.
// Pairs nested inside another pair are not reported; they are found when the
// inner text is matched in turn. Unbalanced input yields whatever pairs close
// at depth zero and never fails.
func MatchBrackets(text []rune) []Span {
	var spans []Span
	open, start := 0, 0
	for i, r := range text {
		switch r {
		case '[':
			open++
			if open == 1 {
				start = i
			}
		case ']':
			open--
			if open == 0 {
				spans = append(spans, Span{Start: start, End: i})
			}
		}
	}
	return spans
}
