package annotate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLine(t *testing.T, line string) *Node {
	t.Helper()
	node, err := NewParser().ParseLine(0, line)
	require.NoError(t, err)
	return node
}

func parseErr(t *testing.T, line string) *ParseError {
	t.Helper()
	_, err := NewParser().ParseLine(7, line)
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
	return pe
}

func TestParse_PureTextLine(t *testing.T) {
	node := parseLine(t, "Dit is een zin zonder fouten.")
	assert.Equal(t, "Dit is een zin zonder fouten.", node.Text)
	assert.Empty(t, node.Tag)
	assert.False(t, node.HasAnnotations())
}

func TestParse_WhitespaceOnlyLine(t *testing.T) {
	node := parseLine(t, "   \t ")
	assert.Equal(t, "", node.Text)
	assert.False(t, node.HasAnnotations())
}

func TestParse_SiblingSpans(t *testing.T) {
	node := parseLine(t, "Ik [loop]pv naar [huis]sp.")
	require.Len(t, node.Children, 2)

	first := node.Children[0]
	assert.Equal(t, "loop", first.Text)
	assert.Equal(t, "pv", first.Tag)
	assert.Equal(t, 3, first.Start)
	assert.Equal(t, 8, first.Close)
	assert.Equal(t, 11, first.End)

	second := node.Children[1]
	assert.Equal(t, "huis", second.Text)
	assert.Equal(t, "sp", second.Tag)
	assert.Equal(t, 17, second.Start)
	assert.Equal(t, 25, second.End)

	assert.Equal(t, "Ik loop naar huis.", node.PlainText())
}

func TestParse_NestedSpans(t *testing.T) {
	node := parseLine(t, "[a [b]X]Y")
	require.Len(t, node.Children, 1)

	outer := node.Children[0]
	assert.Equal(t, "a [b]X", outer.Text)
	assert.Equal(t, "Y", outer.Tag)
	require.Len(t, outer.Children, 1)

	inner := outer.Children[0]
	assert.Equal(t, "b", inner.Text)
	assert.Equal(t, "X", inner.Tag)
	assert.Empty(t, inner.Children)

	assert.Equal(t, "a b", node.PlainText())
}

func TestParse_TagWithMarkers(t *testing.T) {
	node := parseLine(t, "[de]lw*+ man")
	require.Len(t, node.Children, 1)
	assert.Equal(t, "lw*+", node.Children[0].Tag)
	assert.Equal(t, 8, node.Children[0].End)
}

func TestParse_Idempotent(t *testing.T) {
	line := "Hij [zei [dat]vw hij [kwam]pv]w."
	first := parseLine(t, line)
	second := parseLine(t, line)
	assert.Equal(t, first, second)
}

func TestParse_Segments(t *testing.T) {
	node := parseLine(t, "Ik [loop]pv naar [huis]sp.")
	segs := node.Segments()
	require.Len(t, segs, 5)
	assert.Equal(t, "Ik ", segs[0].Text)
	assert.Equal(t, "pv", segs[1].Tag)
	assert.Equal(t, " naar ", segs[2].Text)
	assert.Equal(t, "sp", segs[3].Tag)
	assert.Equal(t, ".", segs[4].Text)
}

func TestParse_OrphanTag(t *testing.T) {
	pe := parseErr(t, "[foo bar*]X")
	assert.Equal(t, OrphanTag, pe.Kind)
	assert.Equal(t, 7, pe.Line)
	assert.Equal(t, 5, pe.Offset)
	assert.Equal(t, "[foo bar*]X", pe.Text)
}

func TestParse_OrphanTagInNestedSpanIsLineAbsolute(t *testing.T) {
	pe := parseErr(t, "[a [b c*]X]Y")
	assert.Equal(t, OrphanTag, pe.Kind)
	assert.Equal(t, 6, pe.Offset)
}

func TestParse_OrphanTagOffsetCountsCharacters(t *testing.T) {
	pe := parseErr(t, "[café bar*]X")
	assert.Equal(t, OrphanTag, pe.Kind)
	assert.Equal(t, 6, pe.Offset)
}

func TestParse_TagAfterBracketIsNotOrphan(t *testing.T) {
	node := parseLine(t, "[a [b]X*]Y")
	require.Len(t, node.Children, 1)
	assert.Equal(t, "X*", node.Children[0].Children[0].Tag)
}

func TestParse_MissingTag(t *testing.T) {
	pe := parseErr(t, "[abc]")
	assert.Equal(t, NoAnnotation, pe.Kind)
	assert.Equal(t, 5, pe.Offset)
}

func TestParse_MissingTagInNestedSpan(t *testing.T) {
	pe := parseErr(t, "[x [y]]A [z]")
	assert.Equal(t, NoAnnotation, pe.Kind)
	assert.Equal(t, 6, pe.Offset)
}

func TestParse_MalformedTag(t *testing.T) {
	pe := parseErr(t, "[abc]1@@")
	assert.Equal(t, WrongAnnotationFormat, pe.Kind)
	assert.Equal(t, 5, pe.Offset)
}

func TestParse_BareCloseWhitespace(t *testing.T) {
	pe := parseErr(t, "[abc] def")
	assert.Equal(t, NoAnnotation, pe.Kind)
	assert.Equal(t, 5, pe.Offset)
}

func TestParse_UnbalancedBrackets(t *testing.T) {
	pe := parseErr(t, "[[a]X")
	assert.Equal(t, BracketMismatch, pe.Kind)
	assert.Equal(t, 1, pe.Offset)
}

func TestParse_OutOfOrderBrackets(t *testing.T) {
	pe := parseErr(t, "[a]X][b")
	assert.Equal(t, BracketMismatch, pe.Kind)
	assert.Equal(t, 4, pe.Offset)
	assert.Equal(t, "[a]X][b", pe.Text)
}

func TestParse_NestingAtLimit(t *testing.T) {
	line := strings.Repeat("[", DefaultMaxDepth) + "a" + strings.Repeat("]x", DefaultMaxDepth)
	node := parseLine(t, line)

	depth := 0
	for node.HasAnnotations() {
		node = node.Children[0].Node
		depth++
	}
	assert.Equal(t, DefaultMaxDepth, depth)
	assert.Equal(t, "a", node.Text)
}

func TestParse_NestingTooDeep(t *testing.T) {
	n := DefaultMaxDepth + 1
	pe := parseErr(t, strings.Repeat("[", n)+"a"+strings.Repeat("]x", n))
	assert.Equal(t, NestingTooDeep, pe.Kind)
	assert.Equal(t, DefaultMaxDepth, pe.Offset)
}

func TestParse_UnboundedDepth(t *testing.T) {
	n := DefaultMaxDepth * 2
	p := &Parser{Lexer: NewRegexpLexer()}
	_, err := p.ParseLine(0, strings.Repeat("[", n)+"a"+strings.Repeat("]x", n))
	assert.NoError(t, err)
}

type stubLexer struct {
	tagSize int
}

func (s stubLexer) MatchTag(string) (int, bool)   { return s.tagSize, true }
func (s stubLexer) FindOrphan(string) (int, bool) { return 0, false }

func TestParse_InjectedLexer(t *testing.T) {
	p := &Parser{Lexer: stubLexer{tagSize: 1}}
	node, err := p.Parse(0, "[a]@ b")
	require.NoError(t, err)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "@", node.Children[0].Tag)
}

func TestParse_LexerFaultIsNotParseError(t *testing.T) {
	p := &Parser{Lexer: stubLexer{tagSize: 10}}
	_, err := p.Parse(0, "[a]b")
	require.Error(t, err)
	var pe *ParseError
	assert.False(t, errors.As(err, &pe))
}
