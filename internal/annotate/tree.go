// Package annotate parses hand-annotated essay lines such as
// "Dit [is een [fout]sp zin]w." into trees of tagged spans.
package annotate

import (
	"fmt"
	"strings"
)

// DefaultMaxDepth bounds bracket nesting for parsers built by NewParser.
const DefaultMaxDepth = 64

// Node is one annotated segment of a line. The root node of a line has no tag
// and holds the whole line as its text.
type Node struct {
	Text     string
	Tag      string
	Children []Child

	// Payload is left untouched by the parser. Document builders use it to
	// attach whatever they derive from the node.
	Payload any
}

// Child is a nested node together with its extent in the parent's text.
type Child struct {
	*Node
	Start int // opening bracket
	Close int // closing bracket
	End   int // first character after the tag
}

// HasAnnotations reports whether any tagged span was found in the node.
func (n *Node) HasAnnotations() bool {
	return len(n.Children) > 0
}

// PlainText returns the node's text with brackets and tags removed.
func (n *Node) PlainText() string {
	var b strings.Builder
	n.writePlain(&b)
	return b.String()
}

func (n *Node) writePlain(b *strings.Builder) {
	text := []rune(n.Text)
	pos := 0
	for _, c := range n.Children {
		b.WriteString(string(text[pos:c.Start]))
		c.writePlain(b)
		pos = c.End
	}
	b.WriteString(string(text[pos:]))
}

// Segments splits the node's text into untagged runs and children, in order.
// Untagged runs are returned as nodes without tag or children.
func (n *Node) Segments() []*Node {
	var segs []*Node
	text := []rune(n.Text)
	pos := 0
	for _, c := range n.Children {
		if c.Start > pos {
			segs = append(segs, &Node{Text: string(text[pos:c.Start])})
		}
		segs = append(segs, c.Node)
		pos = c.End
	}
	if pos < len(text) {
		segs = append(segs, &Node{Text: string(text[pos:])})
	}
	return segs
}

// Parser builds annotation trees from single lines. A Parser holds no state
// between calls and is safe for concurrent use.
type Parser struct {
	Lexer    Lexer
	MaxDepth int // 0 disables the bound
}

func NewParser() *Parser {
	return &Parser{Lexer: NewRegexpLexer(), MaxDepth: DefaultMaxDepth}
}

// ParseLine validates the raw line, trims surrounding whitespace and builds
// its annotation tree.
func (p *Parser) ParseLine(n int, raw string) (*Node, error) {
	if err := CheckBalance(n, raw); err != nil {
		return nil, err
	}
	if err := CheckBareClose(n, raw); err != nil {
		return nil, err
	}
	return p.Parse(n, strings.TrimSpace(raw))
}

type frame struct {
	node  *Node
	text  []rune
	base  int // offset of text within the line
	depth int
	spans []Span
	next  int
}

// Parse builds the annotation tree of text. Spans are visited depth-first in
// the order they appear, so the first malformed span in reading order is the
// one reported. Offsets in returned errors are relative to text.
func (p *Parser) Parse(n int, text string) (*Node, error) {
	lexer := p.Lexer
	if lexer == nil {
		lexer = NewRegexpLexer()
	}
	fail := func(kind Kind, offset int) error {
		return &ParseError{Kind: kind, Line: n, Offset: offset, Text: text}
	}

	line := []rune(text)
	root := &Node{Text: text}
	stack := []*frame{{node: root, text: line, spans: MatchBrackets(line)}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next == len(f.spans) {
			stack = stack[:len(stack)-1]
			continue
		}
		span := f.spans[f.next]
		f.next++

		if p.MaxDepth > 0 && f.depth+1 > p.MaxDepth {
			return nil, fail(NestingTooDeep, f.base+span.Start)
		}

		inner := f.text[span.Start+1 : span.End]
		if pos, ok := lexer.FindOrphan(string(inner)); ok {
			if pos < 0 || pos >= len(inner) {
				return nil, fmt.Errorf("orphan offset %d outside span of length %d", pos, len(inner))
			}
			return nil, fail(OrphanTag, f.base+span.Start+1+pos)
		}

		rest := f.text[span.End+1:]
		size, ok := lexer.MatchTag(string(rest))
		if !ok {
			if len(rest) == 0 {
				return nil, fail(NoAnnotation, f.base+span.End+1)
			}
			return nil, fail(WrongAnnotationFormat, f.base+span.End+1)
		}
		if size <= 0 || size > len(rest) {
			return nil, fmt.Errorf("tag length %d outside remaining text of length %d", size, len(rest))
		}

		child := &Node{Text: string(inner), Tag: string(rest[:size])}
		f.node.Children = append(f.node.Children, Child{
			Node:  child,
			Start: span.Start,
			Close: span.End,
			End:   span.End + size + 1,
		})
		stack = append(stack, &frame{
			node:  child,
			text:  inner,
			base:  f.base + span.Start + 1,
			depth: f.depth + 1,
			spans: MatchBrackets(inner),
		})
	}

	return root, nil
}
