// Package document turns annotation trees into an XML document with one
// sentence per annotated line.
package document

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/chriserin/ea/internal/annotate"
)

// Edit is attached to a correction node's Payload when its edited text is
// known.
type Edit struct {
	Text string
}

// Editor supplies the edited text of a correction span.
type Editor interface {
	Edit(node *annotate.Node) (string, bool)
}

type EditorFunc func(node *annotate.Node) (string, bool)

func (f EditorFunc) Edit(node *annotate.Node) (string, bool) { return f(node) }

// NoEdits leaves every correction without edited text.
var NoEdits = EditorFunc(func(*annotate.Node) (string, bool) { return "", false })

// Builder collects the trees of one file's lines in order.
type Builder struct {
	ID            string
	SemanticRoles map[string]bool
	Editor        Editor

	lines     []*annotate.Node
	sentences int
}

func NewBuilder(id string, roles map[string]bool) *Builder {
	return &Builder{ID: id, SemanticRoles: roles, Editor: NoEdits}
}

// IsWhitespace reports whether a line's tree holds neither annotations nor
// text, in which case it separates sentences instead of forming one.
func IsWhitespace(root *annotate.Node) bool {
	return !root.HasAnnotations() && strings.TrimSpace(root.Text) == ""
}

// Add appends the tree of the next line.
func (b *Builder) Add(root *annotate.Node) {
	b.attachEdits(root)
	b.lines = append(b.lines, root)
	if !IsWhitespace(root) {
		b.sentences++
	}
}

// Sentences is the number of sentences added so far.
func (b *Builder) Sentences() int {
	return b.sentences
}

func (b *Builder) isRole(tag string) bool {
	return b.SemanticRoles[strings.TrimRight(tag, "*+")]
}

func (b *Builder) attachEdits(n *annotate.Node) {
	editor := b.Editor
	if editor == nil {
		editor = NoEdits
	}
	for _, c := range n.Children {
		if !b.isRole(c.Tag) {
			if text, ok := editor.Edit(c.Node); ok {
				c.Payload = Edit{Text: text}
			}
		}
		b.attachEdits(c.Node)
	}
}

// Write encodes the document as indented XML.
func (b *Builder) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	x := &xmlWriter{enc: enc}

	x.start("document", attr("id", b.ID))
	x.start("text")
	x.start("p")
	n := 0
	for _, root := range b.lines {
		if IsWhitespace(root) {
			x.start("whitespace")
			x.end("whitespace")
			continue
		}
		n++
		x.start("s", attr("id", fmt.Sprintf("%s.s.%d", b.ID, n)))
		b.writeContent(x, root)
		x.end("s")
	}
	x.end("p")
	x.end("text")
	x.end("document")

	if x.err != nil {
		return x.err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (b *Builder) writeContent(x *xmlWriter, n *annotate.Node) {
	for _, seg := range n.Segments() {
		switch {
		case seg.Tag == "":
			x.text(seg.Text)
		case b.isRole(seg.Tag):
			x.start("semrole", attr("class", seg.Tag))
			b.writeContent(x, seg)
			x.end("semrole")
		default:
			x.start("correction", attr("class", seg.Tag))
			x.start("original")
			b.writeContent(x, seg)
			x.end("original")
			if edit, ok := seg.Payload.(Edit); ok {
				x.start("new")
				x.text(edit.Text)
				x.end("new")
			}
			x.end("correction")
		}
	}
}

type xmlWriter struct {
	enc *xml.Encoder
	err error
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func (x *xmlWriter) token(t xml.Token) {
	if x.err == nil {
		x.err = x.enc.EncodeToken(t)
	}
}

func (x *xmlWriter) start(name string, attrs ...xml.Attr) {
	x.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (x *xmlWriter) end(name string) {
	x.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (x *xmlWriter) text(s string) {
	if s == "" {
		return
	}
	x.start("t")
	x.token(xml.CharData(s))
	x.end("t")
}
