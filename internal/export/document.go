// Package export reads converted XML documents and writes them out as CSV
// annotation tables or plain text.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

var (
	documentExpr   = xpath.MustCompile("/document")
	sentenceExpr   = xpath.MustCompile("//s")
	correctionExpr = xpath.MustCompile(".//correction")
	semroleExpr    = xpath.MustCompile(".//semrole")
	originalExpr   = xpath.MustCompile("original")
	newExpr        = xpath.MustCompile("new")
)

// Document is a parsed XML document written by the document builder.
type Document struct {
	ID   string
	root *xmlquery.Node
}

// Sentence is one <s> element of a document.
type Sentence struct {
	Number string
	node   *xmlquery.Node
}

// Load parses the XML document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := xmlquery.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	top := xmlquery.QuerySelector(root, documentExpr)
	if top == nil {
		return nil, fmt.Errorf("%s: no document element", path)
	}
	return &Document{ID: top.SelectAttr("id"), root: root}, nil
}

// Sentences returns the document's sentences in order.
func (d *Document) Sentences() []Sentence {
	var out []Sentence
	for _, n := range xmlquery.QuerySelectorAll(d.root, sentenceExpr) {
		id := n.SelectAttr("id")
		out = append(out, Sentence{Number: id[strings.LastIndex(id, ".")+1:], node: n})
	}
	return out
}

// Original is the sentence as the student wrote it.
func (s Sentence) Original() string {
	var b strings.Builder
	collect(&b, s.node, false)
	return b.String()
}

// Corrected is the sentence with every known edit applied.
func (s Sentence) Corrected() string {
	var b strings.Builder
	collect(&b, s.node, true)
	return b.String()
}

func collect(b *strings.Builder, n *xmlquery.Node, corrected bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "t":
			b.WriteString(c.InnerText())
		case "new":
			// only reached through a correction
		case "correction":
			if edit := xmlquery.QuerySelector(c, newExpr); corrected && edit != nil {
				collect(b, edit, corrected)
			} else if orig := xmlquery.QuerySelector(c, originalExpr); orig != nil {
				collect(b, orig, corrected)
			}
		default:
			collect(b, c, corrected)
		}
	}
}

// annotation is one correction or semantic role found in a sentence.
type annotation struct {
	passage    string
	correction string
	class      string
}

func (s Sentence) annotations() []annotation {
	var out []annotation
	for _, c := range xmlquery.QuerySelectorAll(s.node, correctionExpr) {
		a := annotation{class: c.SelectAttr("class")}
		var b strings.Builder
		if orig := xmlquery.QuerySelector(c, originalExpr); orig != nil {
			collect(&b, orig, false)
		}
		a.passage = b.String()
		if edit := xmlquery.QuerySelector(c, newExpr); edit != nil {
			a.correction = edit.InnerText()
		}
		out = append(out, a)
	}
	for _, r := range xmlquery.QuerySelectorAll(s.node, semroleExpr) {
		var b strings.Builder
		collect(&b, r, false)
		out = append(out, annotation{passage: b.String(), class: r.SelectAttr("class")})
	}
	return out
}
