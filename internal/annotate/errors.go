package annotate

import "fmt"

// Kind classifies a malformed line.
type Kind int

const (
	BracketMismatch Kind = iota + 1
	NoAnnotation
	WrongAnnotationFormat
	OrphanTag
	NestingTooDeep
)

var kindNames = map[Kind]string{
	BracketMismatch:       "number of brackets do not match",
	NoAnnotation:          "no annotation",
	WrongAnnotationFormat: "wrong annotation format",
	OrphanTag:             "orphan tag",
	NestingTooDeep:        "nesting too deep",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds lists every error kind in declaration order.
func Kinds() []Kind {
	return []Kind{BracketMismatch, NoAnnotation, WrongAnnotationFormat, OrphanTag, NestingTooDeep}
}

// ParseError locates a malformed annotation. Line and Offset are 0-based;
// Offset counts characters, not bytes, into Text.
type ParseError struct {
	Kind   Kind
	Line   int
	Offset int
	Text   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, offset %d", e.Kind, e.Line, e.Offset)
}

// Diagnostic renders the error with its source context and a caret marker.
func (e *ParseError) Diagnostic() string {
	return FormatDiagnostic(e.Kind, e.Line, e.Offset, e.Text)
}
