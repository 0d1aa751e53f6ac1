package annotate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDiagnostic_ShortLine(t *testing.T) {
	header := "[NO ANNOTATION] line: 3, offset: 5 "
	want := header + "[abc]\n" + strings.Repeat(" ", len(header)+5-2) + "^^^"

	assert.Equal(t, want, FormatDiagnostic(NoAnnotation, 3, 5, "[abc]"))
}

func TestFormatDiagnostic_WindowsLongLine(t *testing.T) {
	text := strings.Repeat("a", 60) + "X" + strings.Repeat("b", 39)
	header := "[ORPHAN TAG] line: 0, offset: 60 "
	want := header + text[20:] + "\n" + strings.Repeat(" ", len(header)+40-2) + "^^^"

	assert.Equal(t, want, FormatDiagnostic(OrphanTag, 0, 60, text))
}

func TestFormatDiagnostic_TruncatesAndStripsContext(t *testing.T) {
	text := strings.Repeat("c", 30) + strings.Repeat(" ", 60) + "tail"
	header := "[WRONG ANNOTATION FORMAT] line: 1, offset: 10 "
	want := header + strings.Repeat("c", 30) + "\n" + strings.Repeat(" ", len(header)+10-2) + "^^^"

	assert.Equal(t, want, FormatDiagnostic(WrongAnnotationFormat, 1, 10, text))
}

func TestFormatDiagnostic_NoWindowForShortLineWithLargeOffset(t *testing.T) {
	text := strings.Repeat("d", 50)
	out := FormatDiagnostic(BracketMismatch, 4, 45, text)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "[NUMBER OF BRACKETS DO NOT MATCH] line: 4, offset: 45 "+text, lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "^^^"))
}

func TestFormatDiagnostic_WindowBoundaries(t *testing.T) {
	long := strings.Repeat("e", 40) + "Y" + strings.Repeat("f", 59)
	exact := strings.Repeat("g", 80)
	tests := []struct {
		name    string
		text    string
		offset  int
		context string
		caret   int
	}{
		{"offset at lead on long line", long, 40, long[:80], 40},
		{"offset past lead on long line", long, 41, long[1:81], 40},
		{"line of exactly the width", exact, 45, exact, 45},
		{"line one past the width", exact + "h", 45, exact[5:] + "h", 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := fmt.Sprintf("[ORPHAN TAG] line: 0, offset: %d ", tt.offset)
			want := header + tt.context + "\n" + strings.Repeat(" ", len(header)+tt.caret-2) + "^^^"
			assert.Equal(t, want, FormatDiagnostic(OrphanTag, 0, tt.offset, tt.text))
		})
	}
}

func TestParseError_Diagnostic(t *testing.T) {
	pe := &ParseError{Kind: OrphanTag, Line: 2, Offset: 5, Text: "[foo bar*]X"}
	assert.Equal(t, FormatDiagnostic(OrphanTag, 2, 5, "[foo bar*]X"), pe.Diagnostic())
	assert.Equal(t, "orphan tag at line 2, offset 5", pe.Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "number of brackets do not match", BracketMismatch.String())
	assert.Equal(t, "nesting too deep", NestingTooDeep.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
	assert.Len(t, Kinds(), 5)
}
