package annotate

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	contextWidth = 80
	contextLead  = 40
)

// FormatDiagnostic renders a two-line message: a header followed by at most
// contextWidth characters of the line, and a row of spaces ending in "^^^"
// under the offending offset. Long lines are windowed so the offset sits
// contextLead characters into the displayed context.
func FormatDiagnostic(kind Kind, line, offset int, text string) string {
	header := fmt.Sprintf("[%s] line: %d, offset: %d ", strings.ToUpper(kind.String()), line, offset)

	context := []rune(text)
	if len(context) > contextWidth && offset > contextLead {
		shift := min(offset-contextLead, len(context))
		context = context[shift:]
		offset = contextLead
	}
	if len(context) > contextWidth {
		context = context[:contextWidth]
	}

	pad := max(len([]rune(header))+offset-2, 0)
	return header + strings.TrimRightFunc(string(context), unicode.IsSpace) + "\n" + strings.Repeat(" ", pad) + "^^^"
}
