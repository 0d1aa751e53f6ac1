package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chriserin/ea/internal/annotate"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func OkLine(w io.Writer, path string, sentences int) {
	fmt.Fprintln(w, okStyle.Render("ok")+"    "+path+" "+faintStyle.Render(fmt.Sprintf("(%d sentences)", sentences)))
}

func FailLine(w io.Writer, path string, errors int) {
	fmt.Fprintln(w, failStyle.Render("fail")+"  "+path+" "+faintStyle.Render(fmt.Sprintf("(%d errors)", errors)))
}

// Diagnostics prints the messages of errs unstyled so they stay byte-exact.
func Diagnostics(w io.Writer, path string, errs []*annotate.ParseError) {
	fmt.Fprintf(w, "Parsing failed for %s! Errors:\n", path)
	for _, pe := range errs {
		fmt.Fprintln(w, pe.Diagnostic())
	}
}

func SummaryLine(w io.Writer, converted, failed int) {
	fmt.Fprintf(w, "converted %d files, %d failed\n", converted, failed)
}

func ListRow(w io.Writer, path, status string, errors int, when string, pathWidth int) {
	label := okStyle.Render(status)
	if status != "converted" {
		label = failStyle.Render(status)
	}
	pathPad := strings.Repeat(" ", max(pathWidth-len(path), 0))
	statusPad := strings.Repeat(" ", max(len("converted")-len(status), 0))
	fmt.Fprintf(w, "%s%s  %s%s  %s%s\n", path, pathPad, label, statusPad, faintStyle.Render(when), errorSuffix(errors))
}

func errorSuffix(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("  %d errors", n)
}
