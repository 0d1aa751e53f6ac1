package export

import (
	"encoding/csv"
	"io"
	"regexp"
)

const bom = "\uFEFF"

// Header is the first CSV row.
var Header = []string{"tekstnummer", "zin nr", "geannoteerde passage", "correctie", "eenheid"}

var spaceBeforePunct = regexp.MustCompile(`\s+([[:punct:]]+)`)

// RemoveSpaces drops whitespace in front of punctuation.
func RemoveSpaces(s string) string {
	return spaceBeforePunct.ReplaceAllString(s, "$1")
}

// CSV writes one row per correction and per semantic role of every sentence
// in docs. Corrections of a sentence come before its semantic roles. The
// output starts with a UTF-8 byte order mark so spreadsheets pick the right
// encoding.
func CSV(w io.Writer, docs []*Document, delim rune) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = delim
	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, doc := range docs {
		for _, s := range doc.Sentences() {
			for _, a := range s.annotations() {
				row := []string{doc.ID, s.Number, RemoveSpaces(a.passage), RemoveSpaces(a.correction), a.class}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
