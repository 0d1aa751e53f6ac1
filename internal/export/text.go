package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var specials = strings.NewReplacer(" √", "", " ∅", "")

// Text writes orig_<base>.txt and corr_<base>.txt into dir, one line per
// sentence, and returns their paths.
func Text(doc *Document, dir, base string) (string, string, error) {
	origPath := filepath.Join(dir, "orig_"+base+".txt")
	corrPath := filepath.Join(dir, "corr_"+base+".txt")

	sentences := doc.Sentences()
	if err := writeLines(origPath, sentences, Sentence.Original); err != nil {
		return "", "", err
	}
	if err := writeLines(corrPath, sentences, Sentence.Corrected); err != nil {
		return "", "", err
	}
	return origPath, corrPath, nil
}

func writeLines(path string, sentences []Sentence, text func(Sentence) string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, s := range sentences {
		fmt.Fprintln(w, specials.Replace(text(s)))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
