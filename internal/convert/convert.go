// Package convert turns annotated essay files into XML documents. A file is
// converted only when every one of its lines parses.
package convert

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/chriserin/ea/internal/annotate"
	"github.com/chriserin/ea/internal/document"
)

const maxLineSize = 4 << 20

// Options controls a conversion.
type Options struct {
	OutDir  string
	Workers int
	DryRun  bool // parse and build, but write nothing
	Parser  *annotate.Parser
	Roles   map[string]bool
	Editor  document.Editor
}

// Result describes one converted or rejected file.
type Result struct {
	Path      string
	Output    string // written XML file, empty when nothing was written
	Lines     int
	Sentences int
	Errors    []*annotate.ParseError
}

func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// LineError is a failure that is not a malformed annotation. It stops the
// conversion of the whole file.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ReadLines splits r into lines without their line terminators. A leading
// byte order mark is dropped.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

// Lines parses every line with up to workers goroutines. Trees are returned
// by line index; parse errors are returned in line order. Any other failure
// is returned as a *LineError and discards all results.
func Lines(ctx context.Context, lines []string, p *annotate.Parser, workers int) ([]*annotate.Node, []*annotate.ParseError, error) {
	trees := make([]*annotate.Node, len(lines))
	failed := make([]*annotate.ParseError, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &LineError{Line: i, Text: line, Err: fmt.Errorf("panic: %v", r)}
				}
			}()

			root, err := p.ParseLine(i, line)
			var pe *annotate.ParseError
			switch {
			case err == nil:
				trees[i] = root
			case errors.As(err, &pe):
				failed[i] = pe
			default:
				return &LineError{Line: i, Text: line, Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var errs []*annotate.ParseError
	for _, pe := range failed {
		if pe != nil {
			errs = append(errs, pe)
		}
	}
	return trees, errs, nil
}

// File converts the annotated text file at path. When any line is malformed
// the returned Result lists every parse error and no output is written.
func File(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	lines, err := ReadLines(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	p := opts.Parser
	if p == nil {
		p = annotate.NewParser()
	}
	trees, errs, err := Lines(ctx, lines, p, opts.Workers)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("conversion aborted")
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(opts.OutDir, base+".xml")

	res := &Result{Path: path, Lines: len(lines), Errors: errs}
	if res.Failed() {
		log.Debug().Str("file", path).Int("errors", len(errs)).Msg("parsing failed")
		if !opts.DryRun {
			// a failed file must not leave the output of an earlier run behind
			if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("removing stale %s: %w", out, err)
			}
		}
		return res, nil
	}

	b := document.NewBuilder(base, opts.Roles)
	if opts.Editor != nil {
		b.Editor = opts.Editor
	}
	for _, root := range trees {
		b.Add(root)
	}
	res.Sentences = b.Sentences()

	var buf bytes.Buffer
	if err := b.Write(&buf); err != nil {
		return nil, fmt.Errorf("building %s: %w", path, err)
	}
	if opts.DryRun {
		log.Debug().Str("file", path).Int("sentences", res.Sentences).Msg("checked")
		return res, nil
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", opts.OutDir, err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", out, err)
	}
	res.Output = out

	log.Debug().Str("file", path).Str("output", out).Int("sentences", res.Sentences).Msg("converted")
	return res, nil
}
