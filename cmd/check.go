package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/ea/internal/annotate"
	"github.com/chriserin/ea/internal/config"
	"github.com/chriserin/ea/internal/convert"
	"github.com/chriserin/ea/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate annotated essays without writing output",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.Context(), cmd.OutOrStdout(), cfg, args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func convertOptions(c *config.Config) convert.Options {
	p := annotate.NewParser()
	p.MaxDepth = c.MaxDepth
	return convert.Options{
		OutDir:  c.OutDir,
		Workers: c.Workers,
		Parser:  p,
		Roles:   c.RoleSet(),
	}
}

func RunCheck(ctx context.Context, w io.Writer, c *config.Config, paths []string) error {
	if len(paths) == 0 {
		var err error
		if paths, err = glob(c.Dir, "*.txt"); err != nil {
			return err
		}
	}

	opts := convertOptions(c)
	opts.DryRun = true

	failed := 0
	for _, path := range paths {
		res, err := convert.File(ctx, path, opts)
		if err != nil {
			return err
		}
		if res.Failed() {
			failed++
			ui.FailLine(w, path, len(res.Errors))
			ui.Diagnostics(w, path, res.Errors)
			continue
		}
		ui.OkLine(w, path, res.Sentences)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}
