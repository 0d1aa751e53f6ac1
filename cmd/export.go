package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/ea/internal/config"
	"github.com/chriserin/ea/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export converted documents",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write all annotations to annotations.csv",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunExportCSV(cmd.OutOrStdout(), cfg)
	},
}

var exportTextCmd = &cobra.Command{
	Use:   "txt",
	Short: "Write original and corrected plain text per document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunExportText(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	exportCmd.AddCommand(exportCSVCmd, exportTextCmd)
	rootCmd.AddCommand(exportCmd)
}

func loadDocuments(c *config.Config) ([]string, []*export.Document, error) {
	paths, err := glob(c.OutDir, "*.xml")
	if err != nil {
		return nil, nil, err
	}
	var docs []*export.Document
	for _, path := range paths {
		doc, err := export.Load(path)
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, doc)
	}
	return paths, docs, nil
}

func RunExportCSV(w io.Writer, c *config.Config) error {
	_, docs, err := loadDocuments(c)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents in %s, run `ea convert` first", c.OutDir)
	}

	out := filepath.Join(c.OutDir, "annotations.csv")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := export.CSV(f, docs, c.Delimiter()); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(w, "wrote %s (%d documents)\n", out, len(docs))
	return nil
}

func RunExportText(w io.Writer, c *config.Config) error {
	paths, docs, err := loadDocuments(c)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents in %s, run `ea convert` first", c.OutDir)
	}

	for i, doc := range docs {
		base := strings.TrimSuffix(filepath.Base(paths[i]), ".xml")
		origPath, corrPath, err := export.Text(doc, c.OutDir, base)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\nwrote %s\n", origPath, corrPath)
	}
	return nil
}
