package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chriserin/ea/internal/config"
	"github.com/chriserin/ea/internal/convert"
	"github.com/chriserin/ea/internal/ui"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every annotated essay to XML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunConvert(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func RunConvert(ctx context.Context, w io.Writer, c *config.Config) error {
	sqlDB, err := openDB(c)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	paths, err := glob(c.Dir, "*.txt")
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log.Debug().Str("run", runID).Int("files", len(paths)).Msg("converting")

	opts := convertOptions(c)
	converted, failed := 0, 0
	for _, path := range paths {
		res, err := convert.File(ctx, path, opts)
		if err != nil {
			return err
		}
		if err := recordConversion(sqlDB, runID, res); err != nil {
			return fmt.Errorf("recording %s: %w", path, err)
		}

		if res.Failed() {
			failed++
			ui.FailLine(w, path, len(res.Errors))
			ui.Diagnostics(w, path, res.Errors)
			continue
		}
		converted++
		ui.OkLine(w, path, res.Sentences)
	}

	ui.SummaryLine(w, converted, failed)
	return nil
}

func recordConversion(sqlDB *sql.DB, runID string, res *convert.Result) error {
	tx, err := sqlDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO files (file_path) VALUES (?) ON CONFLICT(file_path) DO NOTHING`, res.Path); err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}
	var fileID int64
	if err := tx.QueryRow(`SELECT id FROM files WHERE file_path = ?`, res.Path).Scan(&fileID); err != nil {
		return fmt.Errorf("querying file: %w", err)
	}

	status := "converted"
	if res.Failed() {
		status = "failed"
	}
	r, err := tx.Exec(`INSERT INTO conversions (run_id, file_id, status, sentences) VALUES (?, ?, ?, ?)`,
		runID, fileID, status, res.Sentences)
	if err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}
	conversionID, err := r.LastInsertId()
	if err != nil {
		return err
	}

	for _, pe := range res.Errors {
		_, err := tx.Exec(`INSERT INTO parse_errors (conversion_id, line_number, char_offset, kind, message) VALUES (?, ?, ?, ?, ?)`,
			conversionID, pe.Line, pe.Offset, pe.Kind.String(), pe.Diagnostic())
		if err != nil {
			return fmt.Errorf("inserting parse error: %w", err)
		}
	}

	return tx.Commit()
}
