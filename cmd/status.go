package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/ea/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many essays converted or failed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer, c *config.Config) error {
	sqlDB, err := openDB(c)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var count int
	err = sqlDB.QueryRow(`SELECT COUNT(*) FROM files`).Scan(&count)
	if err != nil {
		return fmt.Errorf("counting files: %w", err)
	}

	fmt.Fprintf(w, "Files: %d\n", count)

	if count == 0 {
		return nil
	}

	rows, err := sqlDB.Query(`
		SELECT c.status, COUNT(*) AS cnt
		FROM conversions c
		WHERE c.id = (SELECT MAX(id) FROM conversions WHERE file_id = c.file_id)
		GROUP BY c.status
		ORDER BY CASE WHEN c.status = 'converted' THEN 0 ELSE 1 END
	`)
	if err != nil {
		return fmt.Errorf("querying status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var cnt int
		if err := rows.Scan(&status, &cnt); err != nil {
			return fmt.Errorf("scanning status row: %w", err)
		}
		fmt.Fprintf(w, "  %s: %d\n", status, cnt)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	var errCount int
	err = sqlDB.QueryRow(`
		SELECT COUNT(*) FROM parse_errors
		WHERE conversion_id IN (SELECT MAX(id) FROM conversions GROUP BY file_id)
	`).Scan(&errCount)
	if err != nil {
		return fmt.Errorf("counting parse errors: %w", err)
	}
	if errCount > 0 {
		fmt.Fprintf(w, "Open errors: %d\n", errCount)
	}

	return nil
}
