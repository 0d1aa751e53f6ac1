package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/chriserin/ea/internal/config"
	"github.com/chriserin/ea/internal/ui"
)

var statusFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked essays with their latest conversion",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), cfg, statusFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status (converted, failed)")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	path   string
	status string
	errors int
	when   time.Time
}

func RunList(w io.Writer, c *config.Config, statusFilter string) error {
	sqlDB, err := openDB(c)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT f.file_path, c.status,
			(SELECT COUNT(*) FROM parse_errors WHERE conversion_id = c.id) AS errors,
			CAST(strftime('%s', c.converted_at) AS INTEGER) AS converted_at
		FROM files f
		JOIN conversions c ON c.id = (SELECT MAX(id) FROM conversions WHERE file_id = f.id)
		ORDER BY f.file_path
	`)
	if err != nil {
		return fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var unix int64
		if err := rows.Scan(&r.path, &r.status, &r.errors, &unix); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		r.when = time.Unix(unix, 0)

		if statusFilter != "" && r.status != statusFilter {
			continue
		}

		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	pathWidth := 0
	for _, r := range results {
		pathWidth = max(pathWidth, len(r.path))
	}

	for _, r := range results {
		ui.ListRow(w, r.path, r.status, r.errors, humanize.Time(r.when), pathWidth)
	}

	return nil
}
