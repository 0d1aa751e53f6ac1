package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/ea/internal/config"
)

var errorsCmd = &cobra.Command{
	Use:   "errors <file>",
	Short: "Show the parse errors of an essay's latest conversion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunErrors(cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	rootCmd.AddCommand(errorsCmd)
}

func RunErrors(w io.Writer, c *config.Config, file string) error {
	// Bare names refer to files in the essay directory
	if !strings.ContainsRune(file, filepath.Separator) {
		file = filepath.Join(c.Dir, file)
	}

	sqlDB, err := openDB(c)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var conversionID int64
	var status string
	err = sqlDB.QueryRow(`
		SELECT c.id, c.status
		FROM conversions c
		JOIN files f ON c.file_id = f.id
		WHERE f.file_path = ?
		ORDER BY c.id DESC LIMIT 1
	`, file).Scan(&conversionID, &status)
	if err != nil {
		return fmt.Errorf("%s is not tracked", file)
	}

	rows, err := sqlDB.Query(`SELECT message FROM parse_errors WHERE conversion_id = ? ORDER BY line_number, id`, conversionID)
	if err != nil {
		return fmt.Errorf("querying parse errors: %w", err)
	}
	defer rows.Close()

	var found bool
	for rows.Next() {
		var message string
		if err := rows.Scan(&message); err != nil {
			return fmt.Errorf("scanning parse error: %w", err)
		}
		fmt.Fprintln(w, message)
		found = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !found {
		fmt.Fprintf(w, "no errors for %s (%s)\n", file, status)
	}
	return nil
}
