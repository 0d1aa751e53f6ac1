package db

import (
	"database/sql"
	"net/url"

	_ "modernc.org/sqlite"
)

// Open opens the sqlite database at path in WAL mode and applies pending
// migrations. Pragmas are passed in the DSN so every pooled connection
// gets them.
func Open(path string) (*sql.DB, error) {
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")

	sqlDB, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	if err := Migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}
