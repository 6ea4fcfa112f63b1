package datarecording

import (
	"database/sql"
	"fmt"
)

// SQLiteReader reads tables back from a recorded database. It is mainly used
// by tests and post-run analysis.
type SQLiteReader struct {
	*sql.DB
}

// NewSQLiteReader opens the database at the given path (without the .sqlite3
// suffix) for reading.
func NewSQLiteReader(path string) *SQLiteReader {
	db, err := sql.Open("sqlite3", path+".sqlite3")
	if err != nil {
		panic(err)
	}

	return &SQLiteReader{DB: db}
}

// CountRows returns the number of rows in a table.
func (r *SQLiteReader) CountRows(tableName string) (int, error) {
	var count int
	err := r.QueryRow("SELECT COUNT(*) FROM " + tableName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count rows of %s: %w", tableName, err)
	}

	return count, nil
}

// ListTables returns the names of all tables in the database.
func (r *SQLiteReader) ListTables() ([]string, error) {
	rows, err := r.Query(
		"SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	return tables, rows.Err()
}
