package mysql

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
)

const slotSchema = `
CREATE TABLE IF NOT EXISTS slots (
	k VARCHAR(64) PRIMARY KEY,
	v TEXT NOT NULL
)`

// LoadDB opens the MySQL database that backs the durable session slot and
// bootstraps its schema. Errors are returned, not fatal: the caller falls
// back to in-memory persistence when the database is unavailable.
func LoadDB() (*sql.DB, error) {
	db, err := sql.Open("mysql", os.Getenv("MYSQL_DSN"))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to mysql: %w", err)
	}
	if _, err := db.Exec(slotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return db, nil
}
