package storage

import (
	"database/sql"
	"errors"
)

// SQLStore keeps slots in a two-column table. REPLACE INTO is understood by
// both MySQL (production) and SQLite (tests).
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Get(key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRow(
		"SELECT v FROM slots WHERE k = ?",
		key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLStore) Set(key, value string) error {
	_, err := s.DB.Exec(
		"REPLACE INTO slots (k, v) VALUES (?, ?)",
		key, value,
	)
	return err
}

func (s *SQLStore) Remove(key string) error {
	_, err := s.DB.Exec("DELETE FROM slots WHERE k = ?", key)
	return err
}
