package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"wikigear/internal"
	"wikigear/internal/util"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS items (
  category TEXT NOT NULL,
  url TEXT NOT NULL,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  level TEXT,
  status TEXT,
  tradeable INTEGER NOT NULL DEFAULT 0,
  noAuction INTEGER NOT NULL DEFAULT 0,
  bonusCount INTEGER NOT NULL DEFAULT 0,
  recordJson TEXT NOT NULL,
  lastSeenAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(category, position)
);
CREATE INDEX IF NOT EXISTS idx_items_url ON items(category, url);
CREATE INDEX IF NOT EXISTS idx_items_name ON items(category, name);
CREATE INDEX IF NOT EXISTS idx_items_status ON items(category, status);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  command TEXT NOT NULL,
  category TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceCategoryItems swaps the stored records of one category for the
// given set, keeping their order. Rows are keyed by position, so records
// sharing a url (or with none) are all kept.
func (d *DB) ReplaceCategoryItems(category internal.Category, records []internal.FinalRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM items WHERE category = ?`, string(category)); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO items (category, url, position, name, level, status, tradeable, noAuction, bonusCount, recordJson, lastSeenAt)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		blob, err := util.MarshalUnescaped(r)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(
			string(category), r.URL, i, r.Name, r.Level, r.Status,
			r.Tradeable, r.NoAuction, len(r.Bonuses), string(blob),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListItems(category internal.Category) ([]internal.ItemRow, error) {
	rows, err := d.conn.Query(`
SELECT category, url, name, level, status, tradeable, noAuction, bonusCount, recordJson
FROM items WHERE category = ? ORDER BY position ASC
`, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ItemRow
	for rows.Next() {
		var row internal.ItemRow
		var level, status sql.NullString
		if err := rows.Scan(
			&row.Category, &row.URL, &row.Name, &level, &status,
			&row.Tradeable, &row.NoAuction, &row.BonusCount, &row.RecordJSON,
		); err != nil {
			return nil, err
		}
		row.Level = level.String
		row.Status = status.String
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListItemJSON returns the stored records exactly as they were written.
func (d *DB) ListItemJSON(category internal.Category) ([]json.RawMessage, error) {
	rows, err := d.conn.Query(`SELECT recordJson FROM items WHERE category = ? ORDER BY position ASC`, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []json.RawMessage{}
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(blob))
	}
	return out, rows.Err()
}

func (d *DB) CategoryCounts() ([]internal.CategoryCount, error) {
	rows, err := d.conn.Query(`SELECT category, COUNT(*) FROM items GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.CategoryCount{}
	for rows.Next() {
		var c internal.CategoryCount
		if err := rows.Scan(&c.Category, &c.Items); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (d *DB) StatusCounts() ([]internal.StatusCount, error) {
	rows, err := d.conn.Query(`
SELECT category, COALESCE(status, ''), COUNT(*)
FROM items GROUP BY category, status ORDER BY category, status
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.StatusCount{}
	for rows.Next() {
		var c internal.StatusCount
		if err := rows.Scan(&c.Category, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(traceID, command string, category internal.Category, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(
		`INSERT INTO runs (traceId, command, category, timingsJson, countsJson) VALUES (?, ?, ?, ?, ?)`,
		traceID, command, string(category), string(timingsJSON), string(countsJSON),
	)
	return err
}

func (d *DB) CountRuns(command string) (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM runs WHERE command = ?`, command).Scan(&n)
	return n, err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
