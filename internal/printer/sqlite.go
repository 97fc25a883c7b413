package printer

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/scanbit/scanbit/internal/types"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS samples (
	id      INTEGER PRIMARY KEY,
	loglike REAL NOT NULL,
	status  TEXT NOT NULL,
	params  TEXT NOT NULL,
	unit    TEXT
)`

// SQLite stores samples in a single table of an SQLite database. Parameter
// values and unit coordinates are JSON encoded.
type SQLite struct {
	mu   sync.Mutex
	path string
	db   *sql.DB
	ins  *sql.Stmt
}

// OpenSQLite opens or creates the database at path. With truncate set the
// samples table is emptied.
func OpenSQLite(path string, truncate bool) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if truncate {
		if _, err := db.Exec("DELETE FROM samples"); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: truncate: %w", err)
		}
	}
	ins, err := db.Prepare("INSERT OR REPLACE INTO samples (id, loglike, status, params, unit) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: prepare: %w", err)
	}
	return &SQLite{path: path, db: db, ins: ins}, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	for _, stmt := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		sqliteSchema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", stmt, err)
		}
	}
	return db, nil
}

func (p *SQLite) Print(s types.Sample) error {
	params, err := json.Marshal(s.Params)
	if err != nil {
		return fmt.Errorf("failed to encode sample: %w", err)
	}
	var unit any
	if len(s.Unit) > 0 {
		b, err := json.Marshal(s.Unit)
		if err != nil {
			return fmt.Errorf("failed to encode sample: %w", err)
		}
		unit = string(b)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return fmt.Errorf("printer closed")
	}
	if _, err := p.ins.Exec(s.ID, s.LogLike, string(s.Status), string(params), unit); err != nil {
		return fmt.Errorf("failed to write sample: %w", err)
	}
	return nil
}

func (p *SQLite) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	p.ins.Close()
	err := p.db.Close()
	p.db = nil
	return err
}

func (p *SQLite) Path() string { return p.path }

// LoadSQLite reads every sample of a database written by SQLite, ordered
// by id.
func LoadSQLite(path string) ([]types.Sample, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT id, loglike, status, params, unit FROM samples ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("sqlite: query: %w", err)
	}
	defer rows.Close()

	var out []types.Sample
	for rows.Next() {
		var (
			s      types.Sample
			status string
			params string
			unit   sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.LogLike, &status, &params, &unit); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		s.Status = types.Status(status)
		if err := json.Unmarshal([]byte(params), &s.Params); err != nil {
			return nil, fmt.Errorf("sample %d: %w", s.ID, err)
		}
		if unit.Valid {
			if err := json.Unmarshal([]byte(unit.String), &s.Unit); err != nil {
				return nil, fmt.Errorf("sample %d: %w", s.ID, err)
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
