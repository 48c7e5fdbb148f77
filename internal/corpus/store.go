package corpus

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mvp-joe/py2dataset/internal/dataset"
)

// Store persists combined corpora to SQLite so successive runs over the
// same tree can be compared or served without re-reading the JSON files.
type Store struct {
	db *sql.DB
}

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    source_root TEXT NOT NULL,
    record_count INTEGER NOT NULL,
    created_at TEXT NOT NULL
)`

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS instruct_records (
    run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    instruction TEXT NOT NULL,
    input TEXT NOT NULL,
    output TEXT NOT NULL,
    PRIMARY KEY (run_id, seq)
)`

// OpenStore opens or creates the corpus database at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Foreign keys must be enabled per connection.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	for _, ddl := range []string{createRunsTable, createRecordsTable} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// SaveCorpus writes a run header and its instruct records atomically.
// Sequence numbers preserve corpus order. The corpus must carry a run ID.
func (s *Store) SaveCorpus(c *Corpus, sourceRoot string) error {
	if c.RunID == "" {
		return fmt.Errorf("corpus has no run id")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	_, err = sq.Insert("runs").
		Columns("run_id", "source_root", "record_count", "created_at").
		Values(c.RunID, sourceRoot, len(c.Records), time.Now().UTC().Format(time.RFC3339)).
		RunWith(tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", c.RunID, err)
	}

	for seq, rec := range c.Records {
		_, err := sq.Insert("instruct_records").
			Columns("run_id", "seq", "instruction", "input", "output").
			Values(c.RunID, seq, rec.Instruction, rec.Input, rec.Output).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("failed to insert record %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadRecords reads back a run's instruct records in corpus order.
func (s *Store) LoadRecords(runID string) ([]dataset.InstructRecord, error) {
	rows, err := sq.Select("instruction", "input", "output").
		From("instruct_records").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("seq").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []dataset.InstructRecord
	for rows.Next() {
		var rec dataset.InstructRecord
		if err := rows.Scan(&rec.Instruction, &rec.Input, &rec.Output); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
