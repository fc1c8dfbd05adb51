// Package sqlite is the primary structured backend: an embedded on-device
// database storing whole-collection snapshots as JSON document rows.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	_ "github.com/mattn/go-sqlite3"

	"stokpano/internal/infrastructure/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    position   INTEGER NOT NULL,
    body       TEXT NOT NULL,
    PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection, position);
`

// Store implements storage.Backend over a sqlite database file.
type Store struct {
	db *sql.DB
}

// Open creates the data directory if needed, opens (or creates) the database
// and applies the schema.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "./data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "stokpano.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// builder returns a squirrel builder with sqlite's ? placeholders.
func (s *Store) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

type documentRow struct {
	ID   string `db:"id"`
	Body []byte `db:"body"`
}

// Load returns every document of the collection in saved order.
func (s *Store) Load(ctx context.Context, collection string) ([]storage.Document, error) {
	q := s.builder().
		Select("id", "body").
		From("documents").
		Where(squirrel.Eq{"collection": collection}).
		OrderBy("position")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []documentRow
	if err := sqlscan.Select(ctx, s.db, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}

	docs := make([]storage.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, storage.Document{ID: r.ID, Body: r.Body})
	}
	return docs, nil
}

// Save replaces the collection with docs inside one transaction.
func (s *Store) Save(ctx context.Context, collection string, docs []storage.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	delSQL, delArgs, err := s.builder().
		Delete("documents").
		Where(squirrel.Eq{"collection": collection}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}

	if len(docs) > 0 {
		ins := s.builder().
			Insert("documents").
			Columns("collection", "id", "position", "body")
		for i, d := range docs {
			ins = ins.Values(collection, d.ID, i, []byte(d.Body))
		}
		insSQL, insArgs, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insSQL, insArgs...); err != nil {
			return fmt.Errorf("insert %s: %w", collection, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", collection, err)
	}
	return nil
}

// Wipe erases the named collections.
func (s *Store) Wipe(ctx context.Context, collections ...string) error {
	if len(collections) == 0 {
		return nil
	}
	sqlStr, args, err := s.builder().
		Delete("documents").
		Where(squirrel.Eq{"collection": collections}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build wipe: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("wipe: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
