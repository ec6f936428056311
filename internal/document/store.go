package document

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on objects.type
const currentSchemaVersion = 1

// Store provides durable storage for one document's object instances.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// OpenStore creates or opens a SQLite database at the given path.
// Applies required pragmas and storage-schema migrations automatically.
// This function is idempotent - safe to call multiple times.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	// to avoid SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// objectRow is one persisted instance as stored.
type objectRow struct {
	ID       string
	Type     string
	Position int
	State    string
}

// WriteObject inserts or replaces one instance row.
func (s *Store) WriteObject(ctx context.Context, row objectRow) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO objects (id, type, position, state)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			position = excluded.position,
			state = excluded.state
	`, row.ID, row.Type, row.Position, row.State)
	if err != nil {
		return fmt.Errorf("write object %s: %w", row.ID, err)
	}
	return nil
}

// DeleteObject removes one instance row. Missing rows are not an error.
func (s *Store) DeleteObject(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM objects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete object %s: %w", id, err)
	}
	return nil
}

// ReadObjects returns every instance row ordered by position.
func (s *Store) ReadObjects(ctx context.Context) ([]objectRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, position, state
		FROM objects
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("read objects: %w", err)
	}
	defer rows.Close()

	var out []objectRow
	for rows.Next() {
		var row objectRow
		if err := rows.Scan(&row.ID, &row.Type, &row.Position, &row.State); err != nil {
			return nil, fmt.Errorf("scan object row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read objects: %w", err)
	}
	return out, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs storage-schema
// migrations. This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if err := runStorageMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// runStorageMigrations applies incremental storage-schema migrations based
// on user_version. These are migrations of the container file layout; the
// attribute-level migration engine in the migrate package is a separate
// concern.
func runStorageMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
		version = 1
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the type index for databases created before v1. New
// databases get it from schema.sql.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_objects_type
		ON objects(type)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}
