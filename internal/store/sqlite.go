// Package store is the SQLite implementation of content.Repo.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/go-lab-site/content"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "modernc.org/sqlite"
)

// timeLayout has fixed width so text ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var _ content.Repo = (*SQLiteStore)(nil)

// SQLiteStore implements content.Repo using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// Each connection to ":memory:" is its own database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma busy_timeout: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: log.With().Str("component", "store").Logger(),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug().Str("op", "migrate").Msg("sql")
	return migrate(ctx, s.db)
}

// Ping checks the database is reachable
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ExecStatements runs statements in a single transaction, used to apply
// generated fixture SQL.
func (s *SQLiteStore) ExecStatements(ctx context.Context, statements []string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, stmt := range statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Info().Int("statements", len(statements)).Msg("script applied")
	return nil
}

func (s *SQLiteStore) Insert(ctx context.Context, rec content.Record) error {
	s.logger.Debug().Str("op", "insert").Str("kind", string(rec.Kind)).Str("id", rec.ID).Msg("sql")

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO content (kind, id, position, published, payload, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(rec.Kind), rec.ID, rec.Position, boolToInt(rec.Published), string(rec.Payload),
		formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s %s: %w", rec.Kind, rec.ID, content.ErrConflict)
	}
	return err
}

func (s *SQLiteStore) Update(ctx context.Context, rec content.Record) error {
	s.logger.Debug().Str("op", "update").Str("kind", string(rec.Kind)).Str("id", rec.ID).Msg("sql")

	res, err := s.db.ExecContext(ctx,
		`UPDATE content SET position = ?, published = ?, payload = ?, created_at = ?, updated_at = ?
		 WHERE kind = ? AND id = ?`,
		rec.Position, boolToInt(rec.Published), string(rec.Payload),
		formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt),
		string(rec.Kind), rec.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, rec.Kind, rec.ID)
}

func (s *SQLiteStore) Get(ctx context.Context, kind content.Kind, id string) (content.Record, error) {
	s.logger.Debug().Str("op", "select").Str("kind", string(kind)).Str("id", id).Msg("sql")

	row := s.db.QueryRowContext(ctx,
		`SELECT kind, id, position, published, payload, created_at, updated_at
		 FROM content WHERE kind = ? AND id = ?`, string(kind), id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return content.Record{}, fmt.Errorf("%s %s: %w", kind, id, content.ErrNotFound)
	}
	return rec, err
}

func (s *SQLiteStore) List(ctx context.Context, kind content.Kind, filter content.ListFilter) ([]content.Record, error) {
	s.logger.Debug().Str("op", "select").Str("kind", string(kind)).Msg("sql")

	query := `SELECT kind, id, position, published, payload, created_at, updated_at
		FROM content WHERE kind = ?`
	args := []any{string(kind)}
	if filter.PublishedOnly {
		query += ` AND published = 1`
	}
	query += ` ORDER BY position ASC, created_at DESC, id ASC`
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]content.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, kind content.Kind, id string) error {
	s.logger.Debug().Str("op", "delete").Str("kind", string(kind)).Str("id", id).Msg("sql")

	res, err := s.db.ExecContext(ctx, `DELETE FROM content WHERE kind = ? AND id = ?`, string(kind), id)
	if err != nil {
		return err
	}
	return requireAffected(res, kind, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (content.Record, error) {
	var rec content.Record
	var kind, payload, createdAt, updatedAt string
	var published int
	if err := row.Scan(&kind, &rec.ID, &rec.Position, &published, &payload, &createdAt, &updatedAt); err != nil {
		return content.Record{}, err
	}
	rec.Kind = content.Kind(kind)
	rec.Published = published != 0
	rec.Payload = []byte(payload)

	var err error
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return content.Record{}, fmt.Errorf("parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return content.Record{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return rec, nil
}

func requireAffected(res sql.Result, kind content.Kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, content.ErrNotFound)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime also accepts RFC 3339 so hand-written fixture SQL loads
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
