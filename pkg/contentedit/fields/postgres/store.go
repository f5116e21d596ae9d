// Package postgres provides a field definition source backed by PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/content-editor/pkg/contentedit"
)

// Schema creates the tables the store reads. Fields are stored one row each,
// ordered by position within their content type.
const Schema = `
CREATE TABLE IF NOT EXISTS content_types (
	name       TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS content_type_fields (
	content_type TEXT    NOT NULL REFERENCES content_types(name) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	name         TEXT    NOT NULL,
	type         TEXT    NOT NULL DEFAULT '',
	label        TEXT    NOT NULL DEFAULT '',
	required     BOOLEAN NOT NULL DEFAULT FALSE,
	help_text    TEXT    NOT NULL DEFAULT '',
	options      TEXT[],
	PRIMARY KEY (content_type, name)
);
`

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Begin(context.Context) (pgx.Tx, error)
}

// Store implements contentedit.FieldSource using PostgreSQL
type Store struct {
	db DBTX
}

// New creates a new PostgreSQL store
func New(db DBTX) *Store {
	return &Store{db: db}
}

// NewWithPool creates a new PostgreSQL store with connection pool
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// Migrate creates the store's tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return s.handlePostgresError("migrate", err)
	}
	return nil
}

// Error handling helper
func (s *Store) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate field name in %s", operation)
		case "23503": // foreign_key_violation
			return contentedit.ErrContentTypeNotFound
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return contentedit.ErrContentTypeNotFound
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

// FieldDefinitions returns the fields of contentType in display order.
func (s *Store) FieldDefinitions(ctx context.Context, contentType string) ([]contentedit.FieldDefinition, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM content_types WHERE name = $1)`, contentType).Scan(&exists)
	if err != nil {
		return nil, s.handlePostgresError("get content type", err)
	}
	if !exists {
		return nil, contentedit.ErrContentTypeNotFound
	}

	query := `
		SELECT name, type, label, required, help_text, options
		FROM content_type_fields
		WHERE content_type = $1
		ORDER BY position, name`

	rows, err := s.db.Query(ctx, query, contentType)
	if err != nil {
		return nil, s.handlePostgresError("list fields", err)
	}
	defer rows.Close()

	defs := []contentedit.FieldDefinition{}
	for rows.Next() {
		var d contentedit.FieldDefinition
		if err := rows.Scan(&d.Name, &d.Type, &d.Label, &d.Required, &d.HelpText, &d.Options); err != nil {
			return nil, s.handlePostgresError("scan field", err)
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, s.handlePostgresError("list fields", err)
	}
	return defs, nil
}

// Put replaces the fields of contentType in one transaction, creating the
// content type when needed.
func (s *Store) Put(ctx context.Context, contentType string, defs []contentedit.FieldDefinition) error {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO content_types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, contentType); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM content_type_fields WHERE content_type = $1`, contentType); err != nil {
			return err
		}
		for i, d := range defs {
			_, err := tx.Exec(ctx, `
				INSERT INTO content_type_fields (
					content_type, position, name, type, label, required, help_text, options
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				contentType, i, d.Name, d.Type, d.Label, d.Required, d.HelpText, d.Options)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.handlePostgresError("put fields", err)
	}
	return nil
}

// Delete removes contentType and its fields.
func (s *Store) Delete(ctx context.Context, contentType string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM content_types WHERE name = $1`, contentType)
	if err != nil {
		return s.handlePostgresError("delete content type", err)
	}
	if tag.RowsAffected() == 0 {
		return contentedit.ErrContentTypeNotFound
	}
	return nil
}

// ContentTypes lists the known content types in name order.
func (s *Store) ContentTypes(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT name FROM content_types ORDER BY name`)
	if err != nil {
		return nil, s.handlePostgresError("list content types", err)
	}
	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, s.handlePostgresError("list content types", err)
	}
	return types, nil
}
