package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDocumentNotFound is returned when no row exists for a key
var ErrDocumentNotFound = errors.New("document not found")

// DocumentsTableSchema creates the key/value table backing persisted documents
const DocumentsTableSchema = `
CREATE TABLE IF NOT EXISTS documents (
    key TEXT PRIMARY KEY,
    value JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DocumentRepository handles database operations for persisted documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// EnsureSchema creates the documents table if it is missing
func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, DocumentsTableSchema)
	return err
}

// Get retrieves the raw JSON stored under key
func (r *DocumentRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := `SELECT value::text FROM documents WHERE key = $1`

	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	return []byte(value), nil
}

// Put replaces the whole document stored under key
func (r *DocumentRepository) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO documents (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()`

	_, err := r.db.Exec(ctx, query, key, string(data))
	return err
}

// Delete deletes a document
func (r *DocumentRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM documents WHERE key = $1`
	_, err := r.db.Exec(ctx, query, key)
	return err
}
