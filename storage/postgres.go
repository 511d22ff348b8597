package storage

import (
	"context"
	"errors"
	"fmt"

	"orca-backend/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage implements Storage interface on top of the documents table
type PostgresStorage struct {
	pool *pgxpool.Pool
	repo *repository.DocumentRepository
}

// NewPostgresStorage connects to Postgres and makes sure the documents table exists
func NewPostgresStorage(ctx context.Context, connString string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	repo := repository.NewDocumentRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &PostgresStorage{pool: pool, repo: repo}, nil
}

func (s *PostgresStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return data, nil
}

func (s *PostgresStorage) Put(ctx context.Context, key string, data []byte) error {
	if err := s.repo.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *PostgresStorage) Close() error {
	s.pool.Close()
	return nil
}
