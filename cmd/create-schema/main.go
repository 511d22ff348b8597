package main

import (
	"context"
	"flag"

	"github.com/jackc/pgx/v5/pgxpool"

	"orca-backend/config"
	"orca-backend/logger"
	"orca-backend/repository"
)

func main() {
	reset := flag.Bool("reset", false, "drop the documents table before creating it")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Storage.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if *reset {
		// Development only: wipes every persisted document
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS documents"); err != nil {
			log.Fatal("failed to drop table", "error", err)
		}
		log.Info("✓ dropped existing documents table")
	}

	if err := repository.NewDocumentRepository(pool).EnsureSchema(ctx); err != nil {
		log.Fatal("failed to create documents table", "error", err)
	}
	log.Info("✓ created documents table")

	indexes := []struct {
		name string
		sql  string
	}{
		{
			name: "Recently updated documents",
			sql:  "CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents(updated_at DESC);",
		},
		{
			name: "Key prefix lookups",
			sql:  "CREATE INDEX IF NOT EXISTS idx_documents_key_prefix ON documents(key text_pattern_ops);",
		},
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx.sql); err != nil {
			log.Warn("failed to create index", "index", idx.name, "error", err)
			continue
		}
		log.Info("✓ created index", "index", idx.name)
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		log.Fatal("failed to verify documents table", "error", err)
	}
	log.Info("schema ready", "documents", count)
}
