// Package knowledge reads knowledge-base state for the dashboard: how many
// documents are indexed and when the last ingestion ran.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// storeDB defines the database interface needed by Store.
type storeDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store queries knowledge-base metadata from the database.
type Store struct {
	db     storeDB
	tracer trace.Tracer
}

// NewStore initializes a store backed by pgxpool.
func NewStore(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("knowledge: pgx pool required")
	}
	return newStore(pool)
}

// NewStoreWithDB allows injecting a mock database for testing.
func NewStoreWithDB(db storeDB) *Store {
	return newStore(db)
}

func newStore(db storeDB) *Store {
	return &Store{
		db:     db,
		tracer: otel.Tracer("sparky/knowledge-store"),
	}
}

// CountDocuments returns the number of indexed knowledge-base documents.
func (s *Store) CountDocuments(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "knowledge.count_documents")
	defer span.End()

	var count int64
	query := `SELECT COUNT(*) FROM documents`
	if err := s.db.QueryRow(ctx, query).Scan(&count); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("knowledge: count documents: %w", err)
	}
	return count, nil
}

// LastIngestion returns the most recent ingestion timestamp, or nil when the
// ingestion log is empty.
func (s *Store) LastIngestion(ctx context.Context) (*time.Time, error) {
	ctx, span := s.tracer.Start(ctx, "knowledge.last_ingestion")
	defer span.End()

	var updatedAt time.Time
	query := `SELECT updated_at FROM ingestion_log ORDER BY updated_at DESC LIMIT 1`
	if err := s.db.QueryRow(ctx, query).Scan(&updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("knowledge: last ingestion: %w", err)
	}
	return &updatedAt, nil
}
