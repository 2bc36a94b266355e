package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ipic-ai/sparky-dashboard/pkg/logging"
)

// storeDB defines the database interface needed by Store.
type storeDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store reads conversation histories from the hosted database.
type Store struct {
	db     storeDB
	logger *logging.Logger
	tracer trace.Tracer
}

// NewStore initializes a store backed by pgxpool.
func NewStore(pool *pgxpool.Pool, logger *logging.Logger) *Store {
	if pool == nil {
		panic("conversation: pgx pool required")
	}
	return newStore(pool, logger)
}

// NewStoreWithDB allows injecting a mock database for testing.
func NewStoreWithDB(db storeDB, logger *logging.Logger) *Store {
	return newStore(db, logger)
}

func newStore(db storeDB, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		db:     db,
		logger: logger,
		tracer: otel.Tracer("sparky/conversation-store"),
	}
}

// ListConversations fetches all stored conversations with their full message
// histories. The store imposes no ordering; consumers sort as needed.
//
// A row whose history column fails to decode is kept with an empty history
// and a warning log: its id and updated_at are still valid for counting, and
// one bad record must not fail the batch.
func (s *Store) ListConversations(ctx context.Context) ([]Conversation, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.list")
	defer span.End()

	query := `SELECT conversation_id, history, updated_at FROM conversation_history`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: query histories: %w", err)
	}
	defer rows.Close()

	var convs []Conversation
	for rows.Next() {
		var (
			id        string
			rawHist   []byte
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &rawHist, &updatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("conversation: scan history row: %w", err)
		}

		var history []Message
		if len(rawHist) > 0 {
			if err := json.Unmarshal(rawHist, &history); err != nil {
				s.logger.Warn("skipping undecodable conversation history",
					"conversation_id", id,
					"error", err,
				)
				history = nil
			}
		}

		convs = append(convs, Conversation{
			ConversationID: id,
			History:        history,
			UpdatedAt:      updatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: iterate histories: %w", err)
	}

	span.SetAttributes(attribute.Int("conversation.count", len(convs)))
	return convs, nil
}
