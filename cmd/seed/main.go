// Dev utility: seeds a fresh database with sample conversations, documents,
// and an ingestion-log entry so the dashboard renders non-empty data.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ipic-ai/sparky-dashboard/internal/conversation"
)

type sample struct {
	daysAgo int
	history []conversation.Message
}

func ai(content string) conversation.Message {
	return conversation.Message{Type: conversation.MessageTypeAI, Data: conversation.MessageData{Content: content}}
}

func human(content string) conversation.Message {
	return conversation.Message{Type: conversation.MessageTypeHuman, Data: conversation.MessageData{Content: content}}
}

var samples = []sample{
	{daysAgo: 0, history: []conversation.Message{
		human("Hi, can I try the gym for free?"),
		ai("Of course! I've scheduled your 7-day free trial starting tomorrow."),
	}},
	{daysAgo: 0, history: []conversation.Message{
		human("I'd like to book a birthday party for my son."),
		ai("Sounds fun! I've sent these details to our party coordinators and they'll call you back."),
	}},
	{daysAgo: 1, history: []conversation.Message{
		human("My invoice looks wrong, can someone check?"),
		ai("I'm sorry about that. I've passed your request on to our team."),
	}},
	{daysAgo: 2, history: []conversation.Message{
		human("What time do you open on Sundays?"),
		ai("We're open from 9am to 8pm on Sundays."),
	}},
}

func main() {
	databaseURL := strings.TrimSpace(os.Getenv("SUPABASE_DB_URL"))
	if databaseURL == "" {
		log.Fatal("SUPABASE_DB_URL is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	now := time.Now().UTC()
	for _, s := range samples {
		history, err := json.Marshal(s.history)
		if err != nil {
			log.Fatalf("encode history: %v", err)
		}
		id := uuid.NewString()
		updatedAt := now.AddDate(0, 0, -s.daysAgo)
		_, err = pool.Exec(ctx, `
			INSERT INTO conversation_history (conversation_id, history, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (conversation_id) DO NOTHING
		`, id, history, updatedAt)
		if err != nil {
			log.Fatalf("insert conversation: %v", err)
		}
		fmt.Printf("seeded conversation %s\n", id)
	}

	for i := 1; i <= 3; i++ {
		_, err := pool.Exec(ctx, `
			INSERT INTO documents (content, metadata)
			VALUES ($1, $2)
		`, fmt.Sprintf("Sample knowledge document %d", i), []byte(`{"source":"seed"}`))
		if err != nil {
			log.Fatalf("insert document: %v", err)
		}
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO ingestion_log (source, document_count, updated_at)
		VALUES ('seed', 3, $1)
	`, now); err != nil {
		log.Fatalf("insert ingestion log: %v", err)
	}

	fmt.Println("seed complete")
}
