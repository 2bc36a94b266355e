// Package dashboard turns stored conversation histories into the metrics,
// activity chart, and table views the Sparky dashboard displays.
package dashboard

import (
	"context"
	"time"

	"github.com/ipic-ai/sparky-dashboard/internal/conversation"
	"github.com/ipic-ai/sparky-dashboard/internal/knowledge"
	"github.com/ipic-ai/sparky-dashboard/internal/observability/metrics"
)

// Provider supplies the three independent reads a dashboard render needs.
// Each read is idempotent and side-effect-free; there is no ordering
// dependency between them.
type Provider interface {
	Conversations(ctx context.Context) ([]conversation.Conversation, error)
	DocumentCount(ctx context.Context) (int64, error)
	LastIngestion(ctx context.Context) (*time.Time, error)
}

// StoreProvider reads directly from the Postgres stores.
type StoreProvider struct {
	conversations *conversation.Store
	knowledge     *knowledge.Store
	metrics       *metrics.DashboardMetrics
}

// NewStoreProvider wires the stores behind the Provider interface.
func NewStoreProvider(convStore *conversation.Store, kbStore *knowledge.Store, m *metrics.DashboardMetrics) *StoreProvider {
	if convStore == nil || kbStore == nil {
		panic("dashboard: conversation and knowledge stores required")
	}
	return &StoreProvider{
		conversations: convStore,
		knowledge:     kbStore,
		metrics:       m,
	}
}

func (p *StoreProvider) Conversations(ctx context.Context) ([]conversation.Conversation, error) {
	start := time.Now()
	convs, err := p.conversations.ListConversations(ctx)
	p.metrics.ObserveFetch("conversations", fetchStatus(err), time.Since(start).Seconds())
	return convs, err
}

func (p *StoreProvider) DocumentCount(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := p.knowledge.CountDocuments(ctx)
	p.metrics.ObserveFetch("documents", fetchStatus(err), time.Since(start).Seconds())
	return count, err
}

func (p *StoreProvider) LastIngestion(ctx context.Context) (*time.Time, error) {
	start := time.Now()
	ts, err := p.knowledge.LastIngestion(ctx)
	p.metrics.ObserveFetch("ingestion_log", fetchStatus(err), time.Since(start).Seconds())
	return ts, err
}

func fetchStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
