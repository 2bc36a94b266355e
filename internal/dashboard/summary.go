package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ipic-ai/sparky-dashboard/internal/conversation"
	"github.com/ipic-ai/sparky-dashboard/internal/observability/metrics"
	"github.com/ipic-ai/sparky-dashboard/pkg/logging"
)

// recentLimit caps the recent-conversations view.
const recentLimit = 10

const (
	dateLayout  = "2006-01-02"
	tableLayout = "2006-01-02 15:04"
)

// ActivityPoint is one date bucket of the conversations-over-time chart.
// Dates with zero conversations are not represented.
type ActivityPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RecentRow is one entry of the recent-conversations view.
type RecentRow struct {
	ConversationID string   `json:"conversation_id"`
	LastUpdated    string   `json:"last_updated"`
	Transcript     []string `json:"transcript"`
}

// OutcomeRow is one entry of the leads or escalations table.
type OutcomeRow struct {
	ConversationID string `json:"conversation_id"`
	LastUpdated    string `json:"last_updated"`
	Details        string `json:"details"`
}

// Summary is everything one dashboard render displays.
type Summary struct {
	TotalConversations     int             `json:"total_conversations"`
	LeadsGenerated         int             `json:"leads_generated"`
	Escalations            int             `json:"escalations"`
	KnowledgeBaseDocuments int64           `json:"knowledge_base_documents"`
	LastIngestedAt         string          `json:"last_ingested_at,omitempty"`
	GeneratedAt            string          `json:"generated_at"`
	Activity               []ActivityPoint `json:"activity"`
	Recent                 []RecentRow     `json:"recent_conversations"`
	Leads                  []OutcomeRow    `json:"leads"`
	EscalationRows         []OutcomeRow    `json:"escalation_rows"`
}

// Service runs one dashboard render: three independent fetches and a single
// stateless classification fold over the result.
type Service struct {
	provider   Provider
	classifier *conversation.Classifier
	metrics    *metrics.DashboardMetrics
	logger     *logging.Logger
	now        func() time.Time
}

// NewService creates the render service.
func NewService(provider Provider, classifier *conversation.Classifier, m *metrics.DashboardMetrics, logger *logging.Logger) *Service {
	if provider == nil {
		panic("dashboard: provider required")
	}
	if classifier == nil {
		classifier = conversation.NewClassifier()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		provider:   provider,
		classifier: classifier,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// Render assembles a full summary. Any fetch error fails the whole render;
// there is no partial page.
func (s *Service) Render(ctx context.Context) (*Summary, error) {
	convs, err := s.provider.Conversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: fetch conversations: %w", err)
	}
	docCount, err := s.provider.DocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: fetch document count: %w", err)
	}
	lastIngested, err := s.provider.LastIngestion(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: fetch ingestion log: %w", err)
	}

	result := s.classifier.Classify(convs)
	s.metrics.ObserveClassification(string(conversation.OutcomeLead), len(result.Leads))
	s.metrics.ObserveClassification(string(conversation.OutcomeEscalation), len(result.Escalations))
	s.metrics.ObserveClassification("none", result.Total-len(result.Leads)-len(result.Escalations))

	summary := &Summary{
		TotalConversations:     result.Total,
		LeadsGenerated:         len(result.Leads),
		Escalations:            len(result.Escalations),
		KnowledgeBaseDocuments: docCount,
		GeneratedAt:            s.now().UTC().Format(time.RFC3339),
		Activity:               activityHistogram(convs),
		Recent:                 recentRows(convs),
		Leads:                  s.outcomeRows(result.Leads, s.classifier.LeadDetail, "lead"),
		EscalationRows:         s.outcomeRows(result.Escalations, s.classifier.EscalationDetail, "escalation"),
	}
	if lastIngested != nil {
		summary.LastIngestedAt = lastIngested.UTC().Format(tableLayout)
	}
	return summary, nil
}

// activityHistogram buckets conversations by the UTC calendar date of
// updated_at. Every conversation lands in exactly one bucket; the histogram
// is sparse and sorted ascending for charting.
func activityHistogram(convs []conversation.Conversation) []ActivityPoint {
	byDate := map[string]int{}
	for _, conv := range convs {
		byDate[conv.UpdatedAt.UTC().Format(dateLayout)]++
	}

	points := make([]ActivityPoint, 0, len(byDate))
	for date, count := range byDate {
		points = append(points, ActivityPoint{Date: date, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// recentRows returns the most recently updated conversations, newest first,
// capped at recentLimit.
func recentRows(convs []conversation.Conversation) []RecentRow {
	sorted := make([]conversation.Conversation, len(convs))
	copy(sorted, convs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}

	rows := make([]RecentRow, 0, len(sorted))
	for _, conv := range sorted {
		rows = append(rows, RecentRow{
			ConversationID: conv.ConversationID,
			LastUpdated:    conv.UpdatedAt.UTC().Format(tableLayout),
			Transcript:     conv.Transcript(),
		})
	}
	return rows
}

// outcomeRows renders the leads or escalations table. A conversation whose
// detail message cannot be re-located is an inconsistent classification; it
// is logged and omitted rather than shown with empty detail text.
func (s *Service) outcomeRows(convs []conversation.Conversation, detail func(conversation.Conversation) (string, error), outcome string) []OutcomeRow {
	rows := make([]OutcomeRow, 0, len(convs))
	for _, conv := range convs {
		text, err := detail(conv)
		if err != nil {
			s.logger.Error("inconsistent classification: detail message not found",
				"conversation_id", conv.ConversationID,
				"outcome", outcome,
				"error", err,
			)
			continue
		}
		rows = append(rows, OutcomeRow{
			ConversationID: conv.ConversationID,
			LastUpdated:    conv.UpdatedAt.UTC().Format(tableLayout),
			Details:        text,
		})
	}
	return rows
}
