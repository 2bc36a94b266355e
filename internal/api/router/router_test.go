package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ipic-ai/sparky-dashboard/internal/conversation"
	"github.com/ipic-ai/sparky-dashboard/internal/dashboard"
	"github.com/ipic-ai/sparky-dashboard/pkg/logging"
)

type fixedProvider struct{}

func (fixedProvider) Conversations(context.Context) ([]conversation.Conversation, error) {
	return []conversation.Conversation{
		{
			ConversationID: "c1",
			History: []conversation.Message{
				{Type: conversation.MessageTypeAI, Data: conversation.MessageData{Content: "I've scheduled your 7-day free trial"}},
			},
			UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}, nil
}

func (fixedProvider) DocumentCount(context.Context) (int64, error) { return 4, nil }

func (fixedProvider) LastIngestion(context.Context) (*time.Time, error) { return nil, nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.Default()
	svc := dashboard.NewService(fixedProvider{}, conversation.NewClassifier(), nil, logger)
	reg := prometheus.NewRegistry()
	return New(&Config{
		Logger:             logger,
		Dashboard:          dashboard.NewHandler(svc, logger),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"*"},
	})
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter(t)

	paths := []string{
		"/health",
		"/dashboard/",
		"/dashboard/leads",
		"/dashboard/escalations",
		"/dashboard/recent",
		"/metrics",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d, want 200: %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
