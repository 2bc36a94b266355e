package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/ipic-ai/sparky-dashboard/pkg/logging"
)

// Handler serves dashboard JSON to the presentation layer.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the dashboard HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("dashboard: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// GetDashboard returns the full summary: the four key metrics, the activity
// chart, and all three table views.
// GET /dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.render(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, summary)
}

// GetLeads returns the leads table.
// GET /dashboard/leads
func (h *Handler) GetLeads(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.render(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, map[string]any{
		"leads":        summary.Leads,
		"generated_at": summary.GeneratedAt,
	})
}

// GetEscalations returns the escalations table.
// GET /dashboard/escalations
func (h *Handler) GetEscalations(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.render(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, map[string]any{
		"escalations":  summary.EscalationRows,
		"generated_at": summary.GeneratedAt,
	})
}

// GetRecent returns the recent-conversations table.
// GET /dashboard/recent
func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.render(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, map[string]any{
		"recent_conversations": summary.Recent,
		"generated_at":         summary.GeneratedAt,
	})
}

// HealthCheck reports service liveness.
// GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request) (*Summary, bool) {
	summary, err := h.service.Render(r.Context())
	if err != nil {
		h.logger.Error("dashboard render failed", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return nil, false
	}
	return summary, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
