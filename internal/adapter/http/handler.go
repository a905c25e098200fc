package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bnema/audiobatch/internal/adapter/report"
	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/infrastructure/logger"
	"github.com/bnema/audiobatch/internal/port"
)

type Handlers struct {
	history   port.HistoryStore
	listLimit int
}

func NewHandlers(history port.HistoryStore, listLimit int) *Handlers {
	return &Handlers{
		history:   history,
		listLimit: listLimit,
	}
}

func batchURL(id string) string {
	return "/batches/" + url.PathEscape(id)
}

// limit reads ?limit=N. Zero or a negative value lists everything.
func (h *Handlers) limit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return h.listLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	return n, true
}

func (h *Handlers) HistoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := h.limit(r)
		if !ok {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		summaries, err := h.history.ListOutcomes(r.Context(), limit)
		if err != nil {
			logger.Error.Printf("history list error: %v", err)
			summaries = []domain.BatchSummary{}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = report.HistoryPage(summaries, batchURL).Render(r.Context(), w)
	}
}

func (h *Handlers) BatchPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, ok := h.lookup(w, r)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = report.Page(outcome).Render(r.Context(), w)
	}
}

func (h *Handlers) ListBatches() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := h.limit(r)
		if !ok {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		summaries, err := h.history.ListOutcomes(r.Context(), limit)
		if err != nil {
			logger.Error.Printf("history list error: %v", err)
			http.Error(w, "History unavailable", http.StatusInternalServerError)
			return
		}
		if summaries == nil {
			summaries = []domain.BatchSummary{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(summaries)
	}
}

func (h *Handlers) GetBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, ok := h.lookup(w, r)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = report.RenderJSON(w, outcome)
	}
}

func (h *Handlers) Health(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": version})
	}
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (*domain.BatchOutcome, bool) {
	id := r.PathValue("id")
	outcome, err := h.history.GetOutcome(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "Batch not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		logger.Error.Printf("history get error for %s: %v", logger.SanitizeForLog(id), err)
		http.Error(w, "History unavailable", http.StatusInternalServerError)
		return nil, false
	}
	return outcome, true
}
