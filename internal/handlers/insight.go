package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Hxrshmxllow/HackPrincetonF25/internal/advisory"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/insurance"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/models"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/valuation"
)

// InsightHandler serves per-vehicle insight for the current selection:
// the synchronous depreciation curve plus the coordinator-run advisory
// endpoints.
type InsightHandler struct {
	coordinator *advisory.Coordinator
	advisorySvc advisory.Service
	logger      *log.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(coordinator *advisory.Coordinator, advisorySvc advisory.Service, logger *log.Logger) *InsightHandler {
	return &InsightHandler{
		coordinator: coordinator,
		advisorySvc: advisorySvc,
		logger:      logger,
	}
}

// Valuation handles GET /api/insight/valuation
func (h *InsightHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	vehicle := h.coordinator.Selected()
	if vehicle == nil {
		http.Error(w, "No vehicle selected", http.StatusNotFound)
		return
	}

	age := 0
	if vehicle.Year > 0 {
		if age = time.Now().Year() - vehicle.Year; age < 0 {
			age = 0
		}
	}

	curve, err := valuation.ComputeCurve(vehicle.Price, age, vehicle.BaseMSRP)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]models.DepreciationPoint{"depreciationCurve": curve})
}

// Analysis handles GET /api/insight/analysis
func (h *InsightHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	analysis, err := h.coordinator.Analysis(r.Context())
	if err != nil {
		h.writeAdvisoryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]*models.AIAnalysis{"aiAnalysis": analysis})
}

// Insurance handles GET /api/insight/insurance
func (h *InsightHandler) Insurance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	breakdown, err := h.coordinator.InsuranceBreakdown(r.Context())
	if err != nil {
		h.writeAdvisoryError(w, err)
		return
	}

	summary := insurance.Reduce(*breakdown)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]models.InsuranceSummary{"insuranceBreakdown": summary})
}

// Chat handles POST /api/insight/chat
func (h *InsightHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	history, err := h.coordinator.Chat(r.Context(), req.Message)
	if err != nil {
		h.writeAdvisoryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]models.Message{"messageHistory": history})
}

// Checklist handles POST /api/insight/checklist, proxying the advisory
// service's binary document straight through.
func (h *InsightHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	vehicle := h.coordinator.Selected()
	if vehicle == nil {
		http.Error(w, "No vehicle selected", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	if err := h.advisorySvc.Checklist(r.Context(), *vehicle, w); err != nil {
		h.logger.WithError(err).Error("Checklist proxy failed")
		http.Error(w, "Checklist unavailable", http.StatusBadGateway)
		return
	}
}

func (h *InsightHandler) writeAdvisoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, advisory.ErrNoSelection):
		http.Error(w, "No vehicle selected", http.StatusNotFound)
	case errors.Is(err, advisory.ErrStale):
		http.Error(w, "Selection changed", http.StatusConflict)
	default:
		h.logger.WithError(err).Error("Advisory request failed")
		http.Error(w, "Advisory service unavailable", http.StatusBadGateway)
	}
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
