package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Hxrshmxllow/HackPrincetonF25/internal/db"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/listing"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/middleware"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/models"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/selection"
)

// ListingFetcher fetches raw listing entries from the upstream service.
type ListingFetcher interface {
	Fetch(ctx context.Context, state string, budget int, primaryUse string) ([]listing.RawEntry, error)
}

// ListingsHandler serves the listings search. Every search replaces the
// controller's vehicle list; an upstream failure degrades to an empty list
// rather than an error response.
type ListingsHandler struct {
	fetcher        ListingFetcher
	normalizer     *listing.Normalizer
	controller     *selection.Controller
	userCollection db.UserCollection
	logger         *log.Logger
}

// NewListingsHandler creates a new listings handler
func NewListingsHandler(fetcher ListingFetcher, normalizer *listing.Normalizer, controller *selection.Controller, userCollection db.UserCollection, logger *log.Logger) *ListingsHandler {
	return &ListingsHandler{
		fetcher:        fetcher,
		normalizer:     normalizer,
		controller:     controller,
		userCollection: userCollection,
		logger:         logger,
	}
}

// Search handles GET /api/listings
func (h *ListingsHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	state := query.Get("state")
	primaryUse := query.Get("primary_use")
	budget, _ := strconv.Atoi(query.Get("budget"))

	// Missing upstream parameters fall back to the buyer's saved profile
	if claims, ok := middleware.GetUserFromContext(r.Context()); ok {
		if user, err := h.userCollection.FindUserByID(r.Context(), claims.UserID); err == nil {
			if state == "" {
				state = user.Profile.State
			}
			if primaryUse == "" {
				primaryUse = user.Profile.PrimaryUse
			}
			if budget == 0 {
				budget = user.Profile.BudgetMax
			}
		}
	}

	filters := selection.Filters{
		Make:  query.Get("make"),
		Model: query.Get("model"),
	}
	if year, err := strconv.Atoi(query.Get("year")); err == nil {
		filters.Year = year
	}
	if maxPrice, err := strconv.ParseFloat(query.Get("max_price"), 64); err == nil {
		filters.MaxPrice = maxPrice
	}

	vehicles := []models.Vehicle{}
	entries, err := h.fetcher.Fetch(r.Context(), state, budget, primaryUse)
	if err != nil {
		h.logger.WithError(err).Error("Listings fetch failed, returning empty result")
	} else {
		vehicles = h.normalizer.Normalize(entries)
	}

	h.controller.SetVehicles(vehicles)
	h.controller.SetFilters(filters)

	h.recordSearch(r, filters)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]models.Vehicle{"listings": h.controller.Filtered()})
}

// recordSearch appends the search to the user's history, best effort.
func (h *ListingsHandler) recordSearch(r *http.Request, filters selection.Filters) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return
	}

	record := models.SearchRecord{
		Timestamp: time.Now(),
		Make:      filters.Make,
		Model:     filters.Model,
		Year:      filters.Year,
		MaxPrice:  filters.MaxPrice,
	}
	if err := h.userCollection.AddSearchRecord(r.Context(), claims.UserID, record); err != nil {
		h.logger.WithError(err).Warn("Failed to record search history")
	}
}

// SelectionHandler serves selection changes for the loaded listing set.
type SelectionHandler struct {
	controller *selection.Controller
	logger     *log.Logger
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(controller *selection.Controller, logger *log.Logger) *SelectionHandler {
	return &SelectionHandler{controller: controller, logger: logger}
}

// Select handles POST /api/selection. A null id clears the selection.
func (h *SelectionHandler) Select(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID *int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.ID == nil {
		h.controller.Clear()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"selected": nil})
		return
	}

	if err := h.controller.Select(*req.ID); err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"selected": *req.ID})
}
