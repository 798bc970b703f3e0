package main

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRandomVIN(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	vin := randomVIN(rng)

	if len(vin) != 17 {
		t.Errorf("Expected 17-character VIN, got %d: %s", len(vin), vin)
	}
	for _, forbidden := range []string{"I", "O", "Q"} {
		if strings.Contains(vin, forbidden) {
			t.Errorf("VIN contains forbidden character %s: %s", forbidden, vin)
		}
	}
}

func TestRandomListing(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	record := randomListing(rng, "PA", 20000)

	vehicle, ok := record["vehicle"].(map[string]any)
	if !ok {
		t.Fatal("Listing missing vehicle object")
	}
	make, _ := vehicle["make"].(string)
	if make == "" {
		t.Error("Vehicle make is empty")
	}
	if _, ok := carModels[make]; !ok {
		t.Errorf("Unknown make %s", make)
	}

	retail, ok := record["retailListing"].(map[string]any)
	if !ok {
		t.Fatal("Listing missing retailListing object")
	}
	price, _ := retail["price"].(int)
	if price < 5000 || price > 20000 {
		t.Errorf("Price %d outside budget cap", price)
	}
	if state, _ := retail["state"].(string); state != "PA" {
		t.Errorf("Expected state PA, got %s", state)
	}
}

func TestRandomListing_SmallBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// A budget below the price floor must not panic
	record := randomListing(rng, "NJ", 1000)
	if record == nil {
		t.Fatal("Expected a listing record")
	}
}

func TestListingsHandler(t *testing.T) {
	handler := listingsHandler(5, 42)

	req := httptest.NewRequest(http.MethodGet, "/listings/?state=NJ&budget=30000", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response struct {
		Listings map[string]json.RawMessage `json:"listings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Listings) != 5 {
		t.Errorf("Expected 5 listings, got %d", len(response.Listings))
	}
}

func TestListingsHandler_MethodNotAllowed(t *testing.T) {
	handler := listingsHandler(5, 42)

	req := httptest.NewRequest(http.MethodPost, "/listings/", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}

func TestAnalysisHandler(t *testing.T) {
	body := bytes.NewBufferString(`{"make":"Honda","model":"Civic","year":2020}`)
	req := httptest.NewRequest(http.MethodPost, "/ai/", body)
	w := httptest.NewRecorder()
	analysisHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response struct {
		AIAnalysis struct {
			Summary string `json:"summary"`
			Verdict string `json:"verdict"`
		} `json:"aiAnalysis"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !strings.Contains(response.AIAnalysis.Summary, "2020 Honda Civic") {
		t.Errorf("Summary does not mention the car: %s", response.AIAnalysis.Summary)
	}
	if response.AIAnalysis.Verdict == "" {
		t.Error("Verdict is empty")
	}
}

func TestInsuranceHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/ai/insurance-breakdown", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	insuranceHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response struct {
		InsuranceBreakdown struct {
			LocationMultiplier float64 `json:"locationMultiplier"`
		} `json:"insuranceBreakdown"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.InsuranceBreakdown.LocationMultiplier == 0 {
		t.Error("Expected a non-zero location multiplier")
	}
}

func TestChatHandler(t *testing.T) {
	body := bytes.NewBufferString(`{"messageHistory":[{"role":"user","content":"Is it reliable?"}],"message":"Is it reliable?"}`)
	req := httptest.NewRequest(http.MethodPost, "/listings/chat", body)
	w := httptest.NewRecorder()
	chatHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response struct {
		MessageHistory []map[string]string `json:"messageHistory"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.MessageHistory) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(response.MessageHistory))
	}
	if response.MessageHistory[1]["role"] != "assistant" {
		t.Errorf("Expected assistant reply, got role %s", response.MessageHistory[1]["role"])
	}
}

func TestChatHandler_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/listings/chat", bytes.NewBufferString(`{`))
	w := httptest.NewRecorder()
	chatHandler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestChecklistHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/ai/checklist", nil)
	w := httptest.NewRecorder()
	checklistHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF-") {
		t.Error("Body does not look like a PDF document")
	}
}
