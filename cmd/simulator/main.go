// Command simulator is a stand-in for the real listings and advisory
// upstreams. It serves generated car listings and canned advisory responses
// so the aggregation service can run end to end on a laptop.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

var carMakes = []string{"Toyota", "Honda", "Ford", "Subaru", "Chevrolet", "BMW", "Hyundai", "Mazda"}

var carModels = map[string][]string{
	"Toyota":    {"Camry", "Corolla", "RAV4", "Highlander"},
	"Honda":     {"Civic", "Accord", "CR-V", "Pilot"},
	"Ford":      {"F-150", "Escape", "Explorer", "Fusion"},
	"Subaru":    {"Outback", "Forester", "Impreza", "Crosstrek"},
	"Chevrolet": {"Silverado", "Equinox", "Malibu", "Trax"},
	"BMW":       {"328i", "X3", "X5", "530i"},
	"Hyundai":   {"Elantra", "Sonata", "Tucson", "Santa Fe"},
	"Mazda":     {"Mazda3", "Mazda6", "CX-5", "CX-30"},
}

var cities = map[string][]string{
	"NJ": {"Princeton", "Newark", "Trenton", "Edison"},
	"NY": {"Albany", "Buffalo", "Rochester", "Syracuse"},
	"PA": {"Philadelphia", "Pittsburgh", "Allentown", "Erie"},
	"CA": {"Sacramento", "Fresno", "San Jose", "Oakland"},
}

// randomListing builds one upstream-shaped listing record.
func randomListing(rng *rand.Rand, state string, budget int) map[string]any {
	make := carMakes[rng.Intn(len(carMakes))]
	model := carModels[make][rng.Intn(len(carModels[make]))]
	year := 2012 + rng.Intn(13)

	maxPrice := 45000
	if budget > 0 {
		maxPrice = budget
	}
	if maxPrice < 6000 {
		maxPrice = 6000
	}
	price := 5000 + rng.Intn(maxPrice-4999)

	stateCities, ok := cities[state]
	if !ok {
		stateCities = cities["NJ"]
	}

	return map[string]any{
		"vehicle": map[string]any{
			"make":          make,
			"model":         model,
			"trim":          []string{"Base", "Sport", "Limited", "Touring"}[rng.Intn(4)],
			"year":          year,
			"baseMsrp":      float64(price) * (1.1 + rng.Float64()*0.5),
			"exteriorColor": []string{"White", "Black", "Silver", "Blue", "Red"}[rng.Intn(5)],
			"interiorColor": []string{"Black", "Gray", "Beige"}[rng.Intn(3)],
			"drivetrain":    []string{"FWD", "AWD", "RWD"}[rng.Intn(3)],
			"transmission":  []string{"Automatic", "Manual", "CVT"}[rng.Intn(3)],
			"fuel":          []string{"Gasoline", "Hybrid", "Electric"}[rng.Intn(3)],
		},
		"retailListing": map[string]any{
			"price":   price,
			"miles":   5000 + rng.Intn(120000),
			"city":    stateCities[rng.Intn(len(stateCities))],
			"state":   state,
			"dealer":  fmt.Sprintf("%s of %s", make, stateCities[rng.Intn(len(stateCities))]),
			"listing": fmt.Sprintf("https://listings.example.com/%s-%s-%d", strings.ToLower(make), strings.ToLower(model), year),
			"images":  fmt.Sprintf("https://images.example.com/%d/front.jpg, https://images.example.com/%d/side.jpg", year, year),
		},
		"ratings": map[string]any{
			"dealRating":              3 + rng.Float64()*2,
			"safetyRating":            3 + rng.Float64()*2,
			"maintenanceRating":       3 + rng.Float64()*2,
			"fuelEconomyRating":       3 + rng.Float64()*2,
			"ownerSatisfactionRating": 3 + rng.Float64()*2,
			"overallRating":           3 + rng.Float64()*2,
		},
		"history": map[string]any{
			"accidentCount": rng.Intn(3),
			"ownerCount":    1 + rng.Intn(3),
			"oneOwner":      rng.Intn(2) == 0,
			"personalUse":   true,
			"usageType":     "Personal",
		},
	}
}

func randomVIN(rng *rand.Rand) string {
	const alphabet = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"
	b := make([]byte, 17)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

func listingsHandler(count int, seed int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		state := r.URL.Query().Get("state")
		if state == "" {
			state = "NJ"
		}
		budget, _ := strconv.Atoi(r.URL.Query().Get("budget"))

		rng := rand.New(rand.NewSource(seed))
		listings := make(map[string]any, count)
		for i := 0; i < count; i++ {
			listings[randomVIN(rng)] = randomListing(rng, state, budget)
		}

		log.WithFields(log.Fields{
			"state":  state,
			"budget": budget,
			"count":  count,
		}).Info("Served listings")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"listings": listings})
	}
}

func analysisHandler(w http.ResponseWriter, r *http.Request) {
	var car struct {
		Make  string `json:"make"`
		Model string `json:"model"`
		Year  int    `json:"year"`
	}
	_ = json.NewDecoder(r.Body).Decode(&car)

	name := strings.TrimSpace(fmt.Sprintf("%d %s %s", car.Year, car.Make, car.Model))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"aiAnalysis": map[string]any{
			"summary":              fmt.Sprintf("The %s is a sensible used buy with predictable running costs.", name),
			"pros":                 []string{"Strong reliability record", "Good parts availability", "Holds value well"},
			"cons":                 []string{"Dated infotainment", "Average fuel economy for the class"},
			"competitorComparison": "Competitive with segment rivals on total cost of ownership.",
			"commonIssues":         []string{"Suspension bushings near 90k miles"},
			"idealBuyer":           "Commuters who want low surprise costs.",
			"verdict":              "Buy",
			"confidence":           0.82,
		},
	})
}

func insuranceHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"insuranceBreakdown": map[string]any{
			"locationMultiplier": 1.15,
			"makeMultiplier":     1.05,
			"engineMultiplier":   0.97,
			"ageMultiplier":      0.90,
			"mileageMultiplier":  1.08,
			"accidentMultiplier": 1.0,
			"explanation": map[string]string{
				"Location": "Urban zip codes carry higher collision rates.",
				"Mileage":  "Above-average mileage raises claim likelihood.",
			},
		},
	})
}

func chatHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MessageHistory []map[string]string `json:"messageHistory"`
		Message        string              `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	history := append(req.MessageHistory, map[string]string{
		"role":    "assistant",
		"content": fmt.Sprintf("Good question. Regarding %q: for a used car at this price point it is worth a pre-purchase inspection.", req.Message),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"messageHistory": history})
}

func checklistHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	// Minimal single-page PDF, enough for download plumbing
	io.WriteString(w, "%PDF-1.4\n1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n"+
		"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n"+
		"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>endobj\n"+
		"trailer<</Root 1 0 R>>\n%%EOF\n")
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	count := 12
	if v := os.Getenv("LISTING_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}

	seed := int64(42)
	if v := os.Getenv("SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = n
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/listings/", listingsHandler(count, seed))
	mux.HandleFunc("/ai/", analysisHandler)
	mux.HandleFunc("/ai/insurance-breakdown", insuranceHandler)
	mux.HandleFunc("/listings/chat", chatHandler)
	mux.HandleFunc("/ai/checklist", checklistHandler)

	log.WithFields(log.Fields{
		"port":          port,
		"listing_count": count,
		"seed":          seed,
	}).Info("Starting upstream simulator")

	log.Fatal(http.ListenAndServe(":"+port, mux))
}
