package listing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Hxrshmxllow/HackPrincetonF25/internal/models"
)

// RawEntry is one upstream listing record keyed by its external identifier
// (usually a VIN). Record may be nil when the upstream value was not an
// object; the entry still normalizes to a fully-defaulted Vehicle.
type RawEntry struct {
	Key    string
	Record map[string]any
}

// fallbackBasePrice keeps insurance estimates non-zero for
// "contact dealer" listings that carry no price.
const fallbackBasePrice = 10000

// Normalizer converts raw upstream listing records into canonical Vehicles.
// It never fails on a malformed individual record: every field degrades to
// its documented default independently.
type Normalizer struct {
	logger *log.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *log.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize produces one Vehicle per entry, assigning dense sequential IDs
// 0..n-1 in entry order. Display order therefore never depends on the
// upstream identifier format.
func (n *Normalizer) Normalize(entries []RawEntry) []models.Vehicle {
	vehicles := make([]models.Vehicle, 0, len(entries))

	for i, entry := range entries {
		if entry.Record == nil {
			n.logger.WithField("key", entry.Key).Debug("listing record is not an object, using defaults")
		}

		vehicle := subObject(entry.Record, "vehicle")
		retail := subObject(entry.Record, "retailListing")
		ratings := subObject(entry.Record, "ratings")
		history := subObject(entry.Record, "history")

		price := asNumber(retail["price"])
		images := imageList(retail["images"])

		v := models.Vehicle{
			ID:       i,
			Make:     asStringOr(vehicle["make"], "Unknown"),
			Model:    asStringOr(vehicle["model"], "N/A"),
			Year:     int(asNumber(vehicle["year"])),
			Price:    price,
			Mileage:  asNumber(retail["miles"]),
			Images:   images,
			Location: fmt.Sprintf("%s, %s", asStringOr(retail["city"], "Unknown"), asStringOr(retail["state"], "")),

			Description: description(vehicle),
			Dealer:      asStringOr(retail["dealer"], ""),
			Listing:     asStringOr(retail["listing"], ""),

			ExteriorColor: asStringOr(vehicle["exteriorColor"], ""),
			InteriorColor: asStringOr(vehicle["interiorColor"], ""),
			Drivetrain:    asStringOr(vehicle["drivetrain"], ""),
			Transmission:  asStringOr(vehicle["transmission"], ""),
			Fuel:          asStringOr(vehicle["fuel"], ""),

			InsuranceEstimate: insuranceEstimate(price),
			InsuranceMonthly:  insuranceMonthly(price),
			MaintenanceNote:   maintenanceNote(ratings),

			Ratings:  normalizeRatings(ratings),
			History:  normalizeHistory(history),
			BaseMSRP: asNumber(vehicle["baseMsrp"]),
		}

		if len(v.Images) > 0 {
			v.Image = v.Images[0]
		} else {
			v.Image = models.PlaceholderImage
		}

		vehicles = append(vehicles, v)
	}

	return vehicles
}

// insuranceEstimate is a quick local yearly estimate, independent of the
// advisory service's breakdown endpoint.
func insuranceEstimate(price float64) int {
	base := price
	if base == 0 {
		base = fallbackBasePrice
	}
	return int(math.Round(base * 0.12))
}

func insuranceMonthly(price float64) int {
	base := price
	if base == 0 {
		base = fallbackBasePrice
	}
	return int(math.Round(base * 0.12 / 12))
}

func maintenanceNote(ratings map[string]any) string {
	if overall, ok := numberField(ratings, "overallRating"); ok {
		return fmt.Sprintf("Overall Rating: %.2f / 5", overall)
	}
	return "Overall Rating: N/A / 5"
}

func description(vehicle map[string]any) string {
	parts := make([]string, 0, 3)
	for _, key := range []string{"make", "model", "trim"} {
		if s := asStringOr(vehicle[key], ""); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// imageList resolves the upstream "maybe array, maybe string" images field
// exactly once. A delimited string is split on commas with each element
// trimmed; any other shape yields an empty list.
func imageList(v any) []string {
	switch val := v.(type) {
	case []any:
		images := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				images = append(images, strings.TrimSpace(s))
			}
		}
		return images
	case string:
		if strings.TrimSpace(val) == "" {
			return []string{}
		}
		parts := strings.Split(val, ",")
		images := make([]string, 0, len(parts))
		for _, part := range parts {
			images = append(images, strings.TrimSpace(part))
		}
		return images
	default:
		return []string{}
	}
}

func normalizeRatings(raw map[string]any) *models.Ratings {
	if len(raw) == 0 {
		return nil
	}
	r := &models.Ratings{
		DealRating:              floatPtr(raw, "dealRating"),
		FuelEconomyRating:       floatPtr(raw, "fuelEconomyRating"),
		MaintenanceRating:       floatPtr(raw, "maintenanceRating"),
		SafetyRating:            floatPtr(raw, "safetyRating"),
		OwnerSatisfactionRating: floatPtr(raw, "ownerSatisfactionRating"),
		OverallRating:           floatPtr(raw, "overallRating"),
	}
	return r
}

func normalizeHistory(raw map[string]any) *models.History {
	if len(raw) == 0 {
		return nil
	}
	h := &models.History{
		UsageType: asStringOr(raw["usageType"], ""),
	}
	if v, ok := numberField(raw, "accidentCount"); ok {
		count := int(v)
		h.AccidentCount = &count
	}
	if v, ok := numberField(raw, "ownerCount"); ok {
		count := int(v)
		h.OwnerCount = &count
	}
	if v, ok := raw["oneOwner"].(bool); ok {
		h.OneOwner = &v
	}
	if v, ok := raw["personalUse"].(bool); ok {
		h.PersonalUse = &v
	}
	return h
}

// subObject returns the named nested object, or nil when it is absent or
// not an object.
func subObject(record map[string]any, key string) map[string]any {
	if record == nil {
		return nil
	}
	sub, _ := record[key].(map[string]any)
	return sub
}

func asStringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// asNumber accepts JSON numbers and numeric strings; anything else is zero.
func asNumber(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return 0
}

func numberField(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	}
	return 0, false
}

func floatPtr(m map[string]any, key string) *float64 {
	if v, ok := numberField(m, key); ok {
		return &v
	}
	return nil
}
