package listing

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *log.Logger {
	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	return logger
}

func TestNormalizeFullRecord(t *testing.T) {
	n := NewNormalizer(testLogger())

	entries := []RawEntry{
		{
			Key: "1HGBH41JXMN109186",
			Record: map[string]any{
				"vehicle": map[string]any{
					"make":     "Toyota",
					"model":    "Camry",
					"trim":     "SE",
					"year":     float64(2018),
					"baseMsrp": float64(28000),
					"fuel":     "Gasoline",
				},
				"retailListing": map[string]any{
					"price":  float64(18000),
					"miles":  float64(65000),
					"city":   "Princeton",
					"state":  "NJ",
					"dealer": "Princeton Auto",
					"images": []any{"https://a.example/1.jpg", "https://a.example/2.jpg"},
				},
				"ratings": map[string]any{
					"overallRating": 4.25,
					"dealRating":    3.8,
				},
				"history": map[string]any{
					"accidentCount": float64(1),
					"ownerCount":    float64(2),
					"oneOwner":      false,
				},
			},
		},
	}

	vehicles := n.Normalize(entries)
	assert.Len(t, vehicles, 1)

	v := vehicles[0]
	assert.Equal(t, 0, v.ID)
	assert.Equal(t, "Toyota", v.Make)
	assert.Equal(t, "Camry", v.Model)
	assert.Equal(t, 2018, v.Year)
	assert.Equal(t, 18000.0, v.Price)
	assert.Equal(t, 65000.0, v.Mileage)
	assert.Equal(t, "Princeton, NJ", v.Location)
	assert.Equal(t, "Toyota Camry SE", v.Description)
	assert.Equal(t, "https://a.example/1.jpg", v.Image)
	assert.Equal(t, 28000.0, v.BaseMSRP)

	// 18000 * 0.12
	assert.Equal(t, 2160, v.InsuranceEstimate)
	assert.Equal(t, 180, v.InsuranceMonthly)
	assert.Equal(t, "Overall Rating: 4.25 / 5", v.MaintenanceNote)

	assert.NotNil(t, v.Ratings)
	assert.Equal(t, 4.25, *v.Ratings.OverallRating)
	assert.Equal(t, 3.8, *v.Ratings.DealRating)
	assert.Nil(t, v.Ratings.SafetyRating)

	assert.NotNil(t, v.History)
	assert.Equal(t, 1, *v.History.AccidentCount)
	assert.Equal(t, 2, *v.History.OwnerCount)
	assert.False(t, *v.History.OneOwner)
}

func TestNormalizeTotality(t *testing.T) {
	n := NewNormalizer(testLogger())

	// Arbitrarily malformed records still yield one Vehicle each with
	// dense sequential IDs and non-empty make/model.
	entries := []RawEntry{
		{Key: "a", Record: map[string]any{}},
		{Key: "b", Record: nil},
		{Key: "c", Record: map[string]any{"vehicle": "not-an-object"}},
		{Key: "d", Record: map[string]any{
			"vehicle":       map[string]any{"year": "not-a-number"},
			"retailListing": map[string]any{"price": true},
		}},
	}

	vehicles := n.Normalize(entries)
	assert.Len(t, vehicles, 4)

	for i, v := range vehicles {
		assert.Equal(t, i, v.ID)
		assert.Equal(t, "Unknown", v.Make)
		assert.Equal(t, "N/A", v.Model)
		assert.Equal(t, 0, v.Year)
		assert.Equal(t, 0.0, v.Price)
		assert.Equal(t, 0.0, v.Mileage)
		assert.Equal(t, "Unknown, ", v.Location)
		assert.Empty(t, v.Images)
		assert.Nil(t, v.Ratings)
		assert.Nil(t, v.History)
	}
}

func TestNormalizeDefaultingPolicy(t *testing.T) {
	n := NewNormalizer(testLogger())

	vehicles := n.Normalize([]RawEntry{{Key: "x", Record: map[string]any{}}})
	v := vehicles[0]

	// Zero price falls back to the 10000 base so estimates are never zero.
	assert.Equal(t, 1200, v.InsuranceEstimate)
	assert.Equal(t, 100, v.InsuranceMonthly)
	assert.Equal(t, "Overall Rating: N/A / 5", v.MaintenanceNote)
	assert.Equal(t, "https://source.unsplash.com/1000x700/?car", v.Image)
}

func TestNormalizeNumericStrings(t *testing.T) {
	n := NewNormalizer(testLogger())

	vehicles := n.Normalize([]RawEntry{{
		Key: "x",
		Record: map[string]any{
			"vehicle":       map[string]any{"year": "2020"},
			"retailListing": map[string]any{"price": "15500", "miles": " 42000 "},
		},
	}})

	assert.Equal(t, 2020, vehicles[0].Year)
	assert.Equal(t, 15500.0, vehicles[0].Price)
	assert.Equal(t, 42000.0, vehicles[0].Mileage)
}

func TestImageList(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"delimited string", "a, b ,c", []string{"a", "b", "c"}},
		{"sequence", []any{" a.jpg ", "b.jpg"}, []string{"a.jpg", "b.jpg"}},
		{"sequence with junk", []any{"a.jpg", 42.0, "b.jpg"}, []string{"a.jpg", "b.jpg"}},
		{"number", 3.0, []string{}},
		{"bool", true, []string{}},
		{"nil", nil, []string{}},
		{"blank string", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, imageList(tt.input))
		})
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := NewNormalizer(testLogger())

	assert.Empty(t, n.Normalize(nil))
	assert.Empty(t, n.Normalize([]RawEntry{}))
}
