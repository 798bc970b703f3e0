package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hxrshmxllow/HackPrincetonF25/internal/models"
)

// recordingSelector captures every selection change it receives.
type recordingSelector struct {
	calls []*models.Vehicle
}

func (r *recordingSelector) Select(v *models.Vehicle) {
	r.calls = append(r.calls, v)
}

func inventory() []models.Vehicle {
	return []models.Vehicle{
		{ID: 0, Make: "Toyota", Model: "Camry", Year: 2018, Price: 18000},
		{ID: 1, Make: "Honda", Model: "Civic", Year: 2020, Price: 22000},
		{ID: 2, Make: "Toyota", Model: "Corolla", Year: 2020, Price: 18500},
		{ID: 3, Make: "Ford", Model: "F-150", Year: 2018, Price: 35000},
	}
}

func TestFiltersMatches(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		wantIDs []int
	}{
		{"no filters", Filters{}, []int{0, 1, 2, 3}},
		{"make substring case-insensitive", Filters{Make: "toy"}, []int{0, 2}},
		{"model substring", Filters{Model: "C"}, []int{0, 1, 2}},
		{"year exact", Filters{Year: 2020}, []int{1, 2}},
		{"max price inclusive", Filters{MaxPrice: 18500}, []int{0, 2}},
		{"conjunction", Filters{Make: "toyota", Year: 2020}, []int{2}},
		{"no match", Filters{Make: "tesla"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(&recordingSelector{})
			c.SetVehicles(inventory())
			c.SetFilters(tt.filters)

			ids := []int{}
			for _, v := range c.Filtered() {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestControllerSelect(t *testing.T) {
	sel := &recordingSelector{}
	c := NewController(sel)
	c.SetVehicles(inventory())

	assert.NoError(t, c.Select(1))

	v, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, "Honda", v.Make)

	// SetVehicles cleared first, then the selection was forwarded.
	assert.Len(t, sel.calls, 2)
	assert.Nil(t, sel.calls[0])
	assert.Equal(t, 1, sel.calls[1].ID)
}

func TestControllerSelectUnknownID(t *testing.T) {
	sel := &recordingSelector{}
	c := NewController(sel)
	c.SetVehicles(inventory())

	assert.ErrorIs(t, c.Select(99), ErrNotFound)

	_, ok := c.Selected()
	assert.False(t, ok)
	// The failed select must not reach the selector.
	assert.Len(t, sel.calls, 1)
}

func TestControllerClear(t *testing.T) {
	sel := &recordingSelector{}
	c := NewController(sel)
	c.SetVehicles(inventory())

	assert.NoError(t, c.Select(0))
	c.Clear()

	_, ok := c.Selected()
	assert.False(t, ok)
	assert.Nil(t, sel.calls[len(sel.calls)-1])
}

func TestControllerNewLoadClearsSelection(t *testing.T) {
	sel := &recordingSelector{}
	c := NewController(sel)
	c.SetVehicles(inventory())
	assert.NoError(t, c.Select(2))

	c.SetVehicles(inventory()[:1])

	_, ok := c.Selected()
	assert.False(t, ok)
	assert.Nil(t, sel.calls[len(sel.calls)-1])
}

func TestControllerFilteringLeavesSelection(t *testing.T) {
	sel := &recordingSelector{}
	c := NewController(sel)
	c.SetVehicles(inventory())
	assert.NoError(t, c.Select(3))

	// Filtering the selected vehicle out of view is not a deselection.
	c.SetFilters(Filters{Make: "toyota"})

	v, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, 3, v.ID)
}
