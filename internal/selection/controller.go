// Package selection holds the process-local view state: the loaded
// vehicles, the applied filters, and the currently selected vehicle.
package selection

import (
	"errors"
	"strings"
	"sync"

	"github.com/Hxrshmxllow/HackPrincetonF25/internal/models"
)

// ErrNotFound is returned when a selection targets an unknown vehicle ID.
var ErrNotFound = errors.New("selection: vehicle not found")

// Filters are the listing filter predicates. Zero values mean "not set";
// a vehicle matches when every set predicate matches.
type Filters struct {
	Make     string
	Model    string
	Year     int
	MaxPrice float64
}

// Matches reports whether a vehicle passes every set predicate: substring
// match on make/model (case-insensitive), exact year, price at or under max.
func (f Filters) Matches(v models.Vehicle) bool {
	if f.Make != "" && !strings.Contains(strings.ToLower(v.Make), strings.ToLower(f.Make)) {
		return false
	}
	if f.Model != "" && !strings.Contains(strings.ToLower(v.Model), strings.ToLower(f.Model)) {
		return false
	}
	if f.Year != 0 && v.Year != f.Year {
		return false
	}
	if f.MaxPrice != 0 && v.Price > f.MaxPrice {
		return false
	}
	return true
}

// Selector receives selection changes; it is the advisory coordinator in
// production.
type Selector interface {
	Select(vehicle *models.Vehicle)
}

// Controller owns the vehicle list for the lifetime of one listing load and
// forwards selection changes to the Selector. It is the sole trigger for
// the coordinator's generation bump.
type Controller struct {
	mu       sync.Mutex
	vehicles []models.Vehicle
	filters  Filters
	selected *int
	selector Selector
}

// NewController creates a Controller forwarding selections to selector.
func NewController(selector Selector) *Controller {
	return &Controller{selector: selector}
}

// SetVehicles replaces the loaded vehicle list. Any existing selection is
// cleared; vehicle IDs are only meaningful within one load.
func (c *Controller) SetVehicles(vehicles []models.Vehicle) {
	c.mu.Lock()
	c.vehicles = vehicles
	c.selected = nil
	c.mu.Unlock()

	c.selector.Select(nil)
}

// SetFilters replaces the applied filters. Filtering never touches the
// selection; a selected vehicle may be filtered out of view.
func (c *Controller) SetFilters(filters Filters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = filters
}

// Filters returns the currently applied filters.
func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Vehicles returns the full loaded list.
func (c *Controller) Vehicles() []models.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vehicles
}

// Filtered returns the vehicles passing the applied filters.
func (c *Controller) Filtered() []models.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Vehicle, 0, len(c.vehicles))
	for _, v := range c.vehicles {
		if c.filters.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}

// Select marks the vehicle with the given ID as selected and notifies the
// Selector.
func (c *Controller) Select(id int) error {
	c.mu.Lock()
	var match *models.Vehicle
	for i := range c.vehicles {
		if c.vehicles[i].ID == id {
			match = &c.vehicles[i]
			break
		}
	}
	if match == nil {
		c.mu.Unlock()
		return ErrNotFound
	}
	c.selected = &match.ID
	vehicle := *match
	c.mu.Unlock()

	c.selector.Select(&vehicle)
	return nil
}

// Clear drops the current selection.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.selected = nil
	c.mu.Unlock()

	c.selector.Select(nil)
}

// Selected returns the selected vehicle, or false when nothing is selected.
func (c *Controller) Selected() (models.Vehicle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == nil {
		return models.Vehicle{}, false
	}
	for _, v := range c.vehicles {
		if v.ID == *c.selected {
			return v, true
		}
	}
	return models.Vehicle{}, false
}
