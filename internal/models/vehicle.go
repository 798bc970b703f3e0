package models

// PlaceholderImage is used when a listing carries no usable images.
const PlaceholderImage = "https://source.unsplash.com/1000x700/?car"

// Vehicle is the canonical listing entity produced by the normalizer.
// Every Vehicle has a non-empty Make and Model and a dense ordinal ID;
// all other fields carry documented defaults rather than being absent.
// Vehicles are immutable once produced and shared read-only downstream.
type Vehicle struct {
	ID       int      `json:"id"`
	Make     string   `json:"make"`
	Model    string   `json:"model"`
	Year     int      `json:"year"`
	Price    float64  `json:"price"` // 0 means "contact dealer", not missing
	Mileage  float64  `json:"mileage"`
	Image    string   `json:"image"`
	Images   []string `json:"images"`
	Location string   `json:"location"`

	Description string `json:"description"`
	Dealer      string `json:"dealer,omitempty"`
	Listing     string `json:"listing,omitempty"`

	ExteriorColor string `json:"exteriorColor,omitempty"`
	InteriorColor string `json:"interiorColor,omitempty"`
	Drivetrain    string `json:"drivetrain,omitempty"`
	Transmission  string `json:"transmission,omitempty"`
	Fuel          string `json:"fuel,omitempty"`

	// Quick local estimates; independent of the advisory service's
	// authoritative insurance breakdown and never reconciled with it.
	InsuranceEstimate int    `json:"insuranceEstimate"`
	InsuranceMonthly  int    `json:"insuranceMonthly"`
	MaintenanceNote   string `json:"maintenanceNote"`

	Ratings  *Ratings `json:"ratings,omitempty"`
	History  *History `json:"history,omitempty"`
	BaseMSRP float64  `json:"baseMsrp,omitempty"`
}

// Ratings holds the 0-5 scale rating categories for a vehicle. Absent
// categories are nil and render as "not available", never as zero.
type Ratings struct {
	DealRating              *float64 `json:"dealRating,omitempty"`
	FuelEconomyRating       *float64 `json:"fuelEconomyRating,omitempty"`
	MaintenanceRating       *float64 `json:"maintenanceRating,omitempty"`
	SafetyRating            *float64 `json:"safetyRating,omitempty"`
	OwnerSatisfactionRating *float64 `json:"ownerSatisfactionRating,omitempty"`
	OverallRating           *float64 `json:"overallRating,omitempty"`
}

// History is the structured accident/owner/usage record for a listing.
type History struct {
	AccidentCount *int   `json:"accidentCount,omitempty"`
	OwnerCount    *int   `json:"ownerCount,omitempty"`
	OneOwner      *bool  `json:"oneOwner,omitempty"`
	PersonalUse   *bool  `json:"personalUse,omitempty"`
	UsageType     string `json:"usageType,omitempty"`
}
