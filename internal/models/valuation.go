package models

// DepreciationPoint is one age step on a vehicle's valuation curve.
type DepreciationPoint struct {
	Age            int     `json:"age"`
	EstimatedValue float64 `json:"estimatedValue"`
	IsCurrentAge   bool    `json:"isCurrentAge"`
}
