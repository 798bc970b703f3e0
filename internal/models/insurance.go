package models

// InsuranceBreakdown is the raw multiplier payload returned by the advisory
// service. A zero multiplier means the factor was not assessed.
type InsuranceBreakdown struct {
	LocationMultiplier  float64           `json:"locationMultiplier"`
	MakeMultiplier      float64           `json:"makeMultiplier"`
	BodyStyleMultiplier float64           `json:"bodyStyleMultiplier"`
	EngineMultiplier    float64           `json:"engineMultiplier"`
	AgeMultiplier       float64           `json:"ageMultiplier"`
	MileageMultiplier   float64           `json:"mileageMultiplier"`
	AccidentMultiplier  float64           `json:"accidentMultiplier"`
	Explanation         map[string]string `json:"explanation,omitempty"`
}

// InsuranceFactor is one display-ready cost factor. ImpactPercent is the
// true numeric impact; BarPercent is clamped for presentation only.
type InsuranceFactor struct {
	Label         string  `json:"label"`
	Multiplier    float64 `json:"multiplier"`
	ImpactPercent float64 `json:"impactPercent"`
	BarPercent    float64 `json:"barPercent"`
}

// InsuranceSummary is the reduced, filtered breakdown served to callers.
type InsuranceSummary struct {
	Factors     []InsuranceFactor `json:"factors"`
	Explanation map[string]string `json:"explanation,omitempty"`
}
