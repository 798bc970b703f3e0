// Package insurance reduces the advisory service's raw multiplier payload
// into a filtered, display-ready cost-factor list.
package insurance

import (
	"math"

	"github.com/Hxrshmxllow/HackPrincetonF25/internal/models"
)

// significanceThreshold suppresses factors whose absolute impact is under
// 2%; they are noise, not signal.
const significanceThreshold = 2.0

// barClamp caps a factor's visual weight so one outlier cannot dominate
// layout. It affects BarPercent only, never ImpactPercent.
const barClamp = 100.0

// factorOrder is the fixed caller-facing order. Factors are never sorted by
// magnitude; a stable order keeps the display predictable across vehicles.
var factorOrder = []struct {
	label string
	pick  func(models.InsuranceBreakdown) float64
}{
	{"Location", func(b models.InsuranceBreakdown) float64 { return b.LocationMultiplier }},
	{"Make/Brand", func(b models.InsuranceBreakdown) float64 { return b.MakeMultiplier }},
	{"Body Style", func(b models.InsuranceBreakdown) float64 { return b.BodyStyleMultiplier }},
	{"Engine Size", func(b models.InsuranceBreakdown) float64 { return b.EngineMultiplier }},
	{"Vehicle Age", func(b models.InsuranceBreakdown) float64 { return b.AgeMultiplier }},
	{"Mileage", func(b models.InsuranceBreakdown) float64 { return b.MileageMultiplier }},
	{"Accidents", func(b models.InsuranceBreakdown) float64 { return b.AccidentMultiplier }},
}

// Reduce converts raw multipliers into InsuranceFactors, dropping factors
// that are missing, zero, or under the significance threshold. The
// explanation mapping passes through untouched.
func Reduce(raw models.InsuranceBreakdown) models.InsuranceSummary {
	factors := make([]models.InsuranceFactor, 0, len(factorOrder))

	for _, entry := range factorOrder {
		multiplier := entry.pick(raw)
		if multiplier == 0 {
			continue
		}

		impact := (multiplier - 1) * 100
		if math.Abs(impact) < significanceThreshold {
			continue
		}

		factors = append(factors, models.InsuranceFactor{
			Label:         entry.label,
			Multiplier:    multiplier,
			ImpactPercent: impact,
			BarPercent:    math.Min(math.Abs(impact), barClamp),
		})
	}

	return models.InsuranceSummary{
		Factors:     factors,
		Explanation: raw.Explanation,
	}
}
