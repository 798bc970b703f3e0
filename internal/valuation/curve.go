// Package valuation models a vehicle's value over time with a
// dual-exponential decay curve: a fast term dominating early depreciation
// and a slow term carrying long-run residual value.
package valuation

import (
	"errors"
	"math"

	"github.com/Hxrshmxllow/HackPrincetonF25/internal/models"
)

// ErrInvalidInput marks a negative price or age passed to ComputeCurve.
// It aborts only the single valuation; nothing else depends on it.
var ErrInvalidInput = errors.New("valuation: price and age must be non-negative")

const (
	alpha = 0.7  // weight of the fast-decay term
	beta  = 0.5  // fast decay rate
	gamma = 0.08 // slow decay rate

	// salvageRatio floors every curve at 15% of the value-at-age-0 so
	// estimates asymptote above zero.
	salvageRatio = 0.15

	minHorizon = 15
	agePadding = 10
)

// ComputeCurve produces one DepreciationPoint per integer age from 0 through
// max(15, currentAge+10). Exactly the point at currentAge is marked current.
// baseMSRP anchors the curve when present and above the current price;
// otherwise V0 is back-solved from the observed (price, age) pair. Pass
// baseMSRP = 0 when the listing carries none.
func ComputeCurve(currentPrice float64, currentAge int, baseMSRP float64) ([]models.DepreciationPoint, error) {
	if currentPrice < 0 || currentAge < 0 {
		return nil, ErrInvalidInput
	}

	var v0 float64
	if baseMSRP > 0 && baseMSRP > currentPrice {
		v0 = baseMSRP
	} else {
		// Scale the observed price down by the salvage share before
		// dividing out the decay, so the floor added below does not
		// inflate the anchor.
		v0 = (currentPrice - currentPrice*salvageRatio) / decay(currentAge)
	}

	salvage := v0 * salvageRatio
	horizon := currentAge + agePadding
	if horizon < minHorizon {
		horizon = minHorizon
	}

	points := make([]models.DepreciationPoint, 0, horizon+1)
	for age := 0; age <= horizon; age++ {
		points = append(points, models.DepreciationPoint{
			Age:            age,
			EstimatedValue: math.Round(v0*decay(age) + salvage),
			IsCurrentAge:   age == currentAge,
		})
	}

	return points, nil
}

func decay(age int) float64 {
	t := float64(age)
	return alpha*math.Exp(-beta*t) + (1-alpha)*math.Exp(-gamma*t)
}
