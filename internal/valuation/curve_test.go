package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCurveMSRPAnchor(t *testing.T) {
	// MSRP above current price anchors the curve directly.
	points, err := ComputeCurve(30000, 3, 50000)
	assert.NoError(t, err)

	// value(0) = V0 * decay(0) + S = V0 + 0.15*V0 with decay(0) == 1.
	assert.Equal(t, math.Round(50000*1.15), points[0].EstimatedValue)
}

func TestComputeCurveBackSolvedAnchor(t *testing.T) {
	price, age := 18000.0, 5

	points, err := ComputeCurve(price, age, 0)
	assert.NoError(t, err)

	// The back-solved curve passes near the observed price at the
	// current age (up to the salvage floor added on top).
	v0 := (price - price*0.15) / decay(age)
	want := math.Round(v0*decay(age) + v0*0.15)
	assert.Equal(t, want, points[age].EstimatedValue)
}

func TestComputeCurveMSRPBelowPriceIgnored(t *testing.T) {
	withAnchor, err := ComputeCurve(30000, 3, 20000)
	assert.NoError(t, err)
	without, err := ComputeCurve(30000, 3, 0)
	assert.NoError(t, err)

	assert.Equal(t, without, withAnchor)
}

func TestComputeCurveHorizon(t *testing.T) {
	tests := []struct {
		age     int
		horizon int
	}{
		{0, 15},
		{3, 15},
		{5, 15},
		{6, 16},
		{12, 22},
	}

	for _, tt := range tests {
		points, err := ComputeCurve(20000, tt.age, 0)
		assert.NoError(t, err)
		assert.Len(t, points, tt.horizon+1, "age %d", tt.age)
		assert.Equal(t, 0, points[0].Age)
		assert.Equal(t, tt.horizon, points[len(points)-1].Age)
	}
}

func TestComputeCurveSingleCurrentAgeMark(t *testing.T) {
	points, err := ComputeCurve(25000, 7, 40000)
	assert.NoError(t, err)

	marked := 0
	for _, p := range points {
		if p.IsCurrentAge {
			marked++
			assert.Equal(t, 7, p.Age)
		}
	}
	assert.Equal(t, 1, marked)
}

func TestComputeCurveSalvageFloor(t *testing.T) {
	points, err := ComputeCurve(30000, 3, 50000)
	assert.NoError(t, err)

	salvage := 50000 * 0.15
	for _, p := range points {
		assert.GreaterOrEqual(t, p.EstimatedValue, salvage)
	}
}

func TestComputeCurveMonotonicDecay(t *testing.T) {
	points, err := ComputeCurve(22000, 4, 35000)
	assert.NoError(t, err)

	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i].EstimatedValue, points[i-1].EstimatedValue)
	}
}

func TestComputeCurveZeroPrice(t *testing.T) {
	// "Contact dealer" listings carry price 0; the curve degenerates to
	// the salvage floor but is still produced.
	points, err := ComputeCurve(0, 2, 0)
	assert.NoError(t, err)
	assert.Len(t, points, 16)
	for _, p := range points {
		assert.Equal(t, 0.0, p.EstimatedValue)
	}
}

func TestComputeCurveInvalidInput(t *testing.T) {
	_, err := ComputeCurve(-1, 3, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeCurve(10000, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
