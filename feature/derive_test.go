package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingMean(t *testing.T) {
	testData := map[string]struct {
		vals     []float64
		expected float64
	}{
		"none":          {expected: 0},
		"single":        {vals: []float64{42}, expected: 42},
		"lags":          {vals: []float64{150, 140, 130}, expected: 140},
		"fractional":    {vals: []float64{1, 2}, expected: 1.5},
		"negative lags": {vals: []float64{-10, 10, 30}, expected: 10},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, td.expected, RollingMean(td.vals...), 1e-12)
		})
	}
}

func TestPctChange(t *testing.T) {
	testData := map[string]struct {
		curr     float64
		prev     float64
		expected float64
	}{
		"increase":           {curr: 150, prev: 100, expected: 0.5},
		"decrease":           {curr: 50, prev: 100, expected: -0.5},
		"zero prev":          {curr: 50, prev: 0, expected: 0},
		"zero to zero":       {curr: 0, prev: 0, expected: 0},
		"negative predicted": {curr: -10, prev: 10, expected: -2},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := PctChange(td.curr, td.prev)
			assert.False(t, math.IsNaN(res))
			assert.False(t, math.IsInf(res, 0))
			assert.InDelta(t, td.expected, res, 1e-12)
		})
	}
}

func TestGrowthSlope(t *testing.T) {
	testData := map[string]struct {
		cumulative []float64
		width      int
		expected   float64
		err        error
	}{
		"invalid width": {
			cumulative: []float64{1},
			width:      1,
			err:        ErrInvalidSlopeWidth,
		},
		"empty": {
			width:    6,
			expected: 0,
		},
		"partial window": {
			cumulative: []float64{100, 210, 330, 460, 600},
			width:      6,
			expected:   0,
		},
		"full window": {
			cumulative: []float64{100, 210, 330, 460, 600, 750},
			width:      6,
			expected:   130,
		},
		"flat": {
			cumulative: []float64{500, 500, 500, 500, 500, 500},
			width:      6,
			expected:   0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			slope, err := GrowthSlope(td.cumulative, td.width)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, td.expected, slope, 1e-9)
		})
	}
}

func TestGrowthSlopePartialIsExactlyZero(t *testing.T) {
	for n := 0; n < 6; n++ {
		cum := make([]float64, n)
		for i := range cum {
			cum[i] = float64(100 * (i + 1))
		}
		slope, err := GrowthSlope(cum, 6)
		require.NoError(t, err)
		assert.Equal(t, 0.0, slope, "n=%d", n)
	}
}

func TestDerive(t *testing.T) {
	testData := map[string]struct {
		values      *Window
		cumulative  *Window
		periodIndex int
		code        int
		expected    Vector
		err         error
	}{
		"nil window": {
			err: ErrNilWindow,
		},
		"insufficient lags": {
			values:     NewWindow(6, 1, 2),
			cumulative: NewWindow(6, 1, 3),
			err:        ErrInsufficientLags,
		},
		"seed history": {
			values:      NewWindow(6, 100, 110, 120, 130, 140, 150),
			cumulative:  NewWindow(6, 100, 210, 330, 460, 600, 750),
			periodIndex: 11,
			code:        3,
			expected: Vector{
				MonthsSinceStart: 11,
				CountyEncoded:    3,
				Lag1:             150,
				Lag2:             140,
				Lag3:             130,
				RollMean3:        140,
				PctChange1:       10.0 / 140.0,
				PctChange3:       20.0 / 130.0,
				GrowthSlope:      130,
			},
		},
		"zero lag2": {
			values:      NewWindow(6, 0, 0, 50),
			cumulative:  NewWindow(6, 0, 0, 50),
			periodIndex: 3,
			code:        1,
			expected: Vector{
				MonthsSinceStart: 3,
				CountyEncoded:    1,
				Lag1:             50,
				Lag2:             0,
				Lag3:             0,
				RollMean3:        50.0 / 3.0,
				PctChange1:       0,
				PctChange3:       0,
				GrowthSlope:      0,
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			v, err := Derive(td.values, td.cumulative, td.periodIndex, td.code)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected.MonthsSinceStart, v.MonthsSinceStart)
			assert.Equal(t, td.expected.CountyEncoded, v.CountyEncoded)
			assert.InDeltaSlice(t, td.expected.Values(), v.Values(), 1e-9)
		})
	}
}

func TestDeriveIsPure(t *testing.T) {
	values := NewWindow(6, 100, 110, 120, 130, 140, 150)
	cumulative := NewWindow(6, 100, 210, 330, 460, 600, 750)

	first, err := Derive(values, cumulative, 11, 3)
	require.NoError(t, err)
	second, err := Derive(values, cumulative, 11, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []float64{100, 110, 120, 130, 140, 150}, values.Values())
	assert.Equal(t, []float64{100, 210, 330, 460, 600, 750}, cumulative.Values())
}
