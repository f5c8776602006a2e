package feature

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-evforecaster/linearmodel"
	"gonum.org/v1/gonum/stat"
)

// NumLags is the number of lagged values a feature vector carries
const NumLags = 3

var (
	ErrNilWindow         = errors.New("nil window")
	ErrInsufficientLags  = errors.New("insufficient values in window to derive lags")
	ErrInvalidSlopeWidth = errors.New("growth slope width must be at least 2")
)

// Derive builds the feature vector for the next period from the recent value window and the
// recent cumulative total window. Neither window is modified.
func Derive(values, cumulative *Window, periodIndex, code int) (Vector, error) {
	if values == nil || cumulative == nil {
		return Vector{}, ErrNilWindow
	}
	if values.Len() < NumLags {
		return Vector{}, fmt.Errorf("have %d values, need %d, %w", values.Len(), NumLags, ErrInsufficientLags)
	}

	lag1, _ := values.Lag(1)
	lag2, _ := values.Lag(2)
	lag3, _ := values.Lag(3)

	slope, err := GrowthSlope(cumulative.Values(), cumulative.Cap())
	if err != nil {
		return Vector{}, err
	}

	return Vector{
		MonthsSinceStart: periodIndex,
		CountyEncoded:    code,
		Lag1:             lag1,
		Lag2:             lag2,
		Lag3:             lag3,
		RollMean3:        RollingMean(lag1, lag2, lag3),
		PctChange1:       PctChange(lag1, lag2),
		PctChange3:       PctChange(lag1, lag3),
		GrowthSlope:      slope,
	}, nil
}

// RollingMean returns the arithmetic mean of the values or 0 if none are given
func RollingMean(vals ...float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// PctChange returns the relative change of curr against prev. A zero prev yields 0 rather
// than an infinite change, which also reports a move away from zero as no change. Models
// trained on this feature expect that behavior.
func PctChange(curr, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (curr - prev) / prev
}

// GrowthSlope fits a line through the cumulative values against their positions 0..n-1 and
// returns its slope. Unless exactly width values are provided the slope is 0.
func GrowthSlope(cumulative []float64, width int) (float64, error) {
	if width < 2 {
		return 0, ErrInvalidSlopeWidth
	}
	if len(cumulative) != width {
		return 0, nil
	}

	pos := make([]float64, width)
	for i := range pos {
		pos[i] = float64(i)
	}
	_, slope, err := linearmodel.LinearFit(pos, cumulative)
	if err != nil {
		return 0, fmt.Errorf("unable to fit growth slope, %w", err)
	}
	return slope, nil
}
