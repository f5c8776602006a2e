// Package feature derives the fixed set of lag and trend features a single forecast step feeds
// into the prediction model
package feature

import (
	"fmt"
	"strings"
)

// Feature labels. These are the column names the prediction model was trained with.
const (
	LabelMonthsSinceStart = "months_since_start"
	LabelCountyEncoded    = "county_encoded"
	LabelLag1             = "ev_total_lag1"
	LabelLag2             = "ev_total_lag2"
	LabelLag3             = "ev_total_lag3"
	LabelRollMean3        = "ev_total_roll_mean_3"
	LabelPctChange1       = "ev_total_pct_change_1"
	LabelPctChange3       = "ev_total_pct_change_3"
	LabelGrowthSlope      = "ev_growth_slope"
)

var labels = []string{
	LabelMonthsSinceStart,
	LabelCountyEncoded,
	LabelLag1,
	LabelLag2,
	LabelLag3,
	LabelRollMean3,
	LabelPctChange1,
	LabelPctChange3,
	LabelGrowthSlope,
}

// Labels returns the feature labels in model column order
func Labels() []string {
	dst := make([]string, len(labels))
	copy(dst, labels)
	return dst
}

// IsLabel reports whether label is one of the model feature labels
func IsLabel(label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// Vector is the single row of model input for one future period
type Vector struct {
	MonthsSinceStart int     `json:"months_since_start"`
	CountyEncoded    int     `json:"county_encoded"`
	Lag1             float64 `json:"ev_total_lag1"`
	Lag2             float64 `json:"ev_total_lag2"`
	Lag3             float64 `json:"ev_total_lag3"`
	RollMean3        float64 `json:"ev_total_roll_mean_3"`
	PctChange1       float64 `json:"ev_total_pct_change_1"`
	PctChange3       float64 `json:"ev_total_pct_change_3"`
	GrowthSlope      float64 `json:"ev_growth_slope"`
}

// Values returns the feature values in the same order as Labels
func (v Vector) Values() []float64 {
	return []float64{
		float64(v.MonthsSinceStart),
		float64(v.CountyEncoded),
		v.Lag1,
		v.Lag2,
		v.Lag3,
		v.RollMean3,
		v.PctChange1,
		v.PctChange3,
		v.GrowthSlope,
	}
}

// Get returns the value of a feature by label along with whether the label exists
func (v Vector) Get(label string) (float64, bool) {
	label = strings.ToLower(label)
	for i, l := range labels {
		if l == label {
			return v.Values()[i], true
		}
	}
	return 0, false
}

// Decode converts the vector into a map of label to value
func (v Vector) Decode() map[string]float64 {
	vals := v.Values()
	res := make(map[string]float64, len(labels))
	for i, l := range labels {
		res[l] = vals[i]
	}
	return res
}

func (v Vector) String() string {
	var sb strings.Builder
	vals := v.Values()
	for i, l := range labels {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s=%.4f", l, vals[i])
	}
	return sb.String()
}
