package feature

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	l := Labels()
	assert.Len(t, l, 9)
	assert.Equal(t, LabelMonthsSinceStart, l[0])
	assert.Equal(t, LabelGrowthSlope, l[8])

	// returned labels are a copy
	l[0] = "mutated"
	assert.Equal(t, LabelMonthsSinceStart, Labels()[0])

	assert.True(t, IsLabel(LabelLag2))
	assert.False(t, IsLabel("ev_total_lag4"))
}

func TestVectorGet(t *testing.T) {
	v := Vector{MonthsSinceStart: 11, CountyEncoded: 3, Lag1: 150, PctChange3: 0.25}

	testData := map[string]struct {
		label     string
		expVal    float64
		expExists bool
	}{
		"unknown": {
			label: "unknown",
		},
		"capitalized": {
			label:     "EV_TOTAL_LAG1",
			expVal:    150,
			expExists: true,
		},
		"integer feature": {
			label:     LabelCountyEncoded,
			expVal:    3,
			expExists: true,
		},
		"exact match": {
			label:     LabelPctChange3,
			expVal:    0.25,
			expExists: true,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			val, exists := v.Get(td.label)
			assert.Equal(t, td.expExists, exists, "exists")
			assert.Equal(t, td.expVal, val, "value")
		})
	}
}

func TestVectorJSONMatchesDecode(t *testing.T) {
	v := Vector{
		MonthsSinceStart: 11,
		CountyEncoded:    3,
		Lag1:             150,
		Lag2:             140,
		Lag3:             130,
		RollMean3:        140,
		PctChange1:       10.0 / 140.0,
		PctChange3:       20.0 / 130.0,
		GrowthSlope:      130,
	}
	out, err := json.Marshal(v)
	require.NoError(t, err)

	var record map[string]float64
	require.NoError(t, json.Unmarshal(out, &record))
	assert.Equal(t, v.Decode(), record)
}
