package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnivariateDataset(t *testing.T) {
	testData := map[string]struct {
		t        []time.Time
		y        []float64
		expected *TimeDataset
		err      error
	}{
		"no training data": {
			err: ErrNoTrainingData,
		},
		"length mismatch": {
			y:   []float64{1},
			err: ErrDatasetLenMismatch,
		},
		"non increasing time": {
			t: []time.Time{
				time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonMontonic,
		},
		"duplicate time": {
			t: []time.Time{
				time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonMontonic,
		},
		"valid": {
			t: []time.Time{
				time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
			},
			y: []float64{1, 2},
			expected: &TimeDataset{
				T: []time.Time{
					time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
					time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
				},
				Y: []float64{1, 2},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewUnivariateDataset(td.t, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, ds)
		})
	}
}

func TestNewUnivariateDatasetCopiesInput(t *testing.T) {
	tm := GenerateMonthlyT(time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC), 3)
	y := []float64{1, 2, 3}

	ds, err := NewUnivariateDataset(tm, y)
	require.NoError(t, err)

	y[0] = 100
	assert.Equal(t, 1.0, ds.Y[0])
}

func TestTail(t *testing.T) {
	tm := GenerateMonthlyT(time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC), 4)
	ds, err := NewUnivariateDataset(tm, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	testData := map[string]struct {
		n        int
		expected []float64
		err      error
	}{
		"negative":      {n: -1, err: ErrNegativeTail},
		"zero":          {n: 0, expected: []float64{}},
		"partial":       {n: 2, expected: []float64{3, 4}},
		"exact":         {n: 4, expected: []float64{1, 2, 3, 4}},
		"more than len": {n: 10, expected: []float64{1, 2, 3, 4}},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			tail, err := ds.Tail(td.n)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, tail.Y)
			assert.Len(t, tail.T, len(td.expected))
		})
	}
}

func TestSeriesCumSum(t *testing.T) {
	s := Series{100, 110, 120, 130, 140, 150}
	assert.Equal(t, Series{100, 210, 330, 460, 600, 750}, s.CumSum())
	assert.Equal(t, 750.0, s.Sum())
	assert.Equal(t, Series{}, Series(nil).CumSum())
	assert.Equal(t, Series{140, 150}, s.Tail(2))
}
