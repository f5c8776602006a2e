package timedataset

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateMonthlyT returns n month-stepped time points starting at start
func GenerateMonthlyT(start time.Time, n int) []time.Time {
	t := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, AddMonths(start, i))
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// Sum returns the total of all values in the series
func (s Series) Sum() float64 {
	return floats.Sum(s)
}

// CumSum returns a new series of running totals
func (s Series) CumSum() Series {
	dst := make([]float64, len(s))
	if len(s) == 0 {
		return Series(dst)
	}
	floats.CumSum(dst, s)
	return Series(dst)
}

// Tail returns a copy of the last n values or the whole series if shorter
func (s Series) Tail(n int) Series {
	if n > len(s) {
		n = len(s)
	}
	if n < 0 {
		n = 0
	}
	dst := make([]float64, n)
	copy(dst, s[len(s)-n:])
	return Series(dst)
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateLinearY returns n values starting at start and increasing by step
func GenerateLinearY(n int, start, step float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, start+step*float64(i))
	}
	return Series(y)
}
