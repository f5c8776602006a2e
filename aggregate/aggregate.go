// Package aggregate accumulates historical and forecast series into running totals and
// summarizes the growth between them.
package aggregate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	TrendIncrease = "increase"
	TrendDecrease = "decrease"
)

// Cumulative returns the running total of the values
func Cumulative(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	return floats.CumSum(make([]float64, len(values)), values)
}

// Continue returns the running total of the increments starting from base. The first element
// is base plus the first increment.
func Continue(base float64, increments []float64) []float64 {
	out := Cumulative(increments)
	floats.AddConst(base, out)
	return out
}

// Round rounds each total to the nearest whole count for display
func Round(values []float64) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(math.Round(v))
	}
	return out
}

// Growth returns the percentage change from the historical total to the final total. Growth is
// undefined when the historical total is zero.
func Growth(historicalTotal, finalTotal float64) (float64, bool) {
	if historicalTotal == 0 {
		return 0, false
	}
	return (finalTotal - historicalTotal) / historicalTotal * 100, true
}

// Trend names the direction of a growth percentage. Zero growth is reported as a decrease.
func Trend(pct float64) string {
	if pct > 0 {
		return TrendIncrease
	}
	return TrendDecrease
}

// Summary captures the totals before and after a forecast
type Summary struct {
	// HistoricalTotal is the cumulative total at the last observed period
	HistoricalTotal float64 `json:"historical_total"`

	// ForecastTotal is the cumulative total at the final forecast period
	ForecastTotal float64 `json:"forecast_total"`

	GrowthPct     float64 `json:"growth_pct"`
	GrowthDefined bool    `json:"growth_defined"`
}

// Summarize builds a summary from the historical observations and the forecast increments
func Summarize(historical, forecast []float64) Summary {
	hist := floats.Sum(historical)
	final := hist + floats.Sum(forecast)
	pct, ok := Growth(hist, final)
	return Summary{
		HistoricalTotal: hist,
		ForecastTotal:   final,
		GrowthPct:       pct,
		GrowthDefined:   ok,
	}
}

// Trend names the direction of the summarized growth
func (s Summary) Trend() string {
	return Trend(s.GrowthPct)
}

// String renders the growth as a percentage with two decimals or N/A when undefined
func (s Summary) String() string {
	if !s.GrowthDefined {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", s.GrowthPct)
}
