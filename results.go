package forecaster

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aouyang1/go-evforecaster/aggregate"
	"github.com/aouyang1/go-evforecaster/forecast"
	"github.com/aouyang1/go-evforecaster/timedataset"
)

// Results is the forecast of a single entity alongside its history
type Results struct {
	Entity     string                   `json:"entity"`
	Code       int                      `json:"code"`
	Historical *timedataset.TimeDataset `json:"historical"`
	Forecast   *forecast.Result         `json:"forecast"`

	// Cumulative is the running total over the historical then forecast periods
	Cumulative []float64         `json:"cumulative"`
	Summary    aggregate.Summary `json:"summary"`
}

func newResults(hist *timedataset.TimeDataset, fRes *forecast.Result) *Results {
	histCum := aggregate.Cumulative(hist.Y)
	var base float64
	if len(histCum) > 0 {
		base = histCum[len(histCum)-1]
	}
	cum := make([]float64, 0, len(histCum)+len(fRes.Points))
	cum = append(cum, histCum...)
	cum = append(cum, aggregate.Continue(base, fRes.Values())...)

	return &Results{
		Entity:     fRes.Entity,
		Code:       fRes.Code,
		Historical: hist,
		Forecast:   fRes,
		Cumulative: cum,
		Summary:    aggregate.Summarize(hist.Y, fRes.Values()),
	}
}

// Horizon returns the number of forecast periods
func (r *Results) Horizon() int {
	if r == nil || r.Forecast == nil {
		return 0
	}
	return len(r.Forecast.Points)
}

// T returns the historical dates followed by the forecast dates
func (r *Results) T() []time.Time {
	t := make([]time.Time, 0, r.Historical.Len()+r.Horizon())
	t = append(t, r.Historical.T...)
	return append(t, r.Forecast.Dates()...)
}

// HistoricalCumulative returns the running total over the observed periods
func (r *Results) HistoricalCumulative() []float64 {
	return r.Cumulative[:r.Historical.Len()]
}

// ForecastCumulative returns the running total over the forecast periods
func (r *Results) ForecastCumulative() []float64 {
	return r.Cumulative[r.Historical.Len():]
}

// DisplayCumulative returns the running totals rounded to whole registrations
func (r *Results) DisplayCumulative() []int64 {
	return aggregate.Round(r.Cumulative)
}

// GrowthSentence describes the expected change in cumulative registrations over the horizon
func (r *Results) GrowthSentence() string {
	if !r.Summary.GrowthDefined {
		return fmt.Sprintf(
			"Historical EV total for %s is zero, so the forecast change can't be computed.",
			r.Entity,
		)
	}
	return fmt.Sprintf(
		"Cumulative EV adoption in %s is expected to %s by %.2f%% over the next %d months.",
		r.Entity, r.Summary.Trend(), r.Summary.GrowthPct, r.Horizon(),
	)
}

// CompareSentence summarizes the growth of each compared entity in a single line
func CompareSentence(results []*Results) string {
	if len(results) == 0 {
		return ""
	}
	summaries := make([]string, 0, len(results))
	for _, r := range results {
		growth := r.Summary.String()
		if !r.Summary.GrowthDefined {
			growth += " (no historical data)"
		}
		summaries = append(summaries, fmt.Sprintf("%s: %s", r.Entity, growth))
	}
	return fmt.Sprintf(
		"Forecasted EV adoption growth over the next %d months: %s",
		results[0].Horizon(), strings.Join(summaries, " | "),
	)
}

// TablePrint writes the forecast periods with their rounded values and running totals
func (r *Results) TablePrint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Forecast: %s (code %d)\n", r.Entity, r.Code); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Historical Total: %.0f\n", r.Summary.HistoricalTotal); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Forecast Total: %.0f\n", r.Summary.ForecastTotal); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Growth: %s\n", r.Summary); err != nil {
		return err
	}

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "  Date\tPeriod\tPredicted\tCumulative\t\n"); err != nil {
		return err
	}
	display := aggregate.Round(r.ForecastCumulative())
	for i, p := range r.Forecast.Points {
		if _, err := fmt.Fprintf(
			tbl, "  %s\t%d\t%d\t%d\t\n",
			p.Date.Format(time.DateOnly), p.PeriodIndex, p.Rounded(), display[i],
		); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
