package forecaster

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// emptyPoint is how echarts marks a gap in a line
const emptyPoint = "-"

func formatDates(t []time.Time) []string {
	out := make([]string, len(t))
	for i, v := range t {
		out[i] = v.Format(time.DateOnly)
	}
	return out
}

func newCumulativeLine(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    title,
				Subtitle: subtitle,
			},
		),
		charts.WithTooltipOpts(
			opts.Tooltip{
				Show:    opts.Bool(true),
				Trigger: "axis",
			},
		),
		charts.WithLegendOpts(
			opts.Legend{
				Show: opts.Bool(true),
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Name: "Date",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: "Cumulative EV Count",
			},
		),
	)
	return line
}

// LineCumulative generates an echart line chart of the cumulative registrations of an entity with
// the historical segment solid and the forecast segment dashed. The forecast segment starts at
// the last historical point so the two lines join.
func LineCumulative(res *Results) *charts.Line {
	line := newCumulativeLine(
		fmt.Sprintf("Cumulative EV Trend - %s", res.Entity),
		res.GrowthSentence(),
	)

	n := res.Historical.Len()
	display := res.DisplayCumulative()
	lineDataHist := make([]opts.LineData, 0, len(display))
	lineDataForecast := make([]opts.LineData, 0, len(display))
	for i, v := range display {
		if i < n {
			lineDataHist = append(lineDataHist, opts.LineData{Value: v})
		} else {
			lineDataHist = append(lineDataHist, opts.LineData{Value: emptyPoint})
		}
		if i < n-1 {
			lineDataForecast = append(lineDataForecast, opts.LineData{Value: emptyPoint})
		} else {
			lineDataForecast = append(lineDataForecast, opts.LineData{Value: v})
		}
	}

	line.SetXAxis(formatDates(res.T())).
		AddSeries("Historical", lineDataHist,
			charts.WithLineStyleOpts(opts.LineStyle{Width: 2}),
		).
		AddSeries("Forecast", lineDataForecast,
			charts.WithLineStyleOpts(opts.LineStyle{Width: 2, Type: "dashed"}),
		)
	return line
}

// LineComparison generates an echart multi-line chart with one cumulative line per entity. The
// x axis is the union of every entity's dates and an entity without a value on a date leaves a
// gap.
func LineComparison(results []*Results) *charts.Line {
	line := newCumulativeLine("EV Adoption Trends: Historical + Forecast", CompareSentence(results))

	dateSet := make(map[time.Time]struct{})
	for _, res := range results {
		for _, t := range res.T() {
			dateSet[t] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for t := range dateSet {
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	line.SetXAxis(formatDates(dates))
	for _, res := range results {
		byDate := make(map[time.Time]int64, len(res.Cumulative))
		display := res.DisplayCumulative()
		for i, t := range res.T() {
			byDate[t] = display[i]
		}

		lineData := make([]opts.LineData, 0, len(dates))
		for _, t := range dates {
			v, exists := byDate[t]
			if !exists {
				lineData = append(lineData, opts.LineData{Value: emptyPoint})
				continue
			}
			lineData = append(lineData, opts.LineData{Value: v})
		}
		line.AddSeries(res.Entity, lineData, charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	}
	return line
}

// PlotForecast renders an html page with the cumulative forecast of an entity
func PlotForecast(w io.Writer, res *Results) error {
	page := components.NewPage().SetPageTitle(fmt.Sprintf("EV Forecast - %s", res.Entity))
	page.AddCharts(LineCumulative(res))
	return page.Render(w)
}

// PlotComparison renders an html page comparing the cumulative forecasts of several entities
// followed by each entity's own forecast
func PlotComparison(w io.Writer, results []*Results) error {
	page := components.NewPage().SetPageTitle("EV Forecast Comparison")
	page.AddCharts(LineComparison(results))
	for _, res := range results {
		page.AddCharts(LineCumulative(res))
	}
	return page.Render(w)
}
