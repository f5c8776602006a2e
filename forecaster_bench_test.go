package forecaster

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aouyang1/go-evforecaster/feature"
	"github.com/aouyang1/go-evforecaster/model"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
)

var benchForecastRes *Results

func newBenchForecaster(b *testing.B) *Forecaster {
	m, err := model.NewLinear("bench", 12.5, map[string]float64{
		feature.LabelMonthsSinceStart: 0.1,
		feature.LabelLag1:             0.7,
		feature.LabelLag2:             0.1,
		feature.LabelRollMean3:        0.15,
		feature.LabelPctChange1:       3.2,
		feature.LabelPctChange3:       1.1,
		feature.LabelGrowthSlope:      0.02,
	})
	if err != nil {
		panic(err)
	}

	f, err := New(testDataset(b), m, nil)
	if err != nil {
		panic(err)
	}
	return f
}

func BenchmarkForecast(b *testing.B) {
	f := newBenchForecaster(b)
	ctx := context.Background()

	var err error
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchForecastRes, err = f.Forecast(ctx, "King")
		if err != nil {
			panic(err)
		}
	}

	bytes, err := json.MarshalIndent(benchForecastRes, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(b.TempDir(), "benchmark_forecast.json"), bytes, 0o644); err != nil {
		panic(err)
	}
}

func BenchmarkCompare(b *testing.B) {
	f := newBenchForecaster(b)
	ctx := context.Background()
	entities := []string{"King", "Pierce", "Garfield"}

	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(b.TempDir())).Stop()
	for i := 0; i < b.N; i++ {
		if _, err := f.Compare(ctx, entities); err != nil {
			panic(err)
		}
	}
}
