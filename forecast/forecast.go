// Package forecast turns a single step regression model into a multi month forecast by feeding
// every prediction back in as the most recent lag for the next step.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aouyang1/go-evforecaster/dataset"
	"github.com/aouyang1/go-evforecaster/feature"
	"github.com/aouyang1/go-evforecaster/model"
	"github.com/aouyang1/go-evforecaster/timedataset"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoPredictor         = errors.New("no predictor")
	ErrInsufficientHistory = errors.New("insufficient history to seed forecast")
	ErrNonFinitePrediction = errors.New("prediction is not a finite number")
)

// Seed is the state a forecast starts from
type Seed struct {
	Entity      string    `json:"entity"`
	Code        int       `json:"code"`
	PeriodIndex int       `json:"period_index"`
	LastDate    time.Time `json:"last_date"`
	History     []float64 `json:"history"`
}

// SeedFromEntity seeds a forecast from the last windowSize observations of an entity
func SeedFromEntity(e *dataset.Entity, windowSize int) (Seed, error) {
	hist, err := e.History(windowSize)
	if err != nil {
		return Seed{}, fmt.Errorf("%w, %w", ErrInsufficientHistory, err)
	}
	return Seed{
		Entity:      e.Name,
		Code:        e.Code,
		PeriodIndex: e.MaxPeriodIndex(),
		LastDate:    e.LastDate(),
		History:     hist,
	}, nil
}

// Point is the forecast for a single future period. Value carries the full precision of the
// model output.
type Point struct {
	Date        time.Time `json:"date"`
	PeriodIndex int       `json:"period_index"`
	Value       float64   `json:"value"`
}

// Rounded returns the value rounded to the nearest whole count for display
func (p Point) Rounded() int64 {
	return int64(math.Round(p.Value))
}

// Result is the output of a forecast run
type Result struct {
	Entity   string           `json:"entity"`
	Code     int              `json:"code"`
	Points   []Point          `json:"points"`
	Features []feature.Vector `json:"features"`
}

// Values returns the predicted values in order
func (r *Result) Values() []float64 {
	vals := make([]float64, len(r.Points))
	for i, p := range r.Points {
		vals[i] = p.Value
	}
	return vals
}

// Total returns the sum of all predicted values
func (r *Result) Total() float64 {
	return floats.Sum(r.Values())
}

// Dates returns the forecast dates in order
func (r *Result) Dates() []time.Time {
	t := make([]time.Time, len(r.Points))
	for i, p := range r.Points {
		t[i] = p.Date
	}
	return t
}

// Forecast runs the recursive forecast against a predictor. A Forecast carries no per entity
// state and can be reused across entities.
type Forecast struct {
	opt       *Options
	predictor model.Predictor
}

// New creates a new forecast with the given predictor and options. If no options are provided
// a default is used.
func New(predictor model.Predictor, opt *Options) (*Forecast, error) {
	if predictor == nil {
		return nil, ErrNoPredictor
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Forecast{
		opt:       opt,
		predictor: predictor,
	}, nil
}

// Options returns a copy of the forecast options
func (f *Forecast) Options() Options {
	return *f.opt
}

// Run forecasts Horizon months past the seed. Each step derives features from the current
// windows, predicts, then pushes the unrounded prediction and the running cumulative total into
// the windows for the next step. Any prediction error aborts the run.
func (f *Forecast) Run(ctx context.Context, seed Seed) (*Result, error) {
	if f == nil || f.predictor == nil {
		return nil, ErrNoPredictor
	}
	if len(seed.History) < f.opt.WindowSize {
		return nil, fmt.Errorf(
			"%s has %d periods, need %d, %w",
			seed.Entity, len(seed.History), f.opt.WindowSize, ErrInsufficientHistory,
		)
	}

	hist := timedataset.Series(seed.History).Tail(f.opt.WindowSize)
	values := feature.NewWindow(f.opt.WindowSize, hist...)
	cumulative := feature.NewWindow(f.opt.WindowSize, hist.CumSum()...)

	res := &Result{
		Entity:   seed.Entity,
		Code:     seed.Code,
		Points:   make([]Point, 0, f.opt.Horizon),
		Features: make([]feature.Vector, 0, f.opt.Horizon),
	}

	periodIndex := seed.PeriodIndex
	for i := 1; i <= f.opt.Horizon; i++ {
		date := timedataset.AddMonths(seed.LastDate, i)
		periodIndex++

		vec, err := feature.Derive(values, cumulative, periodIndex, seed.Code)
		if err != nil {
			return nil, fmt.Errorf("unable to derive features for %s step %d, %w", seed.Entity, i, err)
		}

		pred, err := f.predictor.Predict(ctx, vec)
		if err != nil {
			return nil, fmt.Errorf("unable to predict %s at %s, %w", seed.Entity, date.Format(time.DateOnly), err)
		}
		if math.IsNaN(pred) || math.IsInf(pred, 0) {
			return nil, fmt.Errorf("%s at %s got %f, %w", seed.Entity, date.Format(time.DateOnly), pred, ErrNonFinitePrediction)
		}

		res.Points = append(res.Points, Point{
			Date:        date,
			PeriodIndex: periodIndex,
			Value:       pred,
		})
		res.Features = append(res.Features, vec)

		values.Push(pred)
		cumulative.Push(cumulative.Last() + pred)
	}
	return res, nil
}
