// Package forecaster forecasts cumulative EV registrations per county by recursively applying a
// one step regression model, and presents the results as tables, summaries, and charts.
package forecaster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aouyang1/go-evforecaster/dataset"
	"github.com/aouyang1/go-evforecaster/forecast"
	"github.com/aouyang1/go-evforecaster/model"
)

var (
	ErrNoDataset        = errors.New("no dataset or uninitialized")
	ErrNoEntities       = errors.New("no entities to compare")
	ErrTooManyEntities  = errors.New("too many entities to compare")
	ErrDuplicateEntity  = errors.New("entity listed more than once")
	ErrNoForecasterInit = errors.New("forecaster is not initialized")
)

// Forecaster forecasts entities of a loaded dataset with a shared predictor. The dataset and
// predictor are only read, so a Forecaster can serve concurrent callers.
type Forecaster struct {
	opt      *Options
	data     *dataset.Dataset
	forecast *forecast.Forecast
}

// New creates a new forecaster over the dataset using the predictor. If no options are provided
// a default is used.
func New(data *dataset.Dataset, predictor model.Predictor, opt *Options) (*Forecaster, error) {
	if data == nil {
		return nil, ErrNoDataset
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	f, err := forecast.New(predictor, opt.ForecastOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize forecast, %w", err)
	}
	return &Forecaster{
		opt:      opt,
		data:     data,
		forecast: f,
	}, nil
}

// Options returns a copy of the forecaster options
func (f *Forecaster) Options() Options {
	opt := *f.opt
	fOpt := *f.opt.ForecastOptions
	opt.ForecastOptions = &fOpt
	return opt
}

// Entities returns the sorted names of every entity that can be forecast
func (f *Forecaster) Entities() []string {
	if f == nil || f.data == nil {
		return nil
	}
	return f.data.Entities()
}

// Forecast runs the forecast for a single entity. An entity missing from the dataset is
// reported before any prediction is attempted.
func (f *Forecaster) Forecast(ctx context.Context, entity string) (*Results, error) {
	if f == nil || f.forecast == nil {
		return nil, ErrNoForecasterInit
	}
	e, seed, err := f.seed(entity)
	if err != nil {
		return nil, err
	}
	return f.run(ctx, e, seed)
}

// seed looks up an entity and builds its forecast seed without calling the predictor
func (f *Forecaster) seed(entity string) (*dataset.Entity, forecast.Seed, error) {
	e, err := f.data.Entity(entity)
	if err != nil {
		return nil, forecast.Seed{}, err
	}
	seed, err := forecast.SeedFromEntity(e, f.opt.ForecastOptions.WindowSize)
	if err != nil {
		return nil, forecast.Seed{}, err
	}
	return e, seed, nil
}

func (f *Forecaster) run(ctx context.Context, e *dataset.Entity, seed forecast.Seed) (*Results, error) {
	start := time.Now()
	fRes, err := f.forecast.Run(ctx, seed)
	if err != nil {
		return nil, err
	}
	slog.Debug("forecast complete", "entity", seed.Entity, "horizon", len(fRes.Points), "duration", time.Since(start))

	return newResults(e.Series.Copy(), fRes), nil
}

// Compare forecasts each entity in order with independent state. Every entity is looked up and
// seeded before any prediction, and the first failure aborts the whole comparison.
func (f *Forecaster) Compare(ctx context.Context, entities []string) ([]*Results, error) {
	if f == nil || f.forecast == nil {
		return nil, ErrNoForecasterInit
	}
	if len(entities) == 0 {
		return nil, ErrNoEntities
	}
	if len(entities) > f.opt.MaxCompare {
		return nil, fmt.Errorf("got %d, max %d, %w", len(entities), f.opt.MaxCompare, ErrTooManyEntities)
	}
	seen := make(map[string]struct{}, len(entities))
	for _, name := range entities {
		if _, exists := seen[name]; exists {
			return nil, fmt.Errorf("%s, %w", name, ErrDuplicateEntity)
		}
		seen[name] = struct{}{}
	}

	ents := make([]*dataset.Entity, 0, len(entities))
	seeds := make([]forecast.Seed, 0, len(entities))
	for _, name := range entities {
		e, seed, err := f.seed(name)
		if err != nil {
			return nil, fmt.Errorf("unable to seed %s for comparison, %w", name, err)
		}
		ents = append(ents, e)
		seeds = append(seeds, seed)
	}

	results := make([]*Results, 0, len(entities))
	for i, seed := range seeds {
		res, err := f.run(ctx, ents[i], seed)
		if err != nil {
			return nil, fmt.Errorf("unable to forecast %s for comparison, %w", seed.Entity, err)
		}
		results = append(results, res)
	}
	return results, nil
}
