package forecaster

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-evforecaster/forecast"
)

const DefaultMaxCompare = 3

var ErrInvalidMaxCompare = errors.New("max compare must be at least 1")

// Options configures the forecaster
type Options struct {
	ForecastOptions *forecast.Options `json:"forecast_options"`

	// MaxCompare is the most entities a single comparison may include
	MaxCompare int `json:"max_compare"`
}

// NewDefaultOptions returns a 36 month forecast comparing at most 3 entities
func NewDefaultOptions() *Options {
	return &Options{
		ForecastOptions: forecast.NewDefaultOptions(),
		MaxCompare:      DefaultMaxCompare,
	}
}

// Validate returns a copy of the options with zero values defaulted
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	out := *o
	if out.MaxCompare == 0 {
		out.MaxCompare = DefaultMaxCompare
	}
	if out.MaxCompare < 1 {
		return nil, fmt.Errorf("got %d, %w", out.MaxCompare, ErrInvalidMaxCompare)
	}
	fOpt, err := out.ForecastOptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid forecast options, %w", err)
	}
	out.ForecastOptions = fOpt
	return &out, nil
}
