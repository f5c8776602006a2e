package forecast

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-evforecaster/feature"
)

const (
	DefaultHorizon    = 36
	DefaultWindowSize = 6
)

var (
	ErrInvalidHorizon    = errors.New("horizon must be at least 1")
	ErrInvalidWindowSize = errors.New("window size is too small")
)

// Options configures the recursive forecast
type Options struct {
	// Horizon is the number of monthly steps to forecast
	Horizon int `json:"horizon"`

	// WindowSize is the number of recent values and cumulative totals carried between steps.
	// It is also the minimum amount of history an entity needs.
	WindowSize int `json:"window_size"`
}

// NewDefaultOptions returns a 36 month forecast carrying a 6 month window
func NewDefaultOptions() *Options {
	return &Options{
		Horizon:    DefaultHorizon,
		WindowSize: DefaultWindowSize,
	}
}

// Validate returns a copy of the options with zero values defaulted
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	out := *o
	if out.Horizon == 0 {
		out.Horizon = DefaultHorizon
	}
	if out.WindowSize == 0 {
		out.WindowSize = DefaultWindowSize
	}
	if out.Horizon < 1 {
		return nil, fmt.Errorf("got %d, %w", out.Horizon, ErrInvalidHorizon)
	}
	if out.WindowSize < feature.NumLags {
		return nil, fmt.Errorf("got %d, need at least %d, %w", out.WindowSize, feature.NumLags, ErrInvalidWindowSize)
	}
	return &out, nil
}
