// Package model is the boundary to the externally trained regression model that maps one
// feature vector to the next period's registration count
package model

import (
	"context"
	"errors"

	"github.com/aouyang1/go-evforecaster/feature"
)

var (
	ErrUnknownFeature         = errors.New("unknown feature label")
	ErrDuplicateFeature       = errors.New("duplicate feature label")
	ErrNoCoefficients         = errors.New("model has no coefficients")
	ErrUninitializedPredictor = errors.New("uninitialized predictor")
)

// Predictor returns a single point estimate for one feature vector
type Predictor interface {
	Predict(ctx context.Context, v feature.Vector) (float64, error)
}

// PredictorFunc adapts a plain function into a Predictor
type PredictorFunc func(ctx context.Context, v feature.Vector) (float64, error)

// Predict calls f
func (f PredictorFunc) Predict(ctx context.Context, v feature.Vector) (float64, error) {
	if f == nil {
		return 0, ErrUninitializedPredictor
	}
	return f(ctx, v)
}
