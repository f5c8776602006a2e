// Package linearmodel contains the ordinary least squares regression used to derive trend
// features from short windows of observations
package linearmodel

import "errors"

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrTargetLenMismatch  = errors.New("target length does not match target rows")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrInsufficientPoints = errors.New("need at least 2 points to fit a line")
	ErrSingularFit        = errors.New("design matrix is rank deficient")
)
