package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aouyang1/go-evforecaster/feature"
	"github.com/goccy/go-json"
)

const DefaultRemoteTimeout = 10 * time.Second

var (
	ErrRemoteStatus = errors.New("unexpected status code from model server")
	ErrNoRemoteURL  = errors.New("no model server url")
	ErrNoPrediction = errors.New("model server response has no prediction")
)

// Remote calls an external model server for every prediction. The feature vector is posted to
// <baseURL>/predict as a single json record keyed by feature label and the server responds
// with {"prediction": <float>}.
type Remote struct {
	baseURL string
	client  *http.Client
}

type remoteResponse struct {
	Prediction *float64 `json:"prediction"`
}

// NewRemote creates a remote predictor. If client is nil a client with DefaultRemoteTimeout
// is used.
func NewRemote(baseURL string, client *http.Client) (*Remote, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, ErrNoRemoteURL
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultRemoteTimeout}
	}
	return &Remote{
		baseURL: baseURL,
		client:  client,
	}, nil
}

// Predict posts the feature vector to the model server
func (r *Remote) Predict(ctx context.Context, v feature.Vector) (float64, error) {
	if r == nil || r.client == nil {
		return 0, ErrUninitializedPredictor
	}

	body, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("unable to encode feature vector, %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("unable to build predict request, %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("unable to reach model server, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("got %d, %w", resp.StatusCode, ErrRemoteStatus)
	}

	var res remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return 0, fmt.Errorf("unable to decode model server response, %w", err)
	}
	if res.Prediction == nil {
		return 0, ErrNoPrediction
	}
	return *res.Prediction, nil
}
