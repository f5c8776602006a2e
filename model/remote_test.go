package model

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aouyang1/go-evforecaster/feature"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemote(t *testing.T) {
	_, err := NewRemote("", nil)
	assert.ErrorIs(t, err, ErrNoRemoteURL)

	r, err := NewRemote("http://localhost:9000/", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", r.baseURL)
	assert.Equal(t, DefaultRemoteTimeout, r.client.Timeout)
}

func TestRemotePredict(t *testing.T) {
	var received map[string]float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/predict" || req.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(req.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prediction": 160.4}`))
	}))
	defer srv.Close()

	r, err := NewRemote(srv.URL, srv.Client())
	require.NoError(t, err)

	v := feature.Vector{MonthsSinceStart: 11, CountyEncoded: 3, Lag1: 150}
	res, err := r.Predict(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, 160.4, res)
	assert.Equal(t, v.Decode(), received)
}

func TestRemotePredictErrors(t *testing.T) {
	testData := map[string]struct {
		status int
		body   string
		err    error
	}{
		"server error": {
			status: http.StatusInternalServerError,
			err:    ErrRemoteStatus,
		},
		"missing prediction": {
			status: http.StatusOK,
			body:   `{"value": 1}`,
			err:    ErrNoPrediction,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(td.status)
				_, _ = w.Write([]byte(td.body))
			}))
			defer srv.Close()

			r, err := NewRemote(srv.URL, srv.Client())
			require.NoError(t, err)

			_, err = r.Predict(context.Background(), feature.Vector{})
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestRemotePredictCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"prediction": 1}`))
	}))
	defer srv.Close()

	r, err := NewRemote(srv.URL, srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Predict(ctx, feature.Vector{})
	assert.ErrorIs(t, err, context.Canceled)
}
