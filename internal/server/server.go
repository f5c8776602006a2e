// Package server exposes forecasts over HTTP as JSON and as rendered chart pages.
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	forecaster "github.com/aouyang1/go-evforecaster"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DefaultShutdownTimeout = 10 * time.Second
)

var ErrNoForecaster = errors.New("no forecaster")

// Server routes requests to a forecaster. The forecaster is shared read only across requests.
type Server struct {
	f      *forecaster.Forecaster
	router *gin.Engine

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a server with its routes and metrics registered
func New(f *forecaster.Forecaster) (*Server, error) {
	if f == nil {
		return nil, ErrNoForecaster
	}

	s := &Server{
		f:        f,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "evforecast",
				Name:      "requests_total",
				Help:      "HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "evforecast",
				Name:      "forecast_duration_seconds",
				Help:      "Time spent forecasting per request",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
	}
	s.registry.MustRegister(
		s.requests,
		s.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := gin.New()
	r.Use(gin.Recovery(), s.observe(), cors.Default())

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/counties", s.counties)
		api.GET("/forecast/:county", s.forecast)
		api.GET("/compare", s.compare)
	}

	r.GET("/forecast/:county", s.forecastPage)
	r.GET("/compare", s.comparePage)

	s.router = r
	return s, nil
}

// Handler returns the http handler serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until the context is canceled then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// observe counts every request and logs it once handled
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		s.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		slog.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
		)
	}
}

// renderJSON writes v with the same encoder used for the model artifacts
func renderJSON(c *gin.Context, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("unable to encode response", "path", c.Request.URL.Path, "error", err.Error())
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

func renderError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Warn("request failed", "path", c.Request.URL.Path, "status", status, "error", err.Error())
	}
	renderJSON(c, status, errorResponse{Error: err.Error()})
}

func renderHTML(c *gin.Context, plot func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := plot(&buf); err != nil {
		renderError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) timed(mode string) func() {
	start := time.Now()
	return func() {
		s.duration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}
}
