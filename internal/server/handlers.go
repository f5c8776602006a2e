package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	forecaster "github.com/aouyang1/go-evforecaster"
	"github.com/aouyang1/go-evforecaster/aggregate"
	"github.com/aouyang1/go-evforecaster/dataset"
	"github.com/aouyang1/go-evforecaster/forecast"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

type historicalPoint struct {
	Date       time.Time `json:"date"`
	Value      float64   `json:"value"`
	Cumulative int64     `json:"cumulative"`
}

type forecastPoint struct {
	Date        time.Time `json:"date"`
	PeriodIndex int       `json:"period_index"`
	Value       float64   `json:"value"`
	Rounded     int64     `json:"rounded"`
	Cumulative  int64     `json:"cumulative"`
}

type forecastResponse struct {
	County     string            `json:"county"`
	Code       int               `json:"code"`
	Horizon    int               `json:"horizon"`
	Historical []historicalPoint `json:"historical"`
	Forecast   []forecastPoint   `json:"forecast"`
	Summary    aggregate.Summary `json:"summary"`
	Sentence   string            `json:"sentence"`
}

type compareResponse struct {
	Counties []forecastResponse `json:"counties"`
	Sentence string             `json:"sentence"`
}

func newForecastResponse(res *forecaster.Results) forecastResponse {
	display := res.DisplayCumulative()
	n := res.Historical.Len()

	hist := make([]historicalPoint, 0, n)
	for i := 0; i < n; i++ {
		hist = append(hist, historicalPoint{
			Date:       res.Historical.T[i],
			Value:      res.Historical.Y[i],
			Cumulative: display[i],
		})
	}

	points := make([]forecastPoint, 0, res.Horizon())
	for i, p := range res.Forecast.Points {
		points = append(points, forecastPoint{
			Date:        p.Date,
			PeriodIndex: p.PeriodIndex,
			Value:       p.Value,
			Rounded:     p.Rounded(),
			Cumulative:  display[n+i],
		})
	}

	return forecastResponse{
		County:     res.Entity,
		Code:       res.Code,
		Horizon:    res.Horizon(),
		Historical: hist,
		Forecast:   points,
		Summary:    res.Summary,
		Sentence:   res.GrowthSentence(),
	}
}

// statusFor maps forecast errors onto http status codes. Anything unrecognized is treated as a
// failure of the predictor.
// StatusClientClosedRequest reports a request abandoned by the client before a response
const StatusClientClosedRequest = 499

func statusFor(err error) int {
	switch {
	case errors.Is(err, dataset.ErrUnknownEntity):
		return http.StatusNotFound
	case errors.Is(err, forecast.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, forecaster.ErrNoEntities),
		errors.Is(err, forecaster.ErrTooManyEntities),
		errors.Is(err, forecaster.ErrDuplicateEntity):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) health(c *gin.Context) {
	renderJSON(c, http.StatusOK, gin.H{
		"status":   "healthy",
		"counties": len(s.f.Entities()),
	})
}

func (s *Server) counties(c *gin.Context) {
	renderJSON(c, http.StatusOK, gin.H{
		"counties": s.f.Entities(),
	})
}

func (s *Server) forecast(c *gin.Context) {
	done := s.timed("forecast")
	res, err := s.f.Forecast(c.Request.Context(), c.Param("county"))
	done()
	if err != nil {
		renderError(c, err)
		return
	}
	renderJSON(c, http.StatusOK, newForecastResponse(res))
}

func (s *Server) compare(c *gin.Context) {
	done := s.timed("compare")
	results, err := s.f.Compare(c.Request.Context(), c.QueryArray("county"))
	done()
	if err != nil {
		renderError(c, err)
		return
	}

	resp := compareResponse{
		Counties: make([]forecastResponse, 0, len(results)),
		Sentence: forecaster.CompareSentence(results),
	}
	for _, res := range results {
		resp.Counties = append(resp.Counties, newForecastResponse(res))
	}
	renderJSON(c, http.StatusOK, resp)
}

func (s *Server) forecastPage(c *gin.Context) {
	done := s.timed("forecast")
	res, err := s.f.Forecast(c.Request.Context(), c.Param("county"))
	done()
	if err != nil {
		renderError(c, err)
		return
	}
	renderHTML(c, func(buf *bytes.Buffer) error {
		return forecaster.PlotForecast(buf, res)
	})
}

func (s *Server) comparePage(c *gin.Context) {
	done := s.timed("compare")
	results, err := s.f.Compare(c.Request.Context(), c.QueryArray("county"))
	done()
	if err != nil {
		renderError(c, err)
		return
	}
	renderHTML(c, func(buf *bytes.Buffer) error {
		return forecaster.PlotComparison(buf, results)
	})
}
