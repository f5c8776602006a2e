// Command evforecast serves county EV registration forecasts over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	forecaster "github.com/aouyang1/go-evforecaster"
	"github.com/aouyang1/go-evforecaster/dataset"
	"github.com/aouyang1/go-evforecaster/forecast"
	"github.com/aouyang1/go-evforecaster/internal/config"
	"github.com/aouyang1/go-evforecaster/internal/server"
	"github.com/aouyang1/go-evforecaster/model"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("evforecast failed", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("unable to load config, %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ds, err := dataset.LoadFile(cfg.DataPath, cfg.DataSheet, nil)
	if err != nil {
		return fmt.Errorf("unable to load dataset %s, %w", cfg.DataPath, err)
	}
	slog.Info("loaded dataset", "path", cfg.DataPath, "counties", ds.Len())

	predictor, err := newPredictor(cfg)
	if err != nil {
		return err
	}

	f, err := forecaster.New(ds, predictor, &forecaster.Options{
		ForecastOptions: &forecast.Options{Horizon: cfg.Horizon},
		MaxCompare:      cfg.MaxCompare,
	})
	if err != nil {
		return fmt.Errorf("unable to initialize forecaster, %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(f)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, cfg.Addr())
}

func newPredictor(cfg *config.Config) (model.Predictor, error) {
	if cfg.ModelURL != "" {
		r, err := model.NewRemote(cfg.ModelURL, nil)
		if err != nil {
			return nil, fmt.Errorf("unable to initialize remote predictor, %w", err)
		}
		slog.Info("using remote predictor", "url", cfg.ModelURL)
		return r, nil
	}

	m, err := model.LoadFile(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load model %s, %w", cfg.ModelPath, err)
	}
	slog.Info("loaded model", "path", cfg.ModelPath, "name", m.Name, "equation", m.ModelEq())
	return m, nil
}
