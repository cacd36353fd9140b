package http

import (
	"log/slog"
	"net/http"

	"shoporders/internal/adapters/in/http/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig lists what NewRouter mounts. Nil optional parts are skipped.
type RouterConfig struct {
	API    api.ServerInterface
	Logger *slog.Logger

	// Streaming serves GET /ws.
	Streaming echo.HandlerFunc
	// Metrics instruments every route; Gatherer is exposed at GET /metrics.
	Metrics  *Metrics
	Gatherer prometheus.Gatherer
	// SwaggerUI serves GET /swagger/* from the document registered with swag.
	SwaggerUI bool
}

// NewRouter builds the echo instance with the API routing table and the operational routes.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	if cfg.SwaggerUI {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}
	if cfg.Streaming != nil {
		e.GET("/ws", cfg.Streaming)
	}

	api.RegisterHandlers(e, cfg.API)
	return e
}
