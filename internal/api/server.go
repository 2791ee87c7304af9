package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"gridpulse/app"
	"gridpulse/internal"
)

// Server exposes the analytic operations over HTTP. It owns the router;
// all domain logic stays in the service.
type Server struct {
	router  *chi.Mux
	service *app.AnalyticsService
	logger  *internal.Logger
}

// NewServer creates the HTTP server around an analytics service
func NewServer(service *app.AnalyticsService, corsOrigins []string, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		logger:  logger,
	}
	s.setupMiddleware(corsOrigins)
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware(corsOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/docs", s.handleDocs)

	s.router.Get("/load/hourly", s.handleHourlyLoad)
	s.router.Get("/load/comparison", s.handleLoadComparison)
	s.router.Get("/forecast/metrics", s.handleForecastMetrics)
	s.router.Get("/weather/heatwaves", s.handleHeatwaves)
	s.router.Get("/weather/precipitation", s.handlePrecipitationImpact)
	s.router.Get("/load/peak-load-extreme-heat", s.handleExtremeHeat)
	s.router.Get("/load/outliers", s.handleOutliers)
	s.router.Get("/load/outliers/weather-conditions", s.handleOutlierWeather)
	s.router.Get("/export/load.xlsx", s.handleExportLoad)
}

// Router returns the configured handler, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// Start runs the HTTP server on the given port.
func (s *Server) Start(port string) error {
	s.logger.Info("listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}
