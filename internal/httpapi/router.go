package httpapi

import (
	"fmt"
	"net/http"

	"chat_proxy/internal/config"
	"chat_proxy/internal/logging"
	"chat_proxy/internal/metrics"
	"chat_proxy/internal/middleware"
	"chat_proxy/internal/providers"
)

// Dependencies aggregates the services the HTTP layer needs. Everything in
// here is built once at startup and read-only afterwards, so concurrent
// handlers need no synchronization.
type Dependencies struct {
	Config        *config.Config
	Provider      providers.Provider
	Metrics       *metrics.Metrics
	RequestLogger *logging.RequestLogger
}

// NewRouter creates an HTTP router with all dependencies wired up.
func NewRouter(cfg *config.Config) (*http.ServeMux, *Dependencies, error) {
	provider, err := providers.New(cfg.Provider)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize provider: %w", err)
	}

	requestLogger, err := logging.NewRequestLogger(
		cfg.RequestLogger.FilePathTemplate,
		cfg.RequestLogger.MaxSize,
		cfg.RequestLogger.MaxFiles,
		cfg.RequestLogger.BufferSize,
		cfg.RequestLogger.FlushInterval,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize request logger: %w", err)
	}

	deps := &Dependencies{
		Config:        cfg,
		Provider:      provider,
		Metrics:       metrics.New(),
		RequestLogger: requestLogger,
	}

	mux := http.NewServeMux()
	registerRoutes(mux, deps, cfg)

	return mux, deps, nil
}

func registerRoutes(mux *http.ServeMux, deps *Dependencies, cfg *config.Config) {
	cors := middleware.CORSMiddleware(cfg.CORS.AllowedOrigins)

	// Chat proxy endpoint
	mux.Handle("/chat", cors(http.HandlerFunc(deps.handleChat)))

	// Liveness / configuration status - public
	mux.Handle("/healthz", cors(http.HandlerFunc(deps.handleHealthz)))

	// Metrics endpoint - public
	mux.Handle("/metrics", deps.Metrics.HTTPHandler())

	// Chat page and its assets
	mux.HandleFunc("/", deps.handleIndex)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Static.Dir))))
}
