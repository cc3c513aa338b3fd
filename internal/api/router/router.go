package router

import (
	_ "embed"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"restmvc/internal/api/beer"
	"restmvc/internal/api/customer"
	"restmvc/internal/pkg/cache"
	"restmvc/internal/pkg/logger"
	"restmvc/internal/pkg/middleware"
)

//go:embed openapi.json
var openAPIDoc []byte

// Deps reúne os handlers e a infraestrutura já montados que o roteador registra.
type Deps struct {
	BeerHandler     *beer.Handler
	CustomerHandler *customer.Handler
	Logger          logger.Logger

	// RateLimitCache liga o rate limiter quando não for nil.
	RateLimitCache       cache.Client
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// NewRouter registra todas as rotas e envolve o mux na cadeia de middlewares.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /ping", PingHandler)

	// API v1
	deps.BeerHandler.Register(mux)
	deps.CustomerHandler.Register(mux)

	// Documentação
	mux.HandleFunc("GET /swagger/doc.json", DocHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var h http.Handler = mux
	if deps.RateLimitCache != nil {
		h = middleware.RateLimiter(deps.RateLimitCache, deps.RateLimitMaxRequests, deps.RateLimitPeriod, deps.Logger)(h)
	}
	h = middleware.RequestLogger(deps.Logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recover(deps.Logger)(h)

	return h
}

// PingHandler responde ao health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// DocHandler serve o documento OpenAPI lido pelo swagger UI.
func DocHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPIDoc)
}
