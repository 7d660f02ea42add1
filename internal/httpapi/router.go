package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"worldgen-engine/internal/cache"
	"worldgen-engine/internal/events"
	"worldgen-engine/internal/store"
)

// Deps bundles the optional collaborators the router wires into handlers.
type Deps struct {
	Store     *store.Store
	Cache     *cache.Cache
	Events    *events.Publisher
	JWTSecret []byte
}

// NewRouter assembles the generation API's chi router: CORS, request
// logging, metrics, and the generation endpoint, which is guarded by
// bearer auth when deps.JWTSecret is non-empty.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Correlation-ID"},
		AllowCredentials: false,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", MetricsHandler())

	gen := &Generator{Store: deps.Store, Cache: deps.Cache, Events: deps.Events}

	r.Group(func(r chi.Router) {
		if len(deps.JWTSecret) > 0 {
			r.Use(BearerAuth(deps.JWTSecret))
		}
		r.Post("/v1/generate", gen.ServeHTTP)
		r.Get("/v1/generate", gen.ServeHTTP)
	})

	return r
}
