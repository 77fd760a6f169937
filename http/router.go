package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Estimate   *EstimateHandler
	Share      *ShareHandler
	Generation *GenerationHandler
	Limiter    *RateLimiter
}

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// NewRouter wires the salary API. Estimation and generation routes are
// rate limited when h.Limiter is set; /health and share links are not.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", health)
	r.Get("/share/{id}", h.Estimate.Shared)

	limited := func(r chi.Router) {
		if h.Limiter != nil {
			r.Use(RateLimit(h.Limiter))
		}
	}

	r.Route("/salary", func(r chi.Router) {
		limited(r)
		r.Get("/options", h.Estimate.Options)
		r.Post("/estimate", h.Estimate.Estimate)
		r.Post("/share", h.Share.CreateLink)
		r.Post("/report", h.Share.Report)
		r.Post("/normalize-title", h.Generation.NormalizeTitle)
	})

	r.Route("/api", func(r chi.Router) {
		limited(r)
		r.Post("/ai", h.Generation.Generate)
		r.Delete("/ai", h.Generation.Invalidate)
	})

	return r
}
