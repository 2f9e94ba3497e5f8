package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/user/salesbot-service/internal/delivery/http/handler"
	"github.com/user/salesbot-service/internal/delivery/http/middleware"
	"github.com/user/salesbot-service/internal/monitoring"
)

// requestTimeout covers a primary fetch, a secondary fetch and a completion call.
const requestTimeout = 60 * time.Second

func New(h *handler.Handler, m *monitoring.Metrics, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/health", h.HandleHealthCheck)
	r.Get("/extract", h.HandleExtract)
	r.Get("/chatbot", h.HandleChatbot)
	r.Get("/test-extraction", h.HandleTestExtraction)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.Get("/extract", h.HandleAPIExtract)
		r.Post("/chat", h.HandleChat)
	})

	return r
}
