package chat

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/chat", h.Chat)
	r.Get("/api/health", h.Health)
	r.Get("/api/conversations", h.Conversations)
	r.Get("/api/conversations/{conversationID}", h.ConversationDetails)
	r.Get("/api/stats", h.StatsHandler)
	r.Get("/api/products", h.Products)
	r.Handle("/metrics", promhttp.Handler())
}
