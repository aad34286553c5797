// Package httptransport is the thin request/response boundary around the
// ledger. Handlers delegate to the application service without embedding
// business logic so transport concerns remain isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all endpoints. Everything under the authenticated group
// acts as the token's caller; reads and admin share the same identity
// plumbing so the ledger can authorize uniformly.
func NewRouter(h *Handler, validator CallerValidator, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(RequireCaller(validator, log))

		r.Post("/tickets/purchase", h.handleBuyTickets)
		r.Post("/tickets/transfer", h.handleTransfer)
		r.Post("/tickets/vendor-settlement", h.handleTransferToVendor)
		r.Post("/tickets/mint", h.handleMint)
		r.Post("/tickets/{ticketID}/burn", h.handleBurn)
		r.Get("/tickets/{ticketID}", h.handleTicket)

		r.Get("/balances/{address}", h.handleBalance)

		r.Get("/treasury", h.handleTreasury)
		r.Post("/treasury/withdraw", h.handleWithdraw)

		r.Post("/admin/pause", h.handlePause)
		r.Post("/admin/unpause", h.handleUnpause)
		r.Post("/admin/roles/venue", h.handleGrantVenue)

		r.Get("/audit/events", h.handleAuditEvents)
	})

	return r
}
