package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"ticketd/internal/audit"
	"ticketd/internal/ledger"
	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// LedgerService is the application-service surface the transport needs.
type LedgerService interface {
	BuyTickets(ctx context.Context, buyer domain.Address, count int64, paid decimal.Decimal) (ledger.PurchaseResult, error)
	Transfer(ctx context.Context, from, to domain.Address, amount decimal.Decimal, ticketID domain.TicketID) error
	TransferToVendor(ctx context.Context, from domain.Address, amount decimal.Decimal, ticketID domain.TicketID) error
	BurnExpiredTicket(ctx context.Context, caller domain.Address, ticketID domain.TicketID) error
	Mint(ctx context.Context, caller, to domain.Address, amount decimal.Decimal) error
	GrantVenueRole(ctx context.Context, caller, identity domain.Address) error
	Pause(ctx context.Context, caller domain.Address) error
	Unpause(ctx context.Context, caller domain.Address) error
	Withdraw(ctx context.Context, caller domain.Address) (decimal.Decimal, error)
	BalanceOf(ctx context.Context, holder domain.Address) decimal.Decimal
	Ticket(ctx context.Context, id domain.TicketID) (ledger.TicketRecord, error)
	TreasuryBalance(ctx context.Context) decimal.Decimal
	IsPaused(ctx context.Context) bool
}

// Journal is the read side of the audit journal.
type Journal interface {
	List(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handler is the thin HTTP layer over the ledger service.
type Handler struct {
	svc     LedgerService
	journal Journal
}

func NewHandler(svc LedgerService, journal Journal) *Handler {
	return &Handler{svc: svc, journal: journal}
}

type purchaseRequest struct {
	Count int64  `json:"count"`
	Paid  string `json:"paid"`
}

type purchaseResponse struct {
	TicketID uint64 `json:"ticket_id"`
	Refund   string `json:"refund"`
}

func (h *Handler) handleBuyTickets(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	paid, err := domain.ParseAmount(req.Paid)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := h.svc.BuyTickets(r.Context(), CallerFrom(r.Context()), req.Count, paid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, purchaseResponse{
		TicketID: uint64(result.TicketID),
		Refund:   result.Refund.String(),
	})
}

type transferRequest struct {
	To       string `json:"to"`
	Amount   string `json:"amount"`
	TicketID uint64 `json:"ticket_id"`
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	to, err := domain.ParseAddress(req.To)
	if err != nil {
		writeError(w, err)
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Transfer(r.Context(), CallerFrom(r.Context()), to, amount, domain.TicketID(req.TicketID)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type vendorSettlementRequest struct {
	Amount   string `json:"amount"`
	TicketID uint64 `json:"ticket_id"`
}

func (h *Handler) handleTransferToVendor(w http.ResponseWriter, r *http.Request) {
	var req vendorSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.TransferToVendor(r.Context(), CallerFrom(r.Context()), amount, domain.TicketID(req.TicketID)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type mintRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	to, err := domain.ParseAddress(req.To)
	if err != nil {
		writeError(w, err)
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Mint(r.Context(), CallerFrom(r.Context()), to, amount); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleBurn(w http.ResponseWriter, r *http.Request) {
	ticketID, err := domain.ParseTicketID(chi.URLParam(r, "ticketID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.BurnExpiredTicket(r.Context(), CallerFrom(r.Context()), ticketID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ticketResponse struct {
	ID             uint64    `json:"id"`
	IssuedAt       time.Time `json:"issued_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	OriginalHolder string    `json:"original_holder"`
	Quantity       string    `json:"quantity"`
	Burned         bool      `json:"burned"`
}

func (h *Handler) handleTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := domain.ParseTicketID(chi.URLParam(r, "ticketID"))
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.svc.Ticket(r.Context(), ticketID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticketResponse{
		ID:             uint64(rec.ID),
		IssuedAt:       rec.IssuedAt,
		ExpiresAt:      rec.IssuedAt.Add(ledger.ExpiryWindow),
		OriginalHolder: rec.OriginalHolder.String(),
		Quantity:       rec.Quantity.String(),
		Burned:         rec.Burned,
	})
}

type balanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, err)
		return
	}
	balance := h.svc.BalanceOf(r.Context(), addr)
	writeJSON(w, http.StatusOK, balanceResponse{Address: addr.String(), Balance: balance.String()})
}

type treasuryResponse struct {
	Balance string `json:"balance"`
}

func (h *Handler) handleTreasury(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, treasuryResponse{Balance: h.svc.TreasuryBalance(r.Context()).String()})
}

type withdrawResponse struct {
	Amount string `json:"amount"`
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	amount, err := h.svc.Withdraw(r.Context(), CallerFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withdrawResponse{Amount: amount.String()})
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Pause(r.Context(), CallerFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUnpause(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Unpause(r.Context(), CallerFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type grantVenueRequest struct {
	Identity string `json:"identity"`
}

func (h *Handler) handleGrantVenue(w http.ResponseWriter, r *http.Request) {
	var req grantVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	identity, err := domain.ParseAddress(req.Identity)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.GrantVenueRole(r.Context(), CallerFrom(r.Context()), identity); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAuditEvents(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		writeError(w, dErrors.New(dErrors.CodeNotFound, "no audit journal configured"))
		return
	}
	events, err := h.journal.List(r.Context(), 100)
	if err != nil {
		writeError(w, dErrors.Wrap(err, dErrors.CodeInternal, "list audit events"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

type healthResponse struct {
	Status string `json:"status"`
	Paused bool   `json:"paused"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Paused: h.svc.IsPaused(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
