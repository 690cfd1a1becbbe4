package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/service"
)

type WithdrawalHandler struct {
	withdrawalSvc service.WithdrawalService
	ledgerSvc     service.LedgerService
}

func NewWithdrawalHandler(withdrawalSvc service.WithdrawalService, ledgerSvc service.LedgerService) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalSvc: withdrawalSvc,
		ledgerSvc:     ledgerSvc,
	}
}

type requestWithdrawalPayload struct {
	Amount        string `json:"amount"`
	BankAccountID int64  `json:"bank_account_id"`
}

func (h *WithdrawalHandler) Request(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var payload requestWithdrawalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		writeError(w, domain.ErrInvalidAmount)
		return
	}

	withdrawal, err := h.withdrawalSvc.Request(r.Context(), actor.ID, amount, payload.BankAccountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, withdrawal)
}

func (h *WithdrawalHandler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid withdrawal id"})
		return
	}

	allocation, err := h.ledgerSvc.Allocate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, allocation)
}

type decisionPayload struct {
	Notes string `json:"notes"`
}

func (h *WithdrawalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.withdrawalSvc.Approve)
}

func (h *WithdrawalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.withdrawalSvc.Reject)
}

func (h *WithdrawalHandler) decide(w http.ResponseWriter, r *http.Request,
	transition func(ctx context.Context, actor domain.Actor, id int64, notes string) (*domain.Withdrawal, error),
) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid withdrawal id"})
		return
	}

	var payload decisionPayload
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	withdrawal, err := transition(r.Context(), actor, id, payload.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withdrawal)
}

type markPaidPayload struct {
	TransactionRef string `json:"transaction_ref"`
}

func (h *WithdrawalHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid withdrawal id"})
		return
	}

	var payload markPaidPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	withdrawal, err := h.withdrawalSvc.MarkPaid(r.Context(), actor, id, payload.TransactionRef)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withdrawal)
}
